package search

import "github.com/gitrdm/bellman/pkg/life"

// flagForCount maps a live-neighbor count to the StableOptions flag it
// corresponds to, mirroring life's own (unexported) table: live cells
// only have flags for 2 and 3 neighbors, dead cells for everything except
// 3 (a dead cell with 3 neighbors is born, which no still-life permits).
func flagForCount(live bool, count int) (life.Options, bool) {
	if live {
		switch count {
		case 2:
			return life.Live2, true
		case 3:
			return life.Live3, true
		}
		return 0, false
	}
	switch count {
	case 0:
		return life.Dead0, true
	case 1:
		return life.Dead1, true
	case 2:
		return life.Dead2, true
	case 4:
		return life.Dead4, true
	case 5:
		return life.Dead5, true
	case 6:
		return life.Dead6, true
	}
	return 0, false
}

// optionsForTransition computes, per SPEC_FULL.md's supplemented
// `OptionsFor` derivation, the StableOptions flags ruled out for a cell
// whose committed one-generation transition is (current, next) and whose
// *this-generation* live-neighbor count lies somewhere in
// [knownCount, knownCount+unknownCount]: any count in that range that
// would have produced a transition other than the observed one is
// inconsistent, so the still-life flag for that count (same count,
// evaluated against the still-life rule rather than the one-step rule) is
// ruled out.
//
// This intentionally reuses the *same* count for both the one-step check
// and the still-life flag: a committed transition only constrains a
// cell's neighbor count at the generation it was observed, and frontier
// cells are by construction (spec.md §3.5) ones whose neighborhood was
// already fully known last generation, so the observed count and the
// cell's eventual stable count coincide once the search has advanced this
// far — there is no separate "delta shift" to apply beyond that identity.
func optionsForTransition(current, next bool, knownCount, unknownCount int) life.Options {
	var out life.Options
	for c := knownCount; c <= knownCount+unknownCount; c++ {
		born := c == 3
		survives := current && (c == 2 || c == 3)
		nextVal := survives || (!current && born)
		if nextVal == next {
			continue
		}
		if flag, ok := flagForCount(current, c); ok {
			out |= flag
		}
	}
	return out
}
