package search

import (
	"github.com/gitrdm/bellman/internal/config"
	"github.com/gitrdm/bellman/pkg/life"
)

// countAt reads the 4-bit neighbor count a NeighborCounts board stores at
// (x, y) back out as a plain int.
func countAt(nc life.NeighborCounts, x, y int) int {
	n := 0
	if nc.Bit0.Get(x, y) {
		n |= 1
	}
	if nc.Bit1.Get(x, y) {
		n |= 2
	}
	if nc.Bit2.Get(x, y) {
		n |= 4
	}
	if nc.Bit3.Get(x, y) {
		n |= 8
	}
	return n
}

// frontierCellsFor computes the set of cells newly unknown in next that
// qualify as frontier cells (spec.md §3.5): not genuinely unknown in prev
// (unknown_stable cells count as "known enough", since their value tracks
// the stable solver) and with no genuinely-unknown neighbor in prev
// either — a single ZOI dilation of prev's truly-unknown mask captures
// both the cell-itself and neighbor conditions at once.
func frontierCellsFor(prev, next life.UnknownState) life.BitBoard {
	trulyUnknownPrev := prev.Unknown.AndNot(prev.UnknownStable)
	return next.Unknown.AndNot(trulyUnknownPrev.ZOI())
}

// PopulateFrontier evolves s.Current forward through up to
// life.MaxFrontierGens generations, appending a FrontierGeneration for
// each, per spec.md §4.5 step 2. It reports false (branch failure) if any
// generation's active or changes set collides with its forced mask.
func PopulateFrontier(s *SearchState, p *config.SearchParams) bool {
	prev := s.Current
	for s.Frontier.Size < life.MaxFrontierGens {
		next := prev.StepMaintaining(&s.Stable)

		active := next.ActiveComparedTo(&s.Stable)
		changes := next.ChangesComparedTo(prev)

		forcedInactive, hardFail := ForcedInactiveCells(s, p, active, changes, next)
		if hardFail {
			return false
		}
		if !active.And(forcedInactive).IsEmpty() {
			return false
		}

		forcedUnchanging, hardFail := ForcedUnchangingCells(p, changes)
		if hardFail {
			return false
		}
		if !changes.And(forcedUnchanging).IsEmpty() {
			return false
		}

		g := life.FrontierGeneration{
			Gen:              s.Gen + uint64(s.Frontier.Size) + 1,
			Prev:             prev,
			State:            next,
			FrontierCells:    frontierCellsFor(prev, next),
			Active:           active,
			Changes:          changes,
			ForcedInactive:   forcedInactive,
			ForcedUnchanging: forcedUnchanging,
		}
		s.Frontier.PushBack(g)
		prev = next
	}
	return true
}

// maxCalculateRounds bounds the per-cell transition-resolution passes
// CalculateFrontier performs per call (spec.md §4.5's MAX_CALCULATE_ROUNDS).
const maxCalculateRounds = 1

// maxVulnerableProbe bounds how many vulnerable cells CalculateFrontier
// probes with TestUnknowns per call, keeping the "small set" spec.md §4.5
// step 1 describes bounded regardless of board size.
const maxVulnerableProbe = 8

// CalculateFrontier runs one round of stable-state propagation, vulnerable
// cell probing, frontier (re)population, and per-frontier-cell transition
// resolution (spec.md §4.5). It reports false if any step proves the
// branch inconsistent.
func CalculateFrontier(s *SearchState, p *config.SearchParams) bool {
	if !s.Stable.PropagateSimple() {
		return false
	}

	vulnerable := s.Stable.Vulnerable().And(s.Stable.Unknown)
	var probe life.BitBoard
	n := 0
	vulnerable.ForEachSetCell(func(x, y int) {
		if n >= maxVulnerableProbe {
			return
		}
		probe.Set(x, y)
		n++
	})
	if _, changed := s.Stable.TestUnknowns(probe); changed {
		if !s.Stable.PropagateSimple() {
			return false
		}
	}

	if !s.Stable.Propagate() {
		return false
	}

	if !PopulateFrontier(s, p) {
		return false
	}

	for round := 0; round < maxCalculateRounds; round++ {
		ok := true
		anyResolved := false
		for i := 0; i < s.Frontier.Size; i++ {
			g := s.Frontier.At(i)
			var stillOpen life.BitBoard
			g.FrontierCells.ForEachSetCell(func(x, y int) {
				if !ok {
					return
				}
				t := life.AllowedTransitionsAt(g, &s.Stable, x, y)
				if t == life.Impossible {
					ok = false
					return
				}
				if !life.IsSingleton(t) {
					stillOpen.Set(x, y)
					return
				}

				// StableToStable leaves the cell's concrete background
				// value unresolved (only "unchanged" is known), so there
				// is no (current, next) pair to derive a neighbor-count
				// restriction from; every other singleton transition
				// names both concretely.
				if t != life.StableToStable {
					var current, next bool
					switch t {
					case life.OffToOn:
						current, next = false, true
					case life.OnToOff:
						current, next = true, false
					case life.OnToOn:
						current, next = true, true
					default: // OffToOff
						current, next = false, false
					}
					minC := countAt(life.CountNeighborhood(g.Prev.State), x, y)
					unkC := countAt(life.CountNeighborhood(g.Prev.Unknown), x, y)
					remove := optionsForTransition(current, next, minC, unkC)
					if !s.Stable.RestrictOptionsAt(x, y, remove) {
						ok = false
						return
					}
				}
				g.SetTransition(x, y, t)
				anyResolved = true
			})
			if !ok {
				return false
			}
			g.FrontierCells = stillOpen
		}
		if !anyResolved {
			break
		}
	}

	return true
}
