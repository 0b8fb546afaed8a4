package search

import (
	"sort"
	"time"

	"github.com/gitrdm/bellman/internal/config"
	"github.com/gitrdm/bellman/pkg/life"
)

// Solution mirrors the teacher corpus's Solution record (spec.md §3.8):
// the stabilised state, the state snapshotted at first interaction, the
// completed still-life, the stator, and the generation numbers deduplication
// keys off of.
type Solution struct {
	Stable            life.StableState
	InteractionStable life.StableState
	Completed         life.BitBoard
	Stator            life.BitBoard
	InteractionGen    uint64
	RecoveryGen       uint64
}

// hash is the deduplication key's last field: (interactionGen, population,
// recoveryGen, hash), as SPEC_FULL.md §3.8 specifies.
func (sol Solution) hash() uint64 {
	return sol.Stable.State.Hash()
}

func (sol Solution) key() [4]uint64 {
	return [4]uint64{sol.InteractionGen, uint64(sol.Completed.Population()), sol.RecoveryGen, sol.hash()}
}

// PassesFilters reports whether sol's completed still-life contains the
// configured filter (translated to filter-pos) and none of the configured
// forbidden patterns are fully matched within it. filter-gen is not
// consulted: the filter is checked against the completed still-life, not
// against any particular generation.
func PassesFilters(sol Solution, p *config.SearchParams) bool {
	if p.HasFilter {
		if !sol.Completed.Match(p.Filter.Translate(p.FilterPos[0], p.FilterPos[1]), p.Filter.Translate(p.FilterPos[0], p.FilterPos[1])) {
			return false
		}
	}
	for _, f := range p.Forbidden {
		if sol.Stable.Unknown.And(f.Mask).IsEmpty() && sol.Stable.State.And(f.Mask).Equal(f.Pattern.And(f.Mask)) {
			return false
		}
	}
	return true
}

// stabiliseAndComplete runs CompleteStable (spec.md §4.8) if
// stabilise-results is configured, bounded by stabilise-results-timeout.
func stabiliseAndComplete(stable life.StableState, p *config.SearchParams) life.BitBoard {
	if !p.StabiliseResults {
		return stable.State
	}
	timeout := time.Duration(p.StabiliseResultsTimeout) * time.Second
	completed := stable.CompleteStable(timeout, p.MinimiseResults)
	if completed.IsEmpty() && stable.Unknown.IsEmpty() {
		return stable.State
	}
	return completed
}

// RecordSolution builds a Solution from the engine's current state at the
// moment recovery was confirmed, applying completion and filters. It
// returns ok=false if the candidate is discarded (forbid-eater2 matches
// the completed still-life, or PassesFilters rejects it); a candidate
// whose completion failed is kept, with an empty Completed board.
func RecordSolution(s *SearchState, p *config.SearchParams) (Solution, bool) {
	completed := stabiliseAndComplete(s.Stable, p)
	sol := Solution{
		Stable:            s.Stable,
		InteractionStable: s.InteractionStable,
		Completed:         completed,
		Stator:            p.Stator,
		InteractionGen:    s.InteractionStartGen,
		RecoveryGen:       s.Gen,
	}
	if p.ForbidEater2 && isEater2(sol.Completed) {
		return Solution{}, false
	}
	if !PassesFilters(sol, p) {
		return Solution{}, false
	}
	return sol, true
}

// TrimSolutions deduplicates solutions by (interactionGen, population,
// recoveryGen, hash) and sorts them into the deterministic order the
// output report presents them in, mirroring Barrister2.cpp's trim pass
// (reused by RunMetaSearch between rounds).
func TrimSolutions(sols []Solution) []Solution {
	seen := make(map[[4]uint64]bool, len(sols))
	out := make([]Solution, 0, len(sols))
	for _, s := range sols {
		k := s.key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		ki, kj := out[i].key(), out[j].key()
		for n := range ki {
			if ki[n] != kj[n] {
				return ki[n] < kj[n]
			}
		}
		return false
	})
	return out
}

// eater2Pattern is the 9-cell eater2 still-life, used by `forbid-eater2`.
// x = 5, y = 5: .OO../O.O../.O.../..O.O/..OO.
var eater2Pattern = mustEater2()

func mustEater2() life.BitBoard {
	var b life.BitBoard
	cells := [][2]int{
		{1, 0}, {2, 0},
		{0, 1}, {2, 1},
		{1, 2},
		{2, 3}, {4, 3},
		{2, 4}, {3, 4},
	}
	for _, c := range cells {
		b.Set(c[0], c[1])
	}
	return b
}

// isEater2 reports whether board contains an eater2 subpattern anywhere,
// by sliding the fixed pattern over every translate of the whole torus.
func isEater2(board life.BitBoard) bool {
	for dx := 0; dx < life.Width; dx++ {
		for dy := 0; dy < 64; dy++ {
			candidate := eater2Pattern.Translate(dx, dy)
			if board.Match(candidate, candidate) {
				return true
			}
		}
	}
	return false
}
