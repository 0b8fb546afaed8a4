package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gitrdm/bellman/internal/config"
	"github.com/gitrdm/bellman/pkg/life"
)

func TestPassesFiltersRejectsUnmatchedFilter(t *testing.T) {
	p := baseParams()
	var filter life.BitBoard
	filter.Set(0, 0)
	p.HasFilter = true
	p.Filter = filter
	p.FilterPos = [2]int{5, 5}

	var sol Solution
	sol.Completed.Set(0, 0) // not at the required (5, 5) offset

	assert.False(t, PassesFilters(sol, p))
}

func TestPassesFiltersAcceptsMatchedFilter(t *testing.T) {
	p := baseParams()
	var filter life.BitBoard
	filter.Set(0, 0)
	p.HasFilter = true
	p.Filter = filter
	p.FilterPos = [2]int{5, 5}

	var sol Solution
	sol.Completed.Set(5, 5)

	assert.True(t, PassesFilters(sol, p))
}

func TestPassesFiltersRejectsForbiddenPattern(t *testing.T) {
	p := baseParams()
	var pattern life.BitBoard
	pattern.Set(2, 2)
	p.Forbidden = []config.ForbiddenPattern{{
		Pattern: pattern,
		Mask:    pattern,
	}}

	var sol Solution
	sol.Stable.State.Set(2, 2)

	assert.False(t, PassesFilters(sol, p))
}

func TestPassesFiltersSkipsForbiddenCheckWhileStillUnknown(t *testing.T) {
	p := baseParams()
	var pattern life.BitBoard
	pattern.Set(2, 2)
	p.Forbidden = []config.ForbiddenPattern{{
		Pattern: pattern,
		Mask:    pattern,
	}}

	var sol Solution
	sol.Stable.Unknown.Set(2, 2) // not yet determined, so the forbidden mask can't match

	assert.True(t, PassesFilters(sol, p))
}

func TestTrimSolutionsDeduplicatesByKey(t *testing.T) {
	var a, b Solution
	a.Stable.State.Set(1, 1)
	a.InteractionGen, a.RecoveryGen = 0, 5
	a.Completed.Set(1, 1)

	b = a // identical key

	out := TrimSolutions([]Solution{a, b})
	assert.Len(t, out, 1)
}

func TestTrimSolutionsSortsByKey(t *testing.T) {
	var low, high Solution
	low.InteractionGen = 1
	high.InteractionGen = 2

	out := TrimSolutions([]Solution{high, low})
	assert.Equal(t, uint64(1), out[0].InteractionGen)
	assert.Equal(t, uint64(2), out[1].InteractionGen)
}

func TestIsEater2DetectsPatternAnywhereOnBoard(t *testing.T) {
	translated := eater2Pattern.Translate(10, 10)
	assert.True(t, isEater2(translated))
}

func TestIsEater2RejectsUnrelatedPattern(t *testing.T) {
	var block life.BitBoard
	block.Set(0, 0)
	block.Set(1, 0)
	block.Set(0, 1)
	block.Set(1, 1)
	assert.False(t, isEater2(block))
}
