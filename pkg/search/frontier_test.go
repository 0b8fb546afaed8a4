package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/bellman/internal/config"
	"github.com/gitrdm/bellman/pkg/life"
)

func TestFrontierCellsForExcludesCellsNearTrulyUnknownPrev(t *testing.T) {
	var prev, next life.UnknownState
	prev.Unknown.Set(5, 5)
	next.Unknown.Set(5, 5)
	next.Unknown.Set(20, 20)

	got := frontierCellsFor(prev, next)
	assert.False(t, got.Get(5, 5), "cell itself is still genuinely unknown in prev")
	assert.True(t, got.Get(20, 20), "far from any truly-unknown prev cell, qualifies")
}

func TestFrontierCellsForTreatsUnknownStableAsKnownEnough(t *testing.T) {
	var prev, next life.UnknownState
	prev.Unknown.Set(5, 5)
	prev.UnknownStable.Set(5, 5)
	next.Unknown.Set(5, 5)

	got := frontierCellsFor(prev, next)
	assert.True(t, got.Get(5, 5), "unknown_stable cells don't block frontier qualification")
}

func TestPopulateFrontierFillsUpToMaxFrontierGens(t *testing.T) {
	p := baseParams()
	s := NewSearchState(p)

	ok := PopulateFrontier(&s, p)
	require.True(t, ok)
	assert.Equal(t, life.MaxFrontierGens, s.Frontier.Size)
}

func TestPopulateFrontierFailsWhenActiveExceedsHardCap(t *testing.T) {
	p := baseParams()
	p.MaxActiveCells = config.Bound{Min: -1, Max: 0}

	var blinker life.BitBoard
	blinker.Set(10, 10)
	blinker.Set(11, 10)
	blinker.Set(12, 10)
	p.ActivePattern = blinker

	s := NewSearchState(p)

	ok := PopulateFrontier(&s, p)
	assert.False(t, ok, "blinker activity against an empty stable background must exceed max-active-cells=0")
}

func TestCalculateFrontierOnBlockRemainsConsistent(t *testing.T) {
	p := baseParams()
	var block life.BitBoard
	block.Set(0, 0)
	block.Set(1, 0)
	block.Set(0, 1)
	block.Set(1, 1)
	ok, _ := p.StartingStable.SetOn(block)
	require.True(t, ok)

	s := NewSearchState(p)
	assert.True(t, CalculateFrontier(&s, p))
}

func TestCountAtMatchesCountNeighborhood(t *testing.T) {
	var board life.BitBoard
	board.Set(1, 0)
	board.Set(0, 1)
	board.Set(1, 2)

	nc := life.CountNeighborhood(board)
	assert.Equal(t, 3, countAt(nc, 1, 1))
}
