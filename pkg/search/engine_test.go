package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/bellman/internal/config"
	"github.com/gitrdm/bellman/pkg/life"
)

// TestEngineRunOnAlreadyStableBoardRecordsNoSolutions documents a
// deliberate consequence of requiring an observed perturbation before a
// solution is recorded (spec.md §4.5 step 4): a board with no active
// pattern and no unknown cells at all never sets HasInteracted, so it
// never produces a solution, even though it is itself a valid still
// life. Finding catalysts, not confirming pre-existing still lifes, is
// the engine's job.
func TestEngineRunOnAlreadyStableBoardRecordsNoSolutions(t *testing.T) {
	p := baseParams()
	var block life.BitBoard
	block.Set(0, 0)
	block.Set(1, 0)
	block.Set(0, 1)
	block.Set(1, 1)
	ok, _ := p.StartingStable.SetOn(block)
	require.True(t, ok)

	e := NewEngine(p, nil)
	sols, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sols)
}

// TestEngineRunInfeasibleMaxActiveCellsTerminatesWithNoSolutions covers
// S4: a required perturbation against a max-active-cells=0 hard cap must
// make the branch immediately inconsistent, so the search terminates
// with zero solutions rather than hanging or panicking.
func TestEngineRunInfeasibleMaxActiveCellsTerminatesWithNoSolutions(t *testing.T) {
	p := baseParams()
	p.MaxActiveCells = config.Bound{Min: -1, Max: 0}

	var blinker life.BitBoard
	blinker.Set(10, 10)
	blinker.Set(11, 10)
	blinker.Set(12, 10)
	p.ActivePattern = blinker

	e := NewEngine(p, nil)
	sols, err := e.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, sols)
}

// TestRecordSolutionForbidsEater2Completion covers S6: a completed
// still-life containing an eater2 subpattern must be rejected when
// forbid-eater2 is configured, the same check Engine.tryAdvance applies
// via RecordSolution.
func TestRecordSolutionForbidsEater2Completion(t *testing.T) {
	p := baseParams()
	p.ForbidEater2 = true
	p.StabiliseResults = false

	s := NewSearchState(p)
	ok, _ := s.Stable.SetOn(eater2Pattern.Translate(20, 20))
	require.True(t, ok)

	_, recorded := RecordSolution(&s, p)
	assert.False(t, recorded)
}

func TestChooseBranchCellPrefersEarliestGeneration(t *testing.T) {
	p := baseParams()
	s := NewSearchState(p)

	var g1, g2 life.FrontierGeneration
	g1.FrontierCells.Set(5, 5)
	g2.FrontierCells.Set(1, 1)
	s.Frontier.PushBack(g1)
	s.Frontier.PushBack(g2)

	e := NewEngine(p, nil)
	gi, x, y, ok := e.chooseBranchCell(&s)
	require.True(t, ok)
	assert.Equal(t, 0, gi)
	assert.Equal(t, 5, x)
	assert.Equal(t, 5, y)
}

func TestChooseBranchCellFallsThroughToLaterGeneration(t *testing.T) {
	p := baseParams()
	s := NewSearchState(p)

	var g1, g2 life.FrontierGeneration
	g2.FrontierCells.Set(2, 2)
	s.Frontier.PushBack(g1)
	s.Frontier.PushBack(g2)

	e := NewEngine(p, nil)
	gi, x, y, ok := e.chooseBranchCell(&s)
	require.True(t, ok)
	assert.Equal(t, 1, gi)
	assert.Equal(t, 2, x)
	assert.Equal(t, 2, y)
}

func TestChooseBranchCellReportsNoneWhenFrontierFullyResolved(t *testing.T) {
	p := baseParams()
	s := NewSearchState(p)
	s.Frontier.PushBack(life.FrontierGeneration{})

	e := NewEngine(p, nil)
	_, _, _, ok := e.chooseBranchCell(&s)
	assert.False(t, ok)
}

// TestCommitBranchMarksInteractionOnPerturbation verifies commitBranch's
// interaction bookkeeping: committing a transition that differs from the
// unperturbed (stable-background) one sets HasInteracted and snapshots
// the stable state at that generation.
func TestCommitBranchMarksInteractionOnPerturbation(t *testing.T) {
	p := baseParams()
	s := NewSearchState(p)

	var neighbors life.BitBoard
	neighbors.Set(4, 4)
	neighbors.Set(5, 4)
	neighbors.Set(6, 4)

	var g life.FrontierGeneration
	g.Gen = 1
	g.Prev.State = neighbors
	s.Frontier.PushBack(g)

	e := NewEngine(p, nil)
	ok := e.commitBranch(&s, 0, 5, 5, life.OffToOn)
	require.True(t, ok)
	assert.True(t, s.HasInteracted)
	assert.Equal(t, uint64(1), s.InteractionStartGen)

	got := s.Frontier.At(0)
	assert.True(t, got.State.State.Get(5, 5))
	assert.False(t, got.FrontierCells.Get(5, 5))
}

// TestCommitBranchStableToStableLeavesInteractionUnset confirms that
// committing the "unchanged background" transition never counts as a
// perturbation.
func TestCommitBranchStableToStableLeavesInteractionUnset(t *testing.T) {
	p := baseParams()
	s := NewSearchState(p)

	var g life.FrontierGeneration
	s.Frontier.PushBack(g)

	e := NewEngine(p, nil)
	ok := e.commitBranch(&s, 0, 5, 5, life.StableToStable)
	require.True(t, ok)
	assert.False(t, s.HasInteracted)
}

func TestClassifyOscillatorIgnoresShortPeriods(t *testing.T) {
	p := baseParams()
	s := NewSearchState(p)
	// A blinker has period 2, below the period-5 oscillator-reporting
	// threshold, so classifyOscillator must not record a rotor for it.
	s.Current.State.Set(9, 10)
	s.Current.State.Set(10, 10)
	s.Current.State.Set(11, 10)

	e := NewEngine(p, nil)
	e.classifyOscillator(&s)
	assert.Empty(t, e.Rotors)
}
