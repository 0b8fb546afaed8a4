package life

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrontierRingBufferPushPopHead(t *testing.T) {
	var f Frontier
	f.PushBack(FrontierGeneration{Gen: 0})
	f.PushBack(FrontierGeneration{Gen: 1})
	require.Equal(t, 2, f.Size)

	head, ok := f.Head()
	require.True(t, ok)
	assert.Equal(t, uint64(0), head.Gen)

	f.PopFront()
	head, ok = f.Head()
	require.True(t, ok)
	assert.Equal(t, uint64(1), head.Gen)

	f.PopFront()
	_, ok = f.Head()
	assert.False(t, ok)
}

func TestAllowedTransitionsAtOutsideZOIForcesUnchanging(t *testing.T) {
	var g FrontierGeneration
	g.State.Unknown.Set(5, 5)
	g.Prev.Unknown.Set(5, 5)

	var stable StableState
	// StateZOI left empty: (5,5) is outside it.

	allowed := AllowedTransitionsAt(&g, &stable, 5, 5)
	assert.Equal(t, Transition(0), allowed&(OffToOn|OnToOff))
}

func TestAllowedTransitionsAtInsideZOIAllowsPerturbation(t *testing.T) {
	var g FrontierGeneration
	g.State.Unknown.Set(5, 5)
	g.Prev.Unknown.Set(5, 5)

	var stable StableState
	stable.StateZOI.Set(5, 5)

	allowed := AllowedTransitionsAt(&g, &stable, 5, 5)
	assert.NotEqual(t, Transition(0), allowed&(OffToOn|OnToOff))
}

func TestAllowedTransitionsAtForcedUnchangingMasksPerturbation(t *testing.T) {
	var g FrontierGeneration
	g.State.Unknown.Set(5, 5)
	g.Prev.Unknown.Set(5, 5)
	g.ForcedUnchanging.Set(5, 5)

	var stable StableState
	stable.StateZOI.Set(5, 5)

	allowed := AllowedTransitionsAt(&g, &stable, 5, 5)
	assert.Equal(t, Transition(0), allowed&(OffToOn|OnToOff))
}
