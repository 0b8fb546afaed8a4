package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/bellman/internal/config"
)

func TestRunMetaSearchZeroRoundsRunsOnceAndTrims(t *testing.T) {
	p := baseParams()
	p.MetasearchRounds = 0

	sols, err := RunMetaSearch(context.Background(), p, nil)
	require.NoError(t, err)
	assert.Empty(t, sols, "an already-stable board with no perturbation never records a solution")
}

func TestMetaSearchStepWithNoSolutionsSpawnsNoRounds(t *testing.T) {
	p := baseParams()
	p.MinStableInterval = 4
	p.ActiveWindowRange = config.Bound{Min: 0, Max: 10}

	out, err := metaSearchStep(context.Background(), p, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, out, "no input solutions means no re-search rounds are spawned")
}

func TestMetaSearchStepLeavesUnboundedWindowUnbounded(t *testing.T) {
	p := baseParams()
	p.ActiveWindowRange = config.Bound{Min: 0, Max: -1}

	var sol Solution
	sol.InteractionStable = p.StartingStable

	_, err := metaSearchStep(context.Background(), p, nil, []Solution{sol})
	require.NoError(t, err)
	assert.Equal(t, -1, p.ActiveWindowRange.Max, "widening must operate on the copy, not the shared params")
}
