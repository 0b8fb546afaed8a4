package life

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestUnknownStateStepMaintainingSoundness covers testable property 4
// (spec.md §8): for every concrete completion of an UnknownState's unknown
// cells, the corresponding concrete Step must agree with every cell
// StepMaintaining resolved as determined (Unknown cleared in the result).
func TestUnknownStateStepMaintainingSoundness(t *testing.T) {
	unknownCells := [][2]int{{10, 10}, {11, 10}, {10, 11}}

	var base UnknownState
	base.State.Set(9, 10)
	base.State.Set(11, 11)
	for _, c := range unknownCells {
		base.Unknown.Set(c[0], c[1])
	}

	stable := &StableState{}
	next := base.StepMaintaining(stable)

	for mask := 0; mask < 1<<len(unknownCells); mask++ {
		completion := base.State
		for i, c := range unknownCells {
			if mask&(1<<i) != 0 {
				completion.Set(c[0], c[1])
			}
		}
		stepped := Step(completion)

		for x := 8; x <= 13; x++ {
			for y := 8; y <= 13; y++ {
				if next.Unknown.Get(x, y) {
					continue
				}
				assert.Equal(t, stepped.Get(x, y), next.State.Get(x, y),
					"mask=%d cell=(%d,%d)", mask, x, y)
			}
		}
	}
}

func TestUnknownStateActiveComparedTo(t *testing.T) {
	var stable StableState
	stable.State.Set(1, 1)
	stable.StateZOI = stable.State.ZOI()

	var u UnknownState
	u.State.Set(1, 1)
	u.State.Set(2, 2)

	active := u.ActiveComparedTo(&stable)
	assert.True(t, active.Get(2, 2))
	assert.False(t, active.Get(1, 1))
}

func TestUnknownStateTransitionsForAndSetTransitionAt(t *testing.T) {
	var prev, next UnknownState
	prev.State.Set(3, 3)
	next.State.Set(3, 3)

	trans := TransitionsFor(prev, next, 3, 3)
	assert.Equal(t, OnToOn, trans)

	var fresh UnknownState
	fresh.Unknown.Set(4, 4)
	var freshNext UnknownState
	freshNext.Unknown.Set(4, 4)
	ok := SetTransitionAt(&fresh, &freshNext, 4, 4, OffToOn)
	assert.True(t, ok)
	assert.False(t, fresh.State.Get(4, 4))
	assert.True(t, freshNext.State.Get(4, 4))
	assert.False(t, fresh.Unknown.Get(4, 4))
	assert.False(t, freshNext.Unknown.Get(4, 4))
}

func TestUnknownStateUnperturbedTransitionFor(t *testing.T) {
	var u UnknownState
	u.State.Set(2, 2)
	assert.Equal(t, OnToOn, u.UnperturbedTransitionFor(2, 2))
	assert.Equal(t, OffToOff, u.UnperturbedTransitionFor(3, 3))
}
