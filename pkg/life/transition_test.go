package life

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumerateOrdersHighestToLowestWithStableLast(t *testing.T) {
	all := Enumerate(Any)
	assert := assert.New(t)
	assert.Equal(OnToOn, all[0])
	assert.Equal(OnToOff, all[1])
	assert.Equal(OffToOn, all[2])
	assert.Equal(OffToOff, all[3])
	assert.Equal(StableToStable, all[len(all)-1])
}

func TestSimplifyCollapsesBothUnperturbedOptions(t *testing.T) {
	t1 := OffToOff | OnToOn | OffToOn
	got := Simplify(t1)
	assert.Equal(t, StableToStable|OffToOn, got)
}

func TestIsSingletonAndCount(t *testing.T) {
	assert.True(t, IsSingleton(OffToOn))
	assert.False(t, IsSingleton(OffToOn|OnToOn))
	assert.Equal(t, 2, Count(OffToOn|OnToOn))
}

func TestIsPerturbationComparesAgainstUnperturbed(t *testing.T) {
	assert.False(t, IsPerturbation(OnToOn, OnToOn))
	assert.True(t, IsPerturbation(OffToOn, OffToOff))
}
