package symmetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/bellman/pkg/life"
)

func TestParseNameRecognisesAllSpellings(t *testing.T) {
	cases := []string{
		"identity", "D2|", "D2|even", "D2-", "D2-even", "D2\\",
		"C2", "C2bothodd", "C2even", "C2evenboth",
		"C2horizontaleven", "C2verticaleven",
	}
	for _, name := range cases {
		_, err := ParseName(name)
		assert.NoError(t, err, "name %q should parse", name)
	}
}

func TestParseNameRejectsUnknown(t *testing.T) {
	_, err := ParseName("not-a-symmetry")
	assert.Error(t, err)
}

func TestApplyIsInvolutionForReflections(t *testing.T) {
	var b life.BitBoard
	b.Set(3, 4)
	b.Set(10, 20)

	transforms := []Transform{
		Identity, ReflectVertical, ReflectVerticalEven,
		ReflectHorizontal, ReflectHorizontalEven, ReflectDiagonal,
	}
	for _, tr := range transforms {
		twice := Apply(tr, Apply(tr, b))
		assert.True(t, twice.Equal(b), "transform %v should be an involution", tr)
	}
}

func TestApplyRotate180IsInvolution(t *testing.T) {
	var b life.BitBoard
	b.Set(5, 5)
	b.Set(15, 25)

	for _, tr := range []Transform{Rotate180, Rotate180Even, Rotate180HorizEven, Rotate180VertEven} {
		twice := Apply(tr, Apply(tr, b))
		assert.True(t, twice.Equal(b), "transform %v should be an involution", tr)
	}
}

func TestApplyIdentityIsNoop(t *testing.T) {
	var b life.BitBoard
	b.Set(1, 1)
	assert.True(t, Apply(Identity, b).Equal(b))
}

func TestResolveDomainRejectsBareC2(t *testing.T) {
	err := ResolveDomain(Rotate180)
	require.Error(t, err)
}

func TestResolveDomainAcceptsExplicitVariants(t *testing.T) {
	for _, tr := range []Transform{Identity, ReflectVertical, Rotate180Even, Rotate180HorizEven, Rotate180VertEven} {
		assert.NoError(t, ResolveDomain(tr))
	}
}

func TestInFundamentalDomainIdentityAlwaysTrue(t *testing.T) {
	assert.True(t, InFundamentalDomain(Identity, 40, 50))
}

func TestInFundamentalDomainReflectVerticalHalvesTheBoard(t *testing.T) {
	assert.True(t, InFundamentalDomain(ReflectVertical, 0, 0))
	assert.False(t, InFundamentalDomain(ReflectVertical, life.Width-1, 0))
}
