package life

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countAtForTest(nc NeighborCounts, x, y int) int {
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

func TestCountNeighborhoodMatchesBruteForce(t *testing.T) {
	var b BitBoard
	b.Set(10, 10)
	b.Set(11, 10)
	b.Set(10, 11)
	b.Set(30, 40)

	counts := CountNeighborhood(b)
	for x := 8; x <= 13; x++ {
		for y := 8; y <= 13; y++ {
			want := 0
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					if dx == 0 && dy == 0 {
						continue
					}
					if b.Get(x+dx, y+dy) {
						want++
					}
				}
			}
			require.Equal(t, want, countAtForTest(counts, x, y), "cell (%d,%d)", x, y)
		}
	}
}

func TestCountNeighborhoodColumnMatchesFullCompute(t *testing.T) {
	var b BitBoard
	b.Set(5, 5)
	b.Set(6, 6)
	b.Set(4, 4)

	full := CountNeighborhood(b)
	b3, b2, b1, b0 := CountNeighborhoodColumn(b, 5)
	assert.Equal(t, full.Bit3.cols[5], b3)
	assert.Equal(t, full.Bit2.cols[5], b2)
	assert.Equal(t, full.Bit1.cols[5], b1)
	assert.Equal(t, full.Bit0.cols[5], b0)
}

func TestCompareToConst(t *testing.T) {
	// A dead cell (0,0) with exactly 3 live neighbors (an L-tromino) — its
	// count should compare equal to 3, less-than false, greater-than false.
	var b BitBoard
	b.Set(1, 0)
	b.Set(0, 1)
	b.Set(1, 1)
	counts := CountNeighborhood(b)

	lt, eq, gt := CompareToConst(counts, 3)
	assert.False(t, lt.Get(0, 0))
	assert.True(t, eq.Get(0, 0))
	assert.False(t, gt.Get(0, 0))

	lt2, _, gt2 := CompareToConst(counts, 2)
	assert.False(t, lt2.Get(0, 0))
	assert.True(t, gt2.Get(0, 0))
}

func TestAddCountsSumsDisjointContributions(t *testing.T) {
	var a, b BitBoard
	a.Set(1, 1)
	b.Set(20, 20)
	na := CountNeighborhood(a)
	nb := CountNeighborhood(b)
	combined := CountNeighborhood(a.Or(b))
	summed := AddCounts(na, nb)
	assert.True(t, CountsEqual(combined, summed).Equal(BitBoard{}.Not()))
}
