package life

// bitAt returns the bit-plane holding bit position idx (0 = low bit) of a
// 4-bit NeighborCounts value.
func (nc NeighborCounts) bitAt(idx int) BitBoard {
	switch idx {
	case 0:
		return nc.Bit0
	case 1:
		return nc.Bit1
	case 2:
		return nc.Bit2
	default:
		return nc.Bit3
	}
}

// CompareToConst compares every cell's count in nc against the constant n,
// returning masks for count<n, count==n, and count>n. n is expected in
// [0,15]; nc values are always in [0,8].
func CompareToConst(nc NeighborCounts, n int) (lt, eq, gt BitBoard) {
	equalSoFar := BitBoard{}.Not()
	for idx := 3; idx >= 0; idx-- {
		nBit := (n >> uint(idx)) & 1
		vBit := nc.bitAt(idx)

		var thisLess, bitEqual BitBoard
		if nBit == 1 {
			thisLess = vBit.Not()
			bitEqual = vBit
		} else {
			thisLess = BitBoard{}
			bitEqual = vBit.Not()
		}
		lt = lt.Or(equalSoFar.And(thisLess))
		equalSoFar = equalSoFar.And(bitEqual)
	}
	eq = equalSoFar
	gt = lt.Or(eq).Not()
	return lt, eq, gt
}

// CountsEqual returns the mask of cells where a and b hold the same count.
func CountsEqual(a, b NeighborCounts) BitBoard {
	diff := a.Bit0.Xor(b.Bit0).Or(a.Bit1.Xor(b.Bit1)).Or(a.Bit2.Xor(b.Bit2)).Or(a.Bit3.Xor(b.Bit3))
	return diff.Not()
}

// AddCounts adds two NeighborCounts boards cellwise via ripple-carry. The
// caller must guarantee the per-cell sum never exceeds 8 (true when a and b
// count disjoint subsets of the same 8-cell Moore neighborhood), since the
// final carry out of bit 3 is discarded.
func AddCounts(a, b NeighborCounts) NeighborCounts {
	var result NeighborCounts
	for i := 0; i < Width; i++ {
		s0, c0 := halfAdd(a.Bit0.cols[i], b.Bit0.cols[i])
		s1, c1 := fullAdd(a.Bit1.cols[i], b.Bit1.cols[i], c0)
		s2, c2 := fullAdd(a.Bit2.cols[i], b.Bit2.cols[i], c1)
		s3, _ := fullAdd(a.Bit3.cols[i], b.Bit3.cols[i], c2)
		result.Bit0.cols[i] = s0
		result.Bit1.cols[i] = s1
		result.Bit2.cols[i] = s2
		result.Bit3.cols[i] = s3
	}
	return result
}
