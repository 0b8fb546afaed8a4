package life

// NeighborCounts holds, per cell, a 4-bit count (0..8) of live neighbors in
// the Moore neighborhood, stored bit-sliced across four boards: Bit0 is the
// low bit of every cell's count, Bit3 the high bit.
type NeighborCounts struct {
	Bit0, Bit1, Bit2, Bit3 BitBoard
}

// halfAdd returns (sum, carry) for a bitwise half-adder of a and b.
func halfAdd(a, b uint64) (sum, carry uint64) {
	return a ^ b, a & b
}

// fullAdd returns (sum, carry) for a bitwise full-adder of a, b, and c.
func fullAdd(a, b, c uint64) (sum, carry uint64) {
	abSum := a ^ b
	abCarry := a & b
	sum = abSum ^ c
	carry = abCarry | (abSum & c)
	return sum, carry
}

func rotl(x uint64, n uint) uint64 {
	n &= 63
	return (x << n) | (x >> (64 - n))
}

// columnTriple computes, for a single column's three rows (its own row and
// the rows above/below), the 2-bit (carry, sum) count of how many of the
// three inputs are set. Used once each for the left/right neighbor columns
// (all three of their rows contribute — three inputs, via fullAdd); the
// center column (up, down only — two inputs) calls halfAdd directly.
func columnTriple(up, self, down uint64) (carry, sum uint64) {
	sum, carry = fullAdd(up, self, down)
	return carry, sum
}

// countCell combines the left column's 3-row count, the center column's
// 2-row count, and the right column's 3-row count into the final 4-bit
// neighbor count (bit3..bit0). This is the bit-sliced carry-save reduction
// at the heart of the Moore neighbor counter: each input is a full column
// of 64 independent 1-bit lanes, so the adders below compute all 64 cells'
// counts in parallel.
func countCell(leftCarry, leftSum, centerCarry, centerSum, rightCarry, rightSum uint64) (bit3, bit2, bit1, bit0 uint64) {
	lowSum, lowCarry := fullAdd(leftSum, centerSum, rightSum)
	midSum, midCarry := fullAdd(leftCarry, centerCarry, rightCarry)
	bit1, carryToBit2 := halfAdd(midSum, lowCarry)
	bit2, bit3 = halfAdd(midCarry, carryToBit2)
	return bit3, bit2, bit1, lowSum
}

// CountNeighborhood computes the bit-sliced live-neighbor count of every
// cell in board across the whole Width x 64 torus: the canonical
// column-wise half-adder/full-adder bit-slice trick, summing the three
// columns (left, self, right) each contributing their own vertical count.
func CountNeighborhood(board BitBoard) NeighborCounts {
	var centerCarry, centerSum [Width]uint64
	for i, c := range board.cols {
		centerSum[i], centerCarry[i] = halfAdd(rotl(c, 1), rotl(c, 63))
	}

	var result NeighborCounts
	for i := 0; i < Width; i++ {
		left := board.cols[wrapX(i-1)]
		right := board.cols[wrapX(i+1)]
		leftCarry, leftSum := columnTriple(rotl(left, 1), left, rotl(left, 63))
		rightCarry, rightSum := columnTriple(rotl(right, 1), right, rotl(right, 63))

		bit3, bit2, bit1, bit0 := countCell(leftCarry, leftSum, centerCarry[i], centerSum[i], rightCarry, rightSum)
		result.Bit3.cols[i] = bit3
		result.Bit2.cols[i] = bit2
		result.Bit1.cols[i] = bit1
		result.Bit0.cols[i] = bit0
	}
	return result
}

// CountNeighborhoodColumn computes the live-neighbor count for column i
// only. It is used to refresh a single mutated column without
// recomputing the whole board.
func CountNeighborhoodColumn(board BitBoard, i int) (bit3, bit2, bit1, bit0 uint64) {
	i = wrapX(i)
	left := board.cols[wrapX(i-1)]
	self := board.cols[i]
	right := board.cols[wrapX(i+1)]

	centerSum, centerCarry := halfAdd(rotl(self, 1), rotl(self, 63))
	leftCarry, leftSum := columnTriple(rotl(left, 1), left, rotl(left, 63))
	rightCarry, rightSum := columnTriple(rotl(right, 1), right, rotl(right, 63))

	return countCell(leftCarry, leftSum, centerCarry, centerSum, rightCarry, rightSum)
}

// CountNeighborhoodStrip recomputes neighbor counts for columns
// [lo-1, hi+1] of board, writing the refreshed columns into counts. Used
// after a localized mutation (e.g. committing a single cell) to avoid
// recomputing the entire board.
func CountNeighborhoodStrip(board BitBoard, lo, hi int, counts *NeighborCounts) {
	for i := lo - 1; i <= hi+1; i++ {
		x := wrapX(i)
		b3, b2, b1, b0 := CountNeighborhoodColumn(board, x)
		counts.Bit3.cols[x] = b3
		counts.Bit2.cols[x] = b2
		counts.Bit1.cols[x] = b1
		counts.Bit0.cols[x] = b0
	}
}
