// Package life implements the bit-sliced Game of Life primitives that the
// search engine is built on: a fixed-width toroidal BitBoard, a bit-sliced
// Moore neighbor counter, the three-valued StableState propagator, the
// transient UnknownState step, the Transition algebra, and the Frontier
// lookahead window.
package life

import "math/bits"

// Width is the compile-time number of columns in a BitBoard. Each column is
// a single 64-bit word, so a board holds Width*64 cells on a torus.
const Width = 64

// BitBoard is a Width x 64 toroidal bit matrix. The zero value is an empty
// board. BitBoard is a plain value type — copying it copies the whole board,
// which is exactly what the search engine's value-copy branching (see
// pkg/search) relies on.
type BitBoard struct {
	cols [Width]uint64
}

// wrapX reduces x into [0, Width).
func wrapX(x int) int {
	x %= Width
	if x < 0 {
		x += Width
	}
	return x
}

// wrapY reduces y into [0, 64).
func wrapY(y int) int {
	y %= 64
	if y < 0 {
		y += 64
	}
	return y
}

// Get reports whether the cell at (x, y) is set. x and y wrap modulo the
// board dimensions.
func (b BitBoard) Get(x, y int) bool {
	return b.cols[wrapX(x)]&(uint64(1)<<uint(wrapY(y))) != 0
}

// Set turns the cell at (x, y) on.
func (b *BitBoard) Set(x, y int) {
	b.cols[wrapX(x)] |= uint64(1) << uint(wrapY(y))
}

// Clear turns the cell at (x, y) off.
func (b *BitBoard) Clear(x, y int) {
	b.cols[wrapX(x)] &^= uint64(1) << uint(wrapY(y))
}

// SetCell sets the cell at (x, y) to val.
func (b *BitBoard) SetCell(x, y int, val bool) {
	if val {
		b.Set(x, y)
	} else {
		b.Clear(x, y)
	}
}

// IsEmpty reports whether no cell is set.
func (b BitBoard) IsEmpty() bool {
	for _, c := range b.cols {
		if c != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether two boards have the same set cells.
func (b BitBoard) Equal(o BitBoard) bool {
	return b.cols == o.cols
}

// And returns the bitwise intersection.
func (b BitBoard) And(o BitBoard) BitBoard {
	var r BitBoard
	for i := range b.cols {
		r.cols[i] = b.cols[i] & o.cols[i]
	}
	return r
}

// Or returns the bitwise union.
func (b BitBoard) Or(o BitBoard) BitBoard {
	var r BitBoard
	for i := range b.cols {
		r.cols[i] = b.cols[i] | o.cols[i]
	}
	return r
}

// Xor returns the bitwise symmetric difference.
func (b BitBoard) Xor(o BitBoard) BitBoard {
	var r BitBoard
	for i := range b.cols {
		r.cols[i] = b.cols[i] ^ o.cols[i]
	}
	return r
}

// AndNot returns b with every cell set in o cleared (b &^ o).
func (b BitBoard) AndNot(o BitBoard) BitBoard {
	var r BitBoard
	for i := range b.cols {
		r.cols[i] = b.cols[i] &^ o.cols[i]
	}
	return r
}

// Not returns the complement of b over the whole torus.
func (b BitBoard) Not() BitBoard {
	var r BitBoard
	for i := range b.cols {
		r.cols[i] = ^b.cols[i]
	}
	return r
}

// Population returns the number of set cells.
func (b BitBoard) Population() int {
	n := 0
	for _, c := range b.cols {
		n += bits.OnesCount64(c)
	}
	return n
}

// Hash returns a cheap order-dependent hash of the board, suitable for
// oscillator period detection and rotor-bucket deduplication, not for
// cryptographic use.
func (b BitBoard) Hash() uint64 {
	var h uint64 = 1099511628211
	for _, c := range b.cols {
		h ^= c
		h *= 1099511628211
		h = bits.RotateLeft64(h, 13)
	}
	return h
}

// Translate returns b shifted by (dx, dy), wrapping around the torus in
// both dimensions.
func (b BitBoard) Translate(dx, dy int) BitBoard {
	dx = wrapX(dx)
	dy = wrapY(dy)
	var r BitBoard
	for i := 0; i < Width; i++ {
		src := b.cols[wrapX(i-dx)]
		if dy != 0 {
			src = bits.RotateLeft64(src, dy)
		}
		r.cols[i] = src
	}
	return r
}

// FirstSetCell returns the first set cell, scanning columns left to right
// and, within a column, rows low to high. It reports ok=false if the board
// is empty.
func (b BitBoard) FirstSetCell() (x, y int, ok bool) {
	for i, c := range b.cols {
		if c != 0 {
			return i, bits.TrailingZeros64(c), true
		}
	}
	return 0, 0, false
}

// ForEachSetCell calls f once per set cell, in FirstSetCell order.
func (b BitBoard) ForEachSetCell(f func(x, y int)) {
	for i, c := range b.cols {
		for c != 0 {
			y := bits.TrailingZeros64(c)
			f(i, y)
			c &= c - 1
		}
	}
}

// dilateColumn returns c OR'd with itself rotated up and down by one row —
// the vertical half of a Moore dilation for a single column.
func dilateColumn(c uint64) uint64 {
	return c | bits.RotateLeft64(c, 1) | bits.RotateLeft64(c, -1)
}

// ZOI returns the Moore 3x3 dilation of b: every cell within Chebyshev
// distance 1 of a set cell (including the cell itself).
func (b BitBoard) ZOI() BitBoard {
	var vert [Width]uint64
	for i, c := range b.cols {
		vert[i] = dilateColumn(c)
	}
	var r BitBoard
	for i := 0; i < Width; i++ {
		r.cols[i] = vert[wrapX(i-1)] | vert[i] | vert[wrapX(i+1)]
	}
	return r
}

// dilateRadius applies ZOI r times, producing the dilation of b by a
// (2r+1)x(2r+1) square structuring element centered on each set cell.
func (b BitBoard) dilateRadius(r int) BitBoard {
	out := b
	for i := 0; i < r; i++ {
		out = out.ZOI()
	}
	return out
}

// BigZOI returns the two-cell dilation of b (a 5x5 square structuring
// element), used where a wider safety margin around active cells is
// required than a single ZOI() gives.
func (b BitBoard) BigZOI() BitBoard {
	return b.dilateRadius(2)
}

// Erode returns the erosion of b by a (2r+1)x(2r+1) square structuring
// element: a cell is set in the result iff every cell within Chebyshev
// distance r is set in b. Erosion is the dual of dilation: erode(b, r) =
// not(dilate(not(b), r)).
func (b BitBoard) Erode(r int) BitBoard {
	return b.Not().dilateRadius(r).Not()
}

// BoundingBox returns the (w, h) extents of the set cells: w runs from the
// lowest to the highest occupied column and h from the lowest to the
// highest occupied row. Extents are measured without wrapping, so a set
// that straddles the torus seam reports the span across the board rather
// than the shorter run around the seam. It returns (0, 0) for an empty
// board; callers comparing against a configured maximum should treat
// (0,0) as "no constraint violated yet".
func (b BitBoard) BoundingBox() (w, h int) {
	if b.IsEmpty() {
		return 0, 0
	}
	minX, maxX := -1, -1
	for i, c := range b.cols {
		if c != 0 {
			if minX == -1 {
				minX = i
			}
			maxX = i
		}
	}
	w = maxX - minX + 1

	var orAll uint64
	for _, c := range b.cols {
		orAll |= c
	}
	minY, maxY := -1, -1
	for y := 0; y < 64; y++ {
		if orAll&(uint64(1)<<uint(y)) != 0 {
			if minY == -1 {
				minY = y
			}
			maxY = y
		}
	}
	h = maxY - minY + 1
	return w, h
}

// Components returns the maximal 8-connected subsets of b's set cells, in
// FirstSetCell order of each component's seed.
func (b BitBoard) Components() []BitBoard {
	var comps []BitBoard
	remaining := b
	for {
		x, y, ok := remaining.FirstSetCell()
		if !ok {
			break
		}
		var seed BitBoard
		seed.Set(x, y)
		comp := seed
		for {
			next := comp.ZOI().And(remaining)
			if next.Equal(comp) {
				break
			}
			comp = next
		}
		comps = append(comps, comp)
		remaining = remaining.AndNot(comp)
	}
	return comps
}

// Match reports whether every cell set in pattern is also set in b and
// every cell set in mask but not pattern is clear in b — i.e. b agrees
// with pattern on every cell named by mask.
func (b BitBoard) Match(pattern, mask BitBoard) bool {
	return b.And(mask).Equal(pattern.And(mask))
}
