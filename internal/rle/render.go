package rle

import (
	"fmt"
	"strings"

	"github.com/gitrdm/bellman/pkg/life"
)

// cellTable renders a run-length document for a rectangular W x H window
// starting at (x0, y0), using charAt to pick the output letter for each
// cell. This generalizes original_source/Parsing.hpp's MultiStateRLE: one
// table-driven function instead of four alphabet-specific C++ overloads.
func cellTable(x0, y0, w, h int, charAt func(x, y int) byte) string {
	var b strings.Builder
	fmt.Fprintf(&b, "x = %d, y = %d, rule = LifeHistory\n", w, h)

	for y := 0; y < h; y++ {
		runChar := charAt(x0, y0+y)
		runLen := 1
		for x := 1; x < w; x++ {
			c := charAt(x0+x, y0+y)
			if c == runChar {
				runLen++
				continue
			}
			writeRun(&b, runLen, runChar)
			runChar = c
			runLen = 1
		}
		if runChar != '.' {
			writeRun(&b, runLen, runChar)
		}
		if y != h-1 {
			b.WriteByte('$')
		}
	}
	b.WriteByte('!')
	return b.String()
}

func writeRun(b *strings.Builder, n int, ch byte) {
	if n == 0 {
		return
	}
	if n > 1 {
		fmt.Fprintf(b, "%d", n)
	}
	b.WriteByte(ch)
}

// boundsOf returns the tightest axis-aligned window containing every set
// cell across all given boards, or (0,0,1,1) if all are empty.
func boundsOf(boards ...life.BitBoard) (x0, y0, w, h int) {
	minX, minY := -1, -1
	maxX, maxY := -1, -1
	for _, b := range boards {
		b.ForEachSetCell(func(x, y int) {
			if minX == -1 || x < minX {
				minX = x
			}
			if maxX == -1 || x > maxX {
				maxX = x
			}
			if minY == -1 || y < minY {
				minY = y
			}
			if maxY == -1 || y > maxY {
				maxY = y
			}
		})
	}
	if minX == -1 {
		return 0, 0, 1, 1
	}
	return minX, minY, maxX - minX + 1, maxY - minY + 1
}

// BellmanRLE renders stable as a LifeHistory document: known-ON cells as
// 'C' (marked-ON stable), the remaining unknown cells as 'B'.
func BellmanRLE(stable *life.StableState) string {
	x0, y0, w, h := boundsOf(stable.State, stable.Unknown)
	return cellTable(x0, y0, w, h, func(x, y int) byte {
		switch {
		case stable.State.Get(x, y):
			return 'C'
		case stable.Unknown.Get(x, y):
			return 'B'
		default:
			return '.'
		}
	})
}

// PlainRLE renders a single-plane board using the standard B3/S23
// alphabet ('o' live, '.' dead).
func PlainRLE(board life.BitBoard) string {
	x0, y0, w, h := boundsOf(board)
	var b strings.Builder
	fmt.Fprintf(&b, "x = %d, y = %d, rule = B3/S23\n", w, h)
	for y := 0; y < h; y++ {
		runChar := plainChar(board, x0, y0+y)
		runLen := 1
		for x := 1; x < w; x++ {
			c := plainChar(board, x0+x, y0+y)
			if c == runChar {
				runLen++
				continue
			}
			writeRun(&b, runLen, runChar)
			runChar = c
			runLen = 1
		}
		if runChar != '.' {
			writeRun(&b, runLen, runChar)
		}
		if y != h-1 {
			b.WriteByte('$')
		}
	}
	b.WriteByte('!')
	return b.String()
}

func plainChar(board life.BitBoard, x, y int) byte {
	if board.Get(x, y) {
		return 'o'
	}
	return '.'
}

// RowRLE lays out up to 8 patterns per row as a side-by-side summary RLE,
// each pattern offset by a fixed spacing along x, mirroring
// original_source/Parsing.hpp's RowRLE.
const rowSpacing = 70

// RowRLE renders patterns side by side, up to 8 per output row, spaced
// rowSpacing cells apart.
func RowRLE(patterns []life.BitBoard) string {
	const perRow = 8
	var rows [][]life.BitBoard
	for i := 0; i < len(patterns); i += perRow {
		end := i + perRow
		if end > len(patterns) {
			end = len(patterns)
		}
		rows = append(rows, patterns[i:end])
	}

	var combined life.BitBoard
	maxW := 0
	totalH := 0
	for _, row := range rows {
		rowMaxH := 0
		for i, p := range row {
			_, _, w, h := boundsOf(p)
			shifted := p.Translate(-boundsOfX0(p)+i*rowSpacing, -boundsOfY0(p)+totalH)
			combined = combined.Or(shifted)
			if w > maxW {
				maxW = w
			}
			if h > rowMaxH {
				rowMaxH = h
			}
		}
		totalH += rowMaxH + 2
	}
	x0, y0, w, h := boundsOf(combined)
	return cellTable(x0, y0, w, h, func(x, y int) byte {
		if combined.Get(x, y) {
			return 'o'
		}
		return '.'
	})
}

func boundsOfX0(b life.BitBoard) int {
	x0, _, _, _ := boundsOf(b)
	return x0
}

func boundsOfY0(b life.BitBoard) int {
	_, y0, _, _ := boundsOf(b)
	return y0
}
