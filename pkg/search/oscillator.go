package search

import (
	"github.com/gitrdm/bellman/internal/symmetry"
	"github.com/gitrdm/bellman/pkg/life"
)

// maxPeriodSteps bounds how many generations DeterminePeriod evolves
// forward before giving up (spec.md §4.7).
const maxPeriodSteps = 60

// hashStackEntry is one (hash, gen) pair in DeterminePeriod's monotone
// stack.
type hashStackEntry struct {
	hash uint64
	gen  int
}

// DeterminePeriod steps board forward (via life.Step) looking for a
// repeated "active cells" (board XOR stable) hash using a monotone stack
// (spec.md §4.7): the first time a hash reappears, the gap between its two
// occurrences is the period. It returns the period, the union of cells
// that changed across that period (the rotor), and true if a period was
// found within maxPeriodSteps; otherwise found is false.
func DeterminePeriod(stable, board life.BitBoard) (period int, rotor life.BitBoard, found bool) {
	var stack []hashStackEntry
	history := make([]life.BitBoard, 0, maxPeriodSteps+1)
	for gen := 0; gen <= maxPeriodSteps; gen++ {
		active := board.Xor(stable)
		h := active.Hash()
		for len(stack) > 0 && stack[len(stack)-1].hash > h {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 && stack[len(stack)-1].hash == h {
			start := stack[len(stack)-1].gen
			var r life.BitBoard
			for _, b := range history[start:] {
				r = r.Or(b.Xor(history[start]))
			}
			return gen - start, r, true
		}
		stack = append(stack, hashStackEntry{hash: h, gen: gen})
		history = append(history, board)
		board = life.Step(board)
	}
	return 0, life.BitBoard{}, false
}

// ClassifyRotors computes the 8-symmetry-minimal canonical hash of the
// rotor (the cells that change over one period, spec.md §4.7 / GLOSSARY)
// and reports it if not already present in seen, adding it as a
// side-effect. Returns ok=false if the rotor was already known.
func ClassifyRotors(rotor life.BitBoard, seen map[uint64]bool) (hash uint64, ok bool) {
	// The four axis-aligned transforms, each with and without a diagonal
	// reflection on top, give all eight symmetries of the square.
	variants := []symmetry.Transform{
		symmetry.Identity,
		symmetry.ReflectVertical,
		symmetry.ReflectHorizontal,
		symmetry.Rotate180,
	}
	var best uint64
	first := true
	for _, t := range variants {
		b := symmetry.Apply(t, rotor)
		for _, v := range []life.BitBoard{b, symmetry.Apply(symmetry.ReflectDiagonal, b)} {
			h := v.Hash()
			if first || h < best {
				best = h
				first = false
			}
		}
	}
	if seen[best] {
		return best, false
	}
	seen[best] = true
	return best, true
}
