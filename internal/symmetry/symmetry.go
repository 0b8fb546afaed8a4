// Package symmetry implements the SymmetryTransform group used to fold
// duplicate solutions related by a board symmetry into one fundamental
// domain, grounded on original_source/Symmetry.hpp.
package symmetry

import (
	"github.com/pkg/errors"

	"github.com/gitrdm/bellman/pkg/life"
)

// Transform names one of the symmetry group elements recognized by the
// `symmetry` configuration key.
type Transform int

const (
	Identity Transform = iota
	ReflectVertical
	ReflectVerticalEven
	ReflectHorizontal
	ReflectHorizontalEven
	ReflectDiagonal
	Rotate180
	Rotate180Even
	Rotate180HorizEven
	Rotate180VertEven
)

// names mirrors the `symmetry` key's accepted spellings.
var names = map[string]Transform{
	"identity":          Identity,
	"D2|":               ReflectVertical,
	"D2|even":           ReflectVerticalEven,
	"D2-":               ReflectHorizontal,
	"D2-even":           ReflectHorizontalEven,
	"D2\\":              ReflectDiagonal,
	"C2":                Rotate180,
	"C2bothodd":         Rotate180,
	"C2even":            Rotate180Even,
	"C2evenboth":        Rotate180Even,
	"C2horizontaleven":  Rotate180HorizEven,
	"C2verticaleven":    Rotate180VertEven,
}

// ParseName resolves a `symmetry` configuration value into a Transform.
func ParseName(name string) (Transform, error) {
	t, ok := names[name]
	if !ok {
		return Identity, errors.Errorf("symmetry: unrecognised name %q", name)
	}
	return t, nil
}

func reflectX(b life.BitBoard, oddAxis bool) life.BitBoard {
	var r life.BitBoard
	for x := 0; x < life.Width; x++ {
		var src int
		if oddAxis {
			src = (-x) % life.Width
		} else {
			src = (-x - 1) % life.Width
		}
		if src < 0 {
			src += life.Width
		}
		for y := 0; y < 64; y++ {
			if b.Get(src, y) {
				r.Set(x, y)
			}
		}
	}
	return r
}

func reflectY(b life.BitBoard, oddAxis bool) life.BitBoard {
	var r life.BitBoard
	for x := 0; x < life.Width; x++ {
		for y := 0; y < 64; y++ {
			var src int
			if oddAxis {
				src = (-y) % 64
			} else {
				src = (-y - 1) % 64
			}
			if src < 0 {
				src += 64
			}
			if b.Get(x, src) {
				r.Set(x, y)
			}
		}
	}
	return r
}

func reflectDiagonal(b life.BitBoard) life.BitBoard {
	var r life.BitBoard
	for x := 0; x < life.Width; x++ {
		for y := 0; y < 64; y++ {
			if b.Get(y, x) {
				r.Set(x, y)
			}
		}
	}
	return r
}

// Apply transforms b according to t.
func Apply(t Transform, b life.BitBoard) life.BitBoard {
	switch t {
	case Identity:
		return b
	case ReflectVertical:
		return reflectX(b, true)
	case ReflectVerticalEven:
		return reflectX(b, false)
	case ReflectHorizontal:
		return reflectY(b, true)
	case ReflectHorizontalEven:
		return reflectY(b, false)
	case ReflectDiagonal:
		return reflectDiagonal(b)
	case Rotate180:
		return reflectY(reflectX(b, true), true)
	case Rotate180Even:
		return reflectY(reflectX(b, false), false)
	case Rotate180HorizEven:
		return reflectY(reflectX(b, true), false)
	case Rotate180VertEven:
		return reflectY(reflectX(b, false), true)
	default:
		return b
	}
}

// InFundamentalDomain reports whether (x, y) lies in the canonical half of
// the board chosen to represent each symmetry-related cell exactly once.
// Every non-identity transform, the rotations included, halves the search
// region this way so a pattern and its mirror are never both explored as
// separate branches.
func InFundamentalDomain(t Transform, x, y int) bool {
	switch t {
	case Identity:
		return true
	case ReflectVertical, ReflectVerticalEven:
		return x <= life.Width/2
	case ReflectHorizontal, ReflectHorizontalEven:
		return y <= 32
	case ReflectDiagonal:
		return x <= y
	case Rotate180, Rotate180Even, Rotate180HorizEven, Rotate180VertEven:
		return y < 32 || (y == 32 && x <= life.Width/2)
	default:
		return true
	}
}

// ResolveDomain mirrors Params.hpp's auto-selection of a fundamental
// domain from the symmetry choice and the parsed search area: most
// transforms determine the domain unambiguously, but a bare C2 rotation
// centered on an even-by-even board has two equally valid quarter-domains
// and the caller must disambiguate via C2evenboth-style explicit naming.
// Here that ambiguity is reported as a config error instead of the
// original's process exit, matching this repository's error-handling
// convention of returning config errors rather than terminating directly.
func ResolveDomain(t Transform) error {
	if t == Rotate180 {
		return errors.New("symmetry: C2 on a fully-even board is ambiguous; specify C2evenboth, C2horizontaleven, or C2verticaleven explicitly")
	}
	return nil
}
