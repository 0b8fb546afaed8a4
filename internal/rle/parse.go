// Package rle implements the Bellman/LifeHistory run-length pattern codec:
// parsing the extended five-letter alphabet used by `pattern` in the TOML
// configuration, and rendering solutions back out as LifeHistory, plain
// B3/S23, and row-summary RLE, grounded on
// original_source/Parsing.hpp's MultiStateRLE table-driven approach.
package rle

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/gitrdm/bellman/pkg/life"
)

// HistoryPattern holds the five Bellman-alphabet planes parsed from a
// `pattern` value: Active ('A', the seed perturbation), UnknownStable
// ('B', cells whose stable background value is not yet known), MarkedOn
// ('C', known-ON stable background), MarkedOff ('D', known-OFF stable
// background), and Stator ('E', cells required to stay ON throughout the
// search window).
type HistoryPattern struct {
	Active        life.BitBoard
	UnknownStable life.BitBoard
	MarkedOn      life.BitBoard
	MarkedOff     life.BitBoard
	Stator        life.BitBoard
}

// historyAlphabet maps the Bellman pattern letters to a plane index; '.'
// (dead, unspecified) has no plane.
var historyAlphabet = map[byte]int{
	'A': 0,
	'B': 1,
	'C': 2,
	'D': 3,
	'E': 4,
}

// ParseLifeHistoryWithHeader parses an RLE document that begins with a
// standard "x = W, y = H" (optionally followed by ", rule = ...") header
// line before the run-length body.
func ParseLifeHistoryWithHeader(doc string) (HistoryPattern, error) {
	body, err := stripHeader(doc)
	if err != nil {
		return HistoryPattern{}, errors.Wrap(err, "rle: parsing header")
	}
	return ParseLifeHistory(body)
}

// ParseLifeHistory parses a headerless Bellman/LifeHistory RLE body into
// its five planes.
func ParseLifeHistory(body string) (HistoryPattern, error) {
	planes, err := parsePlanes(body, historyAlphabet, 5)
	if err != nil {
		return HistoryPattern{}, errors.Wrap(err, "rle: parsing LifeHistory body")
	}
	return HistoryPattern{
		Active:        planes[0],
		UnknownStable: planes[1],
		MarkedOn:      planes[2],
		MarkedOff:     planes[3],
		Stator:        planes[4],
	}, nil
}

// plainAlphabet maps the ordinary two-state RLE letter ('o'/'A' for live)
// to plane 0; everything else ('.', 'b') is dead.
var plainAlphabet = map[byte]int{
	'o': 0,
	'A': 0,
}

// ParsePlainRLE parses a standard single-plane B3/S23 RLE body.
func ParsePlainRLE(body string) (life.BitBoard, error) {
	planes, err := parsePlanes(body, plainAlphabet, 1)
	if err != nil {
		return life.BitBoard{}, errors.Wrap(err, "rle: parsing plain RLE body")
	}
	return planes[0], nil
}

// stripHeader removes an optional "x = ..., y = ..." header line,
// returning the remaining body unchanged otherwise.
func stripHeader(doc string) (string, error) {
	doc = strings.TrimSpace(doc)
	lines := strings.SplitN(doc, "\n", 2)
	if len(lines) == 0 {
		return "", errors.New("empty document")
	}
	first := strings.TrimSpace(lines[0])
	if strings.HasPrefix(first, "x") || strings.HasPrefix(first, "#") {
		if len(lines) == 1 {
			return "", nil
		}
		return lines[1], nil
	}
	return doc, nil
}

// parsePlanes decodes a run-length body (runs of an optional decimal
// count followed by a letter, '$' for end-of-row, '!' for end-of-pattern)
// into numPlanes boards, using alphabet to map each live letter to a
// plane index. '.' and 'b' are always dead (no plane set). Translation
// (pattern-center) is left to the caller.
func parsePlanes(body string, alphabet map[byte]int, numPlanes int) ([]life.BitBoard, error) {
	boards := make([]life.BitBoard, numPlanes)

	x, y := 0, 0
	count := 0
	haveCount := false

	flushRun := func(ch byte) error {
		n := count
		if !haveCount {
			n = 1
		}
		switch ch {
		case '$':
			y += n
			x = 0
		case '.', 'b':
			x += n
		default:
			plane, ok := alphabet[ch]
			if !ok {
				return errors.Errorf("rle: unrecognised symbol %q", string(ch))
			}
			for i := 0; i < n; i++ {
				boards[plane].Set(x+i, y)
			}
			x += n
		}
		count = 0
		haveCount = false
		return nil
	}

	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c >= '0' && c <= '9':
			count = count*10 + int(c-'0')
			haveCount = true
		case c == '!':
			return boards, nil
		case c == '\n' || c == '\r' || c == ' ' || c == '\t':
			continue
		default:
			if err := flushRun(c); err != nil {
				return nil, err
			}
		}
	}
	return boards, nil
}

// ParsePatternCenter parses a "[dx, dy]" style pair, as used by the
// pattern-center configuration key, and returns the two integers.
func ParsePatternCenter(s string) (dx, dy int, err error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, errors.Errorf("rle: malformed pattern-center %q", s)
	}
	dx, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, errors.Wrap(err, "rle: parsing pattern-center x")
	}
	dy, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, errors.Wrap(err, "rle: parsing pattern-center y")
	}
	return dx, dy, nil
}

// Translate shifts every plane of p by (dx, dy), applying pattern-center.
func (p HistoryPattern) Translate(dx, dy int) HistoryPattern {
	return HistoryPattern{
		Active:        p.Active.Translate(dx, dy),
		UnknownStable: p.UnknownStable.Translate(dx, dy),
		MarkedOn:      p.MarkedOn.Translate(dx, dy),
		MarkedOff:     p.MarkedOff.Translate(dx, dy),
		Stator:        p.Stator.Translate(dx, dy),
	}
}
