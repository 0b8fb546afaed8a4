package rle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/bellman/pkg/life"
)

func TestBellmanRLERoundTripsThroughParse(t *testing.T) {
	var stable life.StableState
	var block life.BitBoard
	block.Set(0, 0)
	block.Set(1, 0)
	block.Set(0, 1)
	block.Set(1, 1)
	ok, _ := stable.SetOn(block)
	require.True(t, ok)

	doc := BellmanRLE(&stable)
	assert.True(t, strings.HasPrefix(doc, "x = 2, y = 2, rule = LifeHistory"))

	hist, err := ParseLifeHistoryWithHeader(doc)
	require.NoError(t, err)
	assert.True(t, hist.MarkedOn.Equal(block))
}

func TestPlainRLERoundTripsThroughParse(t *testing.T) {
	var glider life.BitBoard
	glider.Set(1, 0)
	glider.Set(2, 1)
	glider.Set(0, 2)
	glider.Set(1, 2)
	glider.Set(2, 2)

	doc := PlainRLE(glider)
	assert.True(t, strings.HasPrefix(doc, "x = 3, y = 3, rule = B3/S23"))

	parsed, err := ParsePlainRLE(stripToBody(doc))
	require.NoError(t, err)
	assert.Equal(t, 5, parsed.Population())
}

func TestPlainRLEEmptyBoard(t *testing.T) {
	var empty life.BitBoard
	doc := PlainRLE(empty)
	assert.True(t, strings.HasSuffix(doc, "!"))
}

func TestRowRLEPlacesPatternsSideBySide(t *testing.T) {
	var a, b life.BitBoard
	a.Set(0, 0)
	b.Set(0, 0)

	doc := RowRLE([]life.BitBoard{a, b})
	assert.True(t, strings.HasPrefix(doc, "x ="))
	assert.Contains(t, doc, "o")
}

func TestRowRLEWrapsAfterEightPerRow(t *testing.T) {
	patterns := make([]life.BitBoard, 9)
	for i := range patterns {
		patterns[i].Set(0, 0)
	}
	doc := RowRLE(patterns)
	assert.NotEmpty(t, doc)
}

// stripToBody removes render.go's header line, the counterpart to
// stripHeader used for LifeHistory documents.
func stripToBody(doc string) string {
	idx := strings.IndexByte(doc, '\n')
	if idx == -1 {
		return doc
	}
	return doc[idx+1:]
}
