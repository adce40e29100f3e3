package tileforge

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderLayout(t *testing.T, specs []TileSpec, cfg LayoutConfig) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, WriteLayout(&sb, specs, cfg))
	return sb.String()
}

func TestWriteLayoutCounts(t *testing.T) {
	specs := []TileSpec{
		{Glyph: 'A', Value: 1, Count: 5},
		{Glyph: 'A', Value: 1, Count: 2},
		{Glyph: BlankGlyph, Value: 0, Count: 2},
	}
	svg := renderLayout(t, specs, DefaultLayoutConfig())

	// 7 'A' tiles plus 2 blanks get cut; only the 'A' tiles get labels.
	assert.Equal(t, 9, strings.Count(svg, "<rect"))
	assert.Equal(t, 14, strings.Count(svg, "<text"))
	assert.Equal(t, 7, strings.Count(svg, ">A</text>"))
	assert.Equal(t, 7, strings.Count(svg, ">1</text>"))
}

func TestWriteLayoutGrid(t *testing.T) {
	cfg := DefaultLayoutConfig()
	cfg.TileSize = 50
	cfg.Gap = 5
	cfg.TilesPerRow = 4

	specs := []TileSpec{{Glyph: 'E', Value: 1, Count: 9}}
	svg := renderLayout(t, specs, cfg)

	// 9 tiles in 4 columns: 3 rows. Canvas derives from count and columns.
	assert.Contains(t, svg, `<svg width="225" height="170"`)
	// First tile sits at the margin, second one tile-plus-gap further.
	assert.Contains(t, svg, `translate(5, 5)`)
	assert.Contains(t, svg, `translate(60, 5)`)
	// Row wrap returns to the margin.
	assert.Contains(t, svg, `translate(5, 60)`)
}

func TestWriteLayoutZeroCount(t *testing.T) {
	specs := []TileSpec{
		{Glyph: 'A', Value: 1, Count: 0},
		{Glyph: 'B', Value: 3, Count: 0},
	}
	svg := renderLayout(t, specs, DefaultLayoutConfig())
	assert.Zero(t, strings.Count(svg, "<g"))
	assert.Zero(t, strings.Count(svg, "<rect"))
}

func TestWriteLayoutBlankHasNoLabels(t *testing.T) {
	specs := []TileSpec{{Glyph: BlankGlyph, Value: 0, Count: 1}}
	svg := renderLayout(t, specs, DefaultLayoutConfig())
	assert.Equal(t, 1, strings.Count(svg, "<rect"))
	assert.Zero(t, strings.Count(svg, "<text"))
}

func TestWriteLayoutUppercasesLetters(t *testing.T) {
	specs := []TileSpec{{Glyph: 'q', Value: 10, Count: 1}}
	svg := renderLayout(t, specs, DefaultLayoutConfig())
	assert.Contains(t, svg, ">Q</text>")
}

func TestWriteLayoutEscapesMarkup(t *testing.T) {
	specs := []TileSpec{{Glyph: '&', Value: 1, Count: 1}}
	svg := renderLayout(t, specs, DefaultLayoutConfig())
	assert.Contains(t, svg, ">&amp;</text>")
	assert.NotContains(t, svg, ">&</text>")
}

func TestLayoutConfigValidate(t *testing.T) {
	var sb strings.Builder
	cfg := DefaultLayoutConfig()
	cfg.TilesPerRow = 0
	err := WriteLayout(&sb, nil, cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigInvalid))
}
