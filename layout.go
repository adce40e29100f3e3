package tileforge

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// LayoutConfig controls the 2D cut/engrave sheet: a fixed-column grid of
// tile rectangles with engraved labels.
type LayoutConfig struct {
	TileSize    float64 // square tile side, SVG units
	Gap         float64 // spacing between tiles, also the sheet margin
	TilesPerRow int

	// Cut stroke. Many laser cutters want this hairline-thin; 1 is used
	// by default only so the SVG stays visible in a viewer.
	OutlineColor string
	OutlineWidth float64

	// Engraved label appearance.
	LabelColor string
	FontFamily string

	LetterSizeRatio float64 // letter font size relative to TileSize
	ValueSizeRatio  float64 // value font size relative to TileSize
	ValueXRatio     float64 // value label anchor relative to the tile edge
	ValueYRatio     float64
}

// DefaultLayoutConfig mirrors a common laser-cutter setup: red cut lines,
// black engraved labels.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		TileSize:        50,
		Gap:             5,
		TilesPerRow:     13,
		OutlineColor:    "red",
		OutlineWidth:    1,
		LabelColor:      "black",
		FontFamily:      "Arial, Helvetica, sans-serif",
		LetterSizeRatio: 0.5,
		ValueSizeRatio:  0.25,
		ValueXRatio:     0.9,
		ValueYRatio:     0.92,
	}
}

func (c *LayoutConfig) Validate() error {
	if c.TileSize <= 0 || c.Gap < 0 || c.TilesPerRow <= 0 {
		return errors.Wrapf(ErrConfigInvalid, "layout grid %g/%g/%d",
			c.TileSize, c.Gap, c.TilesPerRow)
	}
	if c.OutlineWidth <= 0 || c.LetterSizeRatio <= 0 || c.ValueSizeRatio <= 0 {
		return errors.Wrap(ErrConfigInvalid, "layout stroke/label sizes must be positive")
	}
	return nil
}

// WriteLayout renders the whole tile set as one SVG sheet. Each physical
// tile is a cut rectangle with its letter centered and its value near the
// bottom-right corner. A spec with count n contributes n grid cells;
// count 0 contributes none. Blank tiles are cut but never engraved.
func WriteLayout(w io.Writer, specs []TileSpec, cfg LayoutConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	tiles := ExpandCounts(specs)

	var width, height float64
	if len(tiles) == 0 {
		width, height = 2*cfg.Gap, 2*cfg.Gap
	} else {
		cols := cfg.TilesPerRow
		if len(tiles) < cols {
			cols = len(tiles)
		}
		rows := int(math.Ceil(float64(len(tiles)) / float64(cfg.TilesPerRow)))
		width = float64(cols)*(cfg.TileSize+cfg.Gap) + cfg.Gap
		height = float64(rows)*(cfg.TileSize+cfg.Gap) + cfg.Gap
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<svg width="%g" height="%g" xmlns="http://www.w3.org/2000/svg">`+"\n",
		width, height)

	x, y := cfg.Gap, cfg.Gap
	inRow := 0
	for _, tile := range tiles {
		fmt.Fprintf(&sb, `<g transform="translate(%g, %g)">`+"\n", x, y)
		sb.WriteString(tileElement(tile, &cfg))
		sb.WriteString("</g>\n")

		inRow++
		if inRow >= cfg.TilesPerRow {
			x, inRow = cfg.Gap, 0
			y += cfg.TileSize + cfg.Gap
		} else {
			x += cfg.TileSize + cfg.Gap
		}
	}
	sb.WriteString("</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// tileElement renders one tile relative to (0, 0).
func tileElement(tile TileSpec, cfg *LayoutConfig) string {
	var sb strings.Builder
	fmt.Fprintf(&sb,
		`<rect x="0" y="0" width="%g" height="%g" fill="none" stroke="%s" stroke-width="%g"/>`+"\n",
		cfg.TileSize, cfg.TileSize, cfg.OutlineColor, cfg.OutlineWidth)
	if tile.Blank() {
		return sb.String()
	}

	fmt.Fprintf(&sb,
		`<text x="%g" y="%g" font-family="%s" font-weight="bold" font-size="%g" fill="%s" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		cfg.TileSize/2, cfg.TileSize/2, cfg.FontFamily, cfg.TileSize*cfg.LetterSizeRatio,
		cfg.LabelColor, escapeText(strings.ToUpper(string(tile.Glyph))))
	fmt.Fprintf(&sb,
		`<text x="%g" y="%g" font-family="%s" font-size="%g" fill="%s" text-anchor="end" dominant-baseline="alphabetic">%d</text>`+"\n",
		cfg.TileSize*cfg.ValueXRatio, cfg.TileSize*cfg.ValueYRatio, cfg.FontFamily,
		cfg.TileSize*cfg.ValueSizeRatio, cfg.LabelColor, tile.Value)
	return sb.String()
}

func escapeText(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(s)
}
