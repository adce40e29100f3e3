package tileforge

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// BlankGlyph marks the scoreless blank tile. Blank tiles are never
// engraved: no letter, and no value either.
const BlankGlyph = ' '

// TileSpec describes one kind of tile in a catalog: the mark on its face,
// its point value, and how many copies the set contains.
type TileSpec struct {
	Glyph rune
	Value int
	Count int
}

// Blank reports whether the spec is the blank tile.
func (t TileSpec) Blank() bool {
	return t.Glyph == BlankGlyph
}

// Label identifies the tile in diagnostics.
func (t TileSpec) Label() string {
	if t.Blank() {
		return fmt.Sprintf("blank/%d", t.Value)
	}
	return fmt.Sprintf("%c/%d", t.Glyph, t.Value)
}

// SolidFileName is the deterministic mesh file name for the spec's
// (glyph, value) pair. Count never participates: specs that differ only
// in count share one file.
func (t TileSpec) SolidFileName() string {
	return fmt.Sprintf("tile_%s_%d.stl", glyphSlug(t.Glyph), t.Value)
}

func glyphSlug(r rune) string {
	switch {
	case r == BlankGlyph:
		return "blank"
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return string(r)
	default:
		// Filesystem-safe name for accented and non-Latin glyphs.
		return fmt.Sprintf("u%04X", r)
	}
}

// ReadCatalog parses (glyph, value, count) rows from r. The first row is
// a header and is skipped. Malformed rows are skipped with a logged
// warning rather than failing the whole catalog.
func ReadCatalog(r io.Reader) ([]TileSpec, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "read catalog")
	}
	if len(rows) == 0 {
		return nil, errors.New("catalog is empty")
	}

	var specs []TileSpec
	for i, row := range rows[1:] {
		line := i + 2
		if len(row) != 3 {
			log.Printf("catalog: skipping row %d: expected 3 columns, got %d", line, len(row))
			continue
		}
		glyph, ok := parseGlyphField(row[0])
		if !ok {
			log.Printf("catalog: skipping row %d: glyph %q is not a single character", line, row[0])
			continue
		}
		value, err1 := strconv.Atoi(strings.TrimSpace(row[1]))
		count, err2 := strconv.Atoi(strings.TrimSpace(row[2]))
		if err1 != nil || err2 != nil {
			log.Printf("catalog: skipping row %d: non-integer value/count %q/%q", line, row[1], row[2])
			continue
		}
		if value < 0 || count < 0 {
			log.Printf("catalog: skipping row %d: negative value/count %d/%d", line, value, count)
			continue
		}
		if glyph == BlankGlyph && value != 0 {
			log.Printf("catalog: skipping row %d: blank tile must have value 0, got %d", line, value)
			continue
		}
		specs = append(specs, TileSpec{Glyph: glyph, Value: value, Count: count})
	}
	if len(specs) == 0 {
		return nil, errors.New("catalog has no valid rows")
	}
	return specs, nil
}

// parseGlyphField maps a raw CSV field to a glyph rune. An empty field, a
// lone space, or "_" all mean the blank tile.
func parseGlyphField(s string) (rune, bool) {
	if s == "" || s == " " || s == "_" {
		return BlankGlyph, true
	}
	runes := []rune(strings.TrimSpace(s))
	if len(runes) != 1 {
		return 0, false
	}
	return runes[0], true
}

// UniqueTiles deduplicates specs by (glyph, value), summing counts, and
// drops pairs whose total count is zero. Identical glyph/value pairs
// produce identical solids, so only one entry per pair reaches the solid
// pipeline. Order follows first appearance.
func UniqueTiles(specs []TileSpec) []TileSpec {
	type pair struct {
		glyph rune
		value int
	}
	counts := make(map[pair]int)
	var order []pair
	for _, s := range specs {
		k := pair{s.Glyph, s.Value}
		if _, ok := counts[k]; !ok {
			order = append(order, k)
		}
		counts[k] += s.Count
	}

	var out []TileSpec
	for _, k := range order {
		if counts[k] == 0 {
			continue
		}
		out = append(out, TileSpec{Glyph: k.glyph, Value: k.value, Count: counts[k]})
	}
	return out
}

// ExpandCounts flattens specs into one entry per physical tile, in
// catalog order. The 2D layout consumes this; solid generation does not.
func ExpandCounts(specs []TileSpec) []TileSpec {
	var out []TileSpec
	for _, s := range specs {
		for i := 0; i < s.Count; i++ {
			c := s
			c.Count = 1
			out = append(out, c)
		}
	}
	return out
}
