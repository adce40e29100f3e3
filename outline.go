package tileforge

import (
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/shaping"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Contour is a polyline in the tile face plane. Contours produced by
// TextOutlines are explicitly closed: the last point repeats the first.
type Contour []model2d.Coord

// Outlines is the full set of contours extracted for one text element. A
// multi-character string yields one group of contours per glyph, all
// positioned along a shared pen.
type Outlines []Contour

// Closed reports whether the contour's last point returns to its first.
// Only closed contours can bound a fillable face.
func (c Contour) Closed() bool {
	return len(c) >= 4 && c[0] == c[len(c)-1]
}

// SignedArea is the shoelace area of the contour. The sign encodes the
// winding direction: positive for counter-clockwise.
func (c Contour) SignedArea() float64 {
	area := 0.0
	for i := 1; i < len(c); i++ {
		a, b := c[i-1], c[i]
		area += a.X*b.Y - b.X*a.Y
	}
	return area / 2
}

// TextOutlines extracts the closed contours for text, scaled so the
// font's ascent (baseline to top) spans size model units. Glyphs are
// shaped with HarfBuzz when the font supports it, otherwise laid out with
// plain advances and kerning pairs.
//
// Positioning along the pen is relative; the text solid is recentered on
// its tile anchor later, so no alignment is applied here.
func TextOutlines(font *Font, text string, size float64, segs int) (Outlines, error) {
	if font == nil || font.ttf == nil {
		return nil, errors.Wrap(ErrFontUnavailable, "nil font")
	}
	if text == "" {
		return nil, errors.Wrap(ErrEmptyGlyph, "empty string")
	}
	if size <= 0 {
		return nil, errors.Wrapf(ErrConfigInvalid, "text size %g", size)
	}
	if segs <= 0 {
		segs = 8
	}

	ttf := font.ttf
	upem := float64(ttf.FUnitsPerEm())
	ascent := font.ascent
	if ascent <= 0 {
		bounds := ttf.Bounds(fixed.Int26_6(ttf.FUnitsPerEm()))
		ascent = float64(bounds.Max.Y)
	}
	if ascent <= 0 {
		ascent = upem
	}
	scale := size / ascent

	// Load glyphs at 64 fixed-point units per font unit, so coordinates
	// stay in font units until the final float scale.
	fixedScale := fixed.Int26_6(int32(upem * 64))

	var outlines Outlines
	var gb truetype.GlyphBuf
	if glyphs, ok := shapeGlyphs(font, text); ok {
		for _, g := range glyphs {
			gb = truetype.GlyphBuf{}
			if err := gb.Load(ttf, fixedScale, g.index, xfont.HintingNone); err != nil {
				continue
			}
			outlines = append(outlines, glyphContours(&gb, g.penX, scale, segs)...)
		}
	} else {
		penX := 0.0
		var prev truetype.Index
		hasPrev := false
		for _, r := range text {
			idx := ttf.Index(r)
			if hasPrev {
				penX += float64(ttf.Kern(fixedScale, prev, idx)) / 64.0
			}
			gb = truetype.GlyphBuf{}
			if err := gb.Load(ttf, fixedScale, idx, xfont.HintingNone); err == nil {
				outlines = append(outlines, glyphContours(&gb, penX, scale, segs)...)
			}
			penX += float64(ttf.HMetric(fixedScale, idx).AdvanceWidth) / 64.0
			prev, hasPrev = idx, true
		}
	}

	if len(outlines) == 0 {
		return nil, errors.Wrapf(ErrEmptyGlyph, "text %q", text)
	}
	return outlines, nil
}

type positionedGlyph struct {
	index truetype.Index
	penX  float64 // font units
}

// shapeGlyphs positions the string's glyphs with HarfBuzz, which handles
// kerning and substitutions the plain advance walk would miss.
func shapeGlyphs(font *Font, text string) ([]positionedGlyph, bool) {
	if font.hbFace == nil {
		return nil, false
	}
	runes := []rune(text)
	shaper := shaping.HarfbuzzShaper{}
	out := shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.hbFace,
		Size:      fixed.I(int(font.ttf.FUnitsPerEm())),
	})

	res := make([]positionedGlyph, 0, len(out.Glyphs))
	penX := 0.0
	for _, g := range out.Glyphs {
		res = append(res, positionedGlyph{
			index: truetype.Index(g.GlyphID),
			penX:  penX + float64(out.ToFontUnit(g.XOffset)),
		})
		penX += float64(out.ToFontUnit(g.XAdvance))
	}
	return res, true
}

// glyphContours converts truetype contour points into flattened polylines.
// penX is in font units; scale maps font units to model units.
func glyphContours(gb *truetype.GlyphBuf, penX float64, scale float64, segs int) []Contour {
	pts := gb.Points
	ends := gb.Ends

	var out []Contour
	start := 0
	for _, end := range ends {
		contourPts := pts[start:end]
		start = end
		if len(contourPts) == 0 {
			continue
		}
		poly := flattenContour(contourPts, penX, scale, segs)
		if len(poly) >= 3 {
			out = append(out, poly)
		}
	}
	return out
}

// flattenContour walks a TrueType contour's on-curve/off-curve quadratic
// points, including wrap-around implied points and runs of consecutive
// off-curve points, and emits an explicitly closed polyline.
func flattenContour(pts []truetype.Point, penX float64, scale float64, segs int) Contour {
	if len(pts) == 0 {
		return nil
	}

	toVec := func(p truetype.Point) model2d.Coord {
		x := (float64(p.X)/64.0 + penX) * scale
		y := (float64(p.Y) / 64.0) * scale
		return model2d.Coord{X: x, Y: y}
	}
	onCurve := func(p truetype.Point) bool { return p.Flags&0x01 != 0 }

	n := len(pts)

	// Choose the start anchor: the first on-curve point, or the midpoint
	// of the wrap-around pair when both neighbors are off-curve.
	var start model2d.Coord
	startIdx := 0
	if onCurve(pts[0]) {
		start = toVec(pts[0])
		startIdx = 0
	} else if onCurve(pts[n-1]) {
		start = toVec(pts[n-1])
		startIdx = n - 1
	} else {
		start = toVec(pts[n-1]).Mid(toVec(pts[0]))
		startIdx = 0
	}

	poly := make(Contour, 0, n*segs+4)
	poly = append(poly, start)

	prevOn := start
	var haveCtrl bool
	var ctrl model2d.Coord

	i := (startIdx + 1) % n
	for steps := 0; steps < n; steps++ {
		p := pts[i]

		if onCurve(p) {
			on := toVec(p)
			if haveCtrl {
				poly = append(poly, flattenQuad(prevOn, ctrl, on, segs)...)
				haveCtrl = false
			} else {
				poly = append(poly, on)
			}
			prevOn = on
			i = (i + 1) % n
			continue
		}

		c := toVec(p)
		if haveCtrl {
			// Two consecutive off-curve points imply an on-curve point at
			// their midpoint.
			implied := ctrl.Mid(c)
			poly = append(poly, flattenQuad(prevOn, ctrl, implied, segs)...)
			prevOn = implied
		}
		ctrl = c
		haveCtrl = true
		i = (i + 1) % n
	}

	// Close back to the start anchor.
	if haveCtrl {
		poly = append(poly, flattenQuad(prevOn, ctrl, start, segs)...)
	} else if poly[len(poly)-1] != start {
		poly = append(poly, start)
	}
	if poly[len(poly)-1] != poly[0] {
		poly = append(poly, poly[0])
	}

	if len(poly) < 4 {
		return nil
	}
	return poly
}

func flattenQuad(p0, p1, p2 model2d.Coord, segs int) []model2d.Coord {
	out := make([]model2d.Coord, 0, segs)
	for i := 1; i <= segs; i++ {
		t := float64(i) / float64(segs)
		u := 1 - t
		p := p0.Scale(u * u).Add(p1.Scale(2 * u * t)).Add(p2.Scale(t * t))
		out = append(out, p)
	}
	return out
}
