package tileforge

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model2d"
)

// PlanarFace is a fillable 2D region: one outer boundary plus the hole
// contours nested directly inside it.
type PlanarFace struct {
	Outer Contour
	Holes []Contour
}

// BuildFaces classifies contours into outer boundaries and holes: a
// contour nested inside an even number of others bounds material, an odd
// number bounds a hole in its innermost material parent. One PlanarFace
// is emitted per outer contour.
//
// Open or zero-area contours cannot bound a face. Each one is dropped and
// reported in the second return value so the caller can log it and keep
// going; one bad glyph fragment should not halt a batch.
func BuildFaces(outlines Outlines) ([]PlanarFace, []error) {
	var dropped []error
	var closed []Contour
	for i, c := range outlines {
		if !c.Closed() {
			dropped = append(dropped, errors.Wrapf(ErrDegenerateContour,
				"contour %d: open (%d points)", i, len(c)))
			continue
		}
		if c.SignedArea() == 0 {
			dropped = append(dropped, errors.Wrapf(ErrDegenerateContour,
				"contour %d: zero area", i))
			continue
		}
		closed = append(closed, c)
	}
	if len(closed) == 0 {
		return nil, dropped
	}

	depth := make([]int, len(closed))
	for i, c := range closed {
		for j, other := range closed {
			if i != j && contourInside(other, c) {
				depth[i]++
			}
		}
	}

	faceIdx := make(map[int]int)
	var faces []PlanarFace
	for i, c := range closed {
		if depth[i]%2 == 0 {
			faceIdx[i] = len(faces)
			faces = append(faces, PlanarFace{Outer: c})
		}
	}
	for i, c := range closed {
		if depth[i]%2 == 0 {
			continue
		}
		// Attach the hole to its innermost enclosing material contour.
		parent := -1
		for j := range closed {
			if depth[j]%2 != 0 || !contourInside(closed[j], c) {
				continue
			}
			if parent < 0 || depth[j] > depth[parent] {
				parent = j
			}
		}
		if parent >= 0 {
			f := &faces[faceIdx[parent]]
			f.Holes = append(f.Holes, c)
		}
	}
	return faces, dropped
}

// Solid returns the face's fillable region as an even-odd solid. Holes
// are encoded the same way glyph outlines encode them: as extra closed
// loops in the segment mesh.
func (f *PlanarFace) Solid() model2d.Solid {
	mesh := model2d.NewMesh()
	addContour(mesh, f.Outer)
	for _, h := range f.Holes {
		addContour(mesh, h)
	}
	if mesh.NumSegments() == 0 {
		return nil
	}
	return mesh.Solid()
}

func addContour(mesh *model2d.Mesh, c Contour) {
	if len(c) < 2 {
		return
	}
	for i := 1; i < len(c); i++ {
		if c[i-1] != c[i] {
			mesh.Add(&model2d.Segment{c[i-1], c[i]})
		}
	}
	if c[0] != c[len(c)-1] {
		mesh.Add(&model2d.Segment{c[len(c)-1], c[0]})
	}
}

// contourInside reports whether a representative point of inner lies
// within outer.
func contourInside(outer, inner Contour) bool {
	return pointInContour(outer, inner[0])
}

// pointInContour is an even-odd ray cast along +X.
func pointInContour(c Contour, p model2d.Coord) bool {
	inside := false
	for i := 1; i < len(c); i++ {
		a, b := c[i-1], c[i]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			t := (p.Y - a.Y) / (b.Y - a.Y)
			if a.X+t*(b.X-a.X) > p.X {
				inside = !inside
			}
		}
	}
	return inside
}
