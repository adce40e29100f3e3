package tileforge

import "github.com/pkg/errors"

// Failure taxonomy for the synthesis pipeline. ErrFontUnavailable and
// ErrConfigInvalid are fatal for the whole run. ErrInvalidMesh skips export
// of a single tile. The rest degrade a single text element: the tile is
// still exported, just without that letter or value.
//
// Stages wrap these sentinels with context (glyph, value, stage); callers
// classify with errors.Is.
var (
	// ErrFontUnavailable means the font resource could not be opened or
	// parsed. No text can be synthesized at all.
	ErrFontUnavailable = errors.New("font unavailable")

	// ErrConfigInvalid means the pipeline configuration failed validation.
	ErrConfigInvalid = errors.New("invalid configuration")

	// ErrEmptyGlyph means a character maps to no visible geometry.
	ErrEmptyGlyph = errors.New("glyph has no geometry")

	// ErrDegenerateContour means an open or zero-area contour was dropped.
	ErrDegenerateContour = errors.New("degenerate contour")

	// ErrExtrusionFailed means a planar face could not be swept into a solid.
	ErrExtrusionFailed = errors.New("extrusion failed")

	// ErrEmptyTextSolid means every fragment of a text element was lost.
	ErrEmptyTextSolid = errors.New("empty text solid")

	// ErrBooleanOpFailed means an engraving could not be applied; the
	// running solid keeps its previous shape.
	ErrBooleanOpFailed = errors.New("boolean operation failed")

	// ErrInvalidMesh means the composited mesh is not a single watertight
	// body with positive volume.
	ErrInvalidMesh = errors.New("invalid mesh")
)
