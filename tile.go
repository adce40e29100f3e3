package tileforge

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// TileResult reports one tile's synthesis outcome.
type TileResult struct {
	Spec TileSpec

	// Path is the exported mesh file; empty when Err is set.
	Path string

	// Degraded lists recoverable per-element failures. The tile was still
	// exported, just without those elements.
	Degraded []error

	// Err is set when the tile could not be exported at all.
	Err error
}

// Synthesizer runs the solid pipeline for single tiles. It is safe for
// concurrent use: the config is immutable and the font is read-only.
type Synthesizer struct {
	cfg  Config
	font *Font
}

// NewSynthesizer validates the configuration once and binds it to a
// shared font.
func NewSynthesizer(cfg Config, font *Font) (*Synthesizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if font == nil {
		return nil, errors.Wrap(ErrFontUnavailable, "nil font")
	}
	return &Synthesizer{cfg: cfg, font: font}, nil
}

// SynthesizeTile builds and exports the solid for one unique
// (glyph, value) pair: outline extraction, face building, extrusion,
// assembly, boolean composition, then meshing and export, strictly in
// that order. Recoverable element failures degrade the tile; only a mesh
// that fails validation skips the export.
//
// A blank tile is never engraved at all and exports as a plain prism.
func (s *Synthesizer) SynthesizeTile(spec TileSpec) TileResult {
	res := TileResult{Spec: spec}
	cfg := &s.cfg

	base, err := BaseVolume(cfg)
	if err != nil {
		res.Err = err
		return res
	}

	var engravings []Engraving
	if !spec.Blank() {
		// Letter first, then value, so failures reproduce.
		letter := strings.ToUpper(string(spec.Glyph))
		engravings, res.Degraded = s.appendText(engravings, res.Degraded,
			"letter", letter, cfg.LetterSize, cfg.LetterDepth, cfg.LetterAnchor)
		engravings, res.Degraded = s.appendText(engravings, res.Degraded,
			"value", strconv.Itoa(spec.Value), cfg.ValueSize, cfg.ValueDepth, cfg.ValueAnchor)
	}

	composited, failed := Composite(base, engravings)
	res.Degraded = append(res.Degraded, failed...)

	mesh, err := MeshSolid(composited, cfg.MeshDelta)
	if err != nil {
		res.Err = errors.WithMessage(err, spec.Label())
		return res
	}
	path := filepath.Join(cfg.OutDir, spec.SolidFileName())
	if err := ExportMesh(mesh, path); err != nil {
		res.Err = errors.WithMessage(err, spec.Label())
		return res
	}
	res.Path = path
	return res
}

// appendText extracts, extrudes, and positions one text element,
// recording recoverable failures instead of aborting the tile.
func (s *Synthesizer) appendText(engravings []Engraving, degraded []error,
	label, text string, size, depth float64, anchor Anchor) ([]Engraving, []error) {
	cfg := &s.cfg

	outlines, err := TextOutlines(s.font, text, size, cfg.CurveSegs)
	if err != nil {
		return engravings, append(degraded, errors.WithMessage(err, label))
	}
	faces, droppedContours := BuildFaces(outlines)
	for _, err := range droppedContours {
		degraded = append(degraded, errors.WithMessage(err, label))
	}

	// Deboss tools are cut longer than the finished recess so they poke
	// through the top face.
	extrudeDepth := depth
	if cfg.Mode == Deboss {
		extrudeDepth += cfg.DebossClearance
	}

	var parts []model3d.Solid
	for _, face := range faces {
		part, err := Extrude(face, extrudeDepth)
		if err != nil {
			degraded = append(degraded, errors.WithMessage(err, label))
			continue
		}
		parts = append(parts, part)
	}

	place := TextPlacement{Anchor: anchor, Depth: depth, Mode: cfg.Mode}
	solid, err := AssembleText(parts, place, cfg)
	if err != nil {
		return engravings, append(degraded, errors.WithMessage(err, label))
	}
	return append(engravings, Engraving{Label: label, Solid: solid, Mode: cfg.Mode}), degraded
}
