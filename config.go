package tileforge

import (
	"runtime"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Mode selects how text marks are applied to a tile face.
type Mode int

const (
	// Emboss adds raised material on top of the tile face.
	Emboss Mode = iota
	// Deboss cuts a recess into the tile face.
	Deboss
)

func (m Mode) String() string {
	switch m {
	case Emboss:
		return "emboss"
	case Deboss:
		return "deboss"
	}
	return "unknown"
}

// ParseMode recognizes "emboss" and "deboss".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "emboss":
		return Emboss, nil
	case "deboss":
		return Deboss, nil
	}
	return 0, errors.Wrapf(ErrConfigInvalid, "unknown mode %q", s)
}

// Anchor is a position on the tile footprint, expressed as ratios of the
// tile's width and depth in [0, 1].
type Anchor struct {
	X float64
	Y float64
}

func (a Anchor) valid() bool {
	return a.X >= 0 && a.X <= 1 && a.Y >= 0 && a.Y <= 1
}

// Config is the immutable configuration for solid synthesis. Construct it
// once, validate it once, and pass it by value; the pipeline never
// modifies it.
type Config struct {
	// Tile prism dimensions in millimeters. The tile sits with one corner
	// at the origin and its top face at z = TileHeight.
	TileWidth  float64
	TileDepth  float64
	TileHeight float64

	// Text sizes in millimeters, measured baseline to ascent.
	LetterSize float64
	ValueSize  float64

	// Extrusion depths of the two text elements.
	LetterDepth float64
	ValueDepth  float64

	// DebossClearance is how far a deboss cutting tool protrudes above the
	// tile's top face, so the cut never leaves a coplanar skin.
	DebossClearance float64

	Mode Mode

	LetterAnchor Anchor
	ValueAnchor  Anchor

	// CurveSegs is the number of line segments per quadratic when
	// flattening glyph outlines.
	CurveSegs int

	// MeshDelta is the marching-cubes grid spacing for final meshing.
	MeshDelta float64

	FontPath string
	OutDir   string

	// Workers bounds parallel tile synthesis; 0 means one per core.
	Workers int

	// TileTimeout guards a single tile's wall-clock time; 0 disables the
	// guard.
	TileTimeout time.Duration
}

// DefaultConfig returns a configuration sized for a standard 19mm game
// tile.
func DefaultConfig() Config {
	return Config{
		TileWidth:       19.0,
		TileDepth:       19.0,
		TileHeight:      4.0,
		LetterSize:      10.0,
		ValueSize:       5.0,
		LetterDepth:     0.8,
		ValueDepth:      0.6,
		DebossClearance: 0.05,
		Mode:            Emboss,
		LetterAnchor:    Anchor{X: 0.5, Y: 0.55},
		ValueAnchor:     Anchor{X: 0.75, Y: 0.25},
		CurveSegs:       16,
		MeshDelta:       0.1,
		OutDir:          "tiles_stl",
		TileTimeout:     2 * time.Minute,
	}
}

// Validate checks every dimensional invariant up front so that no
// per-tile pipeline stage has to re-check geometry preconditions.
func (c *Config) Validate() error {
	if c.TileWidth <= 0 || c.TileDepth <= 0 || c.TileHeight <= 0 {
		return errors.Wrapf(ErrConfigInvalid, "tile dimensions %gx%gx%g must be positive",
			c.TileWidth, c.TileDepth, c.TileHeight)
	}
	if c.LetterSize <= 0 || c.ValueSize <= 0 {
		return errors.Wrapf(ErrConfigInvalid, "text sizes %g/%g must be positive",
			c.LetterSize, c.ValueSize)
	}
	if c.LetterDepth <= 0 || c.ValueDepth <= 0 {
		return errors.Wrapf(ErrConfigInvalid, "extrusion depths %g/%g must be positive",
			c.LetterDepth, c.ValueDepth)
	}
	if c.DebossClearance < 0 {
		return errors.Wrapf(ErrConfigInvalid, "deboss clearance %g must be non-negative",
			c.DebossClearance)
	}
	if c.Mode != Emboss && c.Mode != Deboss {
		return errors.Wrapf(ErrConfigInvalid, "mode %d", c.Mode)
	}
	if c.Mode == Deboss {
		// A cut as deep as the tile would leave a degenerate or inverted
		// solid.
		if c.LetterDepth >= c.TileHeight || c.ValueDepth >= c.TileHeight {
			return errors.Wrapf(ErrConfigInvalid,
				"deboss depths %g/%g must be less than tile height %g",
				c.LetterDepth, c.ValueDepth, c.TileHeight)
		}
	}
	if !c.LetterAnchor.valid() || !c.ValueAnchor.valid() {
		return errors.Wrapf(ErrConfigInvalid, "anchors %v/%v must be within [0,1]x[0,1]",
			c.LetterAnchor, c.ValueAnchor)
	}
	if c.CurveSegs <= 0 {
		return errors.Wrapf(ErrConfigInvalid, "curve segments %d must be positive", c.CurveSegs)
	}
	if c.MeshDelta <= 0 {
		return errors.Wrapf(ErrConfigInvalid, "mesh delta %g must be positive", c.MeshDelta)
	}
	if c.Workers < 0 {
		return errors.Wrapf(ErrConfigInvalid, "workers %d must be non-negative", c.Workers)
	}
	return nil
}

func (c *Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}
