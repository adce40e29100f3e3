package tileforge

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// TextPlacement positions one text element on a tile. It is computed once
// per element and passed down; no stage recomputes placement on its own.
type TextPlacement struct {
	// Anchor is where the element's footprint midpoint lands, as ratios
	// of the tile's width and depth.
	Anchor Anchor

	// Depth is the element's engraving depth. For deboss this is the
	// depth of the finished recess, not the length of the cutting tool.
	Depth float64

	Mode Mode
}

// AssembleText unions the per-fragment solids of one text element and
// positions the result on the tile:
//
//   - Emboss: the element's underside sits flush on the tile's top face,
//     so a union adds raised material.
//   - Deboss: the element's floor sits Depth below the top face. The
//     fragments must have been extruded to Depth plus the deboss
//     clearance, so the tool pokes through the top face and the
//     subtraction never leaves a coplanar skin. The finished recess is
//     exactly Depth deep.
func AssembleText(parts []model3d.Solid, place TextPlacement, cfg *Config) (model3d.Solid, error) {
	if len(parts) == 0 {
		return nil, errors.Wrap(ErrEmptyTextSolid, "no fragments survived")
	}
	var joined model3d.Solid
	if len(parts) == 1 {
		joined = parts[0]
	} else {
		joined = model3d.JoinedSolid(parts)
	}

	min, max := joined.Min(), joined.Max()
	if !(max.X > min.X && max.Y > min.Y && max.Z > min.Z) {
		return nil, errors.Wrap(ErrEmptyTextSolid, "degenerate bounds")
	}

	mid := min.Mid(max)
	offset := model3d.XYZ(
		cfg.TileWidth*place.Anchor.X-mid.X,
		cfg.TileDepth*place.Anchor.Y-mid.Y,
		0,
	)
	switch place.Mode {
	case Emboss:
		offset.Z = cfg.TileHeight - min.Z
	case Deboss:
		offset.Z = cfg.TileHeight - place.Depth - min.Z
	default:
		return nil, errors.Wrapf(ErrConfigInvalid, "mode %d", place.Mode)
	}
	return model3d.TransformSolid(&model3d.Translate{Offset: offset}, joined), nil
}
