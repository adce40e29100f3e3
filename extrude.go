package tileforge

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// Extrude sweeps a planar face along the Z axis from 0 to depth,
// producing a prismatic solid. Extrusion always goes into positive Z;
// whether the part ends up raised or cut is decided entirely by where it
// is positioned later.
func Extrude(face PlanarFace, depth float64) (model3d.Solid, error) {
	if depth <= 0 {
		return nil, errors.Wrapf(ErrConfigInvalid, "extrusion depth %g", depth)
	}
	profile := face.Solid()
	if profile == nil {
		return nil, errors.Wrap(ErrExtrusionFailed, "face has no boundary")
	}
	min, max := profile.Min(), profile.Max()
	if !(max.X > min.X && max.Y > min.Y) {
		return nil, errors.Wrap(ErrExtrusionFailed, "face bounds are degenerate")
	}
	return model3d.ProfileSolid(profile, 0, depth), nil
}
