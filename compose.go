package tileforge

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// Engraving is one positioned text solid waiting to be applied to a base
// volume.
type Engraving struct {
	// Label identifies the element in diagnostics ("letter" or "value").
	Label string
	Solid model3d.Solid
	Mode  Mode
}

// Composite applies engravings to base strictly in order: the letter
// element first, then the value element. The geometry would commute, but
// a fixed order makes failures reproducible. A failed engraving leaves
// the running result unchanged and is reported in the returned slice; the
// tile still gets exported without that element.
func Composite(base model3d.Solid, engravings []Engraving) (model3d.Solid, []error) {
	result := base
	var failed []error
	for _, e := range engravings {
		next, err := applyEngraving(result, e)
		if err != nil {
			failed = append(failed, err)
			continue
		}
		result = next
	}
	return result, failed
}

func applyEngraving(base model3d.Solid, e Engraving) (model3d.Solid, error) {
	if e.Solid == nil {
		return nil, errors.Wrapf(ErrBooleanOpFailed, "%s: nil solid", e.Label)
	}
	min, max := e.Solid.Min(), e.Solid.Max()
	if !(max.X > min.X && max.Y > min.Y && max.Z > min.Z) {
		return nil, errors.Wrapf(ErrBooleanOpFailed, "%s: degenerate solid", e.Label)
	}
	// A tool that never meets the running result would silently do
	// nothing; report it instead.
	bmin, bmax := base.Min(), base.Max()
	if min.X >= bmax.X || max.X <= bmin.X || min.Y >= bmax.Y || max.Y <= bmin.Y ||
		min.Z > bmax.Z || max.Z < bmin.Z {
		return nil, errors.Wrapf(ErrBooleanOpFailed, "%s: solid misses the base volume", e.Label)
	}

	switch e.Mode {
	case Emboss:
		return model3d.JoinedSolid{base, e.Solid}, nil
	case Deboss:
		return &model3d.SubtractedSolid{Positive: base, Negative: e.Solid}, nil
	}
	return nil, errors.Wrapf(ErrBooleanOpFailed, "%s: unknown mode %d", e.Label, e.Mode)
}
