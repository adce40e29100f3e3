package tileforge

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// BaseVolume builds the tile's rectangular prism, axis-aligned with one
// corner at the origin and the top face at z = TileHeight.
func BaseVolume(cfg *Config) (model3d.Solid, error) {
	if cfg.TileWidth <= 0 || cfg.TileDepth <= 0 || cfg.TileHeight <= 0 {
		return nil, errors.Wrapf(ErrConfigInvalid, "tile dimensions %gx%gx%g",
			cfg.TileWidth, cfg.TileDepth, cfg.TileHeight)
	}
	return model3d.NewRect(model3d.Origin, model3d.XYZ(cfg.TileWidth, cfg.TileDepth, cfg.TileHeight)), nil
}
