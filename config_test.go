package tileforge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.TileWidth = 0 }},
		{"negative height", func(c *Config) { c.TileHeight = -1 }},
		{"zero letter size", func(c *Config) { c.LetterSize = 0 }},
		{"zero letter depth", func(c *Config) { c.LetterDepth = 0 }},
		{"negative clearance", func(c *Config) { c.DebossClearance = -0.1 }},
		{"bad mode", func(c *Config) { c.Mode = Mode(7) }},
		{"anchor out of range", func(c *Config) { c.LetterAnchor = Anchor{X: 1.5, Y: 0.5} }},
		{"zero curve segs", func(c *Config) { c.CurveSegs = 0 }},
		{"zero mesh delta", func(c *Config) { c.MeshDelta = 0 }},
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"deboss letter too deep", func(c *Config) {
			c.Mode = Deboss
			c.LetterDepth = c.TileHeight
		}},
		{"deboss value too deep", func(c *Config) {
			c.Mode = Deboss
			c.ValueDepth = c.TileHeight + 1
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrConfigInvalid), "got %v", err)
		})
	}
}

func TestConfigDebossDepthOnlyCheckedForDeboss(t *testing.T) {
	// An emboss depth taller than the tile adds material; it never cuts,
	// so it stays legal.
	cfg := DefaultConfig()
	cfg.Mode = Emboss
	cfg.LetterDepth = cfg.TileHeight * 2
	assert.NoError(t, cfg.Validate())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("emboss")
	require.NoError(t, err)
	assert.Equal(t, Emboss, m)

	m, err = ParseMode(" Deboss ")
	require.NoError(t, err)
	assert.Equal(t, Deboss, m)

	_, err = ParseMode("engrave")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigInvalid))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "emboss", Emboss.String())
	assert.Equal(t, "deboss", Deboss.String())
	assert.Equal(t, "unknown", Mode(9).String())
}
