package tileforge

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/model3d/model3d"
)

// fastConfig keeps marching cubes cheap enough for tests.
func fastConfig(t *testing.T) Config {
	cfg := DefaultConfig()
	cfg.MeshDelta = 0.25
	cfg.CurveSegs = 8
	cfg.OutDir = t.TempDir()
	return cfg
}

func readMesh(t *testing.T, path string) *model3d.Mesh {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	tris, err := model3d.ReadSTL(f)
	require.NoError(t, err)
	return model3d.NewMeshTriangles(tris)
}

func TestSynthesizeBlankTile(t *testing.T) {
	cfg := fastConfig(t)
	cfg.TileWidth, cfg.TileDepth, cfg.TileHeight = 10, 10, 4

	// The blank tile never touches the font.
	syn := &Synthesizer{cfg: cfg}
	res := syn.SynthesizeTile(TileSpec{Glyph: BlankGlyph, Value: 0, Count: 2})
	require.NoError(t, res.Err)
	assert.Empty(t, res.Degraded)
	require.NotEmpty(t, res.Path)
	assert.Equal(t, "tile_blank_0.stl", filepath.Base(res.Path))

	// No engraving at all: the export is a plain prism.
	mesh := readMesh(t, res.Path)
	assert.InEpsilon(t, 10*10*4, mesh.Volume(), 0.05)
}

func TestSynthesizeTileDeboss(t *testing.T) {
	font := testFont(t)
	cfg := fastConfig(t)
	cfg.Mode = Deboss

	syn, err := NewSynthesizer(cfg, font)
	require.NoError(t, err)
	res := syn.SynthesizeTile(TileSpec{Glyph: 'A', Value: 1, Count: 1})
	require.NoError(t, res.Err)
	require.NotEmpty(t, res.Path)

	// Cutting recesses only ever removes material.
	mesh := readMesh(t, res.Path)
	base := cfg.TileWidth * cfg.TileDepth * cfg.TileHeight
	assert.Less(t, mesh.Volume(), base)
	assert.Greater(t, mesh.Volume(), base*0.8)
}

func TestSynthesizeTileDegradedGlyph(t *testing.T) {
	font := testFont(t)
	cfg := fastConfig(t)
	cfg.Mode = Deboss

	syn, err := NewSynthesizer(cfg, font)
	require.NoError(t, err)

	// NBSP maps to a visible-geometry-free glyph, so letter synthesis
	// fails; the tile still exports with only the value engraved.
	res := syn.SynthesizeTile(TileSpec{Glyph: ' ', Value: 5, Count: 1})
	require.NoError(t, res.Err)
	require.NotEmpty(t, res.Path)
	require.NotEmpty(t, res.Degraded)
	assert.True(t, errors.Is(res.Degraded[0], ErrEmptyGlyph), "got %v", res.Degraded[0])

	_, statErr := os.Stat(res.Path)
	assert.NoError(t, statErr)
}

func TestNewSynthesizerValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TileHeight = 0
	_, err := NewSynthesizer(cfg, &Font{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfigInvalid))

	_, err = NewSynthesizer(DefaultConfig(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrFontUnavailable))
}

func TestRunBatchUniqueTiles(t *testing.T) {
	font := testFont(t)
	cfg := fastConfig(t)
	cfg.Mode = Deboss
	cfg.Workers = 2

	syn, err := NewSynthesizer(cfg, font)
	require.NoError(t, err)

	specs := []TileSpec{
		{Glyph: 'A', Value: 1, Count: 5},
		{Glyph: 'A', Value: 1, Count: 2},
		{Glyph: BlankGlyph, Value: 0, Count: 2},
	}
	sum := RunBatch(context.Background(), syn, specs)

	// Two unique pairs, two exports: solid identity depends only on
	// (glyph, value), never on count.
	require.Len(t, sum.Results, 2)
	assert.Equal(t, 2, sum.Exported)
	assert.Zero(t, sum.Skipped)

	entries, err := os.ReadDir(cfg.OutDir)
	require.NoError(t, err)
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}
	assert.ElementsMatch(t, []string{"tile_A_1.stl", "tile_blank_0.stl"}, names)
}

func TestRunBatchTimeout(t *testing.T) {
	cfg := fastConfig(t)
	cfg.TileTimeout = time.Nanosecond
	syn := &Synthesizer{cfg: cfg}

	sum := RunBatch(context.Background(), syn, []TileSpec{{Glyph: BlankGlyph, Count: 1}})
	require.Len(t, sum.Results, 1)
	require.Error(t, sum.Results[0].Err)
	assert.True(t, errors.Is(sum.Results[0].Err, ErrInvalidMesh))
	assert.Equal(t, 1, sum.Skipped)
}

func TestRunBatchCancelled(t *testing.T) {
	cfg := fastConfig(t)
	syn := &Synthesizer{cfg: cfg}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sum := RunBatch(ctx, syn, []TileSpec{
		{Glyph: BlankGlyph, Count: 1},
		{Glyph: 'A', Value: 1, Count: 1},
	})
	assert.Equal(t, 2, sum.Skipped)
	assert.Zero(t, sum.Exported)
}
