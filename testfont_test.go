package tileforge

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

// Candidate outline fonts for tests. The suite has no font of its own, so
// font-dependent tests skip when none of these exist.
var testFontPaths = []string{
	"test_data/LiberationSans-Regular.ttf",
	"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	"/usr/share/fonts/truetype/liberation2/LiberationSans-Regular.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
}

func testFont(t *testing.T) *Font {
	t.Helper()
	for _, path := range testFontPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		font, err := LoadFont(path)
		require.NoError(t, err)
		return font
	}
	t.Skip("no TTF font available")
	return nil
}
