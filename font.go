package tileforge

import (
	"bytes"
	"encoding/binary"
	"os"

	gotextfont "github.com/go-text/typesetting/font"
	"github.com/golang/freetype/truetype"
	"github.com/pkg/errors"
)

// Font is a parsed outline font. It is opened once per run and shared
// read-only across all parallel synthesis tasks.
type Font struct {
	ttf    *truetype.Font
	ascent float64          // typographic ascent in font units, 0 if unknown
	hbFace *gotextfont.Face // nil when HarfBuzz shaping is unavailable
}

// LoadFont reads and parses a TTF/OTF (TrueType outlines) font file.
// Failure here is fatal for the solid-generation path: no text can be
// synthesized without the font.
func LoadFont(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(ErrFontUnavailable, "%s: %v", path, err)
	}
	f, err := ParseFont(data)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}
	return f, nil
}

// ParseFont parses TTF data already in memory.
func ParseFont(data []byte) (*Font, error) {
	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(ErrFontUnavailable, "parse font: %v", err)
	}
	f := &Font{ttf: ttf}
	if asc, ok := parseOS2TypoAscender(data); ok && asc > 0 {
		f.ascent = asc
	}
	if hbFace, err := gotextfont.ParseTTF(bytes.NewReader(data)); err == nil {
		f.hbFace = hbFace
	}
	return f, nil
}

// parseOS2TypoAscender digs the sTypoAscender field out of the OS/2 table,
// which freetype's truetype package does not expose.
func parseOS2TypoAscender(data []byte) (float64, bool) {
	const (
		tableDirOffset = 12
		recordSize     = 16
		os2Tag         = "OS/2"
		typoAscOffset  = 68
	)
	if len(data) < tableDirOffset {
		return 0, false
	}
	numTables := int(binary.BigEndian.Uint16(data[4:6]))
	if numTables < 0 || len(data) < tableDirOffset+numTables*recordSize {
		return 0, false
	}
	for i := 0; i < numTables; i++ {
		recOff := tableDirOffset + i*recordSize
		tag := string(data[recOff : recOff+4])
		if tag != os2Tag {
			continue
		}
		tableOffset := int(binary.BigEndian.Uint32(data[recOff+8 : recOff+12]))
		tableLen := int(binary.BigEndian.Uint32(data[recOff+12 : recOff+16]))
		if tableOffset < 0 || tableLen < 0 || tableOffset+tableLen > len(data) || tableLen < typoAscOffset+2 {
			return 0, false
		}
		raw := int16(binary.BigEndian.Uint16(data[tableOffset+typoAscOffset : tableOffset+typoAscOffset+2]))
		return float64(raw), raw > 0
	}
	return 0, false
}
