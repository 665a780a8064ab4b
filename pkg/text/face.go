// Package text implements the text layout contract: line metrics, point/
// offset hit-testing, caret geometry, and UAX #29 word-boundary queries
// against a single-style run of text. It is the layout engine a text editor
// state machine (pkg/texteditor) consults and a node rasterizer draws from.
package text

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FaceSource holds a parsed TrueType/OpenType font and hands out font.Face
// instances at whatever size a style calls for; opentype.NewFace is cheap
// enough to call per size rather than caching, matching sfnt's own design
// (a *sfnt.Font is reused across faces, a font.Face is not).
type FaceSource struct {
	font *sfnt.Font
}

// LoadFace parses TrueType/OpenType font data.
func LoadFace(data []byte) (*FaceSource, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, err
	}
	return &FaceSource{font: f}, nil
}

// Face returns a font.Face rasterized for the given point size.
func (s *FaceSource) Face(size float64) (font.Face, error) {
	return opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
