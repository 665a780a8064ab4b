package raster

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/grida-canvas/canvas-core/pkg/scene"
)

// applyTextTransform renders a TextSpan's case transform (spec's "applies
// to displayed text, not the stored string") using Unicode-aware casing
// rather than strings.ToUpper/ToLower, which mishandle scripts with
// context-sensitive casing (e.g. Greek final sigma, Turkish dotless i).
func applyTextTransform(s string, transform scene.TextTransform) string {
	switch transform {
	case scene.TextTransformUpper:
		return cases.Upper(language.Und).String(s)
	case scene.TextTransformLower:
		return cases.Lower(language.Und).String(s)
	case scene.TextTransformCapitalize:
		return cases.Title(language.Und).String(s)
	default:
		return s
	}
}
