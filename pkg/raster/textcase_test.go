package raster

import (
	"testing"

	"github.com/grida-canvas/canvas-core/pkg/scene"
)

func TestApplyTextTransform(t *testing.T) {
	cases := []struct {
		in   string
		kind scene.TextTransform
		want string
	}{
		{"hello world", scene.TextTransformNone, "hello world"},
		{"hello world", scene.TextTransformUpper, "HELLO WORLD"},
		{"HELLO WORLD", scene.TextTransformLower, "hello world"},
		{"hello world", scene.TextTransformCapitalize, "Hello World"},
	}
	for _, c := range cases {
		if got := applyTextTransform(c.in, c.kind); got != c.want {
			t.Errorf("applyTextTransform(%q, %v) = %q, want %q", c.in, c.kind, got, c.want)
		}
	}
}
