package text

import (
	"image"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// fixedFace is a monospace stand-in implementing font.Face without needing
// real font bytes, so layout math can be tested independent of sfnt.
type fixedFace struct {
	advance fixed.Int26_6
	ascent  fixed.Int26_6
	descent fixed.Int26_6
}

func (f fixedFace) Close() error { return nil }
func (f fixedFace) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	return image.Rectangle{}, nil, image.Point{}, f.advance, true
}
func (f fixedFace) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	return fixed.Rectangle26_6{}, f.advance, true
}
func (f fixedFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) { return f.advance, true }
func (f fixedFace) Kern(r0, r1 rune) fixed.Int26_6            { return 0 }
func (f fixedFace) Metrics() font.Metrics {
	return font.Metrics{Height: f.ascent + f.descent, Ascent: f.ascent, Descent: f.descent}
}

func newFixedEngine(charWidth, ascent, descent float64, maxWidth float64) *Engine {
	return &Engine{
		Face: fixedFace{
			advance: fixed.I(int(charWidth)),
			ascent:  fixed.I(int(ascent)),
			descent: fixed.I(int(descent)),
		},
		MaxWidth: maxWidth,
	}
}

func TestLineMetricsSplitsOnNewline(t *testing.T) {
	e := newFixedEngine(10, 12, 4, 0)
	lines := e.Build("ab\ncd")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %+v", len(lines), lines)
	}
	if lines[0].StartIndex != 0 || lines[0].EndIndex != 3 {
		t.Errorf("line 0 range = [%d,%d), want [0,3)", lines[0].StartIndex, lines[0].EndIndex)
	}
	if lines[1].StartIndex != 3 || lines[1].EndIndex != 5 {
		t.Errorf("line 1 range = [%d,%d), want [3,5)", lines[1].StartIndex, lines[1].EndIndex)
	}
}

func TestLineMetricsTrailingNewlineAddsPhantomLine(t *testing.T) {
	e := newFixedEngine(10, 12, 4, 0)
	lines := e.Build("ab\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines (content + phantom), got %d: %+v", len(lines), lines)
	}
	phantom := lines[1]
	if phantom.StartIndex != 3 || phantom.EndIndex != 3 {
		t.Errorf("phantom line = [%d,%d), want [3,3)", phantom.StartIndex, phantom.EndIndex)
	}
}

func TestPositionAtPointEmptyLineReturnsStart(t *testing.T) {
	e := newFixedEngine(10, 12, 4, 0)
	// Line 1 is the empty line [3,4); its band is y in [16,32).
	text := "ab\n\ncd"
	off := e.PositionAtPoint(text, 50, 20)
	if off != 3 {
		t.Errorf("expected offset 3 at the empty line's start, got %d", off)
	}
}

func TestWordBoundaryAt(t *testing.T) {
	e := newFixedEngine(10, 12, 4, 0)
	text := "hello world"
	start, end := e.WordBoundaryAt(text, 1)
	if text[start:end] != "hello" {
		t.Errorf("expected word 'hello', got %q", text[start:end])
	}
}

func TestCaretRectAtAdvancesWithOffset(t *testing.T) {
	e := newFixedEngine(10, 12, 4, 0)
	text := "abc"
	r0 := e.CaretRectAt(text, 0)
	r2 := e.CaretRectAt(text, 2)
	if r2.X <= r0.X {
		t.Errorf("expected caret x to advance, got r0.X=%v r2.X=%v", r0.X, r2.X)
	}
}

func TestWrapParagraphBreaksAtSpace(t *testing.T) {
	e := newFixedEngine(10, 12, 4, 55)
	lines := e.Build("aaaa bbbb cccc")
	if len(lines) < 2 {
		t.Fatalf("expected wrapping to produce multiple lines, got %d: %+v", len(lines), lines)
	}
}
