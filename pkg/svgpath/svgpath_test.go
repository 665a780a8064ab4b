package svgpath

import (
	"testing"

	"github.com/grida-canvas/canvas-core/pkg/surface"
)

func TestParseLineSquare(t *testing.T) {
	p, err := Parse("M0 0 L10 0 L10 10 L0 10 Z")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(p.Segments) != 5 {
		t.Fatalf("expected 5 segments, got %d", len(p.Segments))
	}
	if p.Segments[0].Verb != surface.VerbMoveTo || p.Segments[4].Verb != surface.VerbClose {
		t.Errorf("unexpected segment verbs: %+v", p.Segments)
	}
}

func TestParseImplicitLineTo(t *testing.T) {
	p, err := Parse("M0 0 10 0 10 10")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(p.Segments) != 3 {
		t.Fatalf("expected implicit L repeats, got %d segments", len(p.Segments))
	}
	if p.Segments[1].Verb != surface.VerbLineTo || p.Segments[2].Verb != surface.VerbLineTo {
		t.Errorf("expected LineTo repeats, got %+v", p.Segments)
	}
}

func TestParseRelativeCubic(t *testing.T) {
	p, err := Parse("M10 10 c5 0 5 5 10 5")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	last := p.Segments[len(p.Segments)-1]
	if last.Verb != surface.VerbCubicTo {
		t.Fatalf("expected cubic segment")
	}
	end := last.Points[2]
	if end.X != 20 || end.Y != 15 {
		t.Errorf("relative cubic endpoint = %+v, want (20,15)", end)
	}
}

func TestArcToCubicsProducesClosedLoop(t *testing.T) {
	p, err := Parse("M0 5 A5 5 0 1 1 10 5 A5 5 0 1 1 0 5 Z")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(p.Segments) < 3 {
		t.Errorf("expected arc expansion to produce multiple cubic segments, got %d", len(p.Segments))
	}
}
