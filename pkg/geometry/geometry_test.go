package geometry

import (
	"math"
	"testing"
)

func TestRectIntersect(t *testing.T) {
	a := RectFromLTWH(0, 0, 10, 10)
	b := RectFromLTWH(5, 5, 10, 10)
	got := a.Intersect(b)
	want := Rect{Left: 5, Top: 5, Right: 10, Bottom: 10}
	if got != want {
		t.Errorf("Intersect = %+v, want %+v", got, want)
	}

	c := RectFromLTWH(20, 20, 5, 5)
	if !a.Intersect(c).IsEmpty() {
		t.Errorf("non-overlapping rects should intersect to empty")
	}
}

func TestRectDegenerate(t *testing.T) {
	zero := RectFromLTWH(0, 0, 0, 5)
	if !zero.IsEmpty() {
		t.Errorf("zero-width rect should be empty")
	}
	nanRect := Rect{Left: 0, Top: 0, Right: math.NaN(), Bottom: 5}
	if !nanRect.IsEmpty() {
		t.Errorf("NaN rect should be empty")
	}
}

func TestAlignmentResolve(t *testing.T) {
	rect := RectFromLTWH(0, 0, 100, 50)
	cases := []struct {
		align Alignment
		want  Offset
	}{
		{AlignCenter, Offset{50, 25}},
		{AlignTopLeft, Offset{0, 0}},
		{AlignBottomRight, Offset{100, 50}},
	}
	for _, c := range cases {
		got := c.align.Resolve(rect)
		if got != c.want {
			t.Errorf("Resolve(%+v) = %+v, want %+v", c.align, got, c.want)
		}
	}
}

func TestAffineTransformInvert(t *testing.T) {
	m := AffineTransform{SX: 2, SY: 3, TX: 4, TY: 5}
	inv, ok := m.Invert()
	if !ok {
		t.Fatalf("expected invertible matrix")
	}
	p := Offset{X: 10, Y: 20}
	roundTrip := inv.Apply(m.Apply(p))
	if math.Abs(roundTrip.X-p.X) > 1e-9 || math.Abs(roundTrip.Y-p.Y) > 1e-9 {
		t.Errorf("round trip = %+v, want %+v", roundTrip, p)
	}

	singular := AffineTransform{}
	if _, ok := singular.Invert(); ok {
		t.Errorf("zero matrix should not be invertible")
	}
}

func TestResolveBoxFitContain(t *testing.T) {
	m := ResolveBoxFit(BoxFitContain, Size{Width: 200, Height: 100}, Size{Width: 100, Height: 100}, AlignCenter)
	if m.SX != 0.5 || m.SY != 0.5 {
		t.Errorf("contain scale = (%v,%v), want (0.5,0.5)", m.SX, m.SY)
	}
	if m.TY != 25 {
		t.Errorf("contain centers vertically: TY = %v, want 25", m.TY)
	}
}

func TestResolveBoxFitCover(t *testing.T) {
	m := ResolveBoxFit(BoxFitCover, Size{Width: 200, Height: 100}, Size{Width: 100, Height: 100}, AlignCenter)
	if m.SX != 1 || m.SY != 1 {
		t.Errorf("cover scale = (%v,%v), want (1,1)", m.SX, m.SY)
	}
}

func TestRectangularCornerRadiusInflate(t *testing.T) {
	c := Uniform(CircularRadius(4))
	grown := c.Inflate(4)
	if grown.TopLeft != (Radius{RX: 8, RY: 8}) {
		t.Errorf("grown corner = %+v, want {8 8}", grown.TopLeft)
	}
	shrunk := c.Inflate(-10)
	if shrunk.TopLeft != (Radius{}) {
		t.Errorf("shrunk corner should clamp at zero, got %+v", shrunk.TopLeft)
	}
}
