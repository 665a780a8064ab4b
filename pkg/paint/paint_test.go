package paint

import "testing"

func TestPaintVisibilityPruning(t *testing.T) {
	invisible := Paint{Kind: KindSolid, Active: true, Opacity: 0, Color: RGB(255, 0, 0)}
	if invisible.Visible() {
		t.Errorf("zero-opacity paint should not be visible")
	}
	inactive := Paint{Kind: KindSolid, Active: false, Opacity: 1, Color: RGB(255, 0, 0)}
	if inactive.Visible() {
		t.Errorf("inactive paint should not be visible")
	}
	visible := Paint{Kind: KindSolid, Active: true, Opacity: 1, Color: RGB(255, 0, 0)}
	if !visible.Visible() {
		t.Errorf("normal paint should be visible")
	}
}

func TestPaintsCompositeSolidSkipsInvisible(t *testing.T) {
	withInvisible := Paints{
		{Kind: KindSolid, Active: true, Opacity: 1, Color: RGB(0, 0, 255), BlendMode: BlendModeSrcOver},
		{Kind: KindSolid, Active: true, Opacity: 0, Color: RGB(255, 0, 0), BlendMode: BlendModeSrcOver},
	}
	withoutInvisible := Paints{
		{Kind: KindSolid, Active: true, Opacity: 1, Color: RGB(0, 0, 255), BlendMode: BlendModeSrcOver},
	}
	a := withInvisible.CompositeSolid()
	b := withoutInvisible.CompositeSolid()
	if a != b {
		t.Errorf("invisible paint changed composite result: %08x vs %08x", uint32(a), uint32(b))
	}
}

func TestSortStopsTolerant(t *testing.T) {
	stops := []GradientStop{
		{Offset: 1, Color: RGB(0, 0, 0)},
		{Offset: 0, Color: RGB(255, 255, 255)},
	}
	sorted := SortStops(stops)
	if sorted[0].Offset != 0 || sorted[1].Offset != 1 {
		t.Errorf("stops not sorted: %+v", sorted)
	}
}

func TestSampleGradientEndpoints(t *testing.T) {
	stops := SortStops([]GradientStop{
		{Offset: 0, Color: RGB(0, 0, 0)},
		{Offset: 1, Color: RGB(255, 255, 255)},
	})
	black := SampleGradient(stops, 0)
	white := SampleGradient(stops, 1)
	if black != RGB(0, 0, 0) {
		t.Errorf("t=0 should be first stop, got %08x", uint32(black))
	}
	if white != RGB(255, 255, 255) {
		t.Errorf("t=1 should be last stop, got %08x", uint32(white))
	}
}

func TestApplyTileMode(t *testing.T) {
	cases := []struct {
		t      float64
		mode   TileMode
		wantT  float64
		wantOK bool
	}{
		{1.5, TileModeRepeat, 0.5, true},
		{-0.25, TileModeRepeat, 0.75, true},
		{1.5, TileModeClamp, 1, true},
		{-0.5, TileModeClamp, 0, true},
		{1.5, TileModeDecal, 0, false},
		{0.5, TileModeMirror, 0.5, true},
		{1.25, TileModeMirror, 0.75, true},
	}
	for _, c := range cases {
		gotT, gotOK := applyTileMode(c.t, c.mode)
		if gotOK != c.wantOK || (gotOK && absDiff(gotT, c.wantT) > 1e-9) {
			t.Errorf("applyTileMode(%v, %v) = (%v, %v), want (%v, %v)", c.t, c.mode, gotT, gotOK, c.wantT, c.wantOK)
		}
	}
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

func TestCompositeSrcOver(t *testing.T) {
	red := RGBA(255, 0, 0, 255)
	blue := RGBA(0, 0, 255, 128)
	out := Composite(blue, red, BlendModeSrcOver)
	if out.A() != 255 {
		t.Errorf("compositing over opaque dst should stay opaque, got alpha %d", out.A())
	}
}

func TestQuarterTurnsNormalize(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 4: 0, 5: 1, -1: 3, -4: 0}
	for in, want := range cases {
		if got := NormalizeQuarterTurns(in); got != want {
			t.Errorf("NormalizeQuarterTurns(%d) = %d, want %d", in, got, want)
		}
	}
}
