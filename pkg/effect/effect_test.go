package effect

import (
	"testing"

	"github.com/grida-canvas/canvas-core/pkg/geometry"
)

func TestProgressiveBlurInterpolates(t *testing.T) {
	b := Blur{
		Kind:    BlurProgressive,
		Start:   geometry.Alignment{X: -1, Y: 0},
		End:     geometry.Alignment{X: 1, Y: 0},
		Radius:  0,
		Radius2: 10,
	}
	if got := b.RadiusAt(geometry.Alignment{X: -1, Y: 0}); got != 0 {
		t.Errorf("radius at start = %v, want 0", got)
	}
	if got := b.RadiusAt(geometry.Alignment{X: 1, Y: 0}); got != 10 {
		t.Errorf("radius at end = %v, want 10", got)
	}
	if got := b.RadiusAt(geometry.Alignment{X: 0, Y: 0}); got != 5 {
		t.Errorf("radius at midpoint = %v, want 5", got)
	}
}

func TestProgressiveBlurClampsOutsideRange(t *testing.T) {
	b := Blur{
		Kind:    BlurProgressive,
		Start:   geometry.Alignment{X: -1, Y: 0},
		End:     geometry.Alignment{X: 1, Y: 0},
		Radius:  0,
		Radius2: 10,
	}
	if got := b.RadiusAt(geometry.Alignment{X: -2, Y: 0}); got != 0 {
		t.Errorf("radius before start should clamp to 0, got %v", got)
	}
	if got := b.RadiusAt(geometry.Alignment{X: 2, Y: 0}); got != 10 {
		t.Errorf("radius past end should clamp to 10, got %v", got)
	}
}

func TestLayerEffectsShadowSplit(t *testing.T) {
	e := LayerEffects{Shadows: []Shadow{
		{Kind: ShadowDrop},
		{Kind: ShadowInner},
		{Kind: ShadowDrop},
	}}
	if len(e.DropShadows()) != 2 {
		t.Errorf("expected 2 drop shadows, got %d", len(e.DropShadows()))
	}
	if len(e.InnerShadows()) != 1 {
		t.Errorf("expected 1 inner shadow, got %d", len(e.InnerShadows()))
	}
}
