package surface

import (
	"testing"

	"github.com/grida-canvas/canvas-core/pkg/geometry"
	"github.com/grida-canvas/canvas-core/pkg/paint"
)

func TestSaveLayerAlphaFadesLayerOverBackdropOnce(t *testing.T) {
	canvas := NewSoftwareCanvas(10, 10)
	bounds := geometry.RectFromLTWH(0, 0, 10, 10)

	canvas.DrawRect(bounds, paint.RGB(255, 0, 0), paint.BlendModeSrcOver)

	canvas.SaveLayerAlpha(bounds, 0.5, paint.BlendModeSrcOver)
	canvas.DrawRect(bounds, paint.RGB(0, 0, 255), paint.BlendModeSrcOver)
	canvas.Restore()

	px := canvas.Snapshot(bounds).NRGBAAt(5, 5)
	if px.A != 255 {
		t.Fatalf("expected opaque result blending a half-alpha layer over an opaque backdrop, got alpha %d", px.A)
	}
	if px.R < 110 || px.R > 145 || px.B < 110 || px.B > 145 {
		t.Errorf("expected an even red/blue mix from a single 50%% fade, got (%d,%d,%d)", px.R, px.G, px.B)
	}
}

func TestSaveLayerAlphaIsolatesOverlapFromBackdrop(t *testing.T) {
	canvas := NewSoftwareCanvas(10, 10)
	bounds := geometry.RectFromLTWH(0, 0, 10, 10)

	canvas.DrawRect(bounds, paint.RGB(255, 0, 0), paint.BlendModeSrcOver)

	canvas.SaveLayerAlpha(bounds, 0.5, paint.BlendModeSrcOver)
	canvas.DrawRect(bounds, paint.RGB(0, 255, 0), paint.BlendModeSrcOver)
	canvas.DrawRect(bounds, paint.RGB(0, 0, 255), paint.BlendModeSrcOver)
	canvas.Restore()

	// Both layer draws are fully opaque, so the second (blue) one wins
	// inside the isolated layer before any fading happens; the red
	// backdrop must only be blended in once, at the layer's own alpha.
	px := canvas.Snapshot(bounds).NRGBAAt(5, 5)
	if px.G != 0 {
		t.Errorf("green should be fully overwritten inside the isolated layer, got green=%d", px.G)
	}
	if px.R < 110 || px.R > 145 {
		t.Errorf("expected backdrop red blended in once at ~50%%, got %d", px.R)
	}
}

func TestNestedSaveAndSaveLayerAlphaUnwindInOrder(t *testing.T) {
	canvas := NewSoftwareCanvas(4, 4)
	bounds := geometry.RectFromLTWH(0, 0, 4, 4)

	canvas.Save()
	canvas.SaveLayerAlpha(bounds, 1, paint.BlendModeSrcOver)
	canvas.DrawRect(bounds, paint.RGB(0, 255, 0), paint.BlendModeSrcOver)
	canvas.Restore() // pops the layer
	canvas.Restore() // pops the plain save

	px := canvas.Snapshot(bounds).NRGBAAt(1, 1)
	if px.G != 255 || px.A != 255 {
		t.Errorf("expected the fully-opaque layer to land unchanged, got (%d,%d,%d,%d)", px.R, px.G, px.B, px.A)
	}
}
