package renderer

import (
	"testing"

	"github.com/grida-canvas/canvas-core/pkg/geometry"
	"github.com/grida-canvas/canvas-core/pkg/paint"
	"github.com/grida-canvas/canvas-core/pkg/scene"
	"github.com/grida-canvas/canvas-core/pkg/surface"
)

func buildScene(fillColor paint.CGColor) *scene.Scene {
	repo := scene.NewNodeRepository()
	style := scene.DefaultStyle()
	style.Fills = paint.Paints{{Kind: paint.KindSolid, Active: true, Opacity: 1, Color: fillColor}}
	id := repo.Insert(scene.Node{
		Type:     scene.NodeRectangle,
		Style:    style,
		Geometry: scene.Geometry{Size: geometry.Size{Width: 20, Height: 20}},
	})
	return scene.NewScene("s", "s", nil, []scene.NodeID{id}, repo)
}

func TestCacheSceneReplaysUnderDifferentCamera(t *testing.T) {
	sc := buildScene(paint.RGB(10, 20, 30))

	r := NewRenderer()
	r.CacheScene(sc, nil, 40, 40)

	canvasZoom1 := surface.NewSoftwareCanvas(40, 40)
	r.Camera = Camera{Zoom: 1}
	r.RenderScene(canvasZoom1, sc, nil)
	b1 := canvasZoom1.Snapshot(geometry.RectFromLTWH(0, 0, 40, 40))

	canvasZoom2 := surface.NewSoftwareCanvas(40, 40)
	r.Camera = Camera{Zoom: 2}
	r.RenderScene(canvasZoom2, sc, nil)

	r.InvalidateCache()
	canvasZoom1Again := surface.NewSoftwareCanvas(40, 40)
	r.Camera = Camera{Zoom: 1}
	// A fresh render without the cache still walks the scene graph and
	// should reproduce the same pixels for the same camera.
	r.RenderScene(canvasZoom1Again, sc, nil)
	b1Again := canvasZoom1Again.Snapshot(geometry.RectFromLTWH(0, 0, 40, 40))

	if b1.NRGBAAt(10, 10) != b1Again.NRGBAAt(10, 10) {
		t.Errorf("expected re-render at the same camera to match cached render: %v vs %v",
			b1.NRGBAAt(10, 10), b1Again.NRGBAAt(10, 10))
	}
}

func TestVisibilityCullingSkipsOffscreenNodes(t *testing.T) {
	repo := scene.NewNodeRepository()
	style := scene.DefaultStyle()
	style.Fills = paint.Paints{{Kind: paint.KindSolid, Active: true, Opacity: 1, Color: paint.RGB(255, 0, 0)}}
	style.Transform = geometry.Translation(1000, 1000)
	offscreenID := repo.Insert(scene.Node{
		Type:     scene.NodeRectangle,
		Style:    style,
		Geometry: scene.Geometry{Size: geometry.Size{Width: 20, Height: 20}},
	})
	sc := scene.NewScene("s", "s", nil, []scene.NodeID{offscreenID}, repo)

	r := NewRenderer()
	r.VisibilityCulling = true
	canvas := surface.NewSoftwareCanvas(40, 40)
	r.RenderScene(canvas, sc, nil)

	img := canvas.Snapshot(geometry.RectFromLTWH(0, 0, 40, 40))
	if img.NRGBAAt(5, 5).A != 0 {
		t.Error("expected an offscreen node to be culled and not drawn")
	}
}
