package raster

import (
	"testing"

	"github.com/grida-canvas/canvas-core/pkg/geometry"
	"github.com/grida-canvas/canvas-core/pkg/paint"
	"github.com/grida-canvas/canvas-core/pkg/scene"
	"github.com/grida-canvas/canvas-core/pkg/surface"
)

func rectNode(id scene.NodeID, fillColor paint.CGColor, w, h float64) scene.Node {
	style := scene.DefaultStyle()
	style.Fills = paint.Paints{{Kind: paint.KindSolid, Active: true, Opacity: 1, Color: fillColor}}
	return scene.Node{
		ID:    id,
		Type:  scene.NodeRectangle,
		Style: style,
		Geometry: scene.Geometry{
			Size: geometry.Size{Width: w, Height: h},
		},
	}
}

func TestRasterizeSolidRectFillsPixels(t *testing.T) {
	repo := scene.NewNodeRepository()
	id := repo.Insert(rectNode("", paint.RGB(255, 0, 0), 20, 20))
	sc := scene.NewScene("s", "s", nil, []scene.NodeID{id}, repo)

	canvas := surface.NewSoftwareCanvas(40, 40)
	RasterizeScene(canvas, sc, nil)

	img := canvas.Snapshot(geometry.RectFromLTWH(0, 0, 40, 40))
	r, g, b, a := img.NRGBAAt(10, 10).R, img.NRGBAAt(10, 10).G, img.NRGBAAt(10, 10).B, img.NRGBAAt(10, 10).A
	if r < 200 || g > 50 || b > 50 || a < 200 {
		t.Errorf("expected opaque red at (10,10), got (%d,%d,%d,%d)", r, g, b, a)
	}
	// Outside the rect should remain untouched (transparent black).
	r2, _, _, a2 := img.NRGBAAt(35, 35).R, img.NRGBAAt(35, 35).G, img.NRGBAAt(35, 35).B, img.NRGBAAt(35, 35).A
	if a2 != 0 {
		t.Errorf("expected transparent outside the rect, got (%d, a=%d)", r2, a2)
	}
}

func TestRasterizeInactiveNodeSkipped(t *testing.T) {
	repo := scene.NewNodeRepository()
	n := rectNode("", paint.RGB(0, 255, 0), 10, 10)
	n.Style.Active = false
	id := repo.Insert(n)
	sc := scene.NewScene("s", "s", nil, []scene.NodeID{id}, repo)

	canvas := surface.NewSoftwareCanvas(20, 20)
	RasterizeScene(canvas, sc, nil)

	img := canvas.Snapshot(geometry.RectFromLTWH(0, 0, 20, 20))
	if img.NRGBAAt(5, 5).A != 0 {
		t.Errorf("inactive node should not draw anything")
	}
}

func TestRasterizeOpacityIsolatesOverlappingChildrenInsteadOfDoubleFading(t *testing.T) {
	repo := scene.NewNodeRepository()
	// Two fully-overlapping opaque children inside a 0.5-opacity container.
	// A correct isolated-layer composite draws them fully opaque against
	// each other first, then fades the whole result once: the overlap
	// region ends up at the same ~50% alpha as any other covered pixel.
	// Multiplying the container's opacity into each child individually
	// would instead fade the overlap twice (0.5 + 0.5*(1-0.5) = 0.75).
	redID := repo.Insert(rectNode("", paint.RGB(255, 0, 0), 40, 40))
	blueID := repo.Insert(rectNode("", paint.RGB(0, 0, 255), 40, 40))
	containerStyle := scene.DefaultStyle()
	containerStyle.Opacity = 0.5
	containerID := repo.Insert(scene.Node{
		Type:     scene.NodeContainer,
		Style:    containerStyle,
		Geometry: scene.Geometry{Size: geometry.Size{Width: 40, Height: 40}},
		Container: scene.ContainerData{
			Children: []scene.NodeID{redID, blueID},
		},
	})
	sc := scene.NewScene("s", "s", nil, []scene.NodeID{containerID}, repo)

	canvas := surface.NewSoftwareCanvas(40, 40)
	RasterizeScene(canvas, sc, nil)

	img := canvas.Snapshot(geometry.RectFromLTWH(0, 0, 40, 40))
	px := img.NRGBAAt(20, 20)
	if px.A < 110 || px.A > 145 {
		t.Errorf("expected overlap alpha close to the container's own 50%% opacity, got %d", px.A)
	}
	if px.B < 110 || px.R > 40 {
		t.Errorf("expected the topmost (blue) child to win the overlap, got (%d,%d,%d,%d)", px.R, px.G, px.B, px.A)
	}
}

func TestRasterizeNonIsolatedOpaqueNodeUnchanged(t *testing.T) {
	repo := scene.NewNodeRepository()
	id := repo.Insert(rectNode("", paint.RGB(10, 20, 30), 10, 10))
	sc := scene.NewScene("s", "s", nil, []scene.NodeID{id}, repo)

	canvas := surface.NewSoftwareCanvas(10, 10)
	RasterizeScene(canvas, sc, nil)

	px := canvas.Snapshot(geometry.RectFromLTWH(0, 0, 10, 10)).NRGBAAt(5, 5)
	if px.A != 255 {
		t.Errorf("opaque PassThrough node should not be isolated into a faded layer, got alpha %d", px.A)
	}
}

func TestRasterizeContainerClipsChildren(t *testing.T) {
	repo := scene.NewNodeRepository()
	childID := repo.Insert(rectNode("", paint.RGB(0, 0, 255), 100, 100))
	containerStyle := scene.DefaultStyle()
	containerID := repo.Insert(scene.Node{
		Type:     scene.NodeContainer,
		Style:    containerStyle,
		Geometry: scene.Geometry{Size: geometry.Size{Width: 10, Height: 10}},
		Container: scene.ContainerData{
			Clip:     true,
			Children: []scene.NodeID{childID},
		},
	})
	sc := scene.NewScene("s", "s", nil, []scene.NodeID{containerID}, repo)

	canvas := surface.NewSoftwareCanvas(100, 100)
	RasterizeScene(canvas, sc, nil)

	img := canvas.Snapshot(geometry.RectFromLTWH(0, 0, 100, 100))
	if img.NRGBAAt(50, 50).A != 0 {
		t.Errorf("child extending past a clipping container's bounds should be clipped")
	}
	if img.NRGBAAt(5, 5).A == 0 {
		t.Errorf("child within the clip bounds should still draw")
	}
}
