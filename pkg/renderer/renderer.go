// Package renderer drives one frame: it applies the camera/DPI view
// transform, paints the scene background, optionally culls off-screen
// nodes against a geometry cache, and otherwise hands every top-level node
// to pkg/raster. It also owns the scene picture cache: a camera-independent
// raster of the whole scene that subsequent frames can replay under a
// different camera instead of re-walking the node tree.
package renderer

import (
	"image"

	"github.com/grida-canvas/canvas-core/pkg/geometry"
	"github.com/grida-canvas/canvas-core/pkg/paint"
	"github.com/grida-canvas/canvas-core/pkg/raster"
	"github.com/grida-canvas/canvas-core/pkg/scene"
	"github.com/grida-canvas/canvas-core/pkg/surface"
)

// Renderer walks a Scene once per frame.
type Renderer struct {
	Camera Camera
	DPI    float64

	Background *paint.CGColor

	// VisibilityCulling skips top-level nodes (and their subtrees) whose
	// cached world-space bounds, expanded by CullMargin, do not intersect
	// the current camera viewport.
	VisibilityCulling bool
	CullMargin        float64

	geometryCache map[scene.NodeID]geometry.Rect

	cached       *image.NRGBA
	cachedBounds geometry.Rect
}

// NewRenderer constructs a Renderer at zoom 1, DPI 1, no background.
func NewRenderer() *Renderer {
	return &Renderer{Camera: Camera{Zoom: 1}, DPI: 1, geometryCache: make(map[scene.NodeID]geometry.Rect)}
}

func (r *Renderer) dpi() float64 {
	if r.DPI <= 0 {
		return 1
	}
	return r.DPI
}

// RenderScene draws sc onto canvas under the renderer's current Camera and
// DPI. If a scene picture is cached (see CacheScene), it replays that
// picture under the new camera instead of re-rasterizing every node.
func (r *Renderer) RenderScene(canvas surface.Canvas, sc *scene.Scene, env *raster.Env) {
	w, h := canvas.Size()
	canvas.Save()
	defer canvas.Restore()

	if r.Background != nil {
		canvas.DrawRect(geometry.RectFromLTWH(0, 0, float64(w), float64(h)), *r.Background, paint.BlendModeSrcOver)
	}

	dpi := r.dpi()
	view := r.Camera.Matrix()
	canvas.Scale(dpi, dpi)
	canvas.Concat(view)

	if r.cached != nil {
		canvas.DrawImage(r.cached, r.cachedBounds)
		return
	}

	viewport, ok := r.sceneViewport(w, h, dpi, view)
	for _, id := range sc.Children {
		if r.VisibilityCulling && ok {
			bounds := r.nodeBounds(sc.Repo, id)
			if !bounds.Inflate(r.CullMargin).Intersects(viewport) {
				continue
			}
		}
		raster.RasterizeNode(canvas, sc.Repo, id, env)
	}
}

// sceneViewport maps the canvas's pixel rectangle back into scene-local
// coordinates (inverting DPI*camera), the frame nodeBounds results live in.
func (r *Renderer) sceneViewport(w, h int, dpi float64, view geometry.AffineTransform) (geometry.Rect, bool) {
	full := geometry.AffineTransform{SX: dpi, SY: dpi}.Mul(view)
	inv, ok := full.Invert()
	if !ok {
		return geometry.Rect{}, false
	}
	return inv.TransformRect(geometry.RectFromLTWH(0, 0, float64(w), float64(h))), true
}

// nodeBounds returns id's subtree bounds in its parent scope's coordinate
// frame (i.e. the frame sc.Children lives in, for a top-level id), memoized
// per id until InvalidateGeometryCache is called.
func (r *Renderer) nodeBounds(repo *scene.NodeRepository, id scene.NodeID) geometry.Rect {
	if b, ok := r.geometryCache[id]; ok {
		return b
	}
	n, ok := repo.Get(id)
	if !ok {
		return geometry.Rect{}
	}
	bounds := raster.LocalBounds(n)
	if n.IsContainer() {
		for _, child := range n.Container.Children {
			bounds = bounds.Union(r.nodeBounds(repo, child))
		}
	}
	world := n.Style.Transform.TransformRect(bounds)
	r.geometryCache[id] = world
	return world
}

// InvalidateGeometryCache drops every cached node bounds, forcing the next
// RenderScene (with VisibilityCulling on) to recompute them. Call this
// after any structural or transform edit to the scene.
func (r *Renderer) InvalidateGeometryCache() {
	r.geometryCache = make(map[scene.NodeID]geometry.Rect)
}

// CacheScene rasterizes sc once at the given logical size with an identity
// camera and DPI 1, and stores the result as a replayable picture: until
// InvalidateCache is called, RenderScene redraws this cached raster
// (transformed by whatever camera/DPI is current) instead of walking the
// scene graph.
func (r *Renderer) CacheScene(sc *scene.Scene, env *raster.Env, width, height int) {
	offscreen := surface.NewSoftwareCanvas(width, height)
	for _, id := range sc.Children {
		raster.RasterizeNode(offscreen, sc.Repo, id, env)
	}
	r.cached = offscreen.Snapshot(geometry.RectFromLTWH(0, 0, float64(width), float64(height)))
	r.cachedBounds = geometry.RectFromLTWH(0, 0, float64(width), float64(height))
}

// InvalidateCache drops the scene picture cache so the next RenderScene
// walks the scene graph directly again.
func (r *Renderer) InvalidateCache() {
	r.cached = nil
}
