package raster

import (
	"github.com/grida-canvas/canvas-core/pkg/geometry"
	"github.com/grida-canvas/canvas-core/pkg/paint"
	"github.com/grida-canvas/canvas-core/pkg/scene"
	"github.com/grida-canvas/canvas-core/pkg/surface"
)

// strokeBounds adjusts a rectangle-ish node's fill geometry into the
// geometry its stroke should actually be drawn against, per StrokeAlign:
// Inside contracts the fill rect inward by half the stroke width (so the
// stroke centerline sits on the original edge, and gg's centered stroke
// then paints only the inner half), Outside expands it the same amount
// outward, Center leaves it unchanged.
func strokeBounds(bounds geometry.Rect, align scene.StrokeAlign, width float64) geometry.Rect {
	switch align {
	case scene.StrokeInside:
		return bounds.Inflate(-width / 2)
	case scene.StrokeOutside:
		return bounds.Inflate(width / 2)
	default:
		return bounds
	}
}

func strokeCornerRadius(c geometry.RectangularCornerRadius, align scene.StrokeAlign, width float64) geometry.RectangularCornerRadius {
	switch align {
	case scene.StrokeInside:
		return c.Inflate(-width / 2)
	case scene.StrokeOutside:
		return c.Inflate(width / 2)
	default:
		return c
	}
}

// strokePaints composites a node's visible Strokes stack along its stroke
// outline, adjusted for StrokeAlign. Gradient/image strokes are not
// supported by the software canvas's line rasterizer (gg strokes solid
// colors only); gradient entries fall back to the average of their stop
// colors, and image entries (which carry no stops) draw nothing.
func strokePaints(canvas surface.Canvas, n scene.Node, bounds geometry.Rect, nodeOpacity float64) {
	if n.Style.StrokeWidth <= 0 {
		return
	}
	path := strokeShapePath(n, bounds)
	if path == nil {
		return
	}
	for _, p := range n.Style.Strokes.Visible() {
		c := strokeColor(p).WithOpacity(nodeOpacity)
		canvas.StrokePath(path, c, n.Style.StrokeWidth, p.BlendMode)
	}
}

func strokeColor(p paint.Paint) paint.CGColor {
	if p.Kind == paint.KindSolid {
		return p.EffectiveColor()
	}
	if len(p.Stops) == 0 {
		return paint.ColorTransparent
	}
	var r, g, b, a int
	for _, s := range p.Stops {
		r += int(s.Color.R())
		g += int(s.Color.G())
		b += int(s.Color.B())
		a += int(s.Color.A())
	}
	n := len(p.Stops)
	return paint.RGBA(uint8((r+n/2)/n), uint8((g+n/2)/n), uint8((b+n/2)/n), uint8((a+n/2)/n))
}

func strokeShapePath(n scene.Node, bounds geometry.Rect) *surface.Path {
	adjusted := strokeBounds(bounds, n.Style.StrokeAlign, n.Style.StrokeWidth)
	switch n.Type {
	case scene.NodeRectangle, scene.NodeContainer:
		radii := strokeCornerRadius(n.Geometry.CornerRadius, n.Style.StrokeAlign, n.Style.StrokeWidth)
		return surface.RRectPath(geometry.RRect{Rect: adjusted, Corners: radii}, n.Geometry.CornerSmoothing)
	case scene.NodeEllipse:
		return ellipsePath(adjusted)
	default:
		return ShapePathFromBounds(n, bounds)
	}
}

// ShapePathFromBounds is the stroke fallback for node types whose outline
// does not scale with StrokeAlign inflate/deflate (lines, vectors, polygons,
// booleans): the stroke runs along the unadjusted fill outline.
func ShapePathFromBounds(n scene.Node, bounds geometry.Rect) *surface.Path {
	switch n.Type {
	case scene.NodeLine:
		p := &surface.Path{}
		p.MoveTo(geometry.Offset{})
		p.LineTo(geometry.Offset{X: bounds.Right, Y: bounds.Bottom})
		return p
	case scene.NodeRegularPolygon:
		return regularPolygonPath(bounds, n.Geometry.PointCount, 0)
	case scene.NodeRegularStarPolygon:
		return regularPolygonPath(bounds, n.Geometry.PointCount, n.Geometry.InnerRadius)
	default:
		return nil
	}
}
