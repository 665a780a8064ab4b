package raster

import (
	"math"

	"github.com/grida-canvas/canvas-core/pkg/geometry"
	"github.com/grida-canvas/canvas-core/pkg/scene"
	"github.com/grida-canvas/canvas-core/pkg/surface"
	"github.com/grida-canvas/canvas-core/pkg/svgpath"
)

// LocalBounds returns a node's untransformed bounding rect in its own local
// coordinate space, used for paint gradient mapping, clip shapes, and
// effect placement.
func LocalBounds(n scene.Node) geometry.Rect {
	switch n.Type {
	case scene.NodeLine:
		return geometry.Rect{Left: 0, Top: 0, Right: n.Geometry.Size.Width, Bottom: n.Geometry.Size.Height}
	default:
		return geometry.RectFromLTWH(0, 0, n.Geometry.Size.Width, n.Geometry.Size.Height)
	}
}

// ShapePath builds the fillable/strokeable outline for a node, or nil for
// node types with no geometry of their own (Group, Image, TextSpan — those
// draw via their own paths in the rasterizer).
func ShapePath(repo *scene.NodeRepository, n scene.Node) *surface.Path {
	bounds := LocalBounds(n)
	switch n.Type {
	case scene.NodeRectangle, scene.NodeContainer:
		rr := geometry.RRect{Rect: bounds, Corners: n.Geometry.CornerRadius}
		return surface.RRectPath(rr, n.Geometry.CornerSmoothing)
	case scene.NodeEllipse:
		return ellipsePath(bounds)
	case scene.NodeLine:
		p := &surface.Path{}
		p.MoveTo(geometry.Offset{})
		p.LineTo(geometry.Offset{X: bounds.Right, Y: bounds.Bottom})
		return p
	case scene.NodeRegularPolygon:
		return regularPolygonPath(bounds, n.Geometry.PointCount, 0)
	case scene.NodeRegularStarPolygon:
		return regularPolygonPath(bounds, n.Geometry.PointCount, n.Geometry.InnerRadius)
	case scene.NodeVector, scene.NodeSVGPath:
		p, err := svgpath.Parse(n.Geometry.PathData)
		if err != nil {
			return nil
		}
		return p
	case scene.NodeBooleanOperation:
		return evalBooleanOp(repo, n)
	default:
		return nil
	}
}

// ellipsePath approximates an ellipse inscribed in bounds with four cubic
// arcs, using the same kappa constant as the rounded-rect corner builder.
func ellipsePath(bounds geometry.Rect) *surface.Path {
	const kappa = 0.5522847498307936
	cx, cy := bounds.Center().X, bounds.Center().Y
	rx, ry := bounds.Width()/2, bounds.Height()/2
	ox, oy := rx*kappa, ry*kappa

	p := &surface.Path{}
	p.MoveTo(geometry.Offset{X: cx + rx, Y: cy})
	p.CubicTo(
		geometry.Offset{X: cx + rx, Y: cy + oy},
		geometry.Offset{X: cx + ox, Y: cy + ry},
		geometry.Offset{X: cx, Y: cy + ry},
	)
	p.CubicTo(
		geometry.Offset{X: cx - ox, Y: cy + ry},
		geometry.Offset{X: cx - rx, Y: cy + oy},
		geometry.Offset{X: cx - rx, Y: cy},
	)
	p.CubicTo(
		geometry.Offset{X: cx - rx, Y: cy - oy},
		geometry.Offset{X: cx - ox, Y: cy - ry},
		geometry.Offset{X: cx, Y: cy - ry},
	)
	p.CubicTo(
		geometry.Offset{X: cx + ox, Y: cy - ry},
		geometry.Offset{X: cx + rx, Y: cy - oy},
		geometry.Offset{X: cx + rx, Y: cy},
	)
	p.Close()
	return p
}

// regularPolygonPath builds an n-gon (innerRatio == 0) or a 2n-point star
// (innerRatio in (0,1], alternating outer/inner radius) inscribed in bounds,
// point 0 pointing straight up.
func regularPolygonPath(bounds geometry.Rect, count int, innerRatio float64) *surface.Path {
	if count < 3 {
		count = 3
	}
	cx, cy := bounds.Center().X, bounds.Center().Y
	outerR := math.Min(bounds.Width(), bounds.Height()) / 2
	innerR := outerR * innerRatio

	star := innerRatio > 0
	points := count
	if star {
		points = count * 2
	}

	p := &surface.Path{}
	for i := 0; i < points; i++ {
		angle := float64(i)*2*math.Pi/float64(points) - math.Pi/2
		r := outerR
		if star && i%2 == 1 {
			r = innerR
		}
		pt := geometry.Offset{X: cx + r*math.Cos(angle), Y: cy + r*math.Sin(angle)}
		if i == 0 {
			p.MoveTo(pt)
		} else {
			p.LineTo(pt)
		}
	}
	p.Close()
	return p
}
