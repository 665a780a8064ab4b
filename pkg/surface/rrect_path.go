package surface

import "github.com/grida-canvas/canvas-core/pkg/geometry"

// kappa is the cubic-bezier control-point ratio that best approximates a
// quarter circle.
const kappa = 0.5522847498307936

// RRectPath builds a clockwise rounded-rectangle path from an RRect. When
// every corner radius is zero the result is a plain rectangle outline.
// CornerSmoothing moves the control points toward the corner (kappa scaled
// by up to 1.4),
// approximating the G2-continuous "squircle" blend in proportion to its
// [0,1] value; 0 reproduces a plain circular arc.
func RRectPath(rr geometry.RRect, smoothing geometry.CornerSmoothing) *Path {
	r := rr.Rect
	c := rr.Corners
	s := float64(smoothing.Clamp())
	k := kappa * (1 + 0.4*s)

	p := &Path{}
	p.MoveTo(geometry.Offset{X: r.Left + c.TopLeft.RX, Y: r.Top})
	p.LineTo(geometry.Offset{X: r.Right - c.TopRight.RX, Y: r.Top})
	arcCorner(p, geometry.Offset{X: r.Right, Y: r.Top}, c.TopRight, k, 0)
	p.LineTo(geometry.Offset{X: r.Right, Y: r.Bottom - c.BottomRight.RY})
	arcCorner(p, geometry.Offset{X: r.Right, Y: r.Bottom}, c.BottomRight, k, 1)
	p.LineTo(geometry.Offset{X: r.Left + c.BottomLeft.RX, Y: r.Bottom})
	arcCorner(p, geometry.Offset{X: r.Left, Y: r.Bottom}, c.BottomLeft, k, 2)
	p.LineTo(geometry.Offset{X: r.Left, Y: r.Top + c.TopLeft.RY})
	arcCorner(p, geometry.Offset{X: r.Left, Y: r.Top}, c.TopLeft, k, 3)
	p.Close()
	return p
}

// arcCorner emits a cubic approximation of the quarter-circle arc swept
// into corner (identified by quadrant 0=TR,1=BR,2=BL,3=TL), from the point
// already at the path cursor to the corner's other tangent point.
func arcCorner(p *Path, corner geometry.Offset, radius geometry.Radius, k float64, quadrant int) {
	if radius.RX == 0 && radius.RY == 0 {
		p.LineTo(corner)
		return
	}
	var c1, c2, end geometry.Offset
	switch quadrant {
	case 0: // top-right: coming from the top edge, ending on the right edge
		c1 = geometry.Offset{X: corner.X - radius.RX*(1-k), Y: corner.Y}
		c2 = geometry.Offset{X: corner.X, Y: corner.Y + radius.RY*(1-k)}
		end = geometry.Offset{X: corner.X, Y: corner.Y + radius.RY}
	case 1: // bottom-right
		c1 = geometry.Offset{X: corner.X, Y: corner.Y - radius.RY*(1-k)}
		c2 = geometry.Offset{X: corner.X - radius.RX*(1-k), Y: corner.Y}
		end = geometry.Offset{X: corner.X - radius.RX, Y: corner.Y}
	case 2: // bottom-left
		c1 = geometry.Offset{X: corner.X + radius.RX*(1-k), Y: corner.Y}
		c2 = geometry.Offset{X: corner.X, Y: corner.Y - radius.RY*(1-k)}
		end = geometry.Offset{X: corner.X, Y: corner.Y - radius.RY}
	default: // top-left
		c1 = geometry.Offset{X: corner.X, Y: corner.Y + radius.RY*(1-k)}
		c2 = geometry.Offset{X: corner.X + radius.RX*(1-k), Y: corner.Y}
		end = geometry.Offset{X: corner.X + radius.RX, Y: corner.Y}
	}
	p.CubicTo(c1, c2, end)
}
