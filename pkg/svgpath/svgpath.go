// Package svgpath parses SVG path-data strings ("M10 10 L20 20 Z") into the
// cubic/line segment form pkg/surface.Path works with, for Vector and
// SVGPath nodes whose geometry arrives pre-baked from an authoring tool.
package svgpath

import (
	"fmt"
	"math"
	"strconv"

	"github.com/grida-canvas/canvas-core/pkg/geometry"
	"github.com/grida-canvas/canvas-core/pkg/surface"
)

// Parse converts SVG path-data grammar (the "d" attribute contents) into a
// Path, expanding quadratic curves and elliptical arcs into cubic segments
// since that is the only curve primitive surface.Path carries.
func Parse(d string) (*surface.Path, error) {
	toks := tokenize(d)
	p := &surface.Path{}

	var cur, start geometry.Offset
	var lastCtrl geometry.Offset // reflection point for S/T
	var lastCmd byte

	i := 0
	next := func() (float64, bool) {
		if i >= len(toks) {
			return 0, false
		}
		v, err := strconv.ParseFloat(toks[i], 64)
		if err != nil {
			return 0, false
		}
		i++
		return v, true
	}

	for i < len(toks) {
		cmdTok := toks[i]
		var cmd byte
		if len(cmdTok) == 1 && isCommandLetter(cmdTok[0]) {
			cmd = cmdTok[0]
			i++
		} else {
			// Implicit repetition of the previous command.
			cmd = impliedRepeat(lastCmd)
			if cmd == 0 {
				return nil, fmt.Errorf("svgpath: unexpected token %q", cmdTok)
			}
		}

		abs := cmd >= 'A' && cmd <= 'Z'
		switch upper(cmd) {
		case 'M':
			x, ok1 := next()
			y, ok2 := next()
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("svgpath: malformed M")
			}
			pt := resolve(cur, x, y, abs)
			p.MoveTo(pt)
			cur, start = pt, pt
			lastCtrl = pt
		case 'L':
			x, ok1 := next()
			y, ok2 := next()
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("svgpath: malformed L")
			}
			pt := resolve(cur, x, y, abs)
			p.LineTo(pt)
			cur, lastCtrl = pt, pt
		case 'H':
			x, ok := next()
			if !ok {
				return nil, fmt.Errorf("svgpath: malformed H")
			}
			pt := cur
			if abs {
				pt.X = x
			} else {
				pt.X += x
			}
			p.LineTo(pt)
			cur, lastCtrl = pt, pt
		case 'V':
			y, ok := next()
			if !ok {
				return nil, fmt.Errorf("svgpath: malformed V")
			}
			pt := cur
			if abs {
				pt.Y = y
			} else {
				pt.Y += y
			}
			p.LineTo(pt)
			cur, lastCtrl = pt, pt
		case 'C':
			x1, o1 := next()
			y1, o2 := next()
			x2, o3 := next()
			y2, o4 := next()
			x, o5 := next()
			y, o6 := next()
			if !(o1 && o2 && o3 && o4 && o5 && o6) {
				return nil, fmt.Errorf("svgpath: malformed C")
			}
			c1 := resolve(cur, x1, y1, abs)
			c2 := resolve(cur, x2, y2, abs)
			end := resolve(cur, x, y, abs)
			p.CubicTo(c1, c2, end)
			cur, lastCtrl = end, c2
		case 'S':
			x2, o1 := next()
			y2, o2 := next()
			x, o3 := next()
			y, o4 := next()
			if !(o1 && o2 && o3 && o4) {
				return nil, fmt.Errorf("svgpath: malformed S")
			}
			c1 := reflect(lastCtrl, cur)
			c2 := resolve(cur, x2, y2, abs)
			end := resolve(cur, x, y, abs)
			p.CubicTo(c1, c2, end)
			cur, lastCtrl = end, c2
		case 'Q':
			x1, o1 := next()
			y1, o2 := next()
			x, o3 := next()
			y, o4 := next()
			if !(o1 && o2 && o3 && o4) {
				return nil, fmt.Errorf("svgpath: malformed Q")
			}
			ctrl := resolve(cur, x1, y1, abs)
			end := resolve(cur, x, y, abs)
			c1, c2 := quadToCubic(cur, ctrl, end)
			p.CubicTo(c1, c2, end)
			cur, lastCtrl = end, ctrl
		case 'T':
			x, o1 := next()
			y, o2 := next()
			if !(o1 && o2) {
				return nil, fmt.Errorf("svgpath: malformed T")
			}
			ctrl := reflect(lastCtrl, cur)
			end := resolve(cur, x, y, abs)
			c1, c2 := quadToCubic(cur, ctrl, end)
			p.CubicTo(c1, c2, end)
			cur, lastCtrl = end, ctrl
		case 'A':
			rx, o1 := next()
			ry, o2 := next()
			rot, o3 := next()
			largeArc, o4 := next()
			sweep, o5 := next()
			x, o6 := next()
			y, o7 := next()
			if !(o1 && o2 && o3 && o4 && o5 && o6 && o7) {
				return nil, fmt.Errorf("svgpath: malformed A")
			}
			end := resolve(cur, x, y, abs)
			arcToCubics(p, cur, end, rx, ry, rot, largeArc != 0, sweep != 0)
			cur, lastCtrl = end, end
		case 'Z':
			p.Close()
			cur, lastCtrl = start, start
		default:
			return nil, fmt.Errorf("svgpath: unsupported command %q", string(cmd))
		}
		lastCmd = cmd
	}
	return p, nil
}

func resolve(cur geometry.Offset, x, y float64, abs bool) geometry.Offset {
	if abs {
		return geometry.Offset{X: x, Y: y}
	}
	return geometry.Offset{X: cur.X + x, Y: cur.Y + y}
}

// reflect mirrors prevCtrl through pivot, the rule S/T use when the
// preceding command was itself a C/S (or Q/T) pair. After a non-curve
// command (M, L, H, V, A, Z) Parse's lastCtrl equals the current point, so
// the reflection yields that point.
func reflect(prevCtrl, pivot geometry.Offset) geometry.Offset {
	return geometry.Offset{X: 2*pivot.X - prevCtrl.X, Y: 2*pivot.Y - prevCtrl.Y}
}

// quadToCubic raises a quadratic Bezier to the equivalent cubic.
func quadToCubic(start, ctrl, end geometry.Offset) (c1, c2 geometry.Offset) {
	c1 = geometry.Offset{X: start.X + 2.0/3.0*(ctrl.X-start.X), Y: start.Y + 2.0/3.0*(ctrl.Y-start.Y)}
	c2 = geometry.Offset{X: end.X + 2.0/3.0*(ctrl.X-end.X), Y: end.Y + 2.0/3.0*(ctrl.Y-end.Y)}
	return
}

// arcToCubics expands an SVG elliptical arc (F.6 endpoint-to-center form)
// into one or more cubic segments appended directly to p.
func arcToCubics(p *surface.Path, from, to geometry.Offset, rx, ry, rotDeg float64, largeArc, sweep bool) {
	if rx == 0 || ry == 0 || (from == to) {
		p.LineTo(to)
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	phi := rotDeg * math.Pi / 180
	cosPhi, sinPhi := math.Cos(phi), math.Sin(phi)

	dx2, dy2 := (from.X-to.X)/2, (from.Y-to.Y)/2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		scale := math.Sqrt(lambda)
		rx, ry = rx*scale, ry*scale
	}

	sign := -1.0
	if largeArc != sweep {
		sign = 1.0
	}
	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	coef := 0.0
	if den != 0 && num/den > 0 {
		coef = sign * math.Sqrt(num/den)
	}
	cxp := coef * (rx * y1p / ry)
	cyp := coef * -(ry * x1p / rx)

	cx := cosPhi*cxp - sinPhi*cyp + (from.X+to.X)/2
	cy := sinPhi*cxp + cosPhi*cyp + (from.Y+to.Y)/2

	angle := func(ux, uy, vx, vy float64) float64 {
		dot := ux*vx + uy*vy
		lenProd := math.Hypot(ux, uy) * math.Hypot(vx, vy)
		a := math.Acos(clampUnit(dot / lenProd))
		if ux*vy-uy*vx < 0 {
			a = -a
		}
		return a
	}
	theta1 := angle(1, 0, (x1p-cxp)/rx, (y1p-cyp)/ry)
	dTheta := angle((x1p-cxp)/rx, (y1p-cyp)/ry, (-x1p-cxp)/rx, (-y1p-cyp)/ry)
	if !sweep && dTheta > 0 {
		dTheta -= 2 * math.Pi
	} else if sweep && dTheta < 0 {
		dTheta += 2 * math.Pi
	}

	segments := int(math.Ceil(math.Abs(dTheta) / (math.Pi / 2)))
	if segments < 1 {
		segments = 1
	}
	delta := dTheta / float64(segments)
	t := 4.0 / 3.0 * math.Tan(delta/4)

	theta := theta1
	ellipsePoint := func(th float64) geometry.Offset {
		x := rx * math.Cos(th)
		y := ry * math.Sin(th)
		return geometry.Offset{X: cx + cosPhi*x - sinPhi*y, Y: cy + sinPhi*x + cosPhi*y}
	}
	ellipseTangent := func(th float64) geometry.Offset {
		dx := -rx * math.Sin(th)
		dy := ry * math.Cos(th)
		return geometry.Offset{X: cosPhi*dx - sinPhi*dy, Y: sinPhi*dx + cosPhi*dy}
	}

	p1 := ellipsePoint(theta)
	for s := 0; s < segments; s++ {
		theta2 := theta + delta
		p2 := ellipsePoint(theta2)
		tan1 := ellipseTangent(theta)
		tan2 := ellipseTangent(theta2)
		c1 := geometry.Offset{X: p1.X + t*tan1.X, Y: p1.Y + t*tan1.Y}
		c2 := geometry.Offset{X: p2.X - t*tan2.X, Y: p2.Y - t*tan2.Y}
		p.CubicTo(c1, c2, p2)
		theta = theta2
		p1 = p2
	}
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

func isCommandLetter(b byte) bool {
	switch b {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's',
		'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

// impliedRepeat returns the command a bare coordinate pair repeats when no
// new letter is given, per the grammar's "Z never repeats, M repeats as L".
func impliedRepeat(last byte) byte {
	if last == 0 {
		return 0
	}
	if upper(last) == 'M' {
		if last == 'M' {
			return 'L'
		}
		return 'l'
	}
	if upper(last) == 'Z' {
		return 0
	}
	return last
}

// tokenize splits path data into command letters and numbers, handling the
// grammar's comma/whitespace-optional separators and signed-number runs
// packed without separators (e.g. "1.5.5" == "1.5 0.5").
func tokenize(d string) []string {
	var toks []string
	n := len(d)
	i := 0
	for i < n {
		c := d[i]
		switch {
		case c == ' ' || c == ',' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isCommandLetter(c):
			toks = append(toks, string(c))
			i++
		default:
			start := i
			if d[i] == '+' || d[i] == '-' {
				i++
			}
			seenDot := false
			for i < n && (isDigit(d[i]) || (d[i] == '.' && !seenDot)) {
				if d[i] == '.' {
					seenDot = true
				}
				i++
			}
			if i < n && (d[i] == 'e' || d[i] == 'E') {
				i++
				if i < n && (d[i] == '+' || d[i] == '-') {
					i++
				}
				for i < n && isDigit(d[i]) {
					i++
				}
			}
			if i > start {
				toks = append(toks, d[start:i])
			} else {
				i++
			}
		}
	}
	return toks
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
