package geometry

import "math"

// AffineTransform is a 2x3 row-major affine matrix:
//
//	| SX  KX  TX |
//	| KY  SY  TY |
//
// applied to a column vector (x, y, 1).
type AffineTransform struct {
	SX, KX, TX float64
	KY, SY, TY float64
}

// Identity returns the identity transform.
func Identity() AffineTransform {
	return AffineTransform{SX: 1, SY: 1}
}

// Translation returns a pure-translation transform.
func Translation(dx, dy float64) AffineTransform {
	return AffineTransform{SX: 1, SY: 1, TX: dx, TY: dy}
}

// ScaleTransform returns a pure-scale transform about the origin.
func ScaleTransform(sx, sy float64) AffineTransform {
	return AffineTransform{SX: sx, SY: sy}
}

// RotationRadians returns a pure-rotation transform about the origin.
func RotationRadians(theta float64) AffineTransform {
	c, s := math.Cos(theta), math.Sin(theta)
	return AffineTransform{SX: c, KX: -s, KY: s, SY: c}
}

// Apply transforms a point by the matrix.
func (m AffineTransform) Apply(p Offset) Offset {
	return Offset{
		X: m.SX*p.X + m.KX*p.Y + m.TX,
		Y: m.KY*p.X + m.SY*p.Y + m.TY,
	}
}

// ApplyVector transforms a vector (ignoring translation) by the matrix.
func (m AffineTransform) ApplyVector(v Offset) Offset {
	return Offset{X: m.SX*v.X + m.KX*v.Y, Y: m.KY*v.X + m.SY*v.Y}
}

// Mul returns the composed transform m*other, i.e. applying other first,
// then m.
func (m AffineTransform) Mul(other AffineTransform) AffineTransform {
	return AffineTransform{
		SX: m.SX*other.SX + m.KX*other.KY,
		KX: m.SX*other.KX + m.KX*other.SY,
		TX: m.SX*other.TX + m.KX*other.TY + m.TX,
		KY: m.KY*other.SX + m.SY*other.KY,
		SY: m.KY*other.KX + m.SY*other.SY,
		TY: m.KY*other.TX + m.SY*other.TY + m.TY,
	}
}

// Determinant returns the determinant of the 2x2 linear part.
func (m AffineTransform) Determinant() float64 {
	return m.SX*m.SY - m.KX*m.KY
}

// Invert returns the inverse transform. ok is false when the matrix is
// singular (zero determinant), in which case the identity is returned.
func (m AffineTransform) Invert() (AffineTransform, bool) {
	det := m.Determinant()
	if det == 0 {
		return Identity(), false
	}
	inv := 1 / det
	sx := m.SY * inv
	kx := -m.KX * inv
	ky := -m.KY * inv
	sy := m.SX * inv
	tx := -(sx*m.TX + kx*m.TY)
	ty := -(ky*m.TX + sy*m.TY)
	return AffineTransform{SX: sx, KX: kx, TX: tx, KY: ky, SY: sy, TY: ty}, true
}

// TransformRect returns the axis-aligned bounding box of rect after being
// transformed by m (the four corners are transformed and re-bounded).
func (m AffineTransform) TransformRect(r Rect) Rect {
	corners := [4]Offset{
		m.Apply(Offset{X: r.Left, Y: r.Top}),
		m.Apply(Offset{X: r.Right, Y: r.Top}),
		m.Apply(Offset{X: r.Right, Y: r.Bottom}),
		m.Apply(Offset{X: r.Left, Y: r.Bottom}),
	}
	out := Rect{Left: corners[0].X, Top: corners[0].Y, Right: corners[0].X, Bottom: corners[0].Y}
	for _, c := range corners[1:] {
		out.Left = math.Min(out.Left, c.X)
		out.Top = math.Min(out.Top, c.Y)
		out.Right = math.Max(out.Right, c.X)
		out.Bottom = math.Max(out.Bottom, c.Y)
	}
	return out
}

// BoxFit describes standard object-fit placement semantics for an image
// inside a destination box.
type BoxFit int

const (
	// BoxFitContain scales uniformly so the whole source fits inside the box.
	BoxFitContain BoxFit = iota
	// BoxFitCover scales uniformly so the box is fully covered, cropping overflow.
	BoxFitCover
	// BoxFitFill stretches non-uniformly to exactly fill the box.
	BoxFitFill
	// BoxFitNone renders the source at its intrinsic size, unscaled.
	BoxFitNone
)

// ResolveBoxFit computes the affine transform that maps a source rect of
// size src into box according to fit and alignment. Degenerate (zero or
// negative) sizes yield the identity transform.
func ResolveBoxFit(fit BoxFit, src, box Size, align Alignment) AffineTransform {
	if src.IsEmpty() || box.IsEmpty() {
		return Identity()
	}
	var sx, sy float64
	switch fit {
	case BoxFitFill:
		sx = box.Width / src.Width
		sy = box.Height / src.Height
	case BoxFitNone:
		sx, sy = 1, 1
	case BoxFitCover:
		s := math.Max(box.Width/src.Width, box.Height/src.Height)
		sx, sy = s, s
	default: // BoxFitContain
		s := math.Min(box.Width/src.Width, box.Height/src.Height)
		sx, sy = s, s
	}
	scaledW, scaledH := src.Width*sx, src.Height*sy
	u, v := align.UV()
	tx := (box.Width - scaledW) * u
	ty := (box.Height - scaledH) * v
	return AffineTransform{SX: sx, SY: sy, TX: tx, TY: ty}
}
