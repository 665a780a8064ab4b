package paint

import "github.com/grida-canvas/canvas-core/pkg/geometry"

// Kind discriminates the paint variant.
type Kind int

const (
	KindSolid Kind = iota
	KindLinearGradient
	KindRadialGradient
	KindSweepGradient
	KindDiamondGradient
	KindImage
)

// ResourceRefKind distinguishes content-addressed from logical-id resources.
type ResourceRefKind int

const (
	RefHash ResourceRefKind = iota
	RefRID
)

// ResourceRef identifies an image resource either by content hash or by a
// host-assigned logical id.
type ResourceRef struct {
	Kind  ResourceRefKind
	Value string
}

// ImageTile describes the Tile variant of ImagePaintFit.
type ImageTile struct {
	Scale  float64
	Repeat ImageRepeat
}

// ImageRepeat selects which axes an image tile repeats along.
type ImageRepeat int

const (
	RepeatX ImageRepeat = iota
	RepeatY
	RepeatBoth
)

// ImagePaintFitKind discriminates the ImagePaintFit sum.
type ImagePaintFitKind int

const (
	FitBoxFit ImagePaintFitKind = iota
	FitTransform
	FitTile
)

// ImagePaintFit is a closed sum of the three ways an image paint can be
// placed within its box: standard object-fit, an explicit affine, or tiling.
type ImagePaintFit struct {
	Kind      ImagePaintFitKind
	BoxFit    geometry.BoxFit
	Transform geometry.AffineTransform
	Tile      ImageTile
}

// ImageFilters is a per-paint color-adjustment record, all values in
// [-1,1] and defaulting to zero (no change).
type ImageFilters struct {
	Exposure   float64
	Contrast   float64
	Saturation float64
	Temperature float64
	Tint       float64
	Highlights float64
	Shadows    float64
}

// IsIdentity reports whether every filter value is at its neutral default.
func (f ImageFilters) IsIdentity() bool {
	return f == ImageFilters{}
}

// Paint is a single entry in a node's fills or strokes list.
type Paint struct {
	Kind      Kind
	Active    bool
	Opacity   float64 // [0,1]
	BlendMode BlendMode

	// Solid
	Color CGColor

	// Gradients (Linear/Radial/Sweep/Diamond)
	Stops     []GradientStop
	Transform geometry.AffineTransform
	TileMode  TileMode
	XY1, XY2  geometry.Alignment // Linear only

	// Image
	Image          ResourceRef
	QuarterTurns   int
	Alignment      geometry.Alignment
	Fit            ImagePaintFit
	Filters        ImageFilters
}

// Visible reports whether the paint should be considered at all: inactive
// paints and fully transparent-via-opacity paints are prunable with no
// visual difference (testable property #6).
func (p Paint) Visible() bool {
	if !p.Active || p.Opacity <= 0 {
		return false
	}
	if p.Kind == KindSolid && p.Color.A() == 0 {
		return false
	}
	return true
}

// EffectiveColor folds the paint's scalar Opacity into the solid color's
// alpha channel, so downstream compositing applies opacity exactly once
// (spec §9 Open Question (b)).
func (p Paint) EffectiveColor() CGColor {
	return p.Color.WithOpacity(p.Opacity)
}

// gradientKindOf maps a paint Kind to its GradientKind, for the four
// gradient variants; callers must not invoke this for KindSolid/KindImage.
func (p Paint) gradientKindOf() GradientKind {
	switch p.Kind {
	case KindRadialGradient:
		return GradientRadial
	case KindSweepGradient:
		return GradientSweep
	case KindDiamondGradient:
		return GradientDiamond
	default:
		return GradientLinear
	}
}

// SampleAt evaluates the paint's color at local point p within bounds (both
// in the node's own local coordinate space, pre-world-transform). Image
// paints return ColorTransparent here; the rasterizer samples image pixels
// directly since that requires decoded image data this package does not own.
func (p Paint) SampleAt(point geometry.Offset, bounds geometry.Rect) CGColor {
	if p.Kind == KindSolid {
		return p.EffectiveColor()
	}
	if p.Kind == KindImage {
		return ColorTransparent
	}
	geo := GradientGeometry{Kind: p.gradientKindOf(), XY1: p.XY1, XY2: p.XY2, Transform: p.Transform}
	t := geo.ParamAt(point, bounds)
	t, ok := applyTileMode(t, p.TileMode)
	if !ok {
		return ColorTransparent
	}
	c := SampleGradient(SortStops(p.Stops), t)
	return c.WithOpacity(p.Opacity)
}

// NormalizeQuarterTurns reduces an arbitrary integer into {0,1,2,3}.
func NormalizeQuarterTurns(n int) int {
	n %= 4
	if n < 0 {
		n += 4
	}
	return n
}

// Paints is an ordered fill or stroke stack. Index 0 paints first; the
// last visible paint is topmost.
type Paints []Paint

// Visible returns the sublist of paints that should actually be drawn,
// in draw order.
func (ps Paints) Visible() Paints {
	out := make(Paints, 0, len(ps))
	for _, p := range ps {
		if p.Visible() {
			out = append(out, p)
		}
	}
	return out
}

// CompositeSolid composites the stack's solid-colored entries (the common
// fast path used by tests and simple fills) starting from transparent,
// returning the single resulting color. Gradient/image paints are handled
// by the rasterizer directly since they are not representable as a single
// color; this helper exists for nodes whose entire stack is solid fills.
func (ps Paints) CompositeSolid() CGColor {
	acc := ColorTransparent
	for _, p := range ps.Visible() {
		if p.Kind != KindSolid {
			continue
		}
		acc = Composite(p.EffectiveColor(), acc, p.BlendMode)
	}
	return acc
}
