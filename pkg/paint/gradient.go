package paint

import (
	"math"
	"sort"

	"github.com/grida-canvas/canvas-core/pkg/geometry"
)

// TileMode controls how a gradient (or image) samples outside its [0,1]
// parametric range.
type TileMode int

const (
	TileModeClamp TileMode = iota
	TileModeRepeat
	TileModeMirror
	TileModeDecal
)

// GradientStop is an offset/color pair along a gradient's parametric axis.
type GradientStop struct {
	Offset float64 // [0,1]
	Color  CGColor
}

// SortStops returns a copy of stops sorted by Offset ascending. Per spec
// §3, unsorted input is tolerated on the way in but output order is
// unspecified unless sorted, so every sampler sorts before evaluating.
func SortStops(stops []GradientStop) []GradientStop {
	out := make([]GradientStop, len(stops))
	copy(out, stops)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Offset < out[j].Offset })
	return out
}

// applyTileMode maps a parametric t outside [0,1] back into range per mode.
// TileModeDecal signals "outside": callers check the second return.
func applyTileMode(t float64, mode TileMode) (float64, bool) {
	if t >= 0 && t <= 1 {
		return t, true
	}
	switch mode {
	case TileModeRepeat:
		t = t - math.Floor(t)
		return t, true
	case TileModeMirror:
		t = math.Mod(t, 2)
		if t < 0 {
			t += 2
		}
		if t > 1 {
			t = 2 - t
		}
		return t, true
	case TileModeDecal:
		return 0, false
	default: // Clamp
		if t < 0 {
			return 0, true
		}
		return 1, true
	}
}

// SampleGradient evaluates sorted stops at parametric t in [0,1] (already
// tile-mapped by the caller), linearly interpolating in linear light and
// converting back to sRGB, and alpha linearly in straight space.
func SampleGradient(sorted []GradientStop, t float64) CGColor {
	if len(sorted) == 0 {
		return ColorTransparent
	}
	if len(sorted) == 1 || t <= sorted[0].Offset {
		return sorted[0].Color
	}
	last := sorted[len(sorted)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 0; i < len(sorted)-1; i++ {
		a, b := sorted[i], sorted[i+1]
		if t >= a.Offset && t <= b.Offset {
			span := b.Offset - a.Offset
			var f float64
			if span > 0 {
				f = (t - a.Offset) / span
			}
			return lerpColorLinear(a.Color, b.Color, f)
		}
	}
	return last.Color
}

func lerpColorLinear(a, b CGColor, f float64) CGColor {
	ar, ag, ab, aa := a.RGBAF()
	br, bg, bb, ba := b.RGBAF()
	lr := srgbToLinear(ar)*(1-f) + srgbToLinear(br)*f
	lg := srgbToLinear(ag)*(1-f) + srgbToLinear(bg)*f
	lb := srgbToLinear(ab)*(1-f) + srgbToLinear(bb)*f
	la := aa*(1-f) + ba*f
	return RGBA(toByte(linearToSrgb(lr)), toByte(linearToSrgb(lg)), toByte(linearToSrgb(lb)), uint8(math.Round(la*255)))
}

// GradientKind distinguishes the four gradient paint variants.
type GradientKind int

const (
	GradientLinear GradientKind = iota
	GradientRadial
	GradientSweep
	GradientDiamond
)

// GradientGeometry resolves a gradient kind + its local transform against a
// target rect into a parametric t in [0,1] for an arbitrary point. All
// kinds share the unit gradient space: the target rect is mapped to
// [-1,1]^2 (linear) or center (0.5,0.5) radius 0.5 (radial/sweep/diamond).
type GradientGeometry struct {
	Kind      GradientKind
	XY1, XY2  geometry.Alignment // linear only
	Transform geometry.AffineTransform
}

// ParamAt computes the gradient's parametric t (pre tile-mode mapping) for
// point p, expressed in the node's local (pre-transform) coordinate space,
// against bounds.
func (g GradientGeometry) ParamAt(p geometry.Offset, bounds geometry.Rect) float64 {
	// Map bounds to unit space, then undo the gradient-local transform.
	w, h := bounds.Width(), bounds.Height()
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	local := geometry.Offset{X: (p.X - bounds.Left) / w, Y: (p.Y - bounds.Top) / h}
	if inv, ok := g.Transform.Invert(); ok {
		local = inv.Apply(local)
	}

	switch g.Kind {
	case GradientLinear:
		x1, y1 := (g.XY1.X+1)/2, (g.XY1.Y+1)/2
		x2, y2 := (g.XY2.X+1)/2, (g.XY2.Y+1)/2
		dx, dy := x2-x1, y2-y1
		lenSq := dx*dx + dy*dy
		if lenSq == 0 {
			return 0
		}
		return ((local.X-x1)*dx + (local.Y-y1)*dy) / lenSq
	case GradientRadial:
		dx, dy := local.X-0.5, local.Y-0.5
		return math.Hypot(dx, dy) / 0.5
	case GradientDiamond:
		dx, dy := math.Abs(local.X-0.5), math.Abs(local.Y-0.5)
		return (dx + dy) / 0.5
	case GradientSweep:
		dx, dy := local.X-0.5, local.Y-0.5
		angle := math.Atan2(dy, dx) // clockwise from +X axis in screen space (Y-down)
		if angle < 0 {
			angle += 2 * math.Pi
		}
		return angle / (2 * math.Pi)
	default:
		return 0
	}
}
