// Package effect models a node's effect stack: drop/inner shadows, layer
// blur (gaussian or progressive), backdrop blur, and liquid glass.
package effect

import (
	"github.com/grida-canvas/canvas-core/pkg/geometry"
	"github.com/grida-canvas/canvas-core/pkg/paint"
)

// ShadowKind distinguishes drop (outer) from inner shadows.
type ShadowKind int

const (
	ShadowDrop ShadowKind = iota
	ShadowInner
)

// Shadow is one entry in a node's ordered shadow list (FeShadow in the SVG
// filter vocabulary: dx, dy, blur, spread, color).
type Shadow struct {
	Kind   ShadowKind
	DX, DY float64
	Blur   float64
	Spread float64
	Color  paint.CGColor
}

// Sigma converts the shadow's blur radius into a Gaussian sigma, following
// the common blur-radius = 2*sigma convention.
func (s Shadow) Sigma() float64 {
	if s.Blur <= 0 {
		return 0
	}
	return s.Blur * 0.5
}

// BlurKind distinguishes uniform Gaussian blur from a Progressive blur
// whose radius varies linearly across the layer.
type BlurKind int

const (
	BlurGaussian BlurKind = iota
	BlurProgressive
)

// Blur is a layer or backdrop blur effect.
type Blur struct {
	Kind BlurKind

	// Gaussian
	Radius float64

	// Progressive: radius varies linearly from Radius at Start to Radius2
	// at End (both in Alignment coordinates); clamped outside [Start,End].
	Start   geometry.Alignment
	End     geometry.Alignment
	Radius2 float64
}

// RadiusAt returns the (possibly spatially varying) blur radius at the
// normalized point p (in [-1,1]^2 Alignment space, i.e. the same space as
// Start/End). For Gaussian blur the radius is constant.
func (b Blur) RadiusAt(p geometry.Alignment) float64 {
	if b.Kind == BlurGaussian {
		return b.Radius
	}
	dx, dy := b.End.X-b.Start.X, b.End.Y-b.Start.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return b.Radius
	}
	t := ((p.X-b.Start.X)*dx + (p.Y-b.Start.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return b.Radius + (b.Radius2-b.Radius)*t
}

// LiquidGlass is the 5-parameter (6 fields, see spec §4.3 step 10) lensing
// effect applied as a single image-filter stage.
type LiquidGlass struct {
	LightIntensity float64
	LightAngle     float64 // degrees
	Refraction     float64
	Depth          float64
	Dispersion     float64
	BlurRadius     float64
}

// LayerEffects is the ordered effect stack carried by every node.
type LayerEffects struct {
	Shadows      []Shadow // ordered; drop and inner may be interleaved in storage
	LayerBlur    *Blur
	BackdropBlur *Blur
	LiquidGlass  *LiquidGlass
}

// DropShadows returns the Drop-kind shadows in storage order.
func (e LayerEffects) DropShadows() []Shadow {
	return e.filter(ShadowDrop)
}

// InnerShadows returns the Inner-kind shadows in storage order.
func (e LayerEffects) InnerShadows() []Shadow {
	return e.filter(ShadowInner)
}

func (e LayerEffects) filter(kind ShadowKind) []Shadow {
	var out []Shadow
	for _, s := range e.Shadows {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// IsEmpty reports whether the effect stack does nothing at all.
func (e LayerEffects) IsEmpty() bool {
	return len(e.Shadows) == 0 && e.LayerBlur == nil && e.BackdropBlur == nil && e.LiquidGlass == nil
}
