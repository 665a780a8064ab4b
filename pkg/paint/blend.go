package paint

import (
	"fmt"
	"math"
)

// BlendMode controls how a paint composites onto the accumulator beneath it
// in a node's paint stack. Values match Skia's SkBlendMode enum ordering so
// hosts that bridge to a Skia-backed surface need no translation table.
type BlendMode int

const (
	BlendModeClear BlendMode = iota
	BlendModeSrc
	BlendModeDst
	BlendModeSrcOver
	BlendModeDstOver
	BlendModeSrcIn
	BlendModeDstIn
	BlendModeSrcOut
	BlendModeDstOut
	BlendModeSrcATop
	BlendModeDstATop
	BlendModeXor
	BlendModePlus
	BlendModeModulate
	BlendModeScreen
	BlendModeOverlay
	BlendModeDarken
	BlendModeLighten
	BlendModeColorDodge
	BlendModeColorBurn
	BlendModeHardLight
	BlendModeSoftLight
	BlendModeDifference
	BlendModeExclusion
	BlendModeMultiply
	BlendModeHue
	BlendModeSaturation
	BlendModeColor
	BlendModeLuminosity
)

var blendModeNames = []string{
	"clear", "src", "dst", "src_over", "dst_over",
	"src_in", "dst_in", "src_out", "dst_out",
	"src_atop", "dst_atop", "xor", "plus", "modulate",
	"screen", "overlay", "darken", "lighten",
	"color_dodge", "color_burn", "hard_light", "soft_light",
	"difference", "exclusion", "multiply",
	"hue", "saturation", "color", "luminosity",
}

// String returns the Skia-style lowercase snake_case name.
func (m BlendMode) String() string {
	if int(m) < 0 || int(m) >= len(blendModeNames) {
		return fmt.Sprintf("BlendMode(%d)", int(m))
	}
	return blendModeNames[m]
}

// LayerBlendMode is a node's own layer-composition mode: either the group
// blends transparently with the backdrop (PassThrough), or it composites as
// an isolated layer with the given BlendMode.
type LayerBlendMode struct {
	PassThrough bool
	Mode        BlendMode
}

// Isolates reports whether the node must be rendered into an offscreen
// layer before compositing (anything other than PassThrough).
func (l LayerBlendMode) Isolates() bool {
	return !l.PassThrough
}

// srgbToLinear converts a normalized sRGB channel value to linear light.
func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// linearToSrgb converts a linear light channel value back to sRGB.
func linearToSrgb(c float64) float64 {
	if c <= 0.0031308 {
		return c * 12.92
	}
	return 1.055*math.Pow(c, 1/2.4) - 0.055
}
