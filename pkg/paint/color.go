// Package paint implements the color and paint model: solid colors, the four
// gradient kinds, image paint with placement and per-paint image filters,
// and the blend-mode compositing rule used within a node's paint stack.
package paint

// CGColor is a straight-alpha sRGB color with 8 bits per channel, stored as
// packed ARGB (0xAARRGGBB). Alpha is not premultiplied at the model level;
// premultiplication, if needed, happens in the rasterizer.
type CGColor uint32

// RGBA constructs a CGColor from red, green, blue, alpha byte components.
func RGBA(r, g, b, a uint8) CGColor {
	return CGColor(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB constructs an opaque CGColor.
func RGB(r, g, b uint8) CGColor {
	return RGBA(r, g, b, 0xFF)
}

// R returns the red channel.
func (c CGColor) R() uint8 { return uint8(c >> 16) }

// G returns the green channel.
func (c CGColor) G() uint8 { return uint8(c >> 8) }

// B returns the blue channel.
func (c CGColor) B() uint8 { return uint8(c) }

// A returns the alpha channel.
func (c CGColor) A() uint8 { return uint8(c >> 24) }

// RGBAF returns normalized (0.0-1.0) components.
func (c CGColor) RGBAF() (r, g, b, a float64) {
	return float64(c.R()) / 255, float64(c.G()) / 255, float64(c.B()) / 255, float64(c.A()) / 255
}

// WithAlpha returns a copy with the alpha channel replaced.
func (c CGColor) WithAlpha(a uint8) CGColor {
	return CGColor(uint32(a)<<24 | uint32(c)&0x00FFFFFF)
}

// WithOpacity returns a copy with alpha scaled by opacity (clamped to [0,1]).
// This is the operation the paint-opacity Open Question (spec §9(b)) resolves
// to: opacity is folded into the stored alpha channel before compositing, so
// blend_mode never double-applies it.
func (c CGColor) WithOpacity(opacity float64) CGColor {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return c.WithAlpha(uint8(float64(c.A()) * opacity))
}

// Common colors.
var (
	ColorTransparent = CGColor(0x00000000)
	ColorBlack       = RGB(0, 0, 0)
	ColorWhite       = RGB(255, 255, 255)
)
