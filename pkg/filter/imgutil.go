package filter

import "image/color"

func rgbaOf(r, g, b, a uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}

func clamp01f(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// pixelAt returns straight-alpha NRGBA components as float64 in [0,255],
// returning zero for out-of-bounds coordinates (transparent black, the
// SVG filter convention for sampling outside an image's bounds).
func pixelAt(img Image, x, y int) (r, g, b, a float64) {
	if img == nil {
		return 0, 0, 0, 0
	}
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return 0, 0, 0, 0
	}
	i := img.PixOffset(x, y)
	px := img.Pix[i : i+4 : i+4]
	return float64(px[0]), float64(px[1]), float64(px[2]), float64(px[3])
}
