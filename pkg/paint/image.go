package paint

import (
	"image"
	"image/color"
	"math"

	"github.com/grida-canvas/canvas-core/pkg/geometry"
	"golang.org/x/image/draw"
)

// Orient applies a lossless quarter_turns rotation (normalized mod 4) to
// src, swapping width/height on odd turns, matching spec §4.2's decode
// pipeline step "decode -> apply quarter_turns".
func Orient(src image.Image, quarterTurns int) *image.NRGBA {
	turns := NormalizeQuarterTurns(quarterTurns)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	ow, oh := w, h
	if turns%2 == 1 {
		ow, oh = h, w
	}
	dst := image.NewNRGBA(image.Rect(0, 0, ow, oh))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			var dx, dy int
			switch turns {
			case 0:
				dx, dy = x, y
			case 1: // 90 clockwise
				dx, dy = ow-1-y, x
			case 2:
				dx, dy = w-1-x, h-1-y
			case 3: // 270 clockwise
				dx, dy = y, oh-1-x
			}
			dst.SetNRGBA(dx, dy, c)
		}
	}
	return dst
}

// Placement resolves where and how an oriented image is drawn within box,
// returning the affine transform from image-local pixel space to box
// space, per the ImagePaintFit variant.
func Placement(fit ImagePaintFit, imageSize, box geometry.Size, align geometry.Alignment) geometry.AffineTransform {
	switch fit.Kind {
	case FitTransform:
		return fit.Transform
	case FitTile:
		scale := fit.Tile.Scale
		if scale <= 0 {
			scale = 1
		}
		return geometry.AffineTransform{SX: scale, SY: scale}
	default:
		return geometry.ResolveBoxFit(fit.BoxFit, imageSize, box, align)
	}
}

// ApplyImageFilters applies the seven-scalar per-paint color adjustment
// record to src, returning a new image. Each scalar is in [-1,1] and 0 is
// a no-op; IsIdentity short-circuits to avoid an allocation.
func ApplyImageFilters(src image.Image, f ImageFilters) image.Image {
	if f.IsIdentity() {
		return src
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			r, g, bch := adjustPixel(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, f)
			dst.SetNRGBA(x, y, color.NRGBA{R: toByte(r), G: toByte(g), B: toByte(bch), A: c.A})
		}
	}
	return dst
}

// adjustPixel implements exposure, contrast, saturation, temperature, tint,
// highlights, and shadows as independent scalar transforms applied in
// sequence, each scaled by its [-1,1] magnitude.
func adjustPixel(r, g, b float64, f ImageFilters) (float64, float64, float64) {
	// Exposure: multiplicative stop adjustment, 2^(2*exposure) (±2 stops
	// at ±1).
	if f.Exposure != 0 {
		gain := math.Pow(2, f.Exposure*2)
		r, g, b = r*gain, g*gain, b*gain
	}
	// Contrast: pivot around mid-gray.
	if f.Contrast != 0 {
		k := 1 + f.Contrast
		r = (r-0.5)*k + 0.5
		g = (g-0.5)*k + 0.5
		b = (b-0.5)*k + 0.5
	}
	// Saturation: lerp toward luminance.
	if f.Saturation != 0 {
		l := 0.2126*r + 0.7152*g + 0.0722*b
		k := 1 + f.Saturation
		r = l + (r-l)*k
		g = l + (g-l)*k
		b = l + (b-l)*k
	}
	// Temperature: push toward blue (negative) or orange (positive).
	if f.Temperature != 0 {
		r += f.Temperature * 0.15
		b -= f.Temperature * 0.15
	}
	// Tint: push toward magenta (positive) or green (negative).
	if f.Tint != 0 {
		g -= f.Tint * 0.15
		r += f.Tint * 0.07
		b += f.Tint * 0.07
	}
	// Highlights/shadows: tone-region-masked brightness lifts.
	l := 0.2126*r + 0.7152*g + 0.0722*b
	if f.Highlights != 0 {
		mask := smoothstep(0.5, 1.0, l)
		adj := f.Highlights * 0.3 * mask
		r, g, b = r+adj, g+adj, b+adj
	}
	if f.Shadows != 0 {
		mask := 1 - smoothstep(0.0, 0.5, l)
		adj := f.Shadows * 0.3 * mask
		r, g, b = r+adj, g+adj, b+adj
	}
	return clamp01(r), clamp01(g), clamp01(b)
}

func smoothstep(edge0, edge1, x float64) float64 {
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// Resample scales src into an image of size dstSize using bilinear
// filtering, the default quality for fit/tile placement.
func Resample(src image.Image, dstSize geometry.Size) *image.NRGBA {
	w, h := int(math.Round(dstSize.Width)), int(math.Round(dstSize.Height))
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

// TilePlacement computes the top-left offsets (within box, possibly
// negative/overflowing) of every tile copy needed to cover box for the
// given tile size and repeat axis, tiles centered in the box per spec.
func TilePlacement(box geometry.Size, tileSize geometry.Size, repeat ImageRepeat) []geometry.Offset {
	if tileSize.Width <= 0 || tileSize.Height <= 0 {
		return nil
	}
	var offsets []geometry.Offset
	// Center the first tile, then step by tile size in both directions
	// covering the box, restricted to the repeat axis.
	baseX := box.Width/2 - tileSize.Width/2
	baseY := box.Height/2 - tileSize.Height/2

	xStart, xEnd := 0, 0
	if repeat == RepeatX || repeat == RepeatBoth {
		baseX = math.Mod(baseX, tileSize.Width)
		xStart = int(math.Floor((-baseX) / tileSize.Width))
		xEnd = int(math.Ceil((box.Width - baseX) / tileSize.Width))
	}
	yStart, yEnd := 0, 0
	if repeat == RepeatY || repeat == RepeatBoth {
		baseY = math.Mod(baseY, tileSize.Height)
		yStart = int(math.Floor((-baseY) / tileSize.Height))
		yEnd = int(math.Ceil((box.Height - baseY) / tileSize.Height))
	}
	for iy := yStart; iy <= yEnd; iy++ {
		for ix := xStart; ix <= xEnd; ix++ {
			offsets = append(offsets, geometry.Offset{
				X: baseX + float64(ix)*tileSize.Width,
				Y: baseY + float64(iy)*tileSize.Height,
			})
		}
	}
	if len(offsets) == 0 {
		offsets = append(offsets, geometry.Offset{X: baseX, Y: baseY})
	}
	return offsets
}
