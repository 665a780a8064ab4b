package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/grida-canvas/canvas-core/pkg/geometry"
	"github.com/grida-canvas/canvas-core/pkg/paint"
	"github.com/grida-canvas/canvas-core/pkg/surface"
)

// Env carries the host-supplied collaborators the rasterizer needs but does
// not own: decoded image resources and an optional text-layout shaper.
// Both are resolved once by the renderer (spec §4.7) and handed down here.
type Env struct {
	Images   map[paint.ResourceRef]image.Image
	DrawText func(canvas surface.Canvas, style TextDrawStyle)
}

// TextDrawStyle is the minimal set of already-resolved fields a host text
// shaper needs to paint a TextSpan node; pkg/text owns layout, this package
// only forwards the node's style and bounds to whatever shaper is wired in.
type TextDrawStyle struct {
	Text   string
	Bounds geometry.Rect
	Color  paint.CGColor
}

// fillPaints composites a node's visible Fills stack onto canvas within
// path/bounds, in order (spec §4.2: start transparent, composite each
// visible paint, last one topmost).
func fillPaints(canvas surface.Canvas, path *surface.Path, bounds geometry.Rect, paints paint.Paints, nodeOpacity float64, env *Env) {
	for _, p := range paints.Visible() {
		switch p.Kind {
		case paint.KindSolid:
			c := p.EffectiveColor().WithOpacity(nodeOpacity)
			if path != nil {
				canvas.DrawPath(path, c, p.BlendMode)
			} else {
				canvas.DrawRect(bounds, c, p.BlendMode)
			}
		case paint.KindImage:
			drawImagePaint(canvas, path, bounds, p, nodeOpacity, env)
		default:
			drawGradientPaint(canvas, path, bounds, p, nodeOpacity)
		}
	}
}

// drawGradientPaint rasterizes the gradient into an offscreen buffer sized
// to bounds (one CGColor sample per pixel via paint.Paint.SampleAt), then
// clips to path and blits it, since the software canvas has no native
// gradient shader.
func drawGradientPaint(canvas surface.Canvas, path *surface.Path, bounds geometry.Rect, p paint.Paint, nodeOpacity float64) {
	w, h := int(math.Ceil(bounds.Width())), int(math.Ceil(bounds.Height()))
	if w <= 0 || h <= 0 {
		return
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			point := geometry.Offset{X: bounds.Left + float64(x) + 0.5, Y: bounds.Top + float64(y) + 0.5}
			c := p.SampleAt(point, bounds).WithOpacity(nodeOpacity)
			img.SetNRGBA(x, y, color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: c.A()})
		}
	}
	canvas.Save()
	if path != nil {
		canvas.ClipPath(path)
	} else {
		canvas.ClipRect(bounds)
	}
	canvas.DrawImage(img, bounds)
	canvas.Restore()
}

// drawImagePaint decodes, orients, places, filters, and draws an image
// paint entry within path/bounds (spec §4.2 image pipeline).
func drawImagePaint(canvas surface.Canvas, path *surface.Path, bounds geometry.Rect, p paint.Paint, nodeOpacity float64, env *Env) {
	if env == nil || env.Images == nil {
		return
	}
	src, ok := env.Images[p.Image]
	if !ok {
		return
	}
	oriented := paint.Orient(src, p.QuarterTurns)
	filtered := applyOpacity(paint.ApplyImageFilters(oriented, p.Filters), p.Opacity*nodeOpacity)
	boxSize := bounds.Size()
	imgSize := geometry.Size{Width: float64(filtered.Bounds().Dx()), Height: float64(filtered.Bounds().Dy())}
	placement := paint.Placement(p.Fit, imgSize, boxSize, p.Alignment)

	canvas.Save()
	if path != nil {
		canvas.ClipPath(path)
	} else {
		canvas.ClipRect(bounds)
	}
	canvas.Translate(bounds.Left, bounds.Top)
	canvas.Concat(placement)

	if p.Fit.Kind == paint.FitTile {
		tileSize := geometry.Size{Width: imgSize.Width * p.Fit.Tile.Scale, Height: imgSize.Height * p.Fit.Tile.Scale}
		if tileSize.Width <= 0 {
			tileSize = imgSize
		}
		for _, off := range paint.TilePlacement(boxSize, tileSize, p.Fit.Tile.Repeat) {
			canvas.DrawImage(filtered, geometry.RectFromLTWH(off.X, off.Y, imgSize.Width, imgSize.Height))
		}
	} else {
		canvas.DrawImage(filtered, geometry.RectFromLTWH(0, 0, imgSize.Width, imgSize.Height))
	}
	canvas.Restore()
}

// applyOpacity scales an image's alpha channel by opacity; opacity==1 is a
// no-op that returns src unchanged.
func applyOpacity(src image.Image, opacity float64) image.Image {
	if opacity >= 1 {
		return src
	}
	if opacity < 0 {
		opacity = 0
	}
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			c.A = uint8(float64(c.A) * opacity)
			dst.SetNRGBA(x, y, c)
		}
	}
	return dst
}
