package surface

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/fogleman/gg"
	"github.com/grida-canvas/canvas-core/pkg/geometry"
	"github.com/grida-canvas/canvas-core/pkg/paint"
)

// SoftwareCanvas is a draw.Image-backed Canvas implementation built on
// fogleman/gg, used by the reference rasterizer and by tests that need to
// inspect actual pixels rather than a GPU-bridged canvas.
//
// Save/Restore and SaveLayerAlpha/Restore share one stack so nested calls
// unwind in the right order regardless of how a caller interleaves them.
// A plain Save records nothing beyond gg's own pushed state; a
// SaveLayerAlpha additionally swaps in a fresh, transparent gg.Context so
// everything drawn until the matching Restore accumulates with no
// backdrop beneath it, then composites that layer back over the saved
// parent context.
type SoftwareCanvas struct {
	dc     *gg.Context
	xform  geometry.AffineTransform
	frames []canvasFrame
}

type canvasFrame struct {
	layer *layerState
}

type layerState struct {
	parentDC    *gg.Context
	parentXform geometry.AffineTransform
	bounds      geometry.Rect
	alpha       float64
	mode        paint.BlendMode
}

// NewSoftwareCanvas allocates a canvas of the given pixel dimensions.
func NewSoftwareCanvas(width, height int) *SoftwareCanvas {
	return &SoftwareCanvas{dc: gg.NewContext(width, height), xform: geometry.Identity()}
}

func (c *SoftwareCanvas) Size() (int, int) {
	return c.dc.Width(), c.dc.Height()
}

func (c *SoftwareCanvas) Save() {
	c.dc.Push()
	c.frames = append(c.frames, canvasFrame{})
}

func (c *SoftwareCanvas) Restore() {
	n := len(c.frames)
	if n == 0 {
		return
	}
	f := c.frames[n-1]
	c.frames = c.frames[:n-1]
	if f.layer == nil {
		c.dc.Pop()
		return
	}
	layer := c.dc.Image()
	ls := f.layer
	c.dc = ls.parentDC
	c.xform = ls.parentXform
	compositeLayer(c, layer, ls.bounds, ls.alpha, ls.mode)
}

// SaveLayerAlpha swaps in a fresh offscreen context of the same pixel
// dimensions, seeded with the current transform so nested drawing lands in
// the same place it would on the live canvas. The matching Restore reads
// that context's pixels back as the isolated layer.
func (c *SoftwareCanvas) SaveLayerAlpha(bounds geometry.Rect, alpha float64, mode paint.BlendMode) {
	w, h := c.dc.Width(), c.dc.Height()
	layerDC := gg.NewContext(w, h)
	layerDC.SetMatrix(ggMatrixOf(c.xform))
	c.frames = append(c.frames, canvasFrame{layer: &layerState{
		parentDC: c.dc, parentXform: c.xform, bounds: bounds, alpha: alpha, mode: mode,
	}})
	c.dc = layerDC
}

func (c *SoftwareCanvas) Translate(dx, dy float64) { c.Concat(geometry.Translation(dx, dy)) }
func (c *SoftwareCanvas) Scale(sx, sy float64)      { c.Concat(geometry.ScaleTransform(sx, sy)) }
func (c *SoftwareCanvas) Rotate(radians float64)    { c.Concat(geometry.RotationRadians(radians)) }

func (c *SoftwareCanvas) Concat(m geometry.AffineTransform) {
	c.xform = c.xform.Mul(m)
	c.dc.SetMatrix(ggMatrixOf(c.xform))
}

func ggMatrixOf(m geometry.AffineTransform) gg.Matrix {
	return gg.Matrix{
		XX: m.SX, YX: m.KY,
		XY: m.KX, YY: m.SY,
		X0: m.TX, Y0: m.TY,
	}
}

// compositeLayer fades layer's pixels by alpha and blends them over c.dc's
// current content within bounds using mode, replacing each destination
// pixel outright with the already-fully-composited result (paint.Composite
// folds the prior backdrop in itself, so this must not additionally
// alpha-blend through gg — that would apply the backdrop twice). Bounds
// outside the node's own geometry (e.g. an Outside-aligned stroke, or
// shadow blur) fall outside this rect the same way they already do for the
// other bounds-sized offscreen effects in pkg/raster.
func compositeLayer(c *SoftwareCanvas, layer image.Image, bounds geometry.Rect, alpha float64, mode paint.BlendMode) {
	bx0, by0 := int(math.Floor(bounds.Left)), int(math.Floor(bounds.Top))
	bx1, by1 := int(math.Ceil(bounds.Right)), int(math.Ceil(bounds.Bottom))
	if bx1 <= bx0 || by1 <= by0 {
		return
	}
	backdrop := c.dc.Image()
	dst, ok := backdrop.(draw.Image)
	if !ok {
		return
	}
	for y := by0; y < by1; y++ {
		for x := bx0; x < bx1; x++ {
			src := cgColorAt(layer, x, y).WithOpacity(alpha)
			prior := cgColorAt(backdrop, x, y)
			composited := paint.Composite(src, prior, mode)
			dst.Set(x, y, color.NRGBA{R: composited.R(), G: composited.G(), B: composited.B(), A: composited.A()})
		}
	}
}

func cgColorAt(img image.Image, x, y int) paint.CGColor {
	if !(image.Point{X: x, Y: y}.In(img.Bounds())) {
		return paint.ColorTransparent
	}
	nc := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	return paint.RGBA(nc.R, nc.G, nc.B, nc.A)
}

func (c *SoftwareCanvas) ClipRect(rect geometry.Rect) {
	c.dc.DrawRectangle(rect.Left, rect.Top, rect.Width(), rect.Height())
	c.dc.Clip()
}

func (c *SoftwareCanvas) ClipRRect(rrect geometry.RRect) {
	c.applyPath(RRectPath(rrect, 0))
	c.dc.Clip()
}

func (c *SoftwareCanvas) ClipPath(path *Path) {
	c.applyPath(path)
	c.dc.Clip()
}

func (c *SoftwareCanvas) Clear(color paint.CGColor) {
	r, g, b, a := color.RGBAF()
	c.dc.SetRGBA(r, g, b, a)
	c.dc.Clear()
}

func (c *SoftwareCanvas) DrawRect(rect geometry.Rect, color paint.CGColor, mode paint.BlendMode) {
	c.dc.DrawRectangle(rect.Left, rect.Top, rect.Width(), rect.Height())
	c.fillWithBlend(color, mode)
}

func (c *SoftwareCanvas) DrawRRect(rrect geometry.RRect, color paint.CGColor, mode paint.BlendMode) {
	c.applyPath(RRectPath(rrect, 0))
	c.fillWithBlend(color, mode)
}

func (c *SoftwareCanvas) DrawPath(path *Path, color paint.CGColor, mode paint.BlendMode) {
	c.applyPath(path)
	c.fillWithBlend(color, mode)
}

func (c *SoftwareCanvas) StrokePath(path *Path, color paint.CGColor, width float64, mode paint.BlendMode) {
	c.applyPath(path)
	c.dc.SetLineWidth(width)
	r, g, b, a := color.RGBAF()
	c.dc.SetRGBA(r, g, b, a)
	c.dc.Stroke()
}

func (c *SoftwareCanvas) DrawImage(img image.Image, dstRect geometry.Rect) {
	c.dc.DrawImageAnchored(img, int(dstRect.Left), int(dstRect.Top), 0, 0)
}

func (c *SoftwareCanvas) Snapshot(bounds geometry.Rect) *image.NRGBA {
	src := c.dc.Image()
	b := image.Rect(int(bounds.Left), int(bounds.Top), int(bounds.Right), int(bounds.Bottom))
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Set(x, y, src.At(x, y))
		}
	}
	return dst
}

func (c *SoftwareCanvas) fillWithBlend(color paint.CGColor, mode paint.BlendMode) {
	// The software backend fills with SrcOver only: mode is not applied
	// here, and the rasterizer passes each paint's blend mode straight
	// through, so paints with any other blend mode draw as SrcOver.
	r, g, b, a := color.RGBAF()
	c.dc.SetRGBA(r, g, b, a)
	c.dc.Fill()
}

func (c *SoftwareCanvas) applyPath(p *Path) {
	c.dc.ClearPath()
	for _, seg := range p.Segments {
		switch seg.Verb {
		case VerbMoveTo:
			c.dc.NewSubPath()
			c.dc.MoveTo(seg.Points[0].X, seg.Points[0].Y)
		case VerbLineTo:
			c.dc.LineTo(seg.Points[0].X, seg.Points[0].Y)
		case VerbQuadTo:
			c.dc.QuadraticTo(seg.Points[0].X, seg.Points[0].Y, seg.Points[1].X, seg.Points[1].Y)
		case VerbCubicTo:
			c.dc.CubicTo(seg.Points[0].X, seg.Points[0].Y, seg.Points[1].X, seg.Points[1].Y, seg.Points[2].X, seg.Points[2].Y)
		case VerbClose:
			c.dc.ClosePath()
		}
	}
}
