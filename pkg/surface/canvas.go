// Package surface provides a minimal software canvas abstraction the
// rasterizer and renderer draw into, mirroring the push/pop-layer,
// clip, and blend primitives a GPU-backed canvas (e.g. a Skia bridge)
// would expose, without requiring a cgo dependency in this core.
package surface

import (
	"image"

	"github.com/grida-canvas/canvas-core/pkg/geometry"
	"github.com/grida-canvas/canvas-core/pkg/paint"
)

// Canvas records or renders drawing commands against a logical-pixel
// coordinate system with an implicit transform/clip stack.
type Canvas interface {
	// Save pushes the current transform and clip state.
	Save()
	// Restore pops the most recent transform and clip state.
	Restore()

	// SaveLayerAlpha pushes an offscreen layer. Everything drawn until the
	// matching Restore accumulates in isolation (with no backdrop beneath
	// it), then composites back over the prior content at alpha using
	// mode, the way a node's own opacity/blend-mode isolation works
	// (spec §4.3 step 2: "if opacity < 1.0 or the node isolates, push a
	// compositing layer with alpha").
	SaveLayerAlpha(bounds geometry.Rect, alpha float64, mode paint.BlendMode)

	Translate(dx, dy float64)
	Scale(sx, sy float64)
	Rotate(radians float64)
	Concat(m geometry.AffineTransform)

	ClipRect(rect geometry.Rect)
	ClipRRect(rrect geometry.RRect)
	ClipPath(path *Path)

	Clear(color paint.CGColor)
	DrawRect(rect geometry.Rect, color paint.CGColor, mode paint.BlendMode)
	DrawRRect(rrect geometry.RRect, color paint.CGColor, mode paint.BlendMode)
	DrawPath(path *Path, color paint.CGColor, mode paint.BlendMode)
	StrokePath(path *Path, color paint.CGColor, width float64, mode paint.BlendMode)
	DrawImage(img image.Image, dstRect geometry.Rect)

	// Snapshot copies the currently composited pixels within bounds into
	// a standalone image, used for effects that sample prior content
	// (backdrop blur, drop shadows operating on a node's own raster).
	Snapshot(bounds geometry.Rect) *image.NRGBA

	// Size returns the canvas's pixel dimensions.
	Size() (w, h int)
}

// PathVerb discriminates a Path segment.
type PathVerb int

const (
	VerbMoveTo PathVerb = iota
	VerbLineTo
	VerbQuadTo
	VerbCubicTo
	VerbClose
)

// PathSegment is one instruction in a Path.
type PathSegment struct {
	Verb   PathVerb
	Points [3]geometry.Offset // used count depends on Verb
}

// FillRule controls how self-intersecting paths resolve fill.
type FillRule int

const (
	FillNonZero FillRule = iota
	FillEvenOdd
)

// Path is a sequence of path segments plus a fill rule, the shared
// geometry representation for rounded rects, baked SVG paths, and boolean
// operation results.
type Path struct {
	Segments []PathSegment
	Rule     FillRule
}

// MoveTo appends a MoveTo segment.
func (p *Path) MoveTo(pt geometry.Offset) {
	p.Segments = append(p.Segments, PathSegment{Verb: VerbMoveTo, Points: [3]geometry.Offset{pt}})
}

// LineTo appends a LineTo segment.
func (p *Path) LineTo(pt geometry.Offset) {
	p.Segments = append(p.Segments, PathSegment{Verb: VerbLineTo, Points: [3]geometry.Offset{pt}})
}

// CubicTo appends a cubic Bezier segment.
func (p *Path) CubicTo(c1, c2, end geometry.Offset) {
	p.Segments = append(p.Segments, PathSegment{Verb: VerbCubicTo, Points: [3]geometry.Offset{c1, c2, end}})
}

// Close appends a Close segment.
func (p *Path) Close() {
	p.Segments = append(p.Segments, PathSegment{Verb: VerbClose})
}
