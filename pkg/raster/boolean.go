package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/grida-canvas/canvas-core/pkg/geometry"
	"github.com/grida-canvas/canvas-core/pkg/paint"
	"github.com/grida-canvas/canvas-core/pkg/scene"
	"github.com/grida-canvas/canvas-core/pkg/surface"
)

func nrgbaColor(r, g, b, a uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// evalBooleanOp resolves a BooleanOperation node's children into a single
// outline. Union is exact: concatenating the children's subpaths into one
// nonzero-winding Path reproduces their union. Intersection/Difference/Xor
// are not expressible that way without a general polygon-clipping library
// (none of the wired dependencies provide one — see DESIGN.md), so those
// three fall back to the first child's outline here; BooleanMask below
// computes the exact pixel-level result those three ops need and the
// rasterizer draws that instead of this vector path when BoolOp != Union.
func evalBooleanOp(repo *scene.NodeRepository, n scene.Node) *surface.Path {
	children := n.Container.Children
	if len(children) == 0 {
		return nil
	}
	if n.Geometry.BoolOp != scene.BoolUnion {
		if child, ok := repo.Get(children[0]); ok {
			return ShapePath(repo, child)
		}
		return nil
	}
	out := &surface.Path{}
	for _, id := range children {
		child, ok := repo.Get(id)
		if !ok {
			continue
		}
		sub := ShapePath(repo, child)
		if sub == nil {
			continue
		}
		out.Segments = append(out.Segments, translateSegments(sub.Segments, child.Style.Transform)...)
	}
	return out
}

func translateSegments(segs []surface.PathSegment, t geometry.AffineTransform) []surface.PathSegment {
	out := make([]surface.PathSegment, len(segs))
	for i, s := range segs {
		ns := s
		for j := range s.Points {
			ns.Points[j] = t.Apply(s.Points[j])
		}
		out[i] = ns
	}
	return out
}

// BooleanMask rasterizes every child shape of a non-Union BooleanOperation
// node to its own alpha mask within bounds, then combines the masks
// pixelwise per BoolOp, returning a straight-alpha white image whose alpha
// channel is the result silhouette.
func BooleanMask(repo *scene.NodeRepository, n scene.Node, bounds geometry.Rect) *image.NRGBA {
	w, h := int(math.Ceil(bounds.Width())), int(math.Ceil(bounds.Height()))
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 1, 1))
	}
	var acc *image.NRGBA
	for i, id := range n.Container.Children {
		child, ok := repo.Get(id)
		if !ok {
			continue
		}
		mask := rasterizeAlphaMask(repo, child, w, h)
		if i == 0 {
			acc = mask
			continue
		}
		acc = combineMasks(acc, mask, n.Geometry.BoolOp)
	}
	if acc == nil {
		acc = image.NewNRGBA(image.Rect(0, 0, w, h))
	}
	return acc
}

func rasterizeAlphaMask(repo *scene.NodeRepository, n scene.Node, w, h int) *image.NRGBA {
	canvas := surface.NewSoftwareCanvas(w, h)
	p := ShapePath(repo, n)
	if p == nil {
		return image.NewNRGBA(image.Rect(0, 0, w, h))
	}
	canvas.Save()
	canvas.Concat(n.Style.Transform)
	canvas.DrawPath(p, paint.ColorWhite, paint.BlendModeSrcOver)
	canvas.Restore()
	return canvas.Snapshot(geometry.RectFromLTWH(0, 0, float64(w), float64(h)))
}

func combineMasks(a, b *image.NRGBA, op scene.BooleanOp) *image.NRGBA {
	bounds := a.Bounds()
	out := image.NewNRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			_, _, _, aa := a.At(x, y).RGBA()
			_, _, _, ba := b.At(x, y).RGBA()
			av, bv := float64(aa>>8)/255, float64(ba>>8)/255
			var r float64
			switch op {
			case scene.BoolIntersection:
				r = av * bv
			case scene.BoolDifference:
				r = av * (1 - bv)
			case scene.BoolXor:
				r = av + bv - 2*av*bv
			default:
				r = av + bv - av*bv
			}
			out.SetNRGBA(x, y, nrgbaColor(255, 255, 255, uint8(r*255+0.5)))
		}
	}
	return out
}
