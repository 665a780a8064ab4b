// Package raster implements the node rasterizer: given a scene node and its
// resolved style, it draws fills, children, strokes, and the effect stack
// onto a pkg/surface.Canvas in the normative order (spec §4.3: transform,
// backdrop blur, fills, children under an optional clip, stroke, drop
// shadows, layer blur, inner shadows, liquid glass).
package raster

import (
	"image"

	"github.com/grida-canvas/canvas-core/pkg/geometry"
	"github.com/grida-canvas/canvas-core/pkg/paint"
	"github.com/grida-canvas/canvas-core/pkg/scene"
	"github.com/grida-canvas/canvas-core/pkg/surface"
)

// RasterizeScene draws every top-level node of sc onto canvas, recursing
// into containers. The canvas's initial transform is the identity; callers
// that need camera/zoom/DPI scaling apply it before calling this (spec
// §4.7, owned by pkg/renderer).
func RasterizeScene(canvas surface.Canvas, sc *scene.Scene, env *Env) {
	for _, id := range sc.Children {
		RasterizeNode(canvas, sc.Repo, id, env)
	}
}

// RasterizeNode draws node id and, if it is a container, its children,
// applying the node's own local transform via the canvas's matrix stack so
// nested clips and children inherit it automatically.
func RasterizeNode(canvas surface.Canvas, repo *scene.NodeRepository, id scene.NodeID, env *Env) {
	n, ok := repo.Get(id)
	if !ok {
		return
	}
	if !n.Style.Active || n.Style.Opacity <= 0 {
		return
	}

	canvas.Save()
	defer canvas.Restore()
	canvas.Concat(n.Style.Transform)

	bounds := LocalBounds(n)
	path := ShapePath(repo, n)

	if n.Style.Effects.BackdropBlur != nil {
		applyBackdropBlur(canvas, bounds, *n.Style.Effects.BackdropBlur)
	}

	// Step 2 of the normative draw order: a node with opacity < 1 or a
	// non-PassThrough layer blend must be rasterized into an isolated
	// layer and faded/blended as one unit, not have its opacity folded
	// into each fill/stroke/shadow call separately — the latter double-
	// fades overlapping content instead of compositing it once and then
	// fading the result. Everything below through the liquid-glass stage
	// draws into that isolated layer; backdrop blur above already ran
	// against the real backdrop, before the layer was pushed.
	isolated := n.Style.Opacity < 1 || n.Style.LayerBlend.Isolates()
	opacity := 1.0
	if isolated {
		mode := paint.BlendModeSrcOver
		if n.Style.LayerBlend.Isolates() {
			mode = n.Style.LayerBlend.Mode
		}
		canvas.SaveLayerAlpha(bounds, n.Style.Opacity, mode)
		defer canvas.Restore()
	} else {
		opacity = n.Style.Opacity
	}

	drawOwnFills(canvas, repo, n, path, bounds, opacity, env)

	if n.IsContainer() {
		canvas.Save()
		if n.Container.Clip {
			if path != nil {
				canvas.ClipPath(path)
			} else {
				canvas.ClipRect(bounds)
			}
		}
		for _, child := range n.Container.Children {
			RasterizeNode(canvas, repo, child, env)
		}
		canvas.Restore()
	} else if n.Type == scene.NodeImage {
		imgPaint := paint.Paint{Kind: paint.KindImage, Active: true, Opacity: 1, BlendMode: paint.BlendModeSrcOver, Image: n.Image.Image, Fit: n.Image.Fit}
		drawImagePaint(canvas, path, bounds, imgPaint, opacity, env)
	} else if n.Type == scene.NodeTextSpan && env != nil && env.DrawText != nil {
		displayText := applyTextTransform(n.Text.Text, n.Text.StyleRec.Transform)
		env.DrawText(canvas, TextDrawStyle{Text: displayText, Bounds: bounds, Color: textColor(n)})
	}

	strokePaints(canvas, n, bounds, opacity)

	for _, s := range n.Style.Effects.DropShadows() {
		drawDropShadow(canvas, bounds, s, opacity)
	}
	if n.Style.Effects.LayerBlur != nil {
		applyLayerBlur(canvas, bounds, *n.Style.Effects.LayerBlur)
	}
	for _, s := range n.Style.Effects.InnerShadows() {
		drawInnerShadow(canvas, bounds, s, opacity)
	}
	if n.Style.Effects.LiquidGlass != nil {
		applyLiquidGlass(canvas, bounds, *n.Style.Effects.LiquidGlass)
	}
}

// drawOwnFills paints a node's Fills stack against its own shape. Most node
// types fill the vector path ShapePath built; a non-Union BooleanOperation
// has no single vector outline (see evalBooleanOp), so its silhouette comes
// from the rasterized pixel mask instead, tinted by the first visible
// solid fill (gradient/image fills on intersection/difference/xor shapes
// are not supported by this software backend, see DESIGN.md).
func drawOwnFills(canvas surface.Canvas, repo *scene.NodeRepository, n scene.Node, path *surface.Path, bounds geometry.Rect, opacity float64, env *Env) {
	if n.Type == scene.NodeBooleanOperation && n.Geometry.BoolOp != scene.BoolUnion {
		drawBooleanMaskFill(canvas, repo, n, bounds, opacity)
		return
	}
	fillPaints(canvas, path, bounds, n.Style.Fills, opacity, env)
}

func drawBooleanMaskFill(canvas surface.Canvas, repo *scene.NodeRepository, n scene.Node, bounds geometry.Rect, opacity float64) {
	var c paint.CGColor
	found := false
	for _, p := range n.Style.Fills.Visible() {
		if p.Kind == paint.KindSolid {
			c, found = p.EffectiveColor().WithOpacity(opacity), true
			break
		}
	}
	if !found {
		return
	}
	mask := BooleanMask(repo, n, bounds)
	tinted := tintMask(mask, c)
	canvas.DrawImage(tinted, bounds)
}

func tintMask(mask *image.NRGBA, c paint.CGColor) *image.NRGBA {
	b := mask.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := mask.At(x, y).RGBA()
			av := uint8(a >> 8)
			out.SetNRGBA(x, y, nrgbaColor(c.R(), c.G(), c.B(), scaleByte(c.A(), av)))
		}
	}
	return out
}

func scaleByte(a, b uint8) uint8 {
	return uint8(uint32(a) * uint32(b) / 255)
}

func textColor(n scene.Node) paint.CGColor {
	for _, p := range n.Style.Fills.Visible() {
		if p.Kind == paint.KindSolid {
			return p.EffectiveColor()
		}
	}
	return paint.ColorBlack
}
