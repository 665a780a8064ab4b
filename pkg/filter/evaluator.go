package filter

import (
	"image"

	"github.com/grida-canvas/canvas-core/pkg/canvaserr"
)

// Graph is an ordered list of primitives forming the filter pipeline.
type Graph struct {
	Primitives []Primitive
	Region     Rect
}

// Rect mirrors geometry.Rect locally to avoid an import cycle concern for
// filter-region bookkeeping kept purely in pixel-space integers.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) toImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Evaluate runs the filter graph against sourceGraphic (the node's
// pre-filter rasterization), seeding the results dictionary with
// "SourceGraphic" and its alpha channel as "SourceAlpha", then iterating
// primitives in order per the chaining contract (spec §4.4). The pipeline
// result is PreviousResult after the last primitive. A zero Region
// defaults to sourceGraphic's bounds.
func Evaluate(g Graph, sourceGraphic Image) Image {
	if g.Region == (Rect{}) && sourceGraphic != nil {
		b := sourceGraphic.Bounds()
		g.Region = Rect{X: b.Min.X, Y: b.Min.Y, W: b.Dx(), H: b.Dy()}
	}
	results := map[string]Image{
		SourceGraphic: sourceGraphic,
		SourceAlpha:   alphaOnly(sourceGraphic),
	}
	var previous Image = sourceGraphic

	resolve := func(name string) Image {
		if name == "" {
			return previous
		}
		if img, ok := results[name]; ok {
			return img
		}
		// Unknown input name: treat as transparent, matching "skip primitive,
		// PreviousResult unchanged" semantics one level down (spec §7).
		return blankLike(sourceGraphic)
	}

	for _, prim := range g.Primitives {
		out, err := evalPrimitive(prim, resolve, g.Region)
		if err != nil {
			// KindFilterUnsupported or a malformed primitive: skip it,
			// PreviousResult is unchanged, evaluation continues.
			continue
		}
		previous = out
		if prim.Result != "" {
			results[prim.Result] = out
		}
	}
	return previous
}

func evalPrimitive(p Primitive, resolve func(string) Image, region Rect) (Image, error) {
	switch p.Kind {
	case PrimGaussianBlur:
		return gaussianBlur(resolve(p.In), p.StdDeviationX, p.StdDeviationY), nil
	case PrimColorMatrix:
		return applyColorMatrix(resolve(p.In), p), nil
	case PrimOffset:
		return offsetImage(resolve(p.In), p.DX, p.DY), nil
	case PrimBlend:
		return blendImages(resolve(p.In), resolve(p.In2), p.BlendMode), nil
	case PrimComposite:
		return compositeImages(resolve(p.In), resolve(p.In2), p, resolve(SourceAlpha)), nil
	case PrimMorphology:
		return morphology(resolve(p.In), p.MorphOperator, p.RX, p.RY), nil
	case PrimDropShadow:
		return dropShadow(resolve(p.In), p), nil
	case PrimMerge:
		return merge(p.Inputs, resolve), nil
	case PrimFlood:
		return flood(p, region), nil
	case PrimTurbulence:
		return turbulence(p, region), nil
	case PrimDisplacementMap:
		return displacementMap(resolve(p.In), resolve(p.In2), p), nil
	case PrimDiffuseLighting:
		return diffuseLighting(resolve(p.In), p), nil
	case PrimSpecularLighting:
		return specularLighting(resolve(p.In), p), nil
	case PrimComponentTransfer:
		return componentTransfer(resolve(p.In), p), nil
	case PrimConvolveMatrix:
		return convolveMatrix(resolve(p.In), p), nil
	default:
		return nil, canvaserr.New("filter.Evaluate", canvaserr.KindFilterUnsupported, nil)
	}
}

func alphaOnly(src Image) Image {
	b := src.Bounds()
	dst := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			_, _, _, a := src.At(x, y).RGBA()
			av := uint8(a >> 8)
			dst.SetNRGBA(x, y, rgbaOf(0, 0, 0, av))
		}
	}
	return dst
}

func blankLike(src Image) Image {
	return image.NewNRGBA(src.Bounds())
}
