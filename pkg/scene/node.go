// Package scene implements the node and scene data model: a tagged sum of
// node variants, per-node style (fills, strokes, effects, stroke geometry),
// the scene graph, and the node repository that backs it.
package scene

import (
	"github.com/grida-canvas/canvas-core/pkg/effect"
	"github.com/grida-canvas/canvas-core/pkg/geometry"
	"github.com/grida-canvas/canvas-core/pkg/paint"
)

// NodeID identifies a node within a NodeRepository. It is an opaque handle,
// not a pointer, so the in-memory model can reference nodes it has not yet
// inserted without creating ownership cycles.
type NodeID string

// NodeType discriminates the node tagged sum.
type NodeType int

const (
	NodeGroup NodeType = iota
	NodeContainer
	NodeRectangle
	NodeEllipse
	NodeLine
	NodeVector
	NodeSVGPath
	NodeRegularPolygon
	NodeRegularStarPolygon
	NodeBooleanOperation
	NodeImage
	NodeTextSpan
	NodeError
)

// StrokeAlign controls how a stroke's geometry is derived from the fill
// shape before rasterization.
type StrokeAlign int

const (
	StrokeInside StrokeAlign = iota
	StrokeCenter
	StrokeOutside
)

// LayerMaskKind selects how a container's mask children apply.
type LayerMaskKind int

const (
	MaskNone LayerMaskKind = iota
	MaskGeometry
	MaskImageAlpha
	MaskImageLuminance
)

// StrokeDecoration names a terminal marker glyph drawn at a stroke's ends
// (e.g. arrowheads); the concrete glyph catalog is a host concern, so this
// is carried as an opaque identifier.
type StrokeDecoration string

// BooleanOp selects the path operation a BooleanOperation node applies to
// the union of its children's shapes.
type BooleanOp int

const (
	BoolUnion BooleanOp = iota
	BoolIntersection
	BoolDifference
	BoolXor
)

// LayoutMode selects how a container's children are positioned. Absolute
// is this core's native basis (§1); Flex is metadata passed through to an
// external layout engine untouched.
type LayoutMode int

const (
	LayoutAbsolute LayoutMode = iota
	LayoutFlex
)

// FlexLayout carries sibling flex-layout metadata the core does not
// interpret itself; it is round-tripped for an external layout engine.
type FlexLayout struct {
	Direction FlexDirection
	Wrap      bool
	AlignMain FlexAlign
	AlignCross FlexAlign
	PaddingTop, PaddingRight, PaddingBottom, PaddingLeft float64
	Gap float64
}

type FlexDirection int

const (
	FlexRow FlexDirection = iota
	FlexColumn
)

type FlexAlign int

const (
	FlexStart FlexAlign = iota
	FlexCenter
	FlexEnd
	FlexSpaceBetween
	FlexStretch
)

// Style carries the style fields shared by every node variant.
type Style struct {
	Active            bool
	Opacity           float64
	LayerBlend        paint.LayerBlendMode
	Mask              LayerMaskKind
	Transform         geometry.AffineTransform
	Effects           effect.LayerEffects
	Fills             paint.Paints
	Strokes           paint.Paints
	StrokeWidth       float64
	StrokeAlign       StrokeAlign
	StrokeDashArray   []float64
	StrokeDecoration  StrokeDecoration
	StrokeMiterLimit  float64
}

// DefaultStyle returns the Style zero value with spec defaults applied
// (active, opaque, PassThrough blend, 4.0 miter limit).
func DefaultStyle() Style {
	return Style{
		Active:           true,
		Opacity:          1,
		LayerBlend:       paint.LayerBlendMode{PassThrough: true},
		Transform:        geometry.Identity(),
		StrokeMiterLimit: 4.0,
	}
}

// Geometry holds the handful of node-specific geometric
// payloads a rasterizer needs beyond the common Style.
type Geometry struct {
	// Rectangle/Ellipse/Image/TextSpan/Container share a size.
	Size geometry.Size

	// Rectangle corner radii.
	CornerRadius    geometry.RectangularCornerRadius
	CornerSmoothing geometry.CornerSmoothing

	// Line: a single segment from origin to (Size.Width, Size.Height) in
	// local space (i.e. dx,dy).

	// Vector: a baked path in SVG path-data syntax. Used by both the
	// Vector node (arbitrary network, already baked to a path string by
	// an external vector-network authoring tool) and SVGPath.
	PathData string

	// RegularPolygon / RegularStarPolygon.
	PointCount   int
	InnerRadius  float64 // star only, ratio of outer radius

	// BooleanOperation.
	BoolOp BooleanOp
}

// ContainerData holds the fields specific to Group/Container nodes.
type ContainerData struct {
	Clip     bool
	Children []NodeID
	Layout   LayoutMode
	Flex     FlexLayout
}

// ImageData holds the fields specific to Image nodes (separate from an
// Image *paint*, which can also appear inside Fills of any shape node).
type ImageData struct {
	Image paint.ResourceRef
	Fit   paint.ImagePaintFit
}

// TextSpanData holds the fields specific to TextSpan nodes.
type TextSpanData struct {
	Width, Height  *float64 // nil = intrinsic
	Text           string
	StyleRec       TextStyleRec
	TextAlign      TextAlign
	TextAlignVert  TextAlignVertical
	MaxLines       *int
	Ellipsis       string
	Decoration     *TextDecorationRec
}

// ErrorData holds the fields specific to Error placeholder nodes.
type ErrorData struct {
	Message string
}

// Node is the tagged sum of every node variant in the scene graph. Only
// the fields relevant to Type are meaningful; the zero value of the others
// is ignored by every consumer.
type Node struct {
	ID   NodeID
	Name string
	Type NodeType

	Style Style

	Container ContainerData
	Geometry  Geometry
	Image     ImageData
	Text      TextSpanData
	Error     ErrorData
}

// IsContainer reports whether this node type owns children.
func (n Node) IsContainer() bool {
	return n.Type == NodeGroup || n.Type == NodeContainer || n.Type == NodeBooleanOperation
}
