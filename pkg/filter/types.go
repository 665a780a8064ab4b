// Package filter evaluates an SVG-style filter primitive graph: an ordered
// list of primitives chained by named results (result/in/in2), each
// primitive kind implementing one concrete image-to-image transform.
package filter

import (
	"image"

	"github.com/grida-canvas/canvas-core/pkg/geometry"
	"github.com/grida-canvas/canvas-core/pkg/paint"
)

// PrimitiveKind discriminates the filter primitive sum.
type PrimitiveKind int

const (
	PrimGaussianBlur PrimitiveKind = iota
	PrimColorMatrix
	PrimOffset
	PrimBlend
	PrimComposite
	PrimMorphology
	PrimDropShadow
	PrimMerge
	PrimFlood
	PrimTurbulence
	PrimDisplacementMap
	PrimDiffuseLighting
	PrimSpecularLighting
	PrimComponentTransfer
	PrimConvolveMatrix
)

// ColorMatrixKind selects the ColorMatrix sub-mode.
type ColorMatrixKind int

const (
	ColorMatrixFull ColorMatrixKind = iota // 5x4 Matrix
	ColorMatrixSaturate
	ColorMatrixHueRotate
	ColorMatrixLuminanceToAlpha
)

// CompositeOperator selects the Composite sub-mode.
type CompositeOperator int

const (
	CompositeOver CompositeOperator = iota
	CompositeIn
	CompositeOut
	CompositeAtop
	CompositeXor
	CompositeArithmetic
)

// MorphologyOperator selects dilate vs erode.
type MorphologyOperator int

const (
	MorphDilate MorphologyOperator = iota
	MorphErode
)

// NoiseType selects Turbulence's output flavor.
type NoiseType int

const (
	NoiseFractal NoiseType = iota
	NoiseTurbulence
)

// LightKind distinguishes the three SVG light source types.
type LightKind int

const (
	LightDistant LightKind = iota
	LightPoint
	LightSpot
)

// Light describes a lighting-primitive light source. Distant lights use
// Azimuth/Elevation (degrees); Point/Spot use X/Y/Z (filter coordinate
// space); Spot additionally uses a limiting cone angle in degrees.
type Light struct {
	Kind              LightKind
	Azimuth, Elevation float64
	X, Y, Z           float64
	PointsAtX, PointsAtY, PointsAtZ float64
	SpecularExponent  float64
	LimitingConeAngle float64
}

// TransferFuncKind selects a ComponentTransfer per-channel function.
type TransferFuncKind int

const (
	TransferIdentity TransferFuncKind = iota
	TransferTable
	TransferDiscrete
	TransferLinear
	TransferGamma
)

// TransferFunction is one channel's component-transfer function.
type TransferFunction struct {
	Kind      TransferFuncKind
	TableVals []float64 // Table/Discrete
	Slope     float64   // Linear
	Intercept float64   // Linear
	Amplitude float64   // Gamma
	Exponent  float64   // Gamma
	Offset    float64   // Gamma
}

// EdgeMode controls ConvolveMatrix's out-of-bounds sampling.
type EdgeMode int

const (
	EdgeNone EdgeMode = iota // transparent black outside
	EdgeDuplicate
	EdgeWrap
)

// Primitive is one node in the filter graph.
type Primitive struct {
	Kind   PrimitiveKind
	In     string // "" = PreviousResult
	In2    string // second input, for Composite/Blend/DisplacementMap
	Inputs []string // Merge
	Result string // "" = unnamed; always stored as PreviousResult too
	Rect   *geometry.Rect // primitive subregion, nil = filter region

	// GaussianBlur
	StdDeviationX, StdDeviationY float64

	// ColorMatrix
	MatrixKind ColorMatrixKind
	Matrix     [20]float64 // 5x4 row-major
	SaturateValue float64
	HueRotateDegrees float64

	// Offset
	DX, DY float64

	// Blend / Composite
	BlendMode         paint.BlendMode
	CompositeOperator CompositeOperator
	K1, K2, K3, K4    float64

	// Morphology
	MorphOperator MorphologyOperator
	RX, RY        float64

	// DropShadow
	ShadowDX, ShadowDY, ShadowBlur float64
	ShadowColor                    paint.CGColor

	// Flood
	FloodColor paint.CGColor

	// Turbulence
	BaseFreqX, BaseFreqY float64
	Octaves              int
	Seed                 int64
	StitchTiles          bool
	NoiseType            NoiseType

	// DisplacementMap
	Scale     float64
	XChannel  Channel
	YChannel  Channel

	// Diffuse/SpecularLighting
	SurfaceScale     float64
	DiffuseConstant  float64
	SpecularConstant float64
	SpecularExponent float64
	LightColor       paint.CGColor
	LightSource      Light

	// ComponentTransfer
	FuncR, FuncG, FuncB, FuncA TransferFunction

	// ConvolveMatrix
	Kernel          []float64
	OrderX, OrderY  int
	TargetX, TargetY int
	Divisor         float64
	Bias            float64
	PreserveAlpha   bool
	EdgeMode        EdgeMode
}

// Channel selects a color channel for DisplacementMap.
type Channel int

const (
	ChannelR Channel = iota
	ChannelG
	ChannelB
	ChannelA
)

// SourceGraphic and SourceAlpha are the two implicit, always-available
// results in addition to whatever a primitive names via Result.
const (
	SourceGraphic = "SourceGraphic"
	SourceAlpha   = "SourceAlpha"
)

// Image is the evaluator's internal raster representation: straight-alpha
// RGBA8, matching the CGColor model used throughout the core.
type Image = *image.NRGBA
