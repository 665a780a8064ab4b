package scene

import "github.com/grida-canvas/canvas-core/pkg/paint"

// TextAlign controls paragraph-level horizontal alignment.
type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignRight
	TextAlignCenter
	TextAlignJustify
)

// TextAlignVertical controls vertical placement within the node's box.
type TextAlignVertical int

const (
	TextAlignVerticalTop TextAlignVertical = iota
	TextAlignVerticalCenter
	TextAlignVerticalBottom
)

// FontWidthAxis is the variable-font width axis value (100 = normal).
type FontWidthAxis float64

// OpticalSizingKind discriminates the OpticalSizing sum.
type OpticalSizingKind int

const (
	OpticalSizingAuto OpticalSizingKind = iota
	OpticalSizingNone
	OpticalSizingFixed
)

// OpticalSizing selects a font's optical-size axis behavior.
type OpticalSizing struct {
	Kind  OpticalSizingKind
	Fixed float64
}

// SpacingKind discriminates letter/word spacing between an absolute pixel
// value and a multiple of the font's em size.
type SpacingKind int

const (
	SpacingFixed SpacingKind = iota
	SpacingFactor
)

// Spacing is a letter- or word-spacing value.
type Spacing struct {
	Kind  SpacingKind
	Value float64
}

// LineHeightKind discriminates the LineHeight sum.
type LineHeightKind int

const (
	LineHeightNormal LineHeightKind = iota
	LineHeightFixed
	LineHeightFactor
)

// LineHeight controls the vertical advance between baselines.
type LineHeight struct {
	Kind  LineHeightKind
	Value float64
}

// TextTransform applies a case transform to displayed (not stored) text.
type TextTransform int

const (
	TextTransformNone TextTransform = iota
	TextTransformUpper
	TextTransformLower
	TextTransformCapitalize
)

// TextStyleRec is the full per-span text style record.
type TextStyleRec struct {
	FontFamily     string
	FontSize       float64
	FontWeight     int // 1..1000
	FontWidthAxis  FontWidthAxis
	Italic         bool
	Kerning        bool
	OpticalSizing  OpticalSizing
	FeatureFlags   map[string]bool
	VariationAxes  map[string]float64
	LetterSpacing  Spacing
	WordSpacing    Spacing
	LineHeight     LineHeight
	Transform      TextTransform
}

// TextDecorationRec describes an underline/strikethrough-style decoration.
type TextDecorationRec struct {
	Line  TextDecorationLine
	Color paint.CGColor
	Style TextDecorationStyle
	Width float64
}

type TextDecorationLine int

const (
	DecorationNone TextDecorationLine = iota
	DecorationUnderline
	DecorationOverline
	DecorationLineThrough
)

type TextDecorationStyle int

const (
	DecorationSolid TextDecorationStyle = iota
	DecorationDouble
	DecorationDotted
	DecorationDashed
	DecorationWavy
)
