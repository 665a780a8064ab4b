package ingest

import (
	"fmt"
	"strconv"

	"github.com/grida-canvas/canvas-core/pkg/geometry"
	"github.com/grida-canvas/canvas-core/pkg/paint"
	"github.com/grida-canvas/canvas-core/pkg/scene"
)

// JSONSceneNode is the flat per-node record in a document's node table.
// Fields not relevant to a node's Type are simply left at their zero value
// by the producer; decodeNode only reads the fields its Type cares about.
type JSONSceneNode struct {
	Type string `json:"type"`
	Name string `json:"name"`

	Active  *bool   `json:"active,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`

	Transform *[6]float64 `json:"transform,omitempty"`

	Fill  *JSONPaint  `json:"fill,omitempty"`
	Fills []JSONPaint `json:"fills,omitempty"`

	Stroke      *JSONPaint  `json:"stroke,omitempty"`
	Strokes     []JSONPaint `json:"strokes,omitempty"`
	StrokeWidth float64     `json:"stroke_width,omitempty"`
	StrokeAlign string      `json:"stroke_align,omitempty"`

	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	CornerRadius            *float64           `json:"corner_radius,omitempty"`
	CornerRadiusTopLeft     *float64           `json:"corner_radius_top_left,omitempty"`
	CornerRadiusTopRight    *float64           `json:"corner_radius_top_right,omitempty"`
	CornerRadiusBottomRight *float64           `json:"corner_radius_bottom_right,omitempty"`
	CornerRadiusBottomLeft  *float64           `json:"corner_radius_bottom_left,omitempty"`
	CornerSmoothing         float64            `json:"corner_smoothing,omitempty"`

	PathData string `json:"path_data,omitempty"`

	PointCount  int     `json:"point_count,omitempty"`
	InnerRadius float64 `json:"inner_radius,omitempty"`

	BooleanOperation string `json:"boolean_operation,omitempty"`

	Image string `json:"image,omitempty"`

	Text       string          `json:"text,omitempty"`
	FontFamily string          `json:"font_family,omitempty"`
	FontSize   float64         `json:"font_size,omitempty"`
	FontWeight int             `json:"font_weight,omitempty"`
	TextAlign  string          `json:"text_align,omitempty"`

	Message string `json:"message,omitempty"`

	Clip     bool     `json:"clip,omitempty"`
	Children []string `json:"children,omitempty"`
}

// JSONPaint mirrors io_grida.rs's JSONPaint: a tagged variant keyed by
// "type" carrying only the fields relevant to that variant.
type JSONPaint struct {
	Type    string   `json:"type"`
	Active  *bool    `json:"active,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
	Color   string   `json:"color,omitempty"`

	Stops []JSONGradientStop `json:"stops,omitempty"`

	BlendMode string `json:"blend_mode,omitempty"`
}

// JSONGradientStop is an offset/hex-color pair.
type JSONGradientStop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

// mergePaints applies io_grida.rs's merge_paints rule: the plural fills
// list wins whenever it is present and non-empty; the singular fill is
// used only as a fallback, wrapped in a single-element stack.
func mergePaints(single *JSONPaint, plural []JSONPaint) paint.Paints {
	if len(plural) > 0 {
		return decodePaints(plural)
	}
	if single != nil {
		return decodePaints([]JSONPaint{*single})
	}
	return nil
}

func decodePaints(in []JSONPaint) paint.Paints {
	out := make(paint.Paints, 0, len(in))
	for _, jp := range in {
		out = append(out, decodePaint(jp))
	}
	return out
}

func decodePaint(jp JSONPaint) paint.Paint {
	active := true
	if jp.Active != nil {
		active = *jp.Active
	}
	opacity := 1.0
	if jp.Opacity != nil {
		opacity = *jp.Opacity
	}

	p := paint.Paint{
		Active:    active,
		Opacity:   clamp01(opacity),
		BlendMode: blendModeOf(jp.BlendMode),
	}

	switch jp.Type {
	case "linear_gradient":
		p.Kind = paint.KindLinearGradient
		p.Stops = stopsOf(jp.Stops)
		p.XY1, p.XY2 = geometry.AlignCenterLeft, geometry.AlignCenterRight
	case "radial_gradient":
		p.Kind = paint.KindRadialGradient
		p.Stops = stopsOf(jp.Stops)
	case "sweep_gradient":
		p.Kind = paint.KindSweepGradient
		p.Stops = stopsOf(jp.Stops)
	case "diamond_gradient":
		p.Kind = paint.KindDiamondGradient
		p.Stops = stopsOf(jp.Stops)
	case "image":
		p.Kind = paint.KindImage
	default: // "solid", or unrecognized: degrade to solid
		p.Kind = paint.KindSolid
		c, err := parseHexColor(jp.Color)
		if err != nil {
			c = paint.CGColor(0)
		}
		p.Color = c
	}
	return p
}

func stopsOf(in []JSONGradientStop) []paint.GradientStop {
	out := make([]paint.GradientStop, 0, len(in))
	for _, s := range in {
		c, err := parseHexColor(s.Color)
		if err != nil {
			continue
		}
		out = append(out, paint.GradientStop{Offset: s.Offset, Color: c})
	}
	return out
}

func blendModeOf(name string) paint.BlendMode {
	switch name {
	case "multiply":
		return paint.BlendModeMultiply
	case "screen":
		return paint.BlendModeScreen
	case "overlay":
		return paint.BlendModeOverlay
	case "darken":
		return paint.BlendModeDarken
	case "lighten":
		return paint.BlendModeLighten
	default:
		return paint.BlendModeSrcOver
	}
}

// mergeCornerRadius implements io_grida.rs's CSS border-radius shorthand:
// a single corner_radius field, expanded per the 0/1/2/3/4-value rule, is
// the base, and any explicit per-corner field overrides its corner.
func mergeCornerRadius(shorthand, tl, tr, br, bl *float64) geometry.RectangularCornerRadius {
	base := expandShorthand(shorthand)
	if tl != nil {
		base.TopLeft = geometry.CircularRadius(*tl)
	}
	if tr != nil {
		base.TopRight = geometry.CircularRadius(*tr)
	}
	if br != nil {
		base.BottomRight = geometry.CircularRadius(*br)
	}
	if bl != nil {
		base.BottomLeft = geometry.CircularRadius(*bl)
	}
	return base
}

// expandShorthand applies the CSS border-radius value-count rule to a
// single scalar corner_radius field. This core's wire format only ever
// carries 0 or 1 value in that field (per-corner overrides arrive via the
// four explicit fields instead), so only those two cases apply; the
// 2/3/4-value array forms from io_grida.rs's JSONCornerRadius are not
// representable by a single *float64 and are unreachable here.
func expandShorthand(v *float64) geometry.RectangularCornerRadius {
	if v == nil {
		return geometry.RectangularCornerRadius{}
	}
	return geometry.Uniform(geometry.CircularRadius(*v))
}

func decodeStyle(jn JSONSceneNode) scene.Style {
	st := scene.DefaultStyle()
	if jn.Active != nil {
		st.Active = *jn.Active
	}
	if jn.Opacity != nil {
		st.Opacity = clamp01(*jn.Opacity)
	}
	if jn.Transform != nil {
		t := *jn.Transform
		st.Transform = geometry.AffineTransform{SX: t[0], KX: t[1], TX: t[2], KY: t[3], SY: t[4], TY: t[5]}
	}
	st.Fills = mergePaints(jn.Fill, jn.Fills)
	st.Strokes = mergePaints(jn.Stroke, jn.Strokes)
	st.StrokeWidth = jn.StrokeWidth
	st.StrokeAlign = strokeAlignOf(jn.StrokeAlign)
	return st
}

func strokeAlignOf(s string) scene.StrokeAlign {
	switch s {
	case "outside":
		return scene.StrokeOutside
	case "center":
		return scene.StrokeCenter
	default:
		return scene.StrokeInside
	}
}

func decodeTextSpan(jn JSONSceneNode) scene.TextSpanData {
	var width, height *float64
	if jn.Width != 0 {
		w := jn.Width
		width = &w
	}
	if jn.Height != 0 {
		h := jn.Height
		height = &h
	}
	return scene.TextSpanData{
		Width:  width,
		Height: height,
		Text:   jn.Text,
		StyleRec: scene.TextStyleRec{
			FontFamily: jn.FontFamily,
			FontSize:   jn.FontSize,
			FontWeight: orDefaultInt(jn.FontWeight, 400),
		},
		TextAlign: textAlignOf(jn.TextAlign),
	}
}

func textAlignOf(s string) scene.TextAlign {
	switch s {
	case "right":
		return scene.TextAlignRight
	case "center":
		return scene.TextAlignCenter
	case "justify":
		return scene.TextAlignJustify
	default:
		return scene.TextAlignLeft
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func orDefaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

// parseHexColor parses a "#rrggbb" or "#rrggbbaa" string into a CGColor.
func parseHexColor(s string) (paint.CGColor, error) {
	if len(s) == 0 || s[0] != '#' {
		return 0, fmt.Errorf("ingest: invalid color %q", s)
	}
	hex := s[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return 0, fmt.Errorf("ingest: invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("ingest: invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		return paint.RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	}
	return paint.RGBA(uint8(v>>24), uint8(v>>16), uint8(v>>8), uint8(v)), nil
}
