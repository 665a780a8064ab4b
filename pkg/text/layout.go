package text

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// LineMetrics describes one laid-out line's byte range and vertical
// placement. StartIndex/EndIndex are UTF-8 byte offsets into the source
// text; EndIndex includes a trailing newline when the line ends on one.
type LineMetrics struct {
	StartIndex, EndIndex int
	Baseline             float64
	Ascent, Descent      float64
}

func (m LineMetrics) height() float64 { return m.Ascent + m.Descent }

// CaretRect is a caret's on-screen geometry: a zero-width vertical bar at x
// spanning [y, y+height).
type CaretRect struct {
	X, Y, Height float64
}

// Engine configures a layout pass: the font face and size to shape with,
// an optional wrap width (0 = no wrapping, one line per explicit newline),
// and the viewport height PageUp/PageDown measure against.
type Engine struct {
	Face           font.Face
	LineHeight     float64 // 0 = use the face's own line height
	MaxWidth       float64 // 0 = unconstrained
	Viewport       float64
	LetterSpacing  float64
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

func (e *Engine) metrics() (ascent, descent, lineHeight float64) {
	m := e.Face.Metrics()
	ascent = fixedToFloat(m.Ascent)
	descent = fixedToFloat(m.Descent)
	lineHeight = e.LineHeight
	if lineHeight <= 0 {
		lineHeight = fixedToFloat(m.Height)
		if lineHeight <= 0 {
			lineHeight = ascent + descent
		}
	}
	return
}

func (e *Engine) advance(r rune) float64 {
	a, ok := e.Face.GlyphAdvance(r)
	if !ok {
		return 0
	}
	return fixedToFloat(a) + e.LetterSpacing
}

// measure returns the pixel width of s.
func (e *Engine) measure(s string) float64 {
	var w float64
	for _, r := range s {
		w += e.advance(r)
	}
	return w
}

// Build lays text out into lines: split on explicit '\n' into paragraphs,
// then (when MaxWidth > 0) greedily wrap each paragraph at whitespace so no
// line's measured width exceeds MaxWidth. A trailing '\n' produces a
// phantom empty final line so the cursor has somewhere to rest after it
// (spec line_metrics contract).
func (e *Engine) Build(text string) []LineMetrics {
	ascent, descent, lineHeight := e.metrics()
	var lines []LineMetrics
	baseline := ascent

	emit := func(start, end int) {
		lines = append(lines, LineMetrics{
			StartIndex: start, EndIndex: end,
			Baseline: baseline, Ascent: ascent, Descent: descent,
		})
		baseline += lineHeight
	}

	pos := 0
	for {
		nl := strings.IndexByte(text[pos:], '\n')
		var paragraph string
		var paragraphEnd int // end offset including the newline, if any
		hasNL := nl >= 0
		if hasNL {
			paragraph = text[pos : pos+nl]
			paragraphEnd = pos + nl + 1
		} else {
			paragraph = text[pos:]
			paragraphEnd = len(text)
		}

		e.wrapParagraph(paragraph, pos, paragraphEnd, hasNL, emit)

		if !hasNL {
			break
		}
		pos = paragraphEnd
		if pos == len(text) {
			// Trailing newline: phantom empty line at text.len().
			emit(pos, pos)
			break
		}
	}
	if len(lines) == 0 {
		emit(0, 0)
	}
	return lines
}

// wrapParagraph splits one newline-delimited paragraph (spanning
// text[start:contentEnd), where contentEnd is start+len(paragraph) and
// hardEnd is contentEnd plus the trailing newline byte if hasNL) into one
// or more wrapped lines via emit(lineStart, lineEnd), breaking greedily at
// the last space seen before the line would overflow MaxWidth, or hard at
// the overflowing rune when a line has no space to break on.
func (e *Engine) wrapParagraph(paragraph string, start, hardEnd int, hasNL bool, emit func(int, int)) {
	contentEnd := start + len(paragraph)
	finalEnd := contentEnd
	if hasNL {
		finalEnd = hardEnd
	}
	if e.MaxWidth <= 0 || e.measure(paragraph) <= e.MaxWidth {
		emit(start, finalEnd)
		return
	}

	lineStart := start
	lineWidth := 0.0
	lastSpace := -1 // byte offset just past the last space seen since lineStart

	for i, r := range paragraph {
		abs := start + i
		w := e.advance(r)
		if lineWidth > 0 && lineWidth+w > e.MaxWidth {
			breakAt := lastSpace
			if breakAt <= lineStart {
				breakAt = abs
			}
			emit(lineStart, breakAt)
			lineStart = breakAt
			if lineStart-start < len(paragraph) && paragraph[lineStart-start] == ' ' {
				lineStart++
			}
			lastSpace = -1
			lineWidth = 0
			if abs >= lineStart {
				lineWidth = w
			}
		} else {
			lineWidth += w
		}
		if r == ' ' {
			lastSpace = abs + 1
		}
	}
	emit(lineStart, finalEnd)
}
