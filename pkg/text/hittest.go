package text

import (
	"github.com/rivo/uniseg"
)

// graphemeBoundaries returns every grapheme-cluster boundary byte offset in
// s, in order, starting at 0 and ending at len(s) inclusive (so offsets[0]
// and offsets[len(offsets)-1] are always valid cursor rests).
func graphemeBoundaries(s string) []int {
	offsets := []int{0}
	state := -1
	pos := 0
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(s, state)
		pos += len(cluster)
		offsets = append(offsets, pos)
		s = rest
		state = newState
	}
	return offsets
}

// snapToGrapheme rounds offset down to the nearest grapheme-cluster
// boundary in text.
func snapToGrapheme(text string, offset int) int {
	bounds := graphemeBoundaries(text)
	best := 0
	for _, b := range bounds {
		if b > offset {
			break
		}
		best = b
	}
	return best
}

// PrevGraphemeBoundary returns the nearest grapheme-cluster boundary
// strictly before offset, or 0 if offset is already at or before the start.
func PrevGraphemeBoundary(s string, offset int) int {
	bounds := graphemeBoundaries(s)
	best := 0
	for _, b := range bounds {
		if b >= offset {
			break
		}
		best = b
	}
	return best
}

// NextGraphemeBoundary returns the nearest grapheme-cluster boundary
// strictly after offset, or len(s) if offset is already at or past the end.
func NextGraphemeBoundary(s string, offset int) int {
	bounds := graphemeBoundaries(s)
	for _, b := range bounds {
		if b > offset {
			return b
		}
	}
	return len(s)
}

// lineAt returns the index into lines containing y, clamping to the first
// or last line when y falls outside the laid-out block.
func lineAt(lines []LineMetrics, y float64) int {
	if len(lines) == 0 {
		return 0
	}
	top := 0.0
	for i, ln := range lines {
		bandTop := ln.Baseline - ln.Ascent
		bandBottom := ln.Baseline + ln.Descent
		if i == 0 {
			top = bandTop
		}
		if y < top {
			return i
		}
		if y >= bandTop && y < bandBottom {
			return i
		}
		top = bandBottom
	}
	return len(lines) - 1
}

// PositionAtPoint returns a grapheme-boundary byte offset nearest (x, y).
// An empty line's vertical band returns its StartIndex directly, bypassing
// x-hit-testing (there is nothing to measure).
func (e *Engine) PositionAtPoint(text string, x, y float64) int {
	lines := e.Build(text)
	li := lineAt(lines, y)
	ln := lines[li]
	if ln.StartIndex == ln.EndIndex {
		return ln.StartIndex
	}
	lineText := text[ln.StartIndex:ln.EndIndex]
	// Trim a trailing newline from the measured content; it occupies no
	// horizontal space.
	if n := len(lineText); n > 0 && lineText[n-1] == '\n' {
		lineText = lineText[:n-1]
	}

	if x <= 0 {
		return ln.StartIndex
	}
	var w float64
	last := ln.StartIndex
	for _, r := range lineText {
		adv := e.advance(r)
		if w+adv/2 >= x {
			return snapToGrapheme(text, last)
		}
		w += adv
		last += runeLen(r)
	}
	return snapToGrapheme(text, ln.StartIndex+len(lineText))
}

func runeLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}

// CaretRectAt returns the caret geometry for the grapheme cluster ending at
// offset: x is the cumulative advance of every rune before offset on its
// line (the rightmost edge, since this engine lays out left-to-right
// monotonically rather than reordering bidi runs), y/height come from the
// owning line's ascent/descent.
func (e *Engine) CaretRectAt(text string, offset int) CaretRect {
	offset = snapToGrapheme(text, offset)
	lines := e.Build(text)
	var ln LineMetrics
	found := false
	for _, l := range lines {
		endsWithNewline := l.EndIndex > l.StartIndex && text[l.EndIndex-1] == '\n'
		if offset >= l.StartIndex && (offset < l.EndIndex || (offset == l.EndIndex && !endsWithNewline)) {
			ln = l
			found = true
			break
		}
	}
	if !found && len(lines) > 0 {
		ln = lines[len(lines)-1]
	}
	var w float64
	for i, r := range text[ln.StartIndex:] {
		abs := ln.StartIndex + i
		if abs >= offset {
			break
		}
		w += e.advance(r)
	}
	return CaretRect{X: w, Y: ln.Baseline - ln.Ascent, Height: ln.Ascent + ln.Descent}
}

// WordBoundaryAt returns the UAX #29 word segment containing offset.
func (e *Engine) WordBoundaryAt(text string, offset int) (int, int) {
	if len(text) == 0 {
		return 0, 0
	}
	state := -1
	pos := 0
	remaining := text
	for len(remaining) > 0 {
		word, rest, newState := uniseg.FirstWordInString(remaining, state)
		end := pos + len(word)
		if offset >= pos && offset < end {
			return pos, end
		}
		if end >= len(text) {
			return pos, end
		}
		pos = end
		remaining = rest
		state = newState
	}
	return 0, len(text)
}

// ViewportHeight returns the configured viewport height used by
// MovePageUp/MovePageDown.
func (e *Engine) ViewportHeight() float64 {
	return e.Viewport
}
