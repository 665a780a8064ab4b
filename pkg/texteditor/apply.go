package texteditor

import (
	"strings"

	"github.com/grida-canvas/canvas-core/pkg/text"
)

// Apply interprets one command against state using engine for every
// geometry-dependent decision (line metrics, hit-testing, word
// boundaries). It is pure: the same (state, command, engine) always
// produces the same result, and every returned Cursor/Anchor lies on a
// grapheme-cluster boundary or equals len(state.Text).
func Apply(state State, cmd Command, engine text.LayoutEngine) State {
	switch cmd.Kind {
	case CmdInsert:
		return applyInsert(state, normalizeNewlines(cmd.Text))
	case CmdBackspace:
		return applyDeleteGrapheme(state, false)
	case CmdDelete:
		return applyDeleteGrapheme(state, true)
	case CmdBackspaceWord:
		return applyDeleteWord(state, engine, false)
	case CmdDeleteWord:
		return applyDeleteWord(state, engine, true)
	case CmdBackspaceLine:
		return applyDeleteLine(state, engine, false)
	case CmdDeleteLine:
		return applyDeleteLine(state, engine, true)
	case CmdMoveLeft:
		return applyMoveLeftRight(state, cmd.Extend, false)
	case CmdMoveRight:
		return applyMoveLeftRight(state, cmd.Extend, true)
	case CmdMoveUp:
		return applyMoveVertical(state, engine, cmd.Extend, -1)
	case CmdMoveDown:
		return applyMoveVertical(state, engine, cmd.Extend, 1)
	case CmdMoveHome:
		return applyMoveHomeEnd(state, engine, cmd.Extend, false)
	case CmdMoveEnd:
		return applyMoveHomeEnd(state, engine, cmd.Extend, true)
	case CmdMoveDocStart:
		return applyMoveTo(state, 0, cmd.Extend)
	case CmdMoveDocEnd:
		return applyMoveTo(state, len(state.Text), cmd.Extend)
	case CmdMovePageUp:
		return applyMovePage(state, engine, cmd.Extend, -1)
	case CmdMovePageDown:
		return applyMovePage(state, engine, cmd.Extend, 1)
	case CmdMoveWordLeft:
		return applyMoveWord(state, engine, cmd.Extend, false)
	case CmdMoveWordRight:
		return applyMoveWord(state, engine, cmd.Extend, true)
	case CmdMoveTo:
		off := engine.PositionAtPoint(state.Text, cmd.X, cmd.Y)
		return State{Text: state.Text, Cursor: off, Anchor: nil, Preedit: state.Preedit}
	case CmdExtendTo:
		anchor := state.Cursor
		if state.Anchor != nil {
			anchor = *state.Anchor
		}
		off := engine.PositionAtPoint(state.Text, cmd.X, cmd.Y)
		return State{Text: state.Text, Cursor: off, Anchor: anchorAt(anchor), Preedit: state.Preedit}
	case CmdSelectWordAt:
		off := engine.PositionAtPoint(state.Text, cmd.X, cmd.Y)
		start, end := engine.WordBoundaryAt(state.Text, off)
		return State{Text: state.Text, Cursor: end, Anchor: anchorAt(start), Preedit: state.Preedit}
	case CmdSelectLineAt:
		off := engine.PositionAtPoint(state.Text, cmd.X, cmd.Y)
		start, end := lineBoundsAt(engine, state.Text, off)
		return State{Text: state.Text, Cursor: end, Anchor: anchorAt(start), Preedit: state.Preedit}
	case CmdSelectAll:
		return State{Text: state.Text, Cursor: len(state.Text), Anchor: anchorAt(0), Preedit: state.Preedit}
	case CmdSetPreedit:
		return applySetPreedit(state, cmd.Text)
	case CmdCommitPreedit:
		return applyCommitPreedit(state, cmd.Text)
	case CmdCancelPreedit:
		return applyCancelPreedit(state)
	default:
		return state
	}
}

// applySetPreedit replaces the composing string. An empty text clears it,
// matching an IME reporting an empty Preedit event when composition ends
// without a commit.
func applySetPreedit(state State, text string) State {
	if text == "" {
		return applyCancelPreedit(state)
	}
	next := state
	next.Preedit = &text
	return next
}

// applyCommitPreedit inserts the committed string at the current selection,
// the same path a plain Insert takes, and clears the preedit buffer.
func applyCommitPreedit(state State, text string) State {
	next := applyInsert(state, normalizeNewlines(text))
	next.Preedit = nil
	return next
}

func applyCancelPreedit(state State) State {
	next := state
	next.Preedit = nil
	return next
}

func applyInsert(state State, s string) State {
	start, end := state.Selection()
	merged := state.Text[:start] + s + state.Text[end:]
	return State{Text: merged, Cursor: start + len(s), Anchor: nil, Preedit: state.Preedit}
}

func applyDeleteGrapheme(state State, forward bool) State {
	if state.HasSelection() {
		start, end := state.Selection()
		return state.deleteRange(start, end)
	}
	if forward {
		end := text.NextGraphemeBoundary(state.Text, state.Cursor)
		return state.deleteRange(state.Cursor, end)
	}
	start := text.PrevGraphemeBoundary(state.Text, state.Cursor)
	return state.deleteRange(start, state.Cursor)
}

func applyDeleteWord(state State, engine text.LayoutEngine, forward bool) State {
	if state.HasSelection() {
		start, end := state.Selection()
		return state.deleteRange(start, end)
	}
	if forward {
		_, end := engine.WordBoundaryAt(state.Text, state.Cursor)
		if end <= state.Cursor {
			end = text.NextGraphemeBoundary(state.Text, state.Cursor)
		}
		return state.deleteRange(state.Cursor, end)
	}
	prev := text.PrevGraphemeBoundary(state.Text, state.Cursor)
	start, _ := engine.WordBoundaryAt(state.Text, prev)
	if start >= state.Cursor {
		start = prev
	}
	return state.deleteRange(start, state.Cursor)
}

func applyDeleteLine(state State, engine text.LayoutEngine, forward bool) State {
	if state.HasSelection() {
		start, end := state.Selection()
		return state.deleteRange(start, end)
	}
	lineStart, lineEnd := lineBoundsAt(engine, state.Text, state.Cursor)
	// "excluding the newline on the end-case": trim a trailing \n from
	// lineEnd so DeleteLine forward never eats the line terminator.
	if lineEnd > lineStart && lineEnd <= len(state.Text) && lineEnd > 0 && state.Text[lineEnd-1] == '\n' {
		lineEnd--
	}
	if forward {
		return state.deleteRange(state.Cursor, lineEnd)
	}
	return state.deleteRange(lineStart, state.Cursor)
}

// lineBoundsAt returns the start/end byte offsets of the line containing
// offset, per the owning LineMetrics entry (end excludes a trailing
// newline's contribution to editing operations the same way DeleteLine
// does; line_metrics itself still reports it inclusive).
func lineBoundsAt(engine text.LayoutEngine, s string, offset int) (int, int) {
	lines := engine.LineMetrics(s)
	for _, ln := range lines {
		endsWithNewline := ln.EndIndex > ln.StartIndex && s[ln.EndIndex-1] == '\n'
		if offset >= ln.StartIndex && (offset < ln.EndIndex || (offset == ln.EndIndex && !endsWithNewline)) {
			end := ln.EndIndex
			if end > ln.StartIndex && strings.HasSuffix(s[ln.StartIndex:end], "\n") {
				end--
			}
			return ln.StartIndex, end
		}
	}
	return 0, len(s)
}

func applyMoveLeftRight(state State, extend, forward bool) State {
	if !extend && state.HasSelection() {
		start, end := state.Selection()
		if forward {
			return State{Text: state.Text, Cursor: end, Anchor: nil, Preedit: state.Preedit}
		}
		return State{Text: state.Text, Cursor: start, Anchor: nil, Preedit: state.Preedit}
	}
	var target int
	if forward {
		target = text.NextGraphemeBoundary(state.Text, state.Cursor)
	} else {
		target = text.PrevGraphemeBoundary(state.Text, state.Cursor)
	}
	return applyMoveTo(state, target, extend)
}

func applyMoveTo(state State, offset int, extend bool) State {
	if extend {
		anchor := state.Cursor
		if state.Anchor != nil {
			anchor = *state.Anchor
		}
		return State{Text: state.Text, Cursor: offset, Anchor: anchorAt(anchor), Preedit: state.Preedit}
	}
	return State{Text: state.Text, Cursor: offset, Anchor: nil, Preedit: state.Preedit}
}

func applyMoveVertical(state State, engine text.LayoutEngine, extend bool, dir int) State {
	lines := engine.LineMetrics(state.Text)
	caret := engine.CaretRectAt(state.Text, state.Cursor)
	li := lineIndexAt(lines, state.Cursor)
	ti := li + dir
	if ti < 0 {
		return applyMoveTo(state, 0, extend)
	}
	if ti >= len(lines) {
		return applyMoveTo(state, len(state.Text), extend)
	}
	target := lines[ti]
	offset := engine.PositionAtPoint(state.Text, caret.X, target.Baseline)
	return applyMoveTo(state, offset, extend)
}

func applyMovePage(state State, engine text.LayoutEngine, extend bool, dir int) State {
	lines := engine.LineMetrics(state.Text)
	if len(lines) == 0 {
		return state
	}
	lineHeight := lines[0].Ascent + lines[0].Descent
	if len(lines) > 1 {
		lineHeight = lines[1].Baseline - lines[0].Baseline
	}
	if lineHeight <= 0 {
		lineHeight = 1
	}
	delta := int(engine.ViewportHeight() / lineHeight)
	if delta < 1 {
		delta = 1
	}
	s := state
	for i := 0; i < delta; i++ {
		next := applyMoveVertical(s, engine, extend, dir)
		if next.Cursor == s.Cursor {
			break
		}
		s = next
	}
	return s
}

func applyMoveHomeEnd(state State, engine text.LayoutEngine, extend, end bool) State {
	lineStart, lineEnd := lineBoundsAt(engine, state.Text, state.Cursor)
	if end {
		return applyMoveTo(state, lineEnd, extend)
	}
	return applyMoveTo(state, lineStart, extend)
}

func applyMoveWord(state State, engine text.LayoutEngine, extend, forward bool) State {
	if forward {
		_, end := engine.WordBoundaryAt(state.Text, state.Cursor)
		if end <= state.Cursor {
			end = text.NextGraphemeBoundary(state.Text, state.Cursor)
		}
		return applyMoveTo(state, end, extend)
	}
	prev := text.PrevGraphemeBoundary(state.Text, state.Cursor)
	start, _ := engine.WordBoundaryAt(state.Text, prev)
	if start >= state.Cursor {
		start = prev
	}
	return applyMoveTo(state, start, extend)
}

func lineIndexAt(lines []text.LineMetrics, offset int) int {
	for i, ln := range lines {
		// An offset equal to EndIndex belongs to the next line when that
		// line starts there (ranges are half-open).
		if offset >= ln.StartIndex && (offset < ln.EndIndex || i == len(lines)-1 || lines[i+1].StartIndex > offset) {
			return i
		}
	}
	if len(lines) == 0 {
		return 0
	}
	return len(lines) - 1
}
