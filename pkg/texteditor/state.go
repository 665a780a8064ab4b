// Package texteditor implements a pure text-editing state machine: a
// closed command set applied against a TextEditorState by a pkg/text
// layout engine, plus an edit history that merges consecutive typing into
// a single undo step the way desktop text fields do.
package texteditor

// State is the full editor state: the text buffer, the cursor position,
// an optional anchor marking the other end of a selection, and an optional
// IME preedit string.
//
// Preedit holds text an input method is still composing (e.g. picking a
// kanji candidate): it is never part of Text and never moves the cursor.
// SetPreedit replaces it, CommitPreedit inserts the committed string at the
// selection and clears it, CancelPreedit clears it with no text change.
type State struct {
	Text    string
	Cursor  int
	Anchor  *int    // nil = no selection
	Preedit *string // nil = no composition in progress
}

// Selection returns the selection range [start, end), or (cursor, cursor)
// when there is none.
func (s State) Selection() (start, end int) {
	if s.Anchor == nil {
		return s.Cursor, s.Cursor
	}
	a := *s.Anchor
	if a < s.Cursor {
		return a, s.Cursor
	}
	return s.Cursor, a
}

// HasSelection reports whether the state has a non-empty selection.
func (s State) HasSelection() bool {
	start, end := s.Selection()
	return start != end
}

func anchorAt(v int) *int { return &v }

// deleteRange removes text[start:end) and places the cursor at start, with
// no anchor.
func (s State) deleteRange(start, end int) State {
	if start > end {
		start, end = end, start
	}
	return State{
		Text:    s.Text[:start] + s.Text[end:],
		Cursor:  start,
		Anchor:  nil,
		Preedit: s.Preedit,
	}
}

// normalizeNewlines converts CRLF and lone CR into LF, per Insert's
// contract that pasted/typed text always lands with LF line endings.
func normalizeNewlines(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\r':
			out = append(out, '\n')
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}
