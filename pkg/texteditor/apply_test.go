package texteditor

import (
	"testing"
	"time"

	"github.com/grida-canvas/canvas-core/pkg/text"
)

// stubEngine lays out one byte per rune at a fixed advance, with explicit
// newlines the only line breaks (no wrapping), enough to exercise the
// editor state machine's geometry-dependent commands without a real font.
type stubEngine struct {
	advance    float64
	lineHeight float64
	viewport   float64
}

func (e stubEngine) LineMetrics(s string) []text.LineMetrics {
	var lines []text.LineMetrics
	start := 0
	baseline := e.lineHeight
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, text.LineMetrics{StartIndex: start, EndIndex: i + 1, Baseline: baseline, Ascent: e.lineHeight * 0.8, Descent: e.lineHeight * 0.2})
			start = i + 1
			baseline += e.lineHeight
		}
	}
	lines = append(lines, text.LineMetrics{StartIndex: start, EndIndex: len(s), Baseline: baseline, Ascent: e.lineHeight * 0.8, Descent: e.lineHeight * 0.2})
	return lines
}

func (e stubEngine) PositionAtPoint(s string, x, y float64) int {
	lines := e.LineMetrics(s)
	var ln text.LineMetrics
	for _, l := range lines {
		ln = l
		if y <= l.Baseline+l.Descent {
			break
		}
	}
	col := int(x / e.advance)
	off := ln.StartIndex + col
	if off > ln.EndIndex {
		off = ln.EndIndex
	}
	if off > len(s) {
		off = len(s)
	}
	return off
}

func (e stubEngine) CaretRectAt(s string, offset int) text.CaretRect {
	lines := e.LineMetrics(s)
	for _, l := range lines {
		if offset >= l.StartIndex && offset <= l.EndIndex {
			return text.CaretRect{X: float64(offset-l.StartIndex) * e.advance, Y: l.Baseline - l.Ascent, Height: l.Ascent + l.Descent}
		}
	}
	return text.CaretRect{}
}

func (e stubEngine) WordBoundaryAt(s string, offset int) (int, int) {
	start, end := offset, offset
	isWord := func(b byte) bool { return b != ' ' && b != '\n' }
	for start > 0 && isWord(s[start-1]) {
		start--
	}
	for end < len(s) && isWord(s[end]) {
		end++
	}
	return start, end
}

func (e stubEngine) ViewportHeight() float64 { return e.viewport }

func newStub() stubEngine { return stubEngine{advance: 1, lineHeight: 10, viewport: 25} }

func TestInsertReplacesSelection(t *testing.T) {
	anchor := 1
	s := State{Text: "abcdef", Cursor: 4, Anchor: &anchor}
	got := Apply(s, Insert("X"), newStub())
	if got.Text != "aXef" {
		t.Errorf("got text %q", got.Text)
	}
	if got.Cursor != 2 || got.Anchor != nil {
		t.Errorf("got cursor=%d anchor=%v", got.Cursor, got.Anchor)
	}
}

func TestBackspaceDeletesGraphemeCluster(t *testing.T) {
	s := State{Text: "abc", Cursor: 3}
	got := Apply(s, Command{Kind: CmdBackspace}, newStub())
	if got.Text != "ab" || got.Cursor != 2 {
		t.Errorf("got text=%q cursor=%d", got.Text, got.Cursor)
	}
}

func TestMoveLeftCollapsesSelectionWithoutExtend(t *testing.T) {
	anchor := 1
	s := State{Text: "abcdef", Cursor: 4, Anchor: &anchor}
	got := Apply(s, MoveLeft(false), newStub())
	if got.Cursor != 1 || got.Anchor != nil {
		t.Errorf("expected collapse to selection start, got cursor=%d anchor=%v", got.Cursor, got.Anchor)
	}
}

func TestSelectAll(t *testing.T) {
	s := State{Text: "hello", Cursor: 2}
	got := Apply(s, SelectAll(), newStub())
	if got.Cursor != 5 || got.Anchor == nil || *got.Anchor != 0 {
		t.Errorf("expected full selection, got cursor=%d anchor=%v", got.Cursor, got.Anchor)
	}
}

func TestSelectWordAt(t *testing.T) {
	s := State{Text: "hello world", Cursor: 0}
	got := Apply(s, SelectWordAt(7, 0), newStub())
	if got.Anchor == nil {
		t.Fatal("expected a selection")
	}
	if s.Text[*got.Anchor:got.Cursor] != "world" {
		t.Errorf("expected word 'world', got %q", s.Text[*got.Anchor:got.Cursor])
	}
}

func TestBackspaceLineExcludesNewline(t *testing.T) {
	s := State{Text: "ab\ncd", Cursor: 5}
	got := Apply(s, Command{Kind: CmdBackspaceLine}, newStub())
	if got.Text != "ab\n" {
		t.Errorf("expected 'ab\\n', got %q", got.Text)
	}
}

func TestSetPreeditBuffersWithoutTouchingText(t *testing.T) {
	s := State{Text: "ab", Cursor: 2}
	got := Apply(s, SetPreedit("ni"), newStub())
	if got.Text != "ab" || got.Cursor != 2 {
		t.Errorf("preedit must not change committed text, got text=%q cursor=%d", got.Text, got.Cursor)
	}
	if got.Preedit == nil || *got.Preedit != "ni" {
		t.Errorf("expected preedit %q, got %v", "ni", got.Preedit)
	}
}

func TestSetPreeditEmptyStringCancels(t *testing.T) {
	s := Apply(State{Text: "ab", Cursor: 2}, SetPreedit("ni"), newStub())
	got := Apply(s, SetPreedit(""), newStub())
	if got.Preedit != nil {
		t.Errorf("expected preedit cleared by empty SetPreedit, got %v", got.Preedit)
	}
}

func TestCommitPreeditInsertsTextAndClearsPreedit(t *testing.T) {
	s := Apply(State{Text: "ab", Cursor: 2}, SetPreedit("ni"), newStub())
	got := Apply(s, CommitPreedit("にほん"), newStub())
	if got.Text != "abにほん" {
		t.Errorf("expected committed text appended, got %q", got.Text)
	}
	if got.Cursor != len(got.Text) {
		t.Errorf("expected cursor after committed text, got %d", got.Cursor)
	}
	if got.Preedit != nil {
		t.Errorf("expected preedit cleared after commit, got %v", got.Preedit)
	}
}

func TestCommitPreeditReplacesSelection(t *testing.T) {
	anchor := 1
	s := State{Text: "abcdef", Cursor: 4, Anchor: &anchor}
	got := Apply(s, CommitPreedit("X"), newStub())
	if got.Text != "aXef" || got.Cursor != 2 || got.Anchor != nil {
		t.Errorf("expected commit to behave like Insert over the selection, got text=%q cursor=%d anchor=%v", got.Text, got.Cursor, got.Anchor)
	}
}

func TestCancelPreeditDropsBufferWithNoTextChange(t *testing.T) {
	s := Apply(State{Text: "ab", Cursor: 2}, SetPreedit("ni"), newStub())
	got := Apply(s, CancelPreedit(), newStub())
	if got.Text != "ab" || got.Cursor != 2 {
		t.Errorf("cancel must not change committed text, got text=%q cursor=%d", got.Text, got.Cursor)
	}
	if got.Preedit != nil {
		t.Errorf("expected preedit cleared, got %v", got.Preedit)
	}
}

func TestPreeditSurvivesUnrelatedMoveCommand(t *testing.T) {
	s := Apply(State{Text: "abc", Cursor: 3}, SetPreedit("x"), newStub())
	got := Apply(s, MoveLeft(false), newStub())
	if got.Preedit == nil || *got.Preedit != "x" {
		t.Errorf("expected preedit to survive an unrelated move, got %v", got.Preedit)
	}
}

func TestClassifyEditMapsCommitPreeditToImeCommit(t *testing.T) {
	if got := ClassifyEdit(CmdCommitPreedit); got != EditImeCommit {
		t.Errorf("expected EditImeCommit, got %v", got)
	}
	if got := ClassifyEdit(CmdInsert); got != EditTyping {
		t.Errorf("expected EditTyping for CmdInsert, got %v", got)
	}
}

func TestHistoryRecordsImeCommitAsOwnUndoStep(t *testing.T) {
	h := NewHistory()
	now := time.Unix(0, 0)
	s0 := State{Text: "ab", Cursor: 2}
	s1 := Apply(s0, SetPreedit("ni"), newStub())
	s2 := Apply(s1, CommitPreedit("X"), newStub())
	h.Record(s1, s2, ClassifyEdit(CmdCommitPreedit), now)

	if h.Len() != 1 {
		t.Fatalf("expected one undo step, got %d", h.Len())
	}
	restored, ok := h.Undo()
	if !ok || restored.Text != s1.Text {
		t.Errorf("expected undo to restore %q, got %q", s1.Text, restored.Text)
	}
}

func TestHistoryMergesConsecutiveTyping(t *testing.T) {
	h := NewHistory()
	now := time.Unix(0, 0)
	s0 := State{Text: "", Cursor: 0}
	s1 := Apply(s0, Insert("H"), newStub())
	h.Record(s0, s1, EditTyping, now)
	s2 := Apply(s1, Insert("i"), newStub())
	h.Record(s1, s2, EditTyping, now.Add(time.Second))
	s3 := Apply(s2, Insert("!"), newStub())
	h.Record(s2, s3, EditTyping, now.Add(2*time.Second))

	if h.Len() != 1 {
		t.Fatalf("expected merged single undo step, got %d", h.Len())
	}
	restored, ok := h.Undo()
	if !ok || restored.Text != s0.Text {
		t.Errorf("expected undo to restore %q, got %q", s0.Text, restored.Text)
	}
}

func TestHistoryTimeoutBreaksMerge(t *testing.T) {
	h := &History{MergeTimeout: 2 * time.Second}
	now := time.Unix(0, 0)
	s0 := State{Text: "", Cursor: 0}
	s1 := Apply(s0, Insert("a"), newStub())
	h.Record(s0, s1, EditTyping, now)

	h.ExpireTop()

	s2 := Apply(s1, Insert("b"), newStub())
	h.Record(s1, s2, EditTyping, now.Add(time.Millisecond))

	if h.Len() != 2 {
		t.Errorf("expected 2 undo steps after expiry, got %d", h.Len())
	}
}

func TestHistoryDifferentKindsDoNotMerge(t *testing.T) {
	h := NewHistory()
	now := time.Unix(0, 0)
	s0 := State{Text: "abc", Cursor: 3}
	s1 := Apply(s0, Insert("d"), newStub())
	h.Record(s0, s1, EditTyping, now)
	s2 := Apply(s1, Command{Kind: CmdBackspace}, newStub())
	h.Record(s1, s2, EditBackspace, now)

	if h.Len() != 2 {
		t.Errorf("expected 2 undo steps for differing kinds, got %d", h.Len())
	}
}

func TestHistoryRedoRestoresForwardState(t *testing.T) {
	h := NewHistory()
	now := time.Unix(0, 0)
	s0 := State{Text: "Hello", Cursor: 5}
	s1 := Apply(s0, Insert("!"), newStub())
	h.Record(s0, s1, EditTyping, now)

	restored, _ := h.Undo()
	if restored.Text != s0.Text {
		t.Fatalf("undo mismatch: %q", restored.Text)
	}
	redone, ok := h.Redo()
	if !ok || redone.Text != s1.Text {
		t.Errorf("expected redo to restore %q, got %q ok=%v", s1.Text, redone.Text, ok)
	}
}
