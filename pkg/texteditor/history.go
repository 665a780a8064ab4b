package texteditor

import "time"

// EditKind groups edits for undo merging. Typing, Backspace, and Delete are
// continuous-input kinds that may merge into a single undo step; Newline,
// Paste, and ImeCommit always start a new step.
type EditKind int

const (
	EditTyping EditKind = iota
	EditBackspace
	EditDelete
	EditNewline
	EditPaste
	EditImeCommit
	EditOther
)

func (k EditKind) mergeable() bool {
	switch k {
	case EditTyping, EditBackspace, EditDelete:
		return true
	default:
		return false
	}
}

// ClassifyEdit maps a command to the EditKind a caller should pass to
// Record, so an IME commit is always recorded as EditImeCommit rather than
// the caller having to remember the mapping itself.
func ClassifyEdit(kind CommandKind) EditKind {
	switch kind {
	case CmdInsert:
		return EditTyping
	case CmdBackspace, CmdBackspaceWord, CmdBackspaceLine:
		return EditBackspace
	case CmdDelete, CmdDeleteWord, CmdDeleteLine:
		return EditDelete
	case CmdCommitPreedit:
		return EditImeCommit
	default:
		return EditOther
	}
}

// DefaultMergeTimeout is how long a gap between same-kind edits is still
// considered one continuous typing run (grounded on the 2s window the
// desktop text-editing example uses for its undo-merge behavior).
const DefaultMergeTimeout = 2 * time.Second

type entry struct {
	kind         EditKind
	before, after State
}

// History is an undo/redo stack over State transitions, merging
// consecutive same-kind edits recorded within MergeTimeout of each other
// into a single undo step.
type History struct {
	MergeTimeout time.Duration
	undo         []entry
	redo         []entry
	lastTime     time.Time
	hasLast      bool
}

// NewHistory constructs a History using DefaultMergeTimeout.
func NewHistory() *History {
	return &History{MergeTimeout: DefaultMergeTimeout}
}

// Record appends a before -> after transition of the given kind at time
// now, merging into the top entry when its kind matches, the kind is
// mergeable, and now is within MergeTimeout of the previous record.
func (h *History) Record(before, after State, kind EditKind, now time.Time) {
	h.redo = nil
	if n := len(h.undo); n > 0 && kind.mergeable() {
		top := &h.undo[n-1]
		if top.kind == kind && h.hasLast && now.Sub(h.lastTime) <= h.MergeTimeout {
			top.after = after
			h.lastTime = now
			h.hasLast = true
			return
		}
	}
	h.undo = append(h.undo, entry{kind: kind, before: before, after: after})
	h.lastTime = now
	h.hasLast = true
}

// ExpireTop forces the next Record to start a new undo step regardless of
// its kind or timing, simulating a merge-window timeout.
func (h *History) ExpireTop() {
	h.hasLast = false
}

// Undo pops the most recent step and returns the state before it.
func (h *History) Undo() (State, bool) {
	n := len(h.undo)
	if n == 0 {
		return State{}, false
	}
	top := h.undo[n-1]
	h.undo = h.undo[:n-1]
	h.redo = append(h.redo, top)
	h.hasLast = false
	return top.before, true
}

// Redo reapplies the most recently undone step and returns the state after
// it.
func (h *History) Redo() (State, bool) {
	n := len(h.redo)
	if n == 0 {
		return State{}, false
	}
	top := h.redo[n-1]
	h.redo = h.redo[:n-1]
	h.undo = append(h.undo, top)
	h.hasLast = false
	return top.after, true
}

// Len returns the number of undo steps currently recorded.
func (h *History) Len() int { return len(h.undo) }

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
