package texteditor

// CommandKind discriminates the closed Command sum.
type CommandKind int

const (
	CmdInsert CommandKind = iota
	CmdBackspace
	CmdBackspaceWord
	CmdBackspaceLine
	CmdDelete
	CmdDeleteWord
	CmdDeleteLine
	CmdMoveLeft
	CmdMoveRight
	CmdMoveUp
	CmdMoveDown
	CmdMoveHome
	CmdMoveEnd
	CmdMoveDocStart
	CmdMoveDocEnd
	CmdMovePageUp
	CmdMovePageDown
	CmdMoveWordLeft
	CmdMoveWordRight
	CmdMoveTo
	CmdExtendTo
	CmdSelectWordAt
	CmdSelectLineAt
	CmdSelectAll
	CmdSetPreedit
	CmdCommitPreedit
	CmdCancelPreedit
)

// Command is a single editor operation. Only the fields relevant to Kind
// are meaningful: Text for Insert and SetPreedit/CommitPreedit (the
// composing/committed string), Extend for the Move* variants, X/Y for the
// point-based variants.
type Command struct {
	Kind   CommandKind
	Text   string
	Extend bool
	X, Y   float64
}

func Insert(s string) Command           { return Command{Kind: CmdInsert, Text: s} }
func MoveLeft(extend bool) Command      { return Command{Kind: CmdMoveLeft, Extend: extend} }
func MoveRight(extend bool) Command     { return Command{Kind: CmdMoveRight, Extend: extend} }
func MoveUp(extend bool) Command        { return Command{Kind: CmdMoveUp, Extend: extend} }
func MoveDown(extend bool) Command      { return Command{Kind: CmdMoveDown, Extend: extend} }
func MoveHome(extend bool) Command      { return Command{Kind: CmdMoveHome, Extend: extend} }
func MoveEnd(extend bool) Command       { return Command{Kind: CmdMoveEnd, Extend: extend} }
func MoveDocStart(extend bool) Command  { return Command{Kind: CmdMoveDocStart, Extend: extend} }
func MoveDocEnd(extend bool) Command    { return Command{Kind: CmdMoveDocEnd, Extend: extend} }
func MovePageUp(extend bool) Command    { return Command{Kind: CmdMovePageUp, Extend: extend} }
func MovePageDown(extend bool) Command  { return Command{Kind: CmdMovePageDown, Extend: extend} }
func MoveWordLeft(extend bool) Command  { return Command{Kind: CmdMoveWordLeft, Extend: extend} }
func MoveWordRight(extend bool) Command { return Command{Kind: CmdMoveWordRight, Extend: extend} }
func MoveTo(x, y float64) Command       { return Command{Kind: CmdMoveTo, X: x, Y: y} }
func ExtendTo(x, y float64) Command     { return Command{Kind: CmdExtendTo, X: x, Y: y} }
func SelectWordAt(x, y float64) Command { return Command{Kind: CmdSelectWordAt, X: x, Y: y} }
func SelectLineAt(x, y float64) Command { return Command{Kind: CmdSelectLineAt, X: x, Y: y} }
func SelectAll() Command                { return Command{Kind: CmdSelectAll} }

// SetPreedit updates the in-progress IME composition string. An empty s is
// equivalent to CancelPreedit.
func SetPreedit(s string) Command { return Command{Kind: CmdSetPreedit, Text: s} }

// CommitPreedit finalizes an IME composition: s (the string the input
// method reports as committed, not necessarily the last preedit value) is
// inserted at the current selection and the preedit buffer is cleared.
func CommitPreedit(s string) Command { return Command{Kind: CmdCommitPreedit, Text: s} }

// CancelPreedit discards the in-progress IME composition with no change to
// Text or Cursor.
func CancelPreedit() Command { return Command{Kind: CmdCancelPreedit} }
