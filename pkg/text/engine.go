package text

// LayoutEngine is the contract pkg/texteditor's command interpreter
// consults; Engine is its concrete implementation, kept as a narrow
// interface so tests can substitute a fixed-width stub without a real
// font face.
type LayoutEngine interface {
	LineMetrics(text string) []LineMetrics
	PositionAtPoint(text string, x, y float64) int
	CaretRectAt(text string, offset int) CaretRect
	WordBoundaryAt(text string, offset int) (int, int)
	ViewportHeight() float64
}

// LineMetrics exposes Build under the name the spec's contract uses.
func (e *Engine) LineMetrics(text string) []LineMetrics {
	return e.Build(text)
}

var _ LayoutEngine = (*Engine)(nil)
