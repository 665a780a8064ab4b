// Package canvaserr provides structured error handling for the canvas
// rendering core, following the error taxonomy of kinds (not types) laid
// out for the renderer: invalid input, resource-not-ready, unsupported
// filter primitive, and programmer error.
package canvaserr

import "fmt"

// Kind categorizes an error by how the caller should react to it.
type Kind int

const (
	// KindUnknown indicates an error of unclassified origin.
	KindUnknown Kind = iota
	// KindInvalidInput indicates recoverable bad input: unknown node type,
	// malformed path data, a missing resource hash, a NaN dimension. The
	// caller substitutes an Error node and keeps rendering.
	KindInvalidInput
	// KindResourceNotReady indicates a transient condition: an image not
	// yet decoded, a font not yet available. The caller skips the fill
	// that needed it and retries next frame.
	KindResourceNotReady
	// KindFilterUnsupported indicates a filter primitive this evaluator
	// does not implement. The caller skips the primitive; PreviousResult
	// is unchanged.
	KindFilterUnsupported
	// KindProgrammer indicates a contract violation upstream: a NodeId not
	// present in the repository, a text offset that is not a grapheme
	// boundary passed to a non-snapping API. These are bugs, not runtime
	// conditions to recover from.
	KindProgrammer
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindResourceNotReady:
		return "resource_not_ready"
	case KindFilterUnsupported:
		return "filter_unsupported"
	case KindProgrammer:
		return "programmer"
	default:
		return "unknown"
	}
}

// Error is a structured error carrying the operation that failed, its
// Kind, and the wrapped cause.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s [%s]", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New constructs an *Error for op/kind, wrapping err (which may be nil).
func New(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// Is reports whether err is a canvaserr.Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if ce, ok := err.(*Error); ok {
			e = ce
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return e != nil && e.Kind == kind
}
