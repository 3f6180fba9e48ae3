package conv

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package and by the backends wraps
// exactly one of them, so callers can classify failures with errors.Is.
var (
	// ErrPrecondition reports a buffer that is nil, on the wrong device, of the
	// wrong element type, of the wrong rank or not contiguous.
	ErrPrecondition = errors.New("precondition violation")

	// ErrInvalidConfig reports a stride/padding/kernel combination that yields
	// a non-positive output extent.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrShapeMismatch reports a buffer whose shape disagrees with the shape
	// derived from the convolution parameters.
	ErrShapeMismatch = errors.New("shape mismatch")
)

// Error describes a failed convolution call.
type Error struct {
	Kind error  // One of ErrPrecondition, ErrInvalidConfig, ErrShapeMismatch.
	Op   string // Entry point, e.g. "forward" or "backward".
	Arg  string // Offending argument, may be empty.
	Msg  string
}

func (e *Error) Error() string {
	if e.Arg == "" {
		return fmt.Sprintf("conv2d %s: %v: %s", e.Op, e.Kind, e.Msg)
	}
	return fmt.Sprintf("conv2d %s: %v: %s %s", e.Op, e.Kind, e.Arg, e.Msg)
}

// Unwrap returns the error kind.
func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, op, arg, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Arg: arg, Msg: fmt.Sprintf(format, args...)}
}
