package formula

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownVariable is returned when an expression references a
	// name that has no binding.
	ErrUnknownVariable = errors.New("unknown variable")

	// ErrNotNumeric is returned when a categorical value is used as an
	// arithmetic operand.
	ErrNotNumeric = errors.New("non-numeric operand")

	// ErrDivisionByZero is returned for x / 0.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrNotFinite is returned when a result overflows or is NaN.
	ErrNotFinite = errors.New("result is not finite")
)

// Error describes a failure to parse or evaluate an expression.
type Error struct {
	Expr string // source expression
	Pos  int    // byte offset, -1 when not tied to a position
	Msg  string
	Err  error // optional sentinel
}

func (e *Error) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("formula %q at %d: %s", e.Expr, e.Pos, e.Msg)
	}
	return fmt.Sprintf("formula %q: %s", e.Expr, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }
