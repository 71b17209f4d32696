package syntax

import (
	"errors"
	"fmt"
)

// ErrMalformedExpression is matched by every error returned from this
// package. Callers that only care whether a pattern is usable test for it
// with errors.Is.
var ErrMalformedExpression = errors.New("malformed expression")

// Specific causes, also reachable through errors.Is.
var (
	ErrEmptyPattern    = errors.New("empty pattern")
	ErrUnbalancedParen = errors.New("unbalanced parenthesis")
	ErrMissingOperand  = errors.New("operator is missing an operand")
	ErrTrailingOperand = errors.New("operand is not joined by an operator")
	ErrEmptyClass      = errors.New("empty character class")
	ErrInvalidRange    = errors.New("invalid character class range")
)

// Error describes why a pattern could not be parsed.
type Error struct {
	// Pattern is the source pattern, when known.
	Pattern string

	// Pos is the character offset of the offending token, or -1.
	Pos int

	// Err is one of the specific causes above.
	Err error
}

// Error implements the error interface
func (e *Error) Error() string {
	switch {
	case e.Pattern != "" && e.Pos >= 0:
		return fmt.Sprintf("malformed expression %q at offset %d: %v", e.Pattern, e.Pos, e.Err)
	case e.Pattern != "":
		return fmt.Sprintf("malformed expression %q: %v", e.Pattern, e.Err)
	case e.Pos >= 0:
		return fmt.Sprintf("malformed expression at offset %d: %v", e.Pos, e.Err)
	default:
		return fmt.Sprintf("malformed expression: %v", e.Err)
	}
}

// Unwrap exposes both ErrMalformedExpression and the specific cause.
func (e *Error) Unwrap() []error {
	return []error{ErrMalformedExpression, e.Err}
}

func newError(pos int, err error) *Error {
	return &Error{Pos: pos, Err: err}
}
