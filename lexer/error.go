package lexer

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Common lexer errors
var (
	// ErrNoTokenMatch indicates that neither a token nor whitespace matches
	// at some position of the input
	ErrNoTokenMatch = errors.New("input does not match any token")

	// ErrInvalidConfig indicates invalid configuration was provided
	ErrInvalidConfig = errors.New("invalid lexer configuration")

	// ErrDuplicateToken indicates two rules share a token name
	ErrDuplicateToken = errors.New("duplicate token name")
)

// NoMatchError reports where scanning stopped.
type NoMatchError struct {
	Pos  int    // 1-based character position
	Near string // a short excerpt of the input starting at Pos
}

// Error implements the error interface
func (e *NoMatchError) Error() string {
	return fmt.Sprintf("%v at position %d near %q", ErrNoTokenMatch, e.Pos, e.Near)
}

// Unwrap returns ErrNoTokenMatch
func (e *NoMatchError) Unwrap() error {
	return ErrNoTokenMatch
}

// RuleError wraps a failure to compile one token's pattern.
type RuleError struct {
	Name    string
	Pattern string
	Line    int // 0 when the rule did not come from a file
	Err     error
}

// Error implements the error interface
func (e *RuleError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("token %s (line %d): %v", e.Name, e.Line, e.Err)
	}
	return fmt.Sprintf("token %s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error
func (e *RuleError) Unwrap() error {
	return e.Err
}

const nearLen = 16

// near returns up to nearLen characters from the start of s.
func near(s string) string {
	n, i := 0, 0
	for i < len(s) && n < nearLen {
		_, w := utf8.DecodeRuneInString(s[i:])
		i += w
		n++
	}
	return s[:i]
}
