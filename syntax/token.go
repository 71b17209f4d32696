package syntax

import (
	"fmt"

	"github.com/coregx/lexgen/alphabet"
)

// TokenKind identifies a token of the interval-expanded pattern.
type TokenKind uint8

const (
	// TokInterval is an operand: a single character or a class member
	TokInterval TokenKind = iota

	// TokUnion is the alternation operator '|'
	TokUnion

	// TokConcat is the explicit concatenation operator.
	// It never appears in source; InsertConcat produces it.
	TokConcat

	// TokStar is the Kleene star '*'
	TokStar

	// TokLParen is '('
	TokLParen

	// TokRParen is ')'
	TokRParen
)

// String returns the operator spelling, or "interval".
func (k TokenKind) String() string {
	switch k {
	case TokInterval:
		return "interval"
	case TokUnion:
		return "|"
	case TokConcat:
		return "."
	case TokStar:
		return "*"
	case TokLParen:
		return "("
	case TokRParen:
		return ")"
	default:
		return fmt.Sprintf("TokenKind(%d)", k)
	}
}

// Token is one element of an interval-expanded pattern.
type Token struct {
	Kind TokenKind

	// Interval is set for TokInterval
	Interval alphabet.Interval

	// Pos is the character offset in the source pattern the token came
	// from. Tokens synthesized from a class point at the class member.
	Pos int
}

// String returns a compact form, e.g. "[97, 122]" or "|".
func (t Token) String() string {
	if t.Kind == TokInterval {
		return t.Interval.String()
	}
	return t.Kind.String()
}

// endsOperand reports whether an operand may end at a token of kind k.
func (k TokenKind) endsOperand() bool {
	return k == TokInterval || k == TokRParen || k == TokStar
}

// beginsOperand reports whether an operand may begin at a token of kind k.
func (k TokenKind) beginsOperand() bool {
	return k == TokInterval || k == TokLParen
}

// precedence orders the binary operators: | < . < *
func (k TokenKind) precedence() int {
	switch k {
	case TokUnion:
		return 1
	case TokConcat:
		return 2
	case TokStar:
		return 3
	default:
		return 0
	}
}
