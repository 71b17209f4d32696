package syntax

import (
	"slices"

	"github.com/coregx/lexgen/alphabet"
)

// category classifies class range endpoints. A range x-y is only honoured
// when both ends share a category other than catOther, so that [Z-a] or
// [+-/] are read as literal characters instead of surprising spans.
type category uint8

const (
	catOther category = iota
	catDigit
	catLower
	catUpper
)

func categoryOf(r rune) category {
	switch {
	case r >= '0' && r <= '9':
		return catDigit
	case r >= 'a' && r <= 'z':
		return catLower
	case r >= 'A' && r <= 'Z':
		return catUpper
	default:
		return catOther
	}
}

// Expand rewrites a pattern into interval and operator tokens.
//
// The operators are '|', '*', '(' and ')'. Every other character, '.'
// included, becomes a single-point interval. A class [...] becomes a
// parenthesized union of its members; see expandClass for range rules.
// A '[' that is never closed is the literal character '['.
func Expand(pattern string) ([]Token, error) {
	src := []rune(pattern)
	toks := make([]Token, 0, len(src))

	for i := 0; i < len(src); i++ {
		switch c := src[i]; c {
		case '|':
			toks = append(toks, Token{Kind: TokUnion, Pos: i})
		case '*':
			toks = append(toks, Token{Kind: TokStar, Pos: i})
		case '(':
			toks = append(toks, Token{Kind: TokLParen, Pos: i})
		case ')':
			toks = append(toks, Token{Kind: TokRParen, Pos: i})
		case '[':
			end := slices.Index(src[i+1:], ']')
			if end < 0 {
				toks = append(toks, literal(c, i))
				continue
			}
			var err error
			toks, err = expandClass(toks, src, i, i+1+end)
			if err != nil {
				return nil, err
			}
			i += 1 + end
		default:
			toks = append(toks, literal(c, i))
		}
	}
	return toks, nil
}

func literal(r rune, pos int) Token {
	return Token{Kind: TokInterval, Interval: alphabet.Single(r), Pos: pos}
}

// expandClass appends the tokens for the class src[open:close+1], where
// src[open] is '[' and src[close] is the first ']' after it.
//
// A member x followed by '-' and y is the range [x, y] when x and y are both
// digits, both lowercase or both uppercase ASCII letters. Otherwise x, '-'
// and y are separate literal members.
func expandClass(toks []Token, src []rune, open, close int) ([]Token, error) {
	if close == open+1 {
		return nil, newError(open, ErrEmptyClass)
	}

	toks = append(toks, Token{Kind: TokLParen, Pos: open})
	for i := open + 1; i < close; i++ {
		if i > open+1 {
			toks = append(toks, Token{Kind: TokUnion, Pos: i})
		}

		x := src[i]
		if i+2 < close && src[i+1] == '-' {
			y := src[i+2]
			if cat := categoryOf(x); cat != catOther && cat == categoryOf(y) {
				if x > y {
					return nil, newError(i, ErrInvalidRange)
				}
				toks = append(toks, Token{Kind: TokInterval, Interval: alphabet.Range(x, y), Pos: i})
				i += 2
				continue
			}
		}
		toks = append(toks, literal(x, i))
	}
	return append(toks, Token{Kind: TokRParen, Pos: close}), nil
}
