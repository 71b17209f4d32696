package syntax

import "errors"

// InsertConcat makes concatenation explicit. A TokConcat is placed between
// two adjacent tokens when the first can end an operand (an interval, ')'
// or '*') and the second can begin one (an interval or '(').
func InsertConcat(toks []Token) []Token {
	out := make([]Token, 0, 2*len(toks))
	for i, tok := range toks {
		if i > 0 && toks[i-1].Kind.endsOperand() && tok.Kind.beginsOperand() {
			out = append(out, Token{Kind: TokConcat, Pos: tok.Pos})
		}
		out = append(out, tok)
	}
	return out
}

// ToPostfix converts an explicit-concatenation token stream to postfix
// with the shunting-yard algorithm. Precedence is | < . < *, binary
// operators are left associative and '*' is a postfix operator that goes
// straight to the output.
func ToPostfix(toks []Token) ([]Token, error) {
	out := make([]Token, 0, len(toks))
	ops := make([]Token, 0, 8)

	for _, tok := range toks {
		switch tok.Kind {
		case TokInterval, TokStar:
			out = append(out, tok)

		case TokLParen:
			ops = append(ops, tok)

		case TokRParen:
			for len(ops) > 0 && ops[len(ops)-1].Kind != TokLParen {
				out = append(out, ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
			if len(ops) == 0 {
				return nil, newError(tok.Pos, ErrUnbalancedParen)
			}
			ops = ops[:len(ops)-1]

		default:
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.Kind == TokLParen || tok.Kind.precedence() > top.Kind.precedence() {
					break
				}
				out = append(out, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, tok)
		}
	}

	for len(ops) > 0 {
		top := ops[len(ops)-1]
		if top.Kind == TokLParen {
			return nil, newError(top.Pos, ErrUnbalancedParen)
		}
		out = append(out, top)
		ops = ops[:len(ops)-1]
	}
	return out, nil
}

// BuildTree builds the AST from a postfix token stream using an operand
// stack. Binary operators pop the right operand first.
func BuildTree(postfix []Token) (*Node, error) {
	stack := make([]*Node, 0, len(postfix))

	pop := func() *Node {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return n
	}

	for _, tok := range postfix {
		switch tok.Kind {
		case TokInterval:
			stack = append(stack, Symbol(tok.Interval))

		case TokStar:
			if len(stack) < 1 {
				return nil, newError(tok.Pos, ErrMissingOperand)
			}
			stack = append(stack, Star(pop()))

		case TokUnion, TokConcat:
			if len(stack) < 2 {
				return nil, newError(tok.Pos, ErrMissingOperand)
			}
			right := pop()
			left := pop()
			if tok.Kind == TokUnion {
				stack = append(stack, Union(left, right))
			} else {
				stack = append(stack, Concat(left, right))
			}

		default:
			return nil, newError(tok.Pos, ErrUnbalancedParen)
		}
	}

	switch len(stack) {
	case 0:
		return nil, newError(-1, ErrMissingOperand)
	case 1:
		return stack[0], nil
	default:
		return nil, newError(-1, ErrTrailingOperand)
	}
}

// Parse runs the whole front end on a pattern: interval expansion,
// explicit concatenation, postfix conversion and tree building.
// Every failure matches ErrMalformedExpression.
func Parse(pattern string) (*Node, error) {
	node, err := parse(pattern)
	if err != nil {
		var serr *Error
		if errors.As(err, &serr) {
			serr.Pattern = pattern
		}
		return nil, err
	}
	return node, nil
}

func parse(pattern string) (*Node, error) {
	if pattern == "" {
		return nil, newError(-1, ErrEmptyPattern)
	}

	toks, err := Expand(pattern)
	if err != nil {
		return nil, err
	}

	postfix, err := ToPostfix(InsertConcat(toks))
	if err != nil {
		return nil, err
	}

	return BuildTree(postfix)
}
