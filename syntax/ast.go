// Package syntax parses the lexer's regular-expression dialect into an
// abstract syntax tree.
//
// The dialect is deliberately small: literal characters, character classes
// with ranges, alternation '|', Kleene star '*', grouping '(' ')' and
// implicit concatenation. There are no escapes; '.' is an ordinary
// character. Parsing happens in four passes:
//
//	Expand        characters and classes -> interval tokens
//	InsertConcat  implicit concatenation -> explicit operator
//	ToPostfix     infix -> postfix (shunting yard)
//	BuildTree     postfix -> *Node
package syntax

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/coregx/lexgen/alphabet"
)

// Op identifies the kind of an AST node.
type Op uint8

const (
	// OpSymbol matches one character from Interval
	OpSymbol Op = iota

	// OpConcat matches Left followed by Right
	OpConcat

	// OpUnion matches Left or Right
	OpUnion

	// OpStar matches zero or more repetitions of Left
	OpStar
)

// String returns a human-readable representation of the Op
func (op Op) String() string {
	switch op {
	case OpSymbol:
		return "Symbol"
	case OpConcat:
		return "Concat"
	case OpUnion:
		return "Union"
	case OpStar:
		return "Star"
	default:
		return fmt.Sprintf("Op(%d)", op)
	}
}

// Node is a node of the expression tree.
// Which fields are meaningful depends on Op.
type Node struct {
	Op       Op
	Interval alphabet.Interval // OpSymbol
	Left     *Node             // OpConcat, OpUnion, OpStar
	Right    *Node             // OpConcat, OpUnion
}

// Symbol returns a leaf matching one character of iv.
func Symbol(iv alphabet.Interval) *Node {
	return &Node{Op: OpSymbol, Interval: iv}
}

// Concat returns a node matching left then right.
func Concat(left, right *Node) *Node {
	return &Node{Op: OpConcat, Left: left, Right: right}
}

// Union returns a node matching left or right.
func Union(left, right *Node) *Node {
	return &Node{Op: OpUnion, Left: left, Right: right}
}

// Star returns a node matching zero or more sub.
func Star(sub *Node) *Node {
	return &Node{Op: OpStar, Left: sub}
}

// String renders the tree back into the pattern dialect, fully
// parenthesized. Multi-character intervals print as classes.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	switch n.Op {
	case OpSymbol:
		writeInterval(b, n.Interval)
	case OpConcat:
		n.Left.write(b)
		n.Right.write(b)
	case OpUnion:
		b.WriteByte('(')
		n.Left.write(b)
		b.WriteByte('|')
		n.Right.write(b)
		b.WriteByte(')')
	case OpStar:
		b.WriteByte('(')
		n.Left.write(b)
		b.WriteString(")*")
	}
}

func writeInterval(b *strings.Builder, iv alphabet.Interval) {
	switch {
	case iv.Lo == iv.Hi && unicode.IsPrint(iv.Lo) && !strings.ContainsRune("|*()[", iv.Lo):
		b.WriteRune(iv.Lo)
	case iv.Lo == iv.Hi:
		fmt.Fprintf(b, "[%c]", iv.Lo)
	default:
		fmt.Fprintf(b, "[%c-%c]", iv.Lo, iv.Hi)
	}
}

// Walk calls fn for n and each of its descendants in pre-order.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	n.Left.Walk(fn)
	n.Right.Walk(fn)
}

// Literal returns the string matched by n if n matches exactly one
// string: a single character or a concatenation of single characters.
func (n *Node) Literal() (string, bool) {
	var b strings.Builder
	if !n.appendLiteral(&b) {
		return "", false
	}
	return b.String(), true
}

func (n *Node) appendLiteral(b *strings.Builder) bool {
	switch n.Op {
	case OpSymbol:
		if n.Interval.Lo != n.Interval.Hi {
			return false
		}
		b.WriteRune(n.Interval.Lo)
		return true
	case OpConcat:
		return n.Left.appendLiteral(b) && n.Right.appendLiteral(b)
	default:
		return false
	}
}
