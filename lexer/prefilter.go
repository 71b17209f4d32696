package lexer

import (
	"github.com/coregx/ahocorasick"
)

// literalPrefilter indexes the tokens whose pattern matches exactly one
// string. A literal token can only match at a position if its string is a
// prefix there, so when the automaton finds no literal inside the window
// [pos, pos+maxLen) every literal token can be skipped.
type literalPrefilter struct {
	auto    *ahocorasick.Automaton
	literal []bool // by definition index
	maxLen  int    // longest literal in bytes
}

// newLiteralPrefilter returns nil when fewer than two definitions are
// literals, since a single DFA run is cheaper than a window search.
func newLiteralPrefilter(literals map[int]string, defs int) (*literalPrefilter, error) {
	if len(literals) < 2 {
		return nil, nil
	}

	p := &literalPrefilter{literal: make([]bool, defs)}
	builder := ahocorasick.NewBuilder()
	for i, lit := range literals {
		builder.AddPattern([]byte(lit))
		p.literal[i] = true
		p.maxLen = max(p.maxLen, len(lit))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	p.auto = auto
	return p, nil
}

// covers reports whether definition i is a literal token.
func (p *literalPrefilter) covers(i int) bool {
	return p.literal[i]
}

// mayMatch reports whether some literal occurs in the window at the start
// of rest.
func (p *literalPrefilter) mayMatch(rest string) bool {
	window := rest
	if len(window) > p.maxLen {
		window = window[:p.maxLen]
	}
	return p.auto.IsMatch([]byte(window))
}
