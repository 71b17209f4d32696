package lexer

import (
	"github.com/coregx/lexgen/dfa"
)

// Definition pairs a token name with the DFA recognizing it.
type Definition struct {
	Name string
	DFA  *dfa.DFA
}

// Tokenize splits buffer into tokens by maximal munch.
//
// At each position every definition's DFA is run and the longest match
// wins; on equal lengths the earlier definition wins. If no definition
// matches, ws is tried and the whitespace it matches is skipped. If that
// fails too, Tokenize returns a *NoMatchError. ws may be nil.
func Tokenize(buffer string, defs []Definition, ws *dfa.DFA) ([]Token, error) {
	return (&scanner{defs: defs, ws: ws}).scan(buffer)
}

// scanner runs the longest-match loop, optionally consulting a literal
// prefilter before simulating literal-only definitions.
type scanner struct {
	defs []Definition
	ws   *dfa.DFA
	lits *literalPrefilter // may be nil
}

func (s *scanner) scan(buffer string) ([]Token, error) {
	var toks []Token
	pos := 1 // character position of rest[0]
	rest := buffer

	for len(rest) > 0 {
		best, bestChars, bestSize := -1, 0, 0
		skipLiterals := s.lits != nil && !s.lits.mayMatch(rest)

		for i := range s.defs {
			if skipLiterals && s.lits.covers(i) {
				continue
			}
			chars, size := s.defs[i].DFA.MatchPrefix(rest)
			if chars > bestChars {
				best, bestChars, bestSize = i, chars, size
			}
		}

		if best >= 0 {
			toks = append(toks, Token{
				Name:  s.defs[best].Name,
				Start: pos,
				End:   pos + bestChars - 1,
				Value: rest[:bestSize],
			})
			pos += bestChars
			rest = rest[bestSize:]
			continue
		}

		if s.ws != nil {
			if chars, size := s.ws.MatchPrefix(rest); chars > 0 {
				pos += chars
				rest = rest[size:]
				continue
			}
		}

		return nil, &NoMatchError{Pos: pos, Near: near(rest)}
	}

	return toks, nil
}
