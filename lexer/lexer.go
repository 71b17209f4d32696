// Package lexer tokenizes input by maximal munch over a set of token DFAs.
//
// A Lexer is built once from token rules: every pattern is compiled to a
// DFA (in parallel, bounded by Config.Concurrency), together with a
// whitespace DFA that is skipped between tokens. The Lexer is immutable
// afterwards and safe for concurrent use.
package lexer

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/coregx/lexgen/dfa"
	"github.com/coregx/lexgen/nfa"
	"github.com/coregx/lexgen/syntax"
	"github.com/coregx/lexgen/tokdef"
)

// Lexer holds the compiled token DFAs.
type Lexer struct {
	scanner scanner
}

// compiled is the result of compiling one pattern.
type compiled struct {
	dfa     *dfa.DFA
	literal string
	isLit   bool
}

func compile(pattern string, config Config) (compiled, error) {
	tree, err := syntax.Parse(pattern)
	if err != nil {
		return compiled{}, err
	}
	n, err := nfa.NewCompiler(config.NFA).CompileNode(tree)
	if err != nil {
		return compiled{}, err
	}
	d, err := dfa.Determinize(nfa.Canonicalize(n), config.DFA)
	if err != nil {
		return compiled{}, err
	}
	lit, isLit := tree.Literal()
	return compiled{dfa: d, literal: lit, isLit: isLit}, nil
}

// New compiles rules into a Lexer. Rule order is priority order: on equal
// match lengths the earlier rule wins.
func New(ctx context.Context, rules []tokdef.Rule, config Config) (*Lexer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	seen := make(map[string]int, len(rules))
	for i, r := range rules {
		if j, dup := seen[r.Name]; dup {
			return nil, &RuleError{
				Name:    r.Name,
				Pattern: r.Pattern,
				Line:    r.Line,
				Err:     fmt.Errorf("%w: also defined by rule %d", ErrDuplicateToken, j+1),
			}
		}
		seen[r.Name] = i
	}

	results := make([]compiled, len(rules))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(config.Concurrency)
	for i, r := range rules {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := compile(r.Pattern, config)
			if err != nil {
				return &RuleError{Name: r.Name, Pattern: r.Pattern, Line: r.Line, Err: err}
			}
			results[i] = c
			slog.Debug("compiled token",
				slog.String("token", r.Name),
				slog.Int("dfa_states", c.dfa.States()),
				slog.Bool("literal", c.isLit))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	l := &Lexer{}
	l.scanner.defs = make([]Definition, len(rules))
	literals := make(map[int]string)
	for i, r := range rules {
		l.scanner.defs[i] = Definition{Name: r.Name, DFA: results[i].dfa}
		if results[i].isLit {
			literals[i] = results[i].literal
		}
	}

	if config.WhitespacePattern != "" {
		ws, err := compile(config.WhitespacePattern, config)
		if err != nil {
			return nil, &RuleError{Name: "whitespace", Pattern: config.WhitespacePattern, Err: err}
		}
		l.scanner.ws = ws.dfa
	}

	if config.Prefilter {
		lits, err := newLiteralPrefilter(literals, len(rules))
		if err != nil {
			return nil, fmt.Errorf("build literal prefilter: %w", err)
		}
		l.scanner.lits = lits
	}

	return l, nil
}

// Tokenize splits buffer into tokens. See the package-level Tokenize.
func (l *Lexer) Tokenize(buffer string) ([]Token, error) {
	return l.scanner.scan(buffer)
}

// Definitions returns the token definitions in priority order.
func (l *Lexer) Definitions() []Definition {
	return l.scanner.defs
}

// Whitespace returns the whitespace DFA, or nil if skipping is disabled.
func (l *Lexer) Whitespace() *dfa.DFA {
	return l.scanner.ws
}
