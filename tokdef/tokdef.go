// Package tokdef reads token definition files.
//
// Each definition is one line of the form
//
//	NAME -> pattern
//
// where NAME is an identifier and pattern is everything after the first
// "->" up to the end of the line, with surrounding blanks removed. Blank
// lines are ignored and '#' starts a comment line. Definition order is the
// lexer's priority order.
package tokdef

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Errors reported for well-formed lines with bad content.
var (
	// ErrDuplicateName indicates two definitions share a name
	ErrDuplicateName = errors.New("duplicate token name")

	// ErrEmptyPattern indicates a definition with nothing after "->"
	ErrEmptyPattern = errors.New("empty token pattern")
)

// Rule is one token definition.
type Rule struct {
	Name    string
	Pattern string
	Line    int // 1-based line in the source file, 0 if not from a file
}

// String returns the definition in file syntax.
func (r Rule) String() string {
	return r.Name + " -> " + r.Pattern
}

// The pattern state consumes the rest of the line verbatim so that
// patterns may contain any character, including '#' and "->". A line that
// ends right after the arrow yields EOL instead, reported as an empty
// pattern.
var defLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{Name: "comment", Pattern: `#[^\n]*`},
		{Name: "whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Name", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Arrow", Pattern: `->`, Action: lexer.Push("Pattern")},
	},
	"Pattern": {
		{Name: "Regex", Pattern: `[^\n]+`, Action: lexer.Pop()},
		{Name: "EOL", Pattern: `\n`, Action: lexer.Pop()},
	},
})

type file struct {
	Rules []*definition `parser:"@@*"`
}

type definition struct {
	Pos     lexer.Position
	Name    string `parser:"@Name Arrow"`
	Pattern string `parser:"( @Regex | EOL )"`
}

var parser = participle.MustBuild[file](participle.Lexer(defLexer))

// Parse reads definitions from r. filename is used in error messages.
func Parse(filename string, r io.Reader) ([]Rule, error) {
	f, err := parser.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("tokdef: %w", err)
	}
	return collect(f)
}

// ParseString reads definitions from src.
func ParseString(filename, src string) ([]Rule, error) {
	f, err := parser.ParseString(filename, src)
	if err != nil {
		return nil, fmt.Errorf("tokdef: %w", err)
	}
	return collect(f)
}

func collect(f *file) ([]Rule, error) {
	rules := make([]Rule, 0, len(f.Rules))
	first := make(map[string]lexer.Position, len(f.Rules))
	for _, d := range f.Rules {
		pattern := strings.TrimSpace(d.Pattern)
		if pattern == "" {
			return nil, fmt.Errorf("tokdef: %s: %s: %w", d.Pos, d.Name, ErrEmptyPattern)
		}
		if prev, dup := first[d.Name]; dup {
			return nil, fmt.Errorf("tokdef: %s: %s: %w (first defined at %s)", d.Pos, d.Name, ErrDuplicateName, prev)
		}
		first[d.Name] = d.Pos
		rules = append(rules, Rule{Name: d.Name, Pattern: pattern, Line: d.Pos.Line})
	}
	return rules, nil
}
