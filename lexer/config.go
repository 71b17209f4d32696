package lexer

import (
	"fmt"
	"runtime"

	"github.com/coregx/lexgen/dfa"
	"github.com/coregx/lexgen/nfa"
)

// DefaultWhitespacePattern matches runs of spaces, tabs and newlines.
const DefaultWhitespacePattern = "[ \t\n][ \t\n]*"

// Config configures how a Lexer is built.
type Config struct {
	// WhitespacePattern is skipped between tokens when no token matches.
	// Empty disables skipping.
	// Default: DefaultWhitespacePattern
	WhitespacePattern string

	// Concurrency bounds how many token patterns compile in parallel.
	// 1 compiles sequentially.
	// Default: runtime.GOMAXPROCS(0)
	Concurrency int

	// Prefilter enables the literal prefilter: tokens whose pattern is a
	// plain string are only simulated where one of those strings occurs.
	// Default: true
	Prefilter bool

	// NFA configures Thompson construction of each pattern.
	NFA nfa.CompilerConfig

	// DFA configures determinization of each pattern.
	DFA dfa.Config
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		WhitespacePattern: DefaultWhitespacePattern,
		Concurrency:       runtime.GOMAXPROCS(0),
		Prefilter:         true,
		NFA:               nfa.DefaultCompilerConfig(),
		DFA:               dfa.DefaultConfig(),
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.Concurrency <= 0 {
		return fmt.Errorf("%w: Concurrency must be > 0, got %d", ErrInvalidConfig, c.Concurrency)
	}
	if err := c.NFA.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.DFA.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// WithWhitespacePattern returns a copy of the config with the given
// whitespace pattern.
func (c Config) WithWhitespacePattern(pattern string) Config {
	c.WhitespacePattern = pattern
	return c
}

// WithConcurrency returns a copy of the config with the given compile
// parallelism.
func (c Config) WithConcurrency(n int) Config {
	c.Concurrency = n
	return c
}

// WithPrefilter returns a copy of the config with the literal prefilter
// enabled or disabled.
func (c Config) WithPrefilter(enabled bool) Config {
	c.Prefilter = enabled
	return c
}

// WithDFA returns a copy of the config with the given DFA settings.
func (c Config) WithDFA(d dfa.Config) Config {
	c.DFA = d
	return c
}
