// Package lexgen compiles the lexer's regular-expression dialect into
// deterministic automata.
//
// The pipeline is:
//
//	pattern --syntax.Parse--> AST --nfa.Compiler--> epsilon-NFA
//	        --nfa.Canonicalize--> canonical NFA --dfa.Determinize--> DFA
//
// The dialect has literal characters, classes such as [a-z0-9_], union
// '|', Kleene star '*', grouping and implicit concatenation. Every
// character other than the operators "|*()" and class brackets is literal,
// including '.'.
//
// Basic usage:
//
//	d, err := lexgen.Compile("[a-z][a-z0-9]*")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(d.LongestMatch("x42+y")) // 3
//
// To tokenize, build a lexer.Lexer from tokdef rules.
package lexgen

import (
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/coregx/lexgen/dfa"
	"github.com/coregx/lexgen/nfa"
)

// Config configures compilation.
type Config struct {
	// CacheSize is the number of compiled patterns a Compiler keeps.
	// 0 disables caching.
	// Default: 128
	CacheSize int

	// NFA configures Thompson construction.
	NFA nfa.CompilerConfig

	// DFA configures determinization.
	DFA dfa.Config
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		CacheSize: 128,
		NFA:       nfa.DefaultCompilerConfig(),
		DFA:       dfa.DefaultConfig(),
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.CacheSize < 0 {
		return fmt.Errorf("lexgen: CacheSize must be >= 0, got %d", c.CacheSize)
	}
	if err := c.NFA.Validate(); err != nil {
		return err
	}
	return c.DFA.Validate()
}

// WithCacheSize returns a copy of the config with the given cache size.
func (c Config) WithCacheSize(n int) Config {
	c.CacheSize = n
	return c
}

// WithDFA returns a copy of the config with the given DFA settings.
func (c Config) WithDFA(d dfa.Config) Config {
	c.DFA = d
	return c
}

// Compile compiles pattern into a DFA with the default configuration.
//
// Malformed patterns fail with an error satisfying
// errors.Is(err, syntax.ErrMalformedExpression).
func Compile(pattern string) (*dfa.DFA, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles a pattern and panics if it fails.
//
// This is useful for patterns known to be valid at compile time.
func MustCompile(pattern string) *dfa.DFA {
	d, err := Compile(pattern)
	if err != nil {
		panic("lexgen: Compile(`" + pattern + "`): " + err.Error())
	}
	return d
}

// CompileWithConfig compiles pattern into a DFA. config.CacheSize is
// ignored; use a Compiler to cache results.
func CompileWithConfig(pattern string, config Config) (*dfa.DFA, error) {
	c, err := CompileNFA(pattern, config.NFA)
	if err != nil {
		return nil, err
	}
	return dfa.Determinize(c, config.DFA)
}

// CompileNFA compiles pattern into its canonical epsilon-NFA.
func CompileNFA(pattern string, config nfa.CompilerConfig) (*nfa.Canonical, error) {
	n, err := nfa.NewCompiler(config).Compile(pattern)
	if err != nil {
		return nil, err
	}
	return nfa.Canonicalize(n), nil
}

// Compiler compiles patterns and caches the resulting DFAs.
//
// A Compiler is safe for concurrent use. Only successful compilations are
// cached.
type Compiler struct {
	config Config
	cache  *lru.Cache[string, *dfa.DFA] // nil when caching is disabled
}

// NewCompiler returns a Compiler for the given configuration.
func NewCompiler(config Config) (*Compiler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	c := &Compiler{config: config}
	if config.CacheSize > 0 {
		cache, err := lru.New[string, *dfa.DFA](config.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("lexgen: create cache: %w", err)
		}
		c.cache = cache
	}
	return c, nil
}

// Compile returns the DFA for pattern, compiling it on a cache miss.
func (c *Compiler) Compile(pattern string) (*dfa.DFA, error) {
	if c.cache != nil {
		if d, ok := c.cache.Get(pattern); ok {
			slog.Debug("compile cache hit", slog.String("pattern", pattern))
			return d, nil
		}
	}

	d, err := CompileWithConfig(pattern, c.config)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.Add(pattern, d)
		slog.Debug("compile cache miss",
			slog.String("pattern", pattern),
			slog.Int("dfa_states", d.States()))
	}
	return d, nil
}

// Cached returns the number of patterns currently cached.
func (c *Compiler) Cached() int {
	if c.cache == nil {
		return 0
	}
	return c.cache.Len()
}
