package lexgen

import (
	"errors"
	"sync"
	"testing"

	"github.com/coregx/lexgen/dfa"
	"github.com/coregx/lexgen/syntax"
)

func TestCompile_Properties(t *testing.T) {
	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{"[a-z]", []string{"m"}, []string{"M", "5"}},
		{"[a-Z]", []string{"a", "-", "Z"}, []string{"a-Z", "b"}},
		{"a*", []string{""}, nil},
		{"a", nil, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			d := MustCompile(tt.pattern)
			for _, in := range tt.accept {
				if !d.Accepts(in) {
					t.Errorf("Accepts(%q) = false", in)
				}
			}
			for _, in := range tt.reject {
				if d.Accepts(in) {
					t.Errorf("Accepts(%q) = true", in)
				}
			}
		})
	}

	if got := MustCompile("a*").LongestMatch("aaab"); got != 3 {
		t.Errorf("a* LongestMatch(aaab) = %d, want 3", got)
	}
	if got := MustCompile("a|b").LongestMatch("c"); got != 0 {
		t.Errorf("a|b LongestMatch(c) = %d, want 0", got)
	}
}

func TestCompile_Errors(t *testing.T) {
	for _, pattern := range []string{"", "(", "a)", "|a", "*", "[]", "[z-a]"} {
		t.Run(pattern, func(t *testing.T) {
			_, err := Compile(pattern)
			if !errors.Is(err, syntax.ErrMalformedExpression) {
				t.Errorf("Compile(%q) error = %v, want ErrMalformedExpression", pattern, err)
			}
		})
	}
}

func TestMustCompile_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile did not panic")
		}
	}()
	MustCompile("(")
}

func TestCompiler_Cache(t *testing.T) {
	c, err := NewCompiler(DefaultConfig().WithCacheSize(2))
	if err != nil {
		t.Fatal(err)
	}

	a1, err := c.Compile("a")
	if err != nil {
		t.Fatal(err)
	}
	a2, _ := c.Compile("a")
	if a1 != a2 {
		t.Error("second Compile(a) did not hit the cache")
	}

	if _, err := c.Compile("("); err == nil {
		t.Fatal("expected error")
	}
	if c.Cached() != 1 {
		t.Errorf("Cached() = %d after a failed compile, want 1", c.Cached())
	}

	c.Compile("b")
	c.Compile("c")
	if c.Cached() != 2 {
		t.Errorf("Cached() = %d, want 2", c.Cached())
	}
	if a3, _ := c.Compile("a"); a3 == a1 {
		t.Error("Compile(a) should have been evicted")
	}
}

func TestCompiler_NoCache(t *testing.T) {
	c, err := NewCompiler(DefaultConfig().WithCacheSize(0))
	if err != nil {
		t.Fatal(err)
	}
	d1, _ := c.Compile("a")
	d2, _ := c.Compile("a")
	if d1 == d2 {
		t.Error("uncached compiler returned the same DFA twice")
	}
	if c.Cached() != 0 {
		t.Errorf("Cached() = %d, want 0", c.Cached())
	}
}

func TestCompiler_Concurrent(t *testing.T) {
	c, err := NewCompiler(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	patterns := []string{"[a-z][a-z0-9]*", "[0-9][0-9]*", "(a|b)*abb", "if|else"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, p := range patterns {
				d, err := c.Compile(p)
				if err != nil {
					t.Error(err)
					return
				}
				d.LongestMatch("abb1 else")
			}
		}()
	}
	wg.Wait()
}

func TestNewCompiler_InvalidConfig(t *testing.T) {
	if _, err := NewCompiler(DefaultConfig().WithCacheSize(-1)); err == nil {
		t.Error("expected error for negative cache size")
	}
	_, err := NewCompiler(DefaultConfig().WithDFA(dfa.Config{}))
	if !errors.Is(err, dfa.ErrInvalidConfig) {
		t.Errorf("error = %v, want dfa.ErrInvalidConfig", err)
	}
}
