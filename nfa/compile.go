package nfa

import (
	"fmt"

	"github.com/coregx/lexgen/alphabet"
	"github.com/coregx/lexgen/syntax"
)

// CompilerConfig configures NFA compilation behavior
type CompilerConfig struct {
	// MaxRecursionDepth limits recursion during compilation to prevent stack overflow.
	// A literal of n characters nests n-1 concatenations deep.
	// Default: 1000
	MaxRecursionDepth int
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		MaxRecursionDepth: 1000,
	}
}

// Validate checks if the configuration is valid.
func (c CompilerConfig) Validate() error {
	if c.MaxRecursionDepth < 0 {
		return fmt.Errorf("%w: MaxRecursionDepth must be >= 0, got %d", ErrInvalidConfig, c.MaxRecursionDepth)
	}
	return nil
}

// WithMaxRecursionDepth returns a copy of the config with the given depth limit.
func (c CompilerConfig) WithMaxRecursionDepth(depth int) CompilerConfig {
	c.MaxRecursionDepth = depth
	return c
}

// Compiler compiles expression trees into Thompson NFAs.
// A Compiler is not safe for concurrent use; create one per goroutine.
type Compiler struct {
	config  CompilerConfig
	builder *Builder
	depth   int // current recursion depth
}

// NewCompiler creates a new NFA compiler with the given configuration
func NewCompiler(config CompilerConfig) *Compiler {
	if config.MaxRecursionDepth == 0 {
		config.MaxRecursionDepth = DefaultCompilerConfig().MaxRecursionDepth
	}
	return &Compiler{
		config:  config,
		builder: NewBuilder(),
	}
}

// NewDefaultCompiler creates a new NFA compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile parses pattern and compiles it into an NFA.
// Parse failures are returned wrapped in a *CompileError and still satisfy
// errors.Is(err, syntax.ErrMalformedExpression).
func (c *Compiler) Compile(pattern string) (*NFA, error) {
	tree, err := syntax.Parse(pattern)
	if err != nil {
		return nil, &CompileError{
			Pattern: pattern,
			Err:     err,
		}
	}

	n, err := c.CompileNode(tree)
	if err != nil {
		if ce, ok := err.(*CompileError); ok && ce.Pattern == "" {
			ce.Pattern = pattern
		}
		return nil, err
	}
	return n, nil
}

// CompileNode compiles a parsed expression tree into an NFA.
func (c *Compiler) CompileNode(tree *syntax.Node) (*NFA, error) {
	c.builder = NewBuilder()
	c.depth = 0

	start, end, err := c.compileNode(tree)
	if err != nil {
		return nil, err
	}

	c.builder.SetStart(start)
	c.builder.SetEnd(end)

	n, err := c.builder.Build()
	if err != nil {
		return nil, &CompileError{
			Err: err,
		}
	}
	return n, nil
}

// compileNode recursively compiles a syntax.Node.
// Returns (start, end) state IDs for the compiled fragment. The end state
// never has outgoing edges when this returns; callers link out of it.
func (c *Compiler) compileNode(n *syntax.Node) (start, end StateID, err error) {
	if n == nil {
		return InvalidState, InvalidState, &CompileError{Err: ErrNilTree}
	}

	c.depth++
	if c.depth > c.config.MaxRecursionDepth {
		return InvalidState, InvalidState, &CompileError{
			Err: ErrTooComplex,
		}
	}
	defer func() { c.depth-- }()

	switch n.Op {
	case syntax.OpSymbol:
		return c.compileSymbol(n.Interval)
	case syntax.OpConcat:
		return c.compileConcat(n.Left, n.Right)
	case syntax.OpUnion:
		return c.compileUnion(n.Left, n.Right)
	case syntax.OpStar:
		return c.compileStar(n.Left)
	default:
		return InvalidState, InvalidState, &CompileError{
			Err: fmt.Errorf("unsupported node op: %v", n.Op),
		}
	}
}

// compileSymbol: start --iv--> end
func (c *Compiler) compileSymbol(iv alphabet.Interval) (start, end StateID, err error) {
	start = c.builder.AddState()
	end = c.builder.AddState()
	if err := c.builder.AddTransition(start, iv, end); err != nil {
		return InvalidState, InvalidState, &CompileError{Err: err}
	}
	return start, end, nil
}

// compileConcat: left.end --$--> right.start
func (c *Compiler) compileConcat(left, right *syntax.Node) (start, end StateID, err error) {
	lStart, lEnd, err := c.compileNode(left)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	rStart, rEnd, err := c.compileNode(right)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	if err := c.builder.AddEpsilon(lEnd, rStart); err != nil {
		return InvalidState, InvalidState, &CompileError{Err: err}
	}
	return lStart, rEnd, nil
}

// compileUnion branches from a fresh start into both operands and merges
// both operand ends into a fresh end.
func (c *Compiler) compileUnion(left, right *syntax.Node) (start, end StateID, err error) {
	lStart, lEnd, err := c.compileNode(left)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	rStart, rEnd, err := c.compileNode(right)
	if err != nil {
		return InvalidState, InvalidState, err
	}

	start = c.builder.AddState()
	end = c.builder.AddState()
	if err := c.link(
		[2]StateID{start, lStart},
		[2]StateID{start, rStart},
		[2]StateID{lEnd, end},
		[2]StateID{rEnd, end},
	); err != nil {
		return InvalidState, InvalidState, err
	}
	return start, end, nil
}

// compileStar wraps sub with a skip edge (zero repetitions) and a loop
// edge from its end back to its start.
func (c *Compiler) compileStar(sub *syntax.Node) (start, end StateID, err error) {
	subStart, subEnd, err := c.compileNode(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}

	start = c.builder.AddState()
	end = c.builder.AddState()
	if err := c.link(
		[2]StateID{start, subStart},
		[2]StateID{start, end},
		[2]StateID{subEnd, subStart},
		[2]StateID{subEnd, end},
	); err != nil {
		return InvalidState, InvalidState, err
	}
	return start, end, nil
}

// link adds the given (from, to) epsilon edges in order.
func (c *Compiler) link(pairs ...[2]StateID) error {
	for _, p := range pairs {
		if err := c.builder.AddEpsilon(p[0], p[1]); err != nil {
			return &CompileError{Err: err}
		}
	}
	return nil
}
