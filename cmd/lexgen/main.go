// Command lexgen builds lexical analyzers from token definition files.
//
//	lexgen tokenize TOKENS PROGRAM
//	lexgen compile REGEX [--stage nfa|dfa] [--format json|yaml|dot]
//	lexgen match REGEX INPUT...
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/coregx/lexgen"
	"github.com/coregx/lexgen/automaton"
	"github.com/coregx/lexgen/dfa"
	"github.com/coregx/lexgen/lexer"
	"github.com/coregx/lexgen/tokdef"
)

type cli struct {
	LogLevel string `help:"Log level (debug, info, warn, error)" default:"info" env:"LEXGEN_LOG_LEVEL" enum:"debug,info,warn,error"`

	Tokenize tokenizeCmd `cmd:"" help:"Tokenize a program with the tokens defined in a file"`
	Compile  compileCmd  `cmd:"" help:"Print the NFA or DFA of a pattern"`
	Match    matchCmd    `cmd:"" help:"Run a pattern against inputs"`
}

// AfterApply installs the process-wide logger.
func (c *cli) AfterApply() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

type tokenizeCmd struct {
	Tokens      string `arg:"" type:"existingfile" help:"Token definition file (NAME -> pattern per line)"`
	Program     string `arg:"" type:"existingfile" help:"Program to tokenize"`
	Whitespace  string `help:"Pattern skipped between tokens" default:"${whitespace}"`
	Concurrency int    `help:"Patterns compiled in parallel (0 = GOMAXPROCS)" default:"0" env:"LEXGEN_CONCURRENCY"`
	NoPrefilter bool   `help:"Disable the literal token prefilter"`
	MaxStates   int    `help:"Maximum DFA states per token" default:"10000" env:"LEXGEN_MAX_STATES"`
}

func (c *tokenizeCmd) Run(ctx context.Context, out io.Writer) error {
	defs, err := os.Open(c.Tokens)
	if err != nil {
		return err
	}
	defer defs.Close()
	rules, err := tokdef.Parse(c.Tokens, defs)
	if err != nil {
		return err
	}

	config := lexer.DefaultConfig().
		WithWhitespacePattern(c.Whitespace).
		WithPrefilter(!c.NoPrefilter).
		WithDFA(dfa.DefaultConfig().WithMaxStates(c.MaxStates))
	if c.Concurrency > 0 {
		config = config.WithConcurrency(c.Concurrency)
	}
	l, err := lexer.New(ctx, rules, config)
	if err != nil {
		return err
	}
	slog.Info("lexer ready", slog.String("tokens", c.Tokens), slog.Int("rules", len(rules)))

	src, err := os.Open(c.Program)
	if err != nil {
		return err
	}
	defer src.Close()
	buffer, err := lexer.ReadSource(src)
	if err != nil {
		return err
	}

	toks, err := l.Tokenize(buffer)
	if err != nil {
		return fmt.Errorf("%s: %w", c.Program, err)
	}
	for _, tok := range toks {
		if _, err := fmt.Fprintln(out, tok); err != nil {
			return err
		}
	}
	return nil
}

type compileCmd struct {
	Regex     string `arg:"" help:"Pattern to compile"`
	Stage     string `help:"Automaton to print" default:"dfa" enum:"nfa,dfa"`
	Format    string `help:"Output format" default:"json" enum:"json,yaml,dot" short:"f"`
	MaxStates int    `help:"Maximum DFA states" default:"10000" env:"LEXGEN_MAX_STATES"`
}

func (c *compileCmd) Run(out io.Writer) error {
	config := lexgen.DefaultConfig().WithDFA(dfa.DefaultConfig().WithMaxStates(c.MaxStates))

	var rec *automaton.Record
	switch c.Stage {
	case "nfa":
		n, err := lexgen.CompileNFA(c.Regex, config.NFA)
		if err != nil {
			return err
		}
		rec = n.Record()
	default:
		d, err := lexgen.CompileWithConfig(c.Regex, config)
		if err != nil {
			return err
		}
		rec = d.Record()
	}
	slog.Debug("compiled", slog.String("stage", c.Stage), slog.Int("states", len(rec.States)))

	switch c.Format {
	case "yaml":
		return rec.EncodeYAML(out)
	case "dot":
		return rec.EncodeDOT(out)
	default:
		return rec.EncodeJSON(out)
	}
}

type matchCmd struct {
	Regex  string   `arg:"" help:"Pattern to run"`
	Inputs []string `arg:"" help:"Inputs to test"`
}

func (c *matchCmd) Run(out io.Writer) error {
	d, err := lexgen.Compile(c.Regex)
	if err != nil {
		return err
	}
	for _, in := range c.Inputs {
		if _, err := fmt.Fprintf(out, "%q accepts=%v longest=%d\n", in, d.Accepts(in), d.LongestMatch(in)); err != nil {
			return err
		}
	}
	return nil
}

func newParser(ctx context.Context, c *cli, out io.Writer, options ...kong.Option) (*kong.Kong, error) {
	options = append([]kong.Option{
		kong.Name("lexgen"),
		kong.Description("Build longest-match lexers from regular expressions."),
		kong.Vars{"whitespace": lexer.DefaultWhitespacePattern},
		kong.BindTo(out, (*io.Writer)(nil)),
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.UsageOnError(),
	}, options...)
	return kong.New(c, options...)
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var c cli
	parser, err := newParser(ctx, &c, os.Stdout)
	if err != nil {
		panic(err)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	if err := kctx.Run(); err != nil {
		slog.Error("lexgen failed", slog.Any("error", err))
		return 1
	}
	return 0
}
