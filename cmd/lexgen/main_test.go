package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coregx/lexgen/automaton"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	var c cli
	parser, err := newParser(context.Background(), &c, &out)
	if err != nil {
		t.Fatal(err)
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}
	err = kctx.Run()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTokenizeCmd(t *testing.T) {
	dir := t.TempDir()
	tokens := writeFile(t, dir, "tokens.txt", "NUM -> [0-9][0-9]*\nID -> [a-z][a-z]*\n")
	program := writeFile(t, dir, "program.txt", "\n  x1 42\n\n")

	out, err := runCLI(t, "tokenize", tokens, program)
	if err != nil {
		t.Fatal(err)
	}
	want := "token: ID - start: 1 - end: 1 - value: x\n" +
		"token: NUM - start: 2 - end: 2 - value: 1\n" +
		"token: NUM - start: 4 - end: 5 - value: 42\n"
	if out != want {
		t.Errorf("output:\n%s\nwant:\n%s", out, want)
	}
}

func TestTokenizeCmd_NoMatch(t *testing.T) {
	dir := t.TempDir()
	tokens := writeFile(t, dir, "tokens.txt", "ID -> [a-z][a-z]*\n")
	program := writeFile(t, dir, "program.txt", "ab +")

	_, err := runCLI(t, "tokenize", "--concurrency=1", tokens, program)
	if err == nil || !strings.Contains(err.Error(), "position 4") {
		t.Errorf("error = %v, want no match at position 4", err)
	}
}

func TestCompileCmd(t *testing.T) {
	out, err := runCLI(t, "compile", "--stage=nfa", "ab")
	if err != nil {
		t.Fatal(err)
	}
	rec, err := automaton.DecodeJSON(strings.NewReader(out))
	if err != nil {
		t.Fatalf("DecodeJSON: %v\n%s", err, out)
	}
	if len(rec.States) != 4 || rec.FinalStates[0] != "Q4" {
		t.Errorf("record = %+v", rec)
	}

	out, err = runCLI(t, "compile", "--format=yaml", "a|b")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := automaton.DecodeYAML([]byte(out)); err != nil {
		t.Errorf("DecodeYAML: %v\n%s", err, out)
	}

	out, err = runCLI(t, "compile", "-f", "dot", "a*")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "digraph G {") {
		t.Errorf("dot output = %q", out)
	}

	if _, err := runCLI(t, "compile", "--format=xml", "a"); err == nil {
		t.Error("expected error for unknown format")
	}
	if _, err := runCLI(t, "compile", "(a"); err == nil {
		t.Error("expected error for malformed pattern")
	}
}

func TestMatchCmd(t *testing.T) {
	out, err := runCLI(t, "match", "a*", "aaab", "aa", "b")
	if err != nil {
		t.Fatal(err)
	}
	want := "\"aaab\" accepts=false longest=3\n" +
		"\"aa\" accepts=true longest=2\n" +
		"\"b\" accepts=false longest=0\n"
	if out != want {
		t.Errorf("output:\n%s\nwant:\n%s", out, want)
	}
}
