package lexer

import "fmt"

// Token is one matched lexeme. Start and End are 1-based, inclusive
// character positions in the scanned buffer.
type Token struct {
	Name  string
	Start int
	End   int
	Value string
}

// Len returns the token length in characters.
func (t Token) Len() int {
	return t.End - t.Start + 1
}

// String returns the report line for the token.
func (t Token) String() string {
	return fmt.Sprintf("token: %s - start: %d - end: %d - value: %s", t.Name, t.Start, t.End, t.Value)
}
