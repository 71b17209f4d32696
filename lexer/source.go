package lexer

import (
	"fmt"
	"io"
	"strings"
)

// ReadSource reads a whole program and trims surrounding whitespace.
func ReadSource(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
