package dfa

import "fmt"

// Config configures subset construction.
type Config struct {
	// MaxStates is the maximum number of DFA states determinization may
	// create. Exceeding it aborts with ErrStateLimitExceeded.
	//
	// Default: 10,000 states
	//
	// Tuning guidelines:
	//   - Token patterns of a typical language: well under 1,000 states
	//   - Large alternations of keywords: 1,000-10,000 states
	MaxStates int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxStates: 10_000,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of acceptable range.
func (c Config) Validate() error {
	if c.MaxStates <= 0 {
		return &Error{
			Kind:    InvalidConfig,
			Message: fmt.Sprintf("MaxStates must be > 0, got %d", c.MaxStates),
		}
	}
	return nil
}

// WithMaxStates returns a copy of the config with the given state limit.
func (c Config) WithMaxStates(n int) Config {
	c.MaxStates = n
	return c
}
