// Package alphabet represents automaton input symbols as closed ranges of
// character ordinals.
//
// Working over intervals instead of individual characters keeps automata
// small when a pattern mentions large character classes: [a-z] is one edge,
// not twenty-six. Transitions are labelled either with an Interval or with
// the reserved Epsilon label.
package alphabet

import (
	"encoding/json"
	"fmt"
)

// Interval is a closed range [Lo, Hi] of character ordinals.
// A single character c is represented as [c, c].
type Interval struct {
	Lo rune
	Hi rune
}

// Single returns the one-character interval [r, r].
func Single(r rune) Interval {
	return Interval{Lo: r, Hi: r}
}

// Range returns the interval [lo, hi].
func Range(lo, hi rune) Interval {
	return Interval{Lo: lo, Hi: hi}
}

// IsValid reports whether Lo <= Hi.
func (iv Interval) IsValid() bool {
	return iv.Lo <= iv.Hi
}

// Contains reports whether r lies inside the interval
func (iv Interval) Contains(r rune) bool {
	return iv.Lo <= r && r <= iv.Hi
}

// Overlaps reports whether the two intervals share at least one ordinal.
// Two intervals are disjoint iff neither's low endpoint lies within the
// other's span.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Contains(other.Lo) || other.Contains(iv.Lo)
}

// Intersect returns the common sub-interval of iv and other.
// The second result is false if they do not overlap.
func (iv Interval) Intersect(other Interval) (Interval, bool) {
	lo := max(iv.Lo, other.Lo)
	hi := min(iv.Hi, other.Hi)
	if lo > hi {
		return Interval{}, false
	}
	return Interval{Lo: lo, Hi: hi}, true
}

// Less orders intervals by start, then by end.
func (iv Interval) Less(other Interval) bool {
	if iv.Lo != other.Lo {
		return iv.Lo < other.Lo
	}
	return iv.Hi < other.Hi
}

// String returns the interval as "[lo, hi]" using ordinals.
func (iv Interval) String() string {
	return fmt.Sprintf("[%d, %d]", iv.Lo, iv.Hi)
}

// MarshalJSON encodes the interval as a two-element array of ordinals.
func (iv Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]rune{iv.Lo, iv.Hi})
}

// UnmarshalJSON decodes a two-element array of ordinals.
func (iv *Interval) UnmarshalJSON(data []byte) error {
	var pair [2]rune
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("alphabet: interval: %w", err)
	}
	iv.Lo, iv.Hi = pair[0], pair[1]
	return nil
}

// EpsilonSymbol is the serialized form of the epsilon label.
const EpsilonSymbol = "$"

// Label is a transition label: an interval, or epsilon.
// The zero Label is not valid; use Epsilon or Of.
type Label struct {
	interval Interval
	epsilon  bool
}

// Epsilon is the label of transitions that consume no input.
var Epsilon = Label{epsilon: true}

// Of returns the label for the given interval.
func Of(iv Interval) Label {
	return Label{interval: iv}
}

// IsEpsilon reports whether l is the epsilon label.
func (l Label) IsEpsilon() bool {
	return l.epsilon
}

// Interval returns the interval of a non-epsilon label.
// The second result is false for epsilon.
func (l Label) Interval() (Interval, bool) {
	if l.epsilon {
		return Interval{}, false
	}
	return l.interval, true
}

// String returns "$" for epsilon and the interval form otherwise.
func (l Label) String() string {
	if l.epsilon {
		return EpsilonSymbol
	}
	return l.interval.String()
}

// MarshalJSON encodes epsilon as "$" and intervals as [lo, hi].
func (l Label) MarshalJSON() ([]byte, error) {
	if l.epsilon {
		return json.Marshal(EpsilonSymbol)
	}
	return l.interval.MarshalJSON()
}

// UnmarshalJSON accepts either "$" or a two-element array.
func (l *Label) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != EpsilonSymbol {
			return fmt.Errorf("alphabet: unknown label %q", s)
		}
		*l = Epsilon
		return nil
	}
	var iv Interval
	if err := iv.UnmarshalJSON(data); err != nil {
		return err
	}
	*l = Of(iv)
	return nil
}
