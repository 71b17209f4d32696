// Package dfa determinizes canonical NFAs into DFAs over disjoint
// character intervals and simulates them.
//
// A DFA is partial: a character with no matching transition rejects. The
// transitions leaving any state are pairwise disjoint and sorted by their
// lower bound, so the next state is found by binary search.
//
// A *DFA is immutable once Determinize returns it and may be shared by any
// number of goroutines.
package dfa

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/coregx/lexgen/alphabet"
	"github.com/coregx/lexgen/automaton"
	"github.com/coregx/lexgen/nfa"
)

// StateID uniquely identifies a DFA state.
type StateID uint32

// Special state constants
const (
	// InvalidState represents an invalid/uninitialized state ID
	InvalidState StateID = 0xFFFFFFFF

	// StartState is always state ID 0 (the initial state)
	StartState StateID = 0
)

// Transition is an edge taken on any character inside Interval.
type Transition struct {
	Interval alphabet.Interval
	Next     StateID
}

// State is a DFA state: a set of canonical NFA ids with its transitions.
type State struct {
	id          StateID
	nfaStates   []int // ascending; the identity of the state
	isMatch     bool
	transitions []Transition // disjoint, ascending by Lo
}

// ID returns the state's unique identifier
func (s *State) ID() StateID {
	return s.id
}

// IsMatch returns true if this is an accepting state
func (s *State) IsMatch() bool {
	return s.isMatch
}

// NFAStates returns the ascending canonical NFA ids this state represents.
// The returned slice must not be modified.
func (s *State) NFAStates() []int {
	return s.nfaStates
}

// Transitions returns the outgoing transitions sorted by lower bound.
// The returned slice must not be modified.
func (s *State) Transitions() []Transition {
	return s.transitions
}

// Next returns the target of the transition whose interval contains r.
func (s *State) Next(r rune) (StateID, bool) {
	area := s.transitions
	left, right := 0, len(area)
	for left < right {
		middle := int(uint(left+right) >> 1)
		switch {
		case r < area[middle].Interval.Lo:
			right = middle
		case area[middle].Interval.Hi < r:
			left = middle + 1
		default:
			return area[middle].Next, true
		}
	}
	return InvalidState, false
}

// Name returns the display name: the NFA state names joined by commas,
// e.g. "Q1,Q3".
func (s *State) Name() string {
	names := make([]string, len(s.nfaStates))
	for i, id := range s.nfaStates {
		names[i] = nfa.StateName(id)
	}
	return strings.Join(names, ",")
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	return fmt.Sprintf("State(%d, {%s}, match=%v, transitions=%d)", s.id, s.Name(), s.isMatch, len(s.transitions))
}

// DFA is a deterministic automaton produced by Determinize.
type DFA struct {
	states  []State
	letters []alphabet.Label // NFA letters without epsilon, discovery order
}

// Start returns the start state ID
func (d *DFA) Start() StateID {
	return StartState
}

// States returns the number of states
func (d *DFA) States() int {
	return len(d.states)
}

// State returns the state with the given ID.
// Returns nil if the ID is invalid.
func (d *DFA) State(id StateID) *State {
	if int(id) >= len(d.states) {
		return nil
	}
	return &d.states[id]
}

// Letters returns the NFA's non-epsilon labels in discovery order.
func (d *DFA) Letters() []alphabet.Label {
	return d.letters
}

// Accepts reports whether the whole input is in the DFA's language.
// Empty input is accepted iff the start state is accepting.
func (d *DFA) Accepts(input string) bool {
	if len(d.states) == 0 {
		return false
	}
	cur := StartState
	for _, r := range input {
		next, ok := d.states[cur].Next(r)
		if !ok {
			return false
		}
		cur = next
	}
	return d.states[cur].isMatch
}

// LongestMatch returns the length in characters of the longest prefix of
// input that the DFA accepts, or 0 if no non-empty prefix is accepted.
func (d *DFA) LongestMatch(input string) int {
	n, _ := d.MatchPrefix(input)
	return n
}

// MatchPrefix is LongestMatch that also returns the byte length of the
// accepted prefix, so callers can slice input without re-decoding it.
func (d *DFA) MatchPrefix(input string) (chars, size int) {
	if len(d.states) == 0 {
		return 0, 0
	}
	cur := StartState
	consumed := 0
	for pos := 0; pos < len(input); {
		r, width := utf8.DecodeRuneInString(input[pos:])
		next, ok := d.states[cur].Next(r)
		if !ok {
			break
		}
		cur = next
		consumed++
		pos += width
		if d.states[cur].isMatch {
			chars, size = consumed, pos
		}
	}
	return chars, size
}

// Record returns the serializable form of d. State names are the
// comma-joined NFA state names; every transition is listed separately.
func (d *DFA) Record() *automaton.Record {
	r := &automaton.Record{
		States:      make([]string, 0, len(d.states)),
		Letters:     append([]alphabet.Label{}, d.letters...),
		Transitions: make(map[string][]automaton.Edge, len(d.states)),
		StartStates: []string{},
		FinalStates: []string{},
	}
	for i := range d.states {
		s := &d.states[i]
		name := s.Name()
		r.States = append(r.States, name)
		edges := make([]automaton.Edge, len(s.transitions))
		for j, t := range s.transitions {
			edges[j] = automaton.Edge{
				Label: alphabet.Of(t.Interval),
				To:    d.states[t.Next].Name(),
			}
		}
		r.Transitions[name] = edges
		if s.isMatch {
			r.FinalStates = append(r.FinalStates, name)
		}
	}
	if len(d.states) > 0 {
		r.StartStates = append(r.StartStates, d.states[StartState].Name())
	}
	return r
}
