// Package automaton defines the explicit, serializable form shared by the
// NFA and DFA stages: ordered state names, the observed alphabet, a
// transition table, and the start and final state sets.
package automaton

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/coregx/lexgen/alphabet"
)

// ErrInvalidRecord indicates a record that references unknown states or
// does not have exactly one start state.
var ErrInvalidRecord = errors.New("invalid automaton record")

// Edge is one entry of a state's transition list.
// It serializes as the pair [label, state].
type Edge struct {
	Label alphabet.Label
	To    string
}

// MarshalJSON encodes the edge as a two-element array.
func (e Edge) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{e.Label, e.To})
}

// UnmarshalJSON decodes a [label, state] pair.
func (e *Edge) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("automaton: edge must have 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &e.Label); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &e.To)
}

// Record is the canonical automaton table.
//
// States lists every state once in discovery order. Transitions holds the
// outgoing edges of each state in their recorded order; an NFA may have
// several edges under one label, a DFA never does.
type Record struct {
	States      []string          `json:"states"`
	Letters     []alphabet.Label  `json:"letters"`
	Transitions map[string][]Edge `json:"transition_function"`
	StartStates []string          `json:"start_states"`
	FinalStates []string          `json:"final_states"`
}

// IsFinal reports whether name is one of the final states.
func (r *Record) IsFinal(name string) bool {
	for _, f := range r.FinalStates {
		if f == name {
			return true
		}
	}
	return false
}

// Validate checks that the record has exactly one start state and that
// every state it mentions appears in States.
func (r *Record) Validate() error {
	known := make(map[string]struct{}, len(r.States))
	for _, s := range r.States {
		if _, dup := known[s]; dup {
			return fmt.Errorf("%w: duplicate state %q", ErrInvalidRecord, s)
		}
		known[s] = struct{}{}
	}
	check := func(what, name string) error {
		if _, ok := known[name]; !ok {
			return fmt.Errorf("%w: %s references unknown state %q", ErrInvalidRecord, what, name)
		}
		return nil
	}

	if len(r.StartStates) != 1 {
		return fmt.Errorf("%w: want 1 start state, got %d", ErrInvalidRecord, len(r.StartStates))
	}
	if err := check("start_states", r.StartStates[0]); err != nil {
		return err
	}
	for _, f := range r.FinalStates {
		if err := check("final_states", f); err != nil {
			return err
		}
	}
	for from, edges := range r.Transitions {
		if err := check("transition_function", from); err != nil {
			return err
		}
		for _, e := range edges {
			if err := check("transition_function", e.To); err != nil {
				return err
			}
		}
	}
	return nil
}
