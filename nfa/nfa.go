// Package nfa provides Thompson construction of epsilon-NFAs over interval
// labels, and canonicalization of those automata into explicit records.
//
// States live in an arena owned by the NFA and refer to each other by
// StateID, so the graph may contain cycles without shared mutable nodes.
// A compiled fragment has exactly one start state and exactly one end
// state; the end state is the only state without outgoing edges.
package nfa

import (
	"fmt"
	"strings"

	"github.com/coregx/lexgen/alphabet"
)

// StateID uniquely identifies an NFA state within its arena.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID
const InvalidState StateID = 0xFFFFFFFF

// Edge is a labelled transition to another state.
type Edge struct {
	Label alphabet.Label
	Next  StateID
}

// String returns "label->next".
func (e Edge) String() string {
	return fmt.Sprintf("%s->%d", e.Label, e.Next)
}

// State represents a single NFA state with its outgoing edges.
// Edge order is the order in which the edges were added, and it matters:
// canonical numbering visits targets in this order.
type State struct {
	id    StateID
	edges []Edge
}

// ID returns the state's unique identifier
func (s *State) ID() StateID {
	return s.id
}

// Edges returns the outgoing edges in insertion order.
// The returned slice must not be modified.
func (s *State) Edges() []Edge {
	return s.edges
}

// IsEpsilon reports whether every outgoing edge is an epsilon edge.
// A state without edges is not an epsilon state.
func (s *State) IsEpsilon() bool {
	if len(s.edges) == 0 {
		return false
	}
	for _, e := range s.edges {
		if !e.Label.IsEpsilon() {
			return false
		}
	}
	return true
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	if len(s.edges) == 0 {
		return fmt.Sprintf("State(%d, end)", s.id)
	}
	parts := make([]string, len(s.edges))
	for i, e := range s.edges {
		parts[i] = e.String()
	}
	return fmt.Sprintf("State(%d, %s)", s.id, strings.Join(parts, " "))
}

// NFA is a compiled Thompson fragment: an arena of states plus the
// designated start and end states.
type NFA struct {
	states []State
	start  StateID
	end    StateID
}

// Start returns the start state ID
func (n *NFA) Start() StateID {
	return n.start
}

// End returns the end (accepting) state ID
func (n *NFA) End() StateID {
	return n.end
}

// IsMatch reports whether id is the accepting state.
func (n *NFA) IsMatch(id StateID) bool {
	return id == n.end
}

// State returns the state with the given ID.
// Returns nil if the ID is invalid.
func (n *NFA) State(id StateID) *State {
	if int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// States returns the total number of states in the arena
func (n *NFA) States() int {
	return len(n.states)
}

// Labels returns every distinct non-epsilon label in the arena, in
// arena order.
func (n *NFA) Labels() []alphabet.Label {
	seen := make(map[alphabet.Label]struct{})
	var out []alphabet.Label
	for i := range n.states {
		for _, e := range n.states[i].edges {
			if e.Label.IsEpsilon() {
				continue
			}
			if _, ok := seen[e.Label]; ok {
				continue
			}
			seen[e.Label] = struct{}{}
			out = append(out, e.Label)
		}
	}
	return out
}

// String returns a multi-line dump of the arena, one state per line.
func (n *NFA) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "NFA{start: %d, end: %d}\n", n.start, n.end)
	for i := range n.states {
		b.WriteString("  ")
		b.WriteString(n.states[i].String())
		b.WriteByte('\n')
	}
	return b.String()
}
