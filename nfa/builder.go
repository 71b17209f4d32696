package nfa

import (
	"fmt"

	"github.com/coregx/lexgen/alphabet"
	"github.com/coregx/lexgen/internal/conv"
)

// Builder constructs NFAs incrementally using a low-level API.
// This provides full control over NFA construction and is used by the Compiler.
type Builder struct {
	states []State
	start  StateID
	end    StateID
}

// NewBuilder creates a new NFA builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new NFA builder with specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states: make([]State, 0, capacity),
		start:  InvalidState,
		end:    InvalidState,
	}
}

// AddState adds a state without edges and returns its ID
func (b *Builder) AddState() StateID {
	id := conv.Index[StateID](len(b.states))
	b.states = append(b.states, State{id: id})
	return id
}

// AddTransition appends an edge from -> to labelled with iv.
func (b *Builder) AddTransition(from StateID, iv alphabet.Interval, to StateID) error {
	if !iv.IsValid() {
		return &BuildError{
			Message: fmt.Sprintf("invalid interval %s", iv),
			StateID: from,
		}
	}
	return b.addEdge(from, alphabet.Of(iv), to)
}

// AddEpsilon appends an epsilon edge from -> to.
func (b *Builder) AddEpsilon(from, to StateID) error {
	return b.addEdge(from, alphabet.Epsilon, to)
}

func (b *Builder) addEdge(from StateID, label alphabet.Label, to StateID) error {
	if int(from) >= len(b.states) {
		return &BuildError{
			Message: "state ID out of bounds",
			StateID: from,
		}
	}
	s := &b.states[from]
	s.edges = append(s.edges, Edge{Label: label, Next: to})
	return nil
}

// SetStart sets the start state of the fragment
func (b *Builder) SetStart(start StateID) {
	b.start = start
}

// SetEnd sets the accepting state of the fragment
func (b *Builder) SetEnd(end StateID) {
	b.end = end
}

// States returns the current number of states
func (b *Builder) States() int {
	return len(b.states)
}

// Validate checks that the NFA is well-formed:
// - Start and end states are set and in bounds
// - All edge targets point to valid states
// - The end state has no outgoing edges
func (b *Builder) Validate() error {
	if b.start == InvalidState {
		return &BuildError{Message: "start state not set", StateID: InvalidState}
	}
	if int(b.start) >= len(b.states) {
		return &BuildError{
			Message: "start state out of bounds",
			StateID: b.start,
		}
	}
	if b.end == InvalidState {
		return &BuildError{Message: "end state not set", StateID: InvalidState}
	}
	if int(b.end) >= len(b.states) {
		return &BuildError{
			Message: "end state out of bounds",
			StateID: b.end,
		}
	}
	if len(b.states[b.end].edges) != 0 {
		return &BuildError{
			Message: "end state has outgoing edges",
			StateID: b.end,
		}
	}

	for i := range b.states {
		for j, e := range b.states[i].edges {
			if int(e.Next) >= len(b.states) {
				return &BuildError{
					Message: fmt.Sprintf("invalid edge %d target %d", j, e.Next),
					StateID: StateID(i),
				}
			}
		}
	}

	return nil
}

// Build validates and returns the constructed NFA.
// The builder must not be reused afterwards.
func (b *Builder) Build() (*NFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &NFA{
		states: b.states,
		start:  b.start,
		end:    b.end,
	}, nil
}
