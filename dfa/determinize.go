package dfa

import (
	"encoding/binary"
	"fmt"

	"github.com/coregx/lexgen/alphabet"
	"github.com/coregx/lexgen/internal/conv"
	"github.com/coregx/lexgen/internal/sparse"
	"github.com/coregx/lexgen/nfa"
)

// stateKey encodes an ascending NFA id set as a map key. Two sets get the
// same key iff they have the same members.
func stateKey(ids []int) string {
	buf := make([]byte, 0, len(ids)*2)
	for _, id := range ids {
		buf = binary.AppendUvarint(buf, uint64(id))
	}
	return string(buf)
}

// EpsilonClosure returns every canonical id reachable from ids through
// epsilon edges alone, ids included, in ascending order.
func EpsilonClosure(c *nfa.Canonical, ids []int) []int {
	set := sparse.New(c.Len() + 1)
	closeOver(c, set, ids)
	return set.Sorted()
}

// closeOver adds the epsilon closure of ids to set.
func closeOver(c *nfa.Canonical, set *sparse.Set, ids []int) {
	stack := make([]int, 0, len(ids))
	for _, id := range ids {
		if set.Insert(id) {
			stack = append(stack, id)
		}
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range c.Edges(id) {
			if e.Label.IsEpsilon() && set.Insert(e.To) {
				stack = append(stack, e.To)
			}
		}
	}
}

// determinizer holds the scratch state of one subset construction.
type determinizer struct {
	nfa     *nfa.Canonical
	config  Config
	dfa     *DFA
	index   map[string]StateID
	targets *sparse.Set
	closure *sparse.Set
}

// Determinize builds a DFA from c by subset construction.
//
// The alphabet is first partitioned into elementary intervals with
// alphabet.Disjoin. Each unprocessed DFA state is then taken from a LIFO
// worklist and, for every partition interval, the NFA states reachable on
// an overlapping label are epsilon-closed into the target DFA state. A
// DFA state is accepting iff its NFA set contains an NFA final state; this
// holds for the start state too.
func Determinize(c *nfa.Canonical, config Config) (*DFA, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	d := &determinizer{
		nfa:     c,
		config:  config,
		dfa:     &DFA{},
		index:   make(map[string]StateID),
		targets: sparse.New(c.Len() + 1),
		closure: sparse.New(c.Len() + 1),
	}
	for _, l := range c.Letters() {
		if !l.IsEpsilon() {
			d.dfa.letters = append(d.dfa.letters, l)
		}
	}
	partition := alphabet.Disjoin(alphabet.Intervals(d.dfa.letters))

	d.closure.Clear()
	closeOver(c, d.closure, []int{c.Start()})
	if _, err := d.add(d.closure.Sorted()); err != nil {
		return nil, err
	}

	worklist := []StateID{StartState}
	for len(worklist) > 0 {
		id := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]

		for _, letter := range partition {
			overlaps := d.move(d.dfa.states[id].nfaStates, letter)
			if d.targets.Len() == 0 {
				continue
			}

			d.closure.Clear()
			closeOver(c, d.closure, d.targets.Values())
			u := d.closure.Sorted()

			next, ok := d.index[stateKey(u)]
			if !ok {
				var err error
				if next, err = d.add(u); err != nil {
					return nil, err
				}
				worklist = append(worklist, next)
			}

			// Partition intervals are elementary, so this is normally the
			// letter itself.
			for _, seg := range alphabet.Disjoin(overlaps) {
				d.dfa.states[id].transitions = append(d.dfa.states[id].transitions, Transition{
					Interval: seg,
					Next:     next,
				})
			}
		}
	}

	return d.dfa, nil
}

// move fills d.targets with the NFA states reachable from set on a label
// overlapping letter and returns the overlapping parts of those labels.
func (d *determinizer) move(set []int, letter alphabet.Interval) []alphabet.Interval {
	d.targets.Clear()
	var overlaps []alphabet.Interval
	for _, s := range set {
		for _, e := range d.nfa.Edges(s) {
			iv, ok := e.Label.Interval()
			if !ok {
				continue
			}
			if part, ok := iv.Intersect(letter); ok {
				d.targets.Insert(e.To)
				overlaps = append(overlaps, part)
			}
		}
	}
	return overlaps
}

// add registers a new DFA state for the ascending NFA id set ids.
func (d *determinizer) add(ids []int) (StateID, error) {
	if len(d.dfa.states) >= d.config.MaxStates {
		return InvalidState, &Error{
			Kind:    StateLimitExceeded,
			Message: fmt.Sprintf("DFA state limit exceeded (%d)", d.config.MaxStates),
		}
	}

	id := conv.Index[StateID](len(d.dfa.states))
	isMatch := false
	for _, s := range ids {
		if d.nfa.IsFinal(s) {
			isMatch = true
			break
		}
	}
	d.dfa.states = append(d.dfa.states, State{
		id:        id,
		nfaStates: ids,
		isMatch:   isMatch,
	})
	d.index[stateKey(ids)] = id
	return id, nil
}
