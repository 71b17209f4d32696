package nfa

import (
	"strconv"

	"github.com/coregx/lexgen/alphabet"
	"github.com/coregx/lexgen/automaton"
)

// CanonicalEdge is an edge between canonical state ids.
type CanonicalEdge struct {
	Label alphabet.Label
	To    int
}

// Canonical is an NFA renumbered by depth-first discovery from its start
// state. Ids run from 1 to Len(); the start state is always 1.
type Canonical struct {
	edges   [][]CanonicalEdge // indexed by id; edges[0] is unused
	arena   []StateID         // canonical id -> arena state; arena[0] is unused
	letters []alphabet.Label
	final   []bool
}

// Len returns the number of reachable states.
func (c *Canonical) Len() int {
	return len(c.edges) - 1
}

// Start returns the canonical id of the start state.
func (c *Canonical) Start() int {
	return 1
}

// Edges returns the outgoing edges of id in recorded order.
// The returned slice must not be modified.
func (c *Canonical) Edges(id int) []CanonicalEdge {
	if id <= 0 || id >= len(c.edges) {
		return nil
	}
	return c.edges[id]
}

// IsFinal reports whether id is a final state.
func (c *Canonical) IsFinal(id int) bool {
	return id > 0 && id < len(c.final) && c.final[id]
}

// Finals returns the final state ids in ascending order.
func (c *Canonical) Finals() []int {
	var out []int
	for id := 1; id < len(c.final); id++ {
		if c.final[id] {
			out = append(out, id)
		}
	}
	return out
}

// Letters returns every label observed during traversal, epsilon
// included, in discovery order.
func (c *Canonical) Letters() []alphabet.Label {
	return c.letters
}

// ArenaState returns the arena state that was assigned id.
func (c *Canonical) ArenaState(id int) StateID {
	if id <= 0 || id >= len(c.arena) {
		return InvalidState
	}
	return c.arena[id]
}

// StateName returns the display name of a canonical id, "Q<id>".
func StateName(id int) string {
	return "Q" + strconv.Itoa(id)
}

// Record returns the serializable form of c.
func (c *Canonical) Record() *automaton.Record {
	n := c.Len()
	r := &automaton.Record{
		States:      make([]string, 0, n),
		Letters:     append([]alphabet.Label{}, c.letters...),
		Transitions: make(map[string][]automaton.Edge, n),
		StartStates: []string{StateName(c.Start())},
		FinalStates: []string{},
	}
	for id := 1; id <= n; id++ {
		name := StateName(id)
		r.States = append(r.States, name)
		edges := make([]automaton.Edge, len(c.edges[id]))
		for i, e := range c.edges[id] {
			edges[i] = automaton.Edge{Label: e.Label, To: StateName(e.To)}
		}
		r.Transitions[name] = edges
		if c.final[id] {
			r.FinalStates = append(r.FinalStates, name)
		}
	}
	return r
}

// canonFrame is one pending visit of the depth-first traversal.
type canonFrame struct {
	groups   [][]Edge // outgoing edges grouped by label, first-seen order
	group    int      // current group
	child    int      // next target to descend into within the group
	recorded bool     // current group's targets are numbered and recorded
}

// Canonicalize renumbers the states reachable from n's start.
//
// The traversal is depth-first. On the first visit of a state its edges are
// grouped by label in first-seen order; for each group, every target without
// an id gets the next one, the edges are recorded, and only then does the
// traversal descend into the group's targets in order. States already
// visited are not descended into again, so cycles terminate.
//
// A state is final iff it has no edge to a state other than itself. For a
// Thompson fragment that is exactly the fragment's end state.
func Canonicalize(n *NFA) *Canonical {
	c := &Canonical{
		edges: [][]CanonicalEdge{nil},
		arena: []StateID{InvalidState},
	}
	ids := make([]int, len(n.states)) // arena -> canonical, 0 = unnumbered
	visited := make([]bool, len(n.states))
	seen := make(map[alphabet.Label]struct{})

	assign := func(s StateID) int {
		id := len(c.edges)
		ids[s] = id
		c.edges = append(c.edges, nil)
		c.arena = append(c.arena, s)
		return id
	}

	assign(n.start)
	visited[n.start] = true
	stack := []canonFrame{{groups: groupByLabel(n.states[n.start].edges)}}
	owners := []StateID{n.start}

	for len(stack) > 0 {
		top := len(stack) - 1
		f := &stack[top]
		if f.group >= len(f.groups) {
			stack = stack[:top]
			owners = owners[:top]
			continue
		}

		g := f.groups[f.group]
		if !f.recorded {
			from := ids[owners[top]]
			label := g[0].Label
			if _, ok := seen[label]; !ok {
				seen[label] = struct{}{}
				c.letters = append(c.letters, label)
			}
			for _, e := range g {
				if ids[e.Next] == 0 {
					assign(e.Next)
				}
				c.edges[from] = append(c.edges[from], CanonicalEdge{Label: label, To: ids[e.Next]})
			}
			f.recorded = true
		}

		if f.child < len(g) {
			next := g[f.child].Next
			f.child++
			if !visited[next] {
				visited[next] = true
				stack = append(stack, canonFrame{groups: groupByLabel(n.states[next].edges)})
				owners = append(owners, next)
			}
			continue
		}

		f.group++
		f.child = 0
		f.recorded = false
	}

	c.final = make([]bool, len(c.edges))
	for id := 1; id < len(c.edges); id++ {
		c.final[id] = true
		for _, e := range c.edges[id] {
			if e.To != id {
				c.final[id] = false
				break
			}
		}
	}
	return c
}

// groupByLabel splits edges into runs sharing a label. Groups appear in
// order of each label's first edge; edges keep their relative order.
func groupByLabel(edges []Edge) [][]Edge {
	if len(edges) == 0 {
		return nil
	}
	index := make(map[alphabet.Label]int, 2)
	var groups [][]Edge
	for _, e := range edges {
		i, ok := index[e.Label]
		if !ok {
			i = len(groups)
			index[e.Label] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], e)
	}
	return groups
}
