package automaton

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sigs.k8s.io/yaml"
)

// EncodeJSON writes r as indented JSON.
func (r *Record) EncodeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(r)
}

// DecodeJSON reads and validates a record written by EncodeJSON.
func DecodeJSON(rd io.Reader) (*Record, error) {
	var r Record
	if err := json.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("automaton: decode json: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// EncodeYAML writes r as YAML. Field names and the edge pair layout are
// the same as in the JSON form.
func (r *Record) EncodeYAML(w io.Writer) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("automaton: encode yaml: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// DecodeYAML parses and validates a record written by EncodeYAML.
func DecodeYAML(data []byte) (*Record, error) {
	var r Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("automaton: decode yaml: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// EncodeDOT writes r as a Graphviz digraph. Final states are drawn as
// double circles and the start state gets an incoming arrow from a point.
func (r *Record) EncodeDOT(w io.Writer) error {
	var b strings.Builder
	b.WriteString("digraph G {\n")
	b.WriteString("    rankdir=LR;\n")
	for _, s := range r.States {
		shape := "circle"
		if r.IsFinal(s) {
			shape = "doublecircle"
		}
		fmt.Fprintf(&b, "    %q [shape=%s];\n", s, shape)
	}
	for _, s := range r.States {
		for _, e := range r.Transitions[s] {
			label := e.Label.String()
			if e.Label.IsEpsilon() {
				label = "ε"
			}
			fmt.Fprintf(&b, "    %q -> %q [label=%q];\n", s, e.To, label)
		}
	}
	for _, s := range r.StartStates {
		fmt.Fprintf(&b, "    _start [shape=point]; _start -> %q;\n", s)
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}
