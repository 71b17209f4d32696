package dfa

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
	"testing"

	"github.com/d4l3k/messagediff"

	"github.com/coregx/lexgen/alphabet"
	"github.com/coregx/lexgen/automaton"
	"github.com/coregx/lexgen/nfa"
)

func canonical(t testing.TB, pattern string) *nfa.Canonical {
	t.Helper()
	n, err := nfa.NewDefaultCompiler().Compile(pattern)
	if err != nil {
		t.Fatalf("Compile(%q) error: %v", pattern, err)
	}
	return nfa.Canonicalize(n)
}

func build(t testing.TB, pattern string) *DFA {
	t.Helper()
	d, err := Determinize(canonical(t, pattern), DefaultConfig())
	if err != nil {
		t.Fatalf("Determinize(%q) error: %v", pattern, err)
	}
	return d
}

func TestDFA_Accepts(t *testing.T) {
	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{"a", []string{"a"}, []string{"", "b", "aa"}},
		{"a*", []string{"", "a", "aaaa"}, []string{"b", "ab"}},
		{"a|b", []string{"a", "b"}, []string{"", "c", "ab"}},
		{"[a-z]", []string{"m", "a", "z"}, []string{"M", "5", "", "mm"}},
		{"[a-Z]", []string{"a", "-", "Z"}, []string{"a-Z", "b", "", "aZ"}},
		{"(a|b)*abb", []string{"abb", "aabb", "babb", "ababb"}, []string{"ab", "abba", ""}},
		{"[0-9][0-9]*", []string{"0", "42", "1234567890"}, []string{"", "4a", "a4"}},
		{"[a-z]|[m-p]x", []string{"q", "m", "x", "mx", "px"}, []string{"qx", "ax", "mxx"}},
		{"a.b", []string{"a.b"}, []string{"acb", "ab"}},
		{"é*", []string{"", "é", "ééé"}, []string{"e", "éa"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			d := build(t, tt.pattern)
			for _, in := range tt.accept {
				if !d.Accepts(in) {
					t.Errorf("Accepts(%q) = false, want true", in)
				}
			}
			for _, in := range tt.reject {
				if d.Accepts(in) {
					t.Errorf("Accepts(%q) = true, want false", in)
				}
			}
		})
	}
}

func TestDFA_LongestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		want    int
	}{
		{"a*", "aaab", 3},
		{"a|b", "c", 0},
		{"a*", "", 0},
		{"a*", "b", 0},
		{"ab|abcd", "abcde", 4},
		{"ab|abcd", "abcx", 2},
		{"[0-9][0-9]*", "123abc", 3},
		{"(ab)*", "ababa", 4},
		{"é*", "ééx", 2},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%s", tt.pattern, tt.input), func(t *testing.T) {
			if got := build(t, tt.pattern).LongestMatch(tt.input); got != tt.want {
				t.Errorf("LongestMatch(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestDFA_MatchPrefixBytes(t *testing.T) {
	d := build(t, "é*")
	chars, size := d.MatchPrefix("ééa")
	if chars != 2 || size != 4 {
		t.Errorf("MatchPrefix = (%d, %d), want (2, 4)", chars, size)
	}
}

func TestDFA_StartFinal(t *testing.T) {
	if !build(t, "a*").State(StartState).IsMatch() {
		t.Error("start state of a* should accept")
	}
	if build(t, "a").State(StartState).IsMatch() {
		t.Error("start state of a should not accept")
	}
}

func TestDFA_Record(t *testing.T) {
	a := alphabet.Of(alphabet.Single('a'))
	b := alphabet.Of(alphabet.Single('b'))
	want := &automaton.Record{
		States:  []string{"Q1,Q2,Q3", "Q4,Q5", "Q5,Q6"},
		Letters: []alphabet.Label{a, b},
		Transitions: map[string][]automaton.Edge{
			"Q1,Q2,Q3": {{Label: a, To: "Q4,Q5"}, {Label: b, To: "Q5,Q6"}},
			"Q4,Q5":    {},
			"Q5,Q6":    {},
		},
		StartStates: []string{"Q1,Q2,Q3"},
		FinalStates: []string{"Q4,Q5", "Q5,Q6"},
	}

	got := build(t, "a|b").Record()
	if diff, equal := messagediff.PrettyDiff(want, got); !equal {
		t.Errorf("Record() mismatch:\n%s", diff)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

// TestDFA_Disjoint samples ordinals around every transition boundary and
// checks that at most one transition of each state contains them.
func TestDFA_Disjoint(t *testing.T) {
	patterns := []string{
		"[a-z]|[m-p]x",
		"[a-z][a-z0-9]*|[0-9][0-9]*|x",
		"(a|[a-c]|[b-d])*",
		"[A-Z]|[A-M]|[M-Z]M",
	}

	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			d := build(t, pattern)
			for id := 0; id < d.States(); id++ {
				trans := d.State(StateID(id)).Transitions()
				var samples []rune
				for i, tr := range trans {
					samples = append(samples, tr.Interval.Lo-1, tr.Interval.Lo, tr.Interval.Hi, tr.Interval.Hi+1)
					if i > 0 && trans[i-1].Interval.Hi >= tr.Interval.Lo {
						t.Errorf("state %d: %s and %s out of order or overlapping",
							id, trans[i-1].Interval, tr.Interval)
					}
				}
				for _, r := range samples {
					hits := 0
					for _, tr := range trans {
						if tr.Interval.Contains(r) {
							hits++
						}
					}
					if hits > 1 {
						t.Errorf("state %d: %q hits %d transitions", id, r, hits)
					}
				}
			}
		})
	}
}

func TestDFA_UniqueStateSets(t *testing.T) {
	d := build(t, "(a|b)*abb(a|b)*")
	seen := make(map[string]StateID)
	for id := 0; id < d.States(); id++ {
		name := d.State(StateID(id)).Name()
		if prev, dup := seen[name]; dup {
			t.Errorf("states %d and %d share NFA set %s", prev, id, name)
		}
		seen[name] = StateID(id)
	}
}

func TestEpsilonClosure(t *testing.T) {
	c := canonical(t, "a*")
	// Q1 -$-> Q2, Q1 -$-> Q3, Q2 -a-> Q4, Q4 -$-> Q2, Q4 -$-> Q3
	tests := []struct {
		in   []int
		want []int
	}{
		{[]int{1}, []int{1, 2, 3}},
		{[]int{4}, []int{2, 3, 4}},
		{[]int{2}, []int{2}},
		{[]int{3, 2}, []int{2, 3}},
		{nil, nil},
	}

	for _, tt := range tests {
		got := EpsilonClosure(c, tt.in)
		if fmt.Sprint(got) != fmt.Sprint(tt.want) {
			t.Errorf("EpsilonClosure(%v) = %v, want %v", tt.in, got, tt.want)
		}
		if again := EpsilonClosure(c, got); fmt.Sprint(again) != fmt.Sprint(got) {
			t.Errorf("closure not idempotent: %v -> %v", got, again)
		}
	}
}

func TestDeterminize_Errors(t *testing.T) {
	c := canonical(t, "(a|b)*abb")

	_, err := Determinize(c, DefaultConfig().WithMaxStates(2))
	if !errors.Is(err, ErrStateLimitExceeded) {
		t.Errorf("error = %v, want ErrStateLimitExceeded", err)
	}

	_, err = Determinize(c, Config{})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
	var de *Error
	if !errors.As(err, &de) || de.Kind != InvalidConfig {
		t.Errorf("error = %#v, want *Error with Kind InvalidConfig", err)
	}
}

func TestErrorKind_String(t *testing.T) {
	if StateLimitExceeded.String() != "StateLimitExceeded" {
		t.Error(StateLimitExceeded.String())
	}
	if got := ErrorKind(42).String(); got != "UnknownErrorKind(42)" {
		t.Error(got)
	}
}

// randomPattern builds a pattern over {a, b, c} whose meaning is the same
// in this dialect and in Go's regexp syntax.
func randomPattern(rng *rand.Rand, depth int) string {
	if depth == 0 || rng.IntN(4) == 0 {
		leaves := []string{"a", "b", "c", "[a-b]", "[b-c]"}
		return leaves[rng.IntN(len(leaves))]
	}
	switch rng.IntN(3) {
	case 0:
		return randomPattern(rng, depth-1) + randomPattern(rng, depth-1)
	case 1:
		return "(" + randomPattern(rng, depth-1) + "|" + randomPattern(rng, depth-1) + ")"
	default:
		return "(" + randomPattern(rng, depth-1) + ")*"
	}
}

func allStrings(letters string, maxLen int) []string {
	out := []string{""}
	frontier := []string{""}
	for n := 0; n < maxLen; n++ {
		var next []string
		for _, s := range frontier {
			for _, r := range letters {
				next = append(next, s+string(r))
			}
		}
		out = append(out, next...)
		frontier = next
	}
	return out
}

// TestDFA_AgainstRegexp compares acceptance and longest prefix with the
// standard library on random patterns.
func TestDFA_AgainstRegexp(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	inputs := allStrings("abc", 5)

	for i := 0; i < 200; i++ {
		pattern := randomPattern(rng, 4)
		d := build(t, pattern)
		oracle := regexp.MustCompile("^(?:" + pattern + ")$")

		for _, in := range inputs {
			if got, want := d.Accepts(in), oracle.MatchString(in); got != want {
				t.Fatalf("pattern %q input %q: Accepts = %v, regexp = %v", pattern, in, got, want)
			}
			want := 0
			for k := len(in); k > 0; k-- {
				if oracle.MatchString(in[:k]) {
					want = k
					break
				}
			}
			if got := d.LongestMatch(in); got != want {
				t.Fatalf("pattern %q input %q: LongestMatch = %d, want %d", pattern, in, got, want)
			}
		}
	}
}

func BenchmarkDFA_LongestMatch(b *testing.B) {
	d := build(b, "[a-z][a-z0-9]*")
	input := strings.Repeat("abc123", 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		d.LongestMatch(input)
	}
}
