package alphabet

import (
	"encoding/json"
	"math/rand"
	"testing"
)

func TestIntervalIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want Interval
		ok   bool
	}{
		{"identical", Range('a', 'z'), Range('a', 'z'), Range('a', 'z'), true},
		{"nested", Range('a', 'z'), Range('m', 'n'), Range('m', 'n'), true},
		{"partial", Range('a', 'm'), Range('k', 'z'), Range('k', 'm'), true},
		{"touching", Range('a', 'k'), Range('k', 'z'), Single('k'), true},
		{"disjoint", Range('a', 'c'), Range('x', 'z'), Interval{}, false},
		{"adjacent", Range('a', 'c'), Range('d', 'f'), Interval{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersect(tt.b)
			if ok != tt.ok || got != tt.want {
				t.Errorf("%v.Intersect(%v) = %v, %v; want %v, %v", tt.a, tt.b, got, ok, tt.want, tt.ok)
			}
			if ok != tt.a.Overlaps(tt.b) {
				t.Errorf("Overlaps disagrees with Intersect for %v, %v", tt.a, tt.b)
			}
			// Symmetric
			got2, ok2 := tt.b.Intersect(tt.a)
			if ok2 != ok || got2 != got {
				t.Errorf("Intersect is not symmetric for %v, %v", tt.a, tt.b)
			}
		})
	}
}

func TestLabelJSON(t *testing.T) {
	labels := []Label{Epsilon, Of(Single('a')), Of(Range('0', '9'))}
	data, err := json.Marshal(labels)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `["$",[97,97],[48,57]]` {
		t.Errorf("Marshal = %s", data)
	}

	var back []Label
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	for i := range labels {
		if back[i] != labels[i] {
			t.Errorf("label %d: got %v, want %v", i, back[i], labels[i])
		}
	}

	var bad Label
	if err := json.Unmarshal([]byte(`"x"`), &bad); err == nil {
		t.Error("Unmarshal of unknown symbol succeeded")
	}
}

func TestDisjoin(t *testing.T) {
	tests := []struct {
		name string
		in   []Interval
		want []Interval
	}{
		{"empty", nil, nil},
		{"single", []Interval{Single('a')}, []Interval{Single('a')}},
		{
			"already disjoint",
			[]Interval{Range('x', 'z'), Range('a', 'c')},
			[]Interval{Range('a', 'c'), Range('x', 'z')},
		},
		{
			"duplicates collapse",
			[]Interval{Single('a'), Single('a'), Single('a')},
			[]Interval{Single('a')},
		},
		{
			"overlap splits at both ends",
			[]Interval{Range('a', 'm'), Range('k', 'z')},
			[]Interval{Range('a', 'j'), Range('k', 'm'), Range('n', 'z')},
		},
		{
			"shared start",
			[]Interval{Range('a', 'z'), Range('a', 'd')},
			[]Interval{Range('a', 'd'), Range('e', 'z')},
		},
		{
			"nested point",
			[]Interval{Range('a', 'z'), Range('a', 'd'), Single('b')},
			[]Interval{Single('a'), Single('b'), Range('c', 'd'), Range('e', 'z')},
		},
		{
			"invalid ignored",
			[]Interval{Range('z', 'a'), Single('q')},
			[]Interval{Single('q')},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Disjoin(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Disjoin(%v) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Disjoin(%v) = %v, want %v", tt.in, got, tt.want)
				}
			}
		})
	}
}

// TestDisjoinProperties checks on random inputs that the partition is
// disjoint, covers exactly the union, and is elementary.
func TestDisjoinProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for iter := 0; iter < 200; iter++ {
		n := 1 + rng.Intn(8)
		in := make([]Interval, n)
		for i := range in {
			lo := rune(rng.Intn(60))
			in[i] = Range(lo, lo+rune(rng.Intn(20)))
		}
		parts := Disjoin(in)

		for i := 1; i < len(parts); i++ {
			if parts[i-1].Hi >= parts[i].Lo {
				t.Fatalf("input %v: parts %v and %v overlap or are unsorted", in, parts[i-1], parts[i])
			}
		}

		for r := rune(0); r < 100; r++ {
			inUnion := false
			for _, iv := range in {
				if iv.Contains(r) {
					inUnion = true
				}
			}
			hits := 0
			for _, p := range parts {
				if p.Contains(r) {
					hits++
				}
			}
			if inUnion && hits != 1 || !inUnion && hits != 0 {
				t.Fatalf("input %v: ordinal %d covered %d times (in union: %v)", in, r, hits, inUnion)
			}
		}

		for _, p := range parts {
			for _, iv := range in {
				common, ok := p.Intersect(iv)
				if ok && common != p {
					t.Fatalf("input %v: part %v straddles %v", in, p, iv)
				}
			}
		}
	}
}
