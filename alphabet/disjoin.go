package alphabet

import "container/heap"

// intervalHeap is a min-heap of intervals ordered by (Lo, Hi).
type intervalHeap []Interval

func (h intervalHeap) Len() int           { return len(h) }
func (h intervalHeap) Less(i, j int) bool { return h[i].Less(h[j]) }
func (h intervalHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *intervalHeap) Push(x any) {
	*h = append(*h, x.(Interval))
}

func (h *intervalHeap) Pop() any {
	old := *h
	n := len(old)
	iv := old[n-1]
	*h = old[:n-1]
	return iv
}

// Disjoin partitions possibly overlapping intervals into pairwise-disjoint
// intervals that cover exactly the union of the inputs.
//
// Every output interval is elementary: each input interval either contains
// it completely or does not touch it. A subset construction can therefore
// iterate the partition instead of the raw labels and never produce two
// edges for the same ordinal.
//
// The partition is computed with a min-heap ordered by interval start.
// The smallest interval a is popped and compared with the next one, b:
//
//   - b starts after a ends: a is emitted untouched.
//   - b starts inside a: the prefix [a.Lo, b.Lo-1] is emitted and the
//     remainder [b.Lo, a.Hi] is pushed back.
//   - both start together: they are replaced by [lo, min(hi)] and, if
//     non-empty, the tail [min(hi)+1, max(hi)].
//
// The result is sorted by start. Invalid intervals (Lo > Hi) are ignored.
func Disjoin(intervals []Interval) []Interval {
	h := make(intervalHeap, 0, len(intervals))
	for _, iv := range intervals {
		if iv.IsValid() {
			h = append(h, iv)
		}
	}
	if len(h) == 0 {
		return nil
	}
	heap.Init(&h)

	out := make([]Interval, 0, len(h))
	for h.Len() > 0 {
		a := heap.Pop(&h).(Interval)
		if h.Len() == 0 {
			out = append(out, a)
			break
		}

		b := h[0]
		switch {
		case b.Lo > a.Hi:
			out = append(out, a)
		case b.Lo > a.Lo:
			out = append(out, Interval{Lo: a.Lo, Hi: b.Lo - 1})
			heap.Push(&h, Interval{Lo: b.Lo, Hi: a.Hi})
		default:
			heap.Pop(&h)
			lo, hi := min(a.Hi, b.Hi), max(a.Hi, b.Hi)
			heap.Push(&h, Interval{Lo: a.Lo, Hi: lo})
			if hi > lo {
				heap.Push(&h, Interval{Lo: lo + 1, Hi: hi})
			}
		}
	}
	return out
}

// Intervals returns the non-epsilon labels as intervals, preserving order.
func Intervals(labels []Label) []Interval {
	out := make([]Interval, 0, len(labels))
	for _, l := range labels {
		if iv, ok := l.Interval(); ok {
			out = append(out, iv)
		}
	}
	return out
}
