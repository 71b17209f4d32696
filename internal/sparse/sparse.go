// Package sparse provides a sparse set of small non-negative integers.
//
// A sparse set supports O(1) insertion, membership testing and clearing
// while keeping a dense list of its elements in insertion order. The
// determinizer uses it for epsilon closures and move sets, where the
// universe is the canonical NFA id range and sets are rebuilt constantly.
package sparse

import "slices"

// Set is a set of ints in [0, capacity).
// It maintains both a sparse array (for membership testing) and a dense array
// (for iteration). The sparse array maps values to indices in the dense array.
type Set struct {
	sparse []int // Maps value -> index in dense
	dense  []int // Contains the actual values
}

// New creates a new sparse set that can hold values in [0, capacity).
func New(capacity int) *Set {
	return &Set{
		sparse: make([]int, capacity),
		dense:  make([]int, 0, capacity),
	}
}

// Capacity returns the exclusive upper bound of storable values.
func (s *Set) Capacity() int {
	return len(s.sparse)
}

// Insert adds a value to the set and reports whether it was newly added.
// Panics if value is out of range.
func (s *Set) Insert(value int) bool {
	if s.Contains(value) {
		return false
	}
	s.sparse[value] = len(s.dense)
	s.dense = append(s.dense, value)
	return true
}

// Contains returns true if the value is in the set
func (s *Set) Contains(value int) bool {
	if value < 0 || value >= len(s.sparse) {
		return false
	}
	idx := s.sparse[value]
	return idx < len(s.dense) && s.dense[idx] == value
}

// Clear removes all elements from the set in O(1) time
func (s *Set) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of elements in the set
func (s *Set) Len() int {
	return len(s.dense)
}

// Values returns the elements in insertion order.
// The returned slice is valid until the next mutation.
func (s *Set) Values() []int {
	return s.dense
}

// Sorted returns a fresh ascending copy of the elements.
func (s *Set) Sorted() []int {
	out := slices.Clone(s.dense)
	slices.Sort(out)
	return out
}
