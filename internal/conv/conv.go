// Package conv provides checked integer conversions for automaton arenas.
package conv

import (
	"fmt"
	"math"
)

// Index converts an arena length to a 32-bit state ID type.
// It panics when n does not fit below math.MaxUint32, which both
// automaton packages reserve as their invalid ID.
func Index[T ~uint32](n int) T {
	if n < 0 || uint64(n) >= math.MaxUint32 {
		panic(fmt.Sprintf("conv: arena index %d out of state ID range", n))
	}
	return T(n)
}
