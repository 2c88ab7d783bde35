// Package josephus computes the survivor of the Josephus elimination game:
// n people stand in a circle and every k-th one is removed until one
// remains. Positions are 0-based.
package josephus

import (
	"errors"
	"fmt"
)

// ErrEmptyCircle is returned when the circle has no people.
var ErrEmptyCircle = errors.New("circle must have at least one person")

// Recursive returns the survivor position using the recurrence
// f(1) = 0, f(i) = (f(i-1) + k) mod i. Recursion depth is n, so callers
// should bound n.
func Recursive(k, n uint64) (uint64, error) {
	if n == 0 {
		return 0, fmt.Errorf("josephus(k=%d): %w", k, ErrEmptyCircle)
	}
	return recurse(k, n), nil
}

func recurse(k, n uint64) uint64 {
	if n == 1 {
		return 0
	}
	return step(recurse(k, n-1), k, n)
}

// Iterative returns the same survivor position as Recursive in constant
// space.
func Iterative(k, n uint64) (uint64, error) {
	if n == 0 {
		return 0, fmt.Errorf("josephus(k=%d): %w", k, ErrEmptyCircle)
	}
	var pos uint64
	for i := uint64(2); i <= n; i++ {
		pos = step(pos, k, i)
	}
	return pos, nil
}

// step evaluates (prev + k) mod i without overflowing for large k.
func step(prev, k, i uint64) uint64 {
	return (prev + k%i) % i
}
