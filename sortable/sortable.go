package sortable

import (
	"slices"

	"github.com/astrapi69/jobj-compare/compare"
)

// Sortable is implemented by types that can order themselves.
// LessThan must be a strict weak order consistent with Equals.
type Sortable[T any] interface {
	compare.Comparable[T]

	LessThan(other T) bool
}

// Compare is the three-way comparison induced by LessThan and Equals.
// It returns -1, 0 or 1.
func Compare[T Sortable[T]](a, b T) int {
	switch {
	case a.LessThan(b):
		return -1
	case a.Equals(b):
		return 0
	default:
		return 1
	}
}

// SortedDistinct returns the distinct values of items in ascending order.
// The input slice is not modified.
func SortedDistinct[T Sortable[T]](items []T) []T {
	out := slices.Clone(items)

	slices.SortFunc(out, Compare[T])

	return slices.CompactFunc(out, func(a, b T) bool {
		return a.Equals(b)
	})
}
