// Package compare provides the ordering primitives used by the comparators:
// a nil-aware null rule, a reflective natural ordering and adapters between
// typed and untyped comparison functions.
package compare

// Comparable is implemented by values that decide equality with another T
// themselves, such as orderings and property comparators.
type Comparable[T any] interface {
	Equals(other T) bool
}

// Equals reports whether a considers itself equal to b.
func Equals[T any](a Comparable[T], b T) bool {
	return a.Equals(b)
}
