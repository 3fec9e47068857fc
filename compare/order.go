package compare

import (
	"cmp"
	"reflect"
)

// Func is a three-way comparison. It returns a negative number when a sorts
// before b, zero when they are equal and a positive number when a sorts after b.
// Only the sign is meaningful unless the implementation documents otherwise.
//
// A Func can be passed directly to slices.SortFunc and friends.
type Func[T any] func(a, b T) int

// NullCheck applies the null rule shared by every ordering in this module:
// absent values sort first and two absent values are equal.
//
// The second return value reports whether the rule decided the comparison.
// When it is false, both values are present and the caller must compare them.
//
//	NullCheck(nil, nil)  // 0, true
//	NullCheck(nil, "x")  // -1, true
//	NullCheck("x", nil)  // 1, true
//	NullCheck("x", "y")  // 0, false
func NullCheck(a, b any) (int, bool) {
	absentA, absentB := IsAbsent(a), IsAbsent(b)

	switch {
	case absentA && absentB:
		return 0, true
	case absentA:
		return -1, true
	case absentB:
		return 1, true
	default:
		return 0, false
	}
}

// IsAbsent reports whether v is a nil interface or a nil pointer, map, slice,
// channel, function or interface value.
func IsAbsent(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() { //nolint:exhaustive
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// Ordered compares two values of an ordered type and returns -1, 0 or 1.
// Unlike Natural, strings compare by sign only.
func Ordered[T cmp.Ordered](a, b T) int {
	return cmp.Compare(a, b)
}

// Reverse inverts the direction of an ordering.
func Reverse[T any](fn Func[T]) Func[T] {
	return func(a, b T) int {
		return fn(b, a)
	}
}

// NullsFirst lifts an ordering over T to an ordering over *T that follows
// the null rule: nil pointers sort first and two nil pointers are equal.
func NullsFirst[T any](fn Func[T]) Func[*T] {
	return func(a, b *T) int {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		case b == nil:
			return 1
		default:
			return fn(*a, *b)
		}
	}
}

// Then returns an ordering that consults next only when first reports equality.
// This is the lexicographic composition; prefer it over summing results when
// a true total order over several keys is needed.
func Then[T any](first Func[T], next ...Func[T]) Func[T] {
	return func(a, b T) int {
		if r := first(a, b); r != 0 {
			return r
		}

		for _, fn := range next {
			if r := fn(a, b); r != 0 {
				return r
			}
		}

		return 0
	}
}
