package comparators

import (
	"cmp"
	"maps"
	"math/rand/v2"
	"slices"

	"github.com/astrapi69/jobj-compare/assert"
	"github.com/astrapi69/jobj-compare/compare"
	"github.com/astrapi69/jobj-compare/sortable"
)

// Unranked is the rank of a value missing from the ordering list. It is
// below every listed rank, so unranked values sort first and tie with each
// other.
const Unranked = -1

// FromOrderedList returns a comparison that orders values by their position
// in list. A value listed more than once ranks at its first position. The
// list is copied, so later changes to it have no effect.
func FromOrderedList[T comparable](list []T) (compare.Func[T], error) {
	if err := assert.Present("ordering list", list); err != nil {
		return nil, err
	}

	ranks := make(map[T]int, len(list))

	for i, item := range list {
		if _, seen := ranks[item]; !seen {
			ranks[item] = i
		}
	}

	rank := func(item T) int {
		if r, ok := ranks[item]; ok {
			return r
		}

		return Unranked
	}

	return func(a, b T) int {
		return cmp.Compare(rank(a), rank(b))
	}, nil
}

// FromMapValues orders values by their rank among the distinct values of m
// in ascending order.
func FromMapValues[K comparable, V cmp.Ordered](m map[K]V) (compare.Func[V], error) {
	if err := assert.Present("map", m); err != nil {
		return nil, err
	}

	return FromOrderedList(distinctValues(m))
}

// FromRandomizedMapValues is FromMapValues with the distinct values shuffled
// by rnd. A seeded rnd gives a reproducible order; a nil rnd uses the
// randomly seeded global source.
func FromRandomizedMapValues[K comparable, V cmp.Ordered](m map[K]V, rnd *rand.Rand) (compare.Func[V], error) {
	if err := assert.Present("map", m); err != nil {
		return nil, err
	}

	values := distinctValues(m)

	swap := func(i, j int) { values[i], values[j] = values[j], values[i] }
	if rnd != nil {
		rnd.Shuffle(len(values), swap)
	} else {
		rand.Shuffle(len(values), swap)
	}

	return FromOrderedList(values)
}

// SortableValue is a map value that orders itself and can be used as a map key.
type SortableValue[V any] interface {
	comparable
	sortable.Sortable[V]
}

// FromSortableMapValues is FromMapValues for values ordered by their own
// LessThan and Equals methods.
func FromSortableMapValues[K comparable, V SortableValue[V]](m map[K]V) (compare.Func[V], error) {
	if err := assert.Present("map", m); err != nil {
		return nil, err
	}

	return FromOrderedList(sortable.SortedDistinct(slices.Collect(maps.Values(m))))
}

// KeysByValue orders the keys of m by comparing their values with byValue.
// Keys missing from m sort first and tie with each other, like unranked
// values of FromOrderedList. m is read at comparison time.
func KeysByValue[K comparable, V any](m map[K]V, byValue compare.Func[V]) compare.Func[K] {
	return func(a, b K) int {
		va, okA := m[a]
		vb, okB := m[b]

		switch {
		case okA && okB:
			return byValue(va, vb)
		case okA:
			return 1
		case okB:
			return -1
		default:
			return 0
		}
	}
}

func distinctValues[K comparable, V cmp.Ordered](m map[K]V) []V {
	return slices.Compact(slices.Sorted(maps.Values(m)))
}
