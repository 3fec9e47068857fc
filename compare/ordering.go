package compare

import (
	"fmt"
	"hash"
	"reflect"

	"github.com/astrapi69/jobj-compare/errors"
	"github.com/astrapi69/jobj-compare/hashing"
)

// Ordering is an untyped three-way comparison. Comparators use it as their
// fallback when the compared values are only known at run time.
//
// Implementations should be comparable (or implement Comparable[Ordering]) so
// that comparators built on them can be compared with Equal, and should
// implement hashing.Hashable so that they contribute to comparator hash codes.
type Ordering interface {
	Compare(a, b any) int
}

// OrderingOf adapts a function to an Ordering. The null rule is not applied;
// fn sees absent values as they are. Orderings returned by OrderingOf are only
// equal to themselves; name is used for hashing and display.
func OrderingOf(name string, fn Func[any]) Ordering {
	return &funcOrdering{name: name, fn: fn}
}

// Typed adapts a typed comparison to an Ordering. Absent values follow the
// null rule; present values that are not of type T violate the ordering
// contract and cause a panic wrapping errors.ErrNotOrderable.
//
//	byLength := compare.Typed("length", func(a, b string) int {
//	    return cmp.Compare(len(a), len(b))
//	})
func Typed[T any](name string, fn Func[T]) Ordering {
	return &funcOrdering{
		name: name,
		fn: func(a, b any) int {
			if result, decided := NullCheck(a, b); decided {
				return result
			}

			ta, okA := a.(T)
			tb, okB := b.(T)

			if !okA || !okB {
				panic(fmt.Errorf("%w: %s expects %s, got %T and %T",
					errors.ErrNotOrderable, name, reflect.TypeFor[T](), a, b))
			}

			return fn(ta, tb)
		},
	}
}

// Try applies o to a and b and reports a contract violation as an error
// wrapping errors.ErrNotOrderable instead of panicking. Other panics propagate.
func Try(o Ordering, a, b any) (result int, err error) {
	if n, ok := o.(*naturalOrdering); ok {
		return n.try(a, b)
	}

	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}

		if violation, ok := recovered.(error); ok && errors.Is(violation, errors.ErrNotOrderable) {
			result, err = 0, violation

			return
		}

		panic(recovered)
	}()

	return o.Compare(a, b), nil
}

// Equal reports whether two orderings are equal. An ordering implementing
// Comparable[Ordering] decides for itself; otherwise orderings of comparable
// dynamic types are compared with ==, and anything else is unequal.
func Equal(a, b Ordering) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if c, ok := a.(Comparable[Ordering]); ok {
		return c.Equals(b)
	}

	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}

	return a == b
}

type funcOrdering struct {
	name string
	fn   Func[any]
}

var (
	_ Ordering         = (*funcOrdering)(nil)
	_ hashing.Hashable = (*funcOrdering)(nil)
)

func (f *funcOrdering) Compare(a, b any) int {
	return f.fn(a, b)
}

func (f *funcOrdering) UpdateHash(h hash.Hash) error {
	_, err := h.Write([]byte("func:" + f.name))

	return err
}

func (f *funcOrdering) String() string {
	return f.name
}
