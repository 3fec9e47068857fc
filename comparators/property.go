package comparators

import (
	"fmt"
	"hash"

	"github.com/astrapi69/jobj-compare/compare"
	"github.com/astrapi69/jobj-compare/hashing"
	"github.com/astrapi69/jobj-compare/optional"
	"github.com/astrapi69/jobj-compare/property"
)

// PropertyComparator orders values of type T by one of their properties, or
// by the whole values when it has no property. The values are handed to a
// fallback compare.Ordering, natural ordering by default.
//
// A PropertyComparator is immutable and safe for concurrent use.
type PropertyComparator[T any] struct {
	property optional.Value[string]
	ordering compare.Ordering
	accessor property.Accessor
	hash     hashing.HashFunc
}

type settings struct {
	ordering compare.Ordering
	accessor property.Accessor
	hash     hashing.HashFunc
}

// Option configures a PropertyComparator or a Bean.
type Option func(*settings)

// WithOrdering sets the fallback ordering. A nil ordering keeps the default,
// compare.NaturalOrder.
func WithOrdering(ordering compare.Ordering) Option {
	return func(s *settings) {
		if ordering != nil {
			s.ordering = ordering
		}
	}
}

// WithAccessor sets how properties are read. A nil accessor keeps the default,
// property.Default.
func WithAccessor(accessor property.Accessor) Option {
	return func(s *settings) {
		if accessor != nil {
			s.accessor = accessor
		}
	}
}

// WithHashFunc sets the hash function behind Digest. A nil function keeps the
// default, hashing.XXH3.
func WithHashFunc(fn hashing.HashFunc) Option {
	return func(s *settings) {
		if fn != nil {
			s.hash = fn
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{ordering: compare.NaturalOrder, accessor: property.Default, hash: hashing.XXH3}

	for _, opt := range opts {
		opt(&s)
	}

	return s
}

// ByProperty returns a comparator ordering values by the named property.
// An empty name compares whole values, like ByObject.
func ByProperty[T any](name string, opts ...Option) *PropertyComparator[T] {
	return newPropertyComparator[T](optional.NonZero(name), opts)
}

// ByObject returns a comparator applying the fallback ordering to whole values.
func ByObject[T any](opts ...Option) *PropertyComparator[T] {
	return newPropertyComparator[T](optional.None[string](), opts)
}

func newPropertyComparator[T any](name optional.Value[string], opts []Option) *PropertyComparator[T] {
	s := newSettings(opts)

	return &PropertyComparator[T]{property: name, ordering: s.ordering, accessor: s.accessor, hash: s.hash}
}

// Compare is TryCompare for sorting: a property that cannot be read is a
// programming error, so Compare panics with the *property.Error.
func (c *PropertyComparator[T]) Compare(a, b T) int {
	result, err := c.TryCompare(a, b)
	if err != nil {
		panic(err)
	}

	return result
}

// TryCompare reads the property from both values and applies the fallback
// ordering to the results. Without a property the fallback sees a and b
// themselves. Errors from the accessor are returned unchanged and leave the
// comparator usable.
func (c *PropertyComparator[T]) TryCompare(a, b T) (int, error) {
	va, vb, err := c.Values(a, b)
	if err != nil {
		return 0, err
	}

	return c.CompareValues(va, vb), nil
}

// Values returns what the fallback ordering would compare for a and b. When
// either value is absent there is nothing to read and both are returned as is,
// so the null rule applies to the objects themselves.
func (c *PropertyComparator[T]) Values(a, b T) (any, any, error) {
	name, ok := c.property.Get()
	if !ok || compare.IsAbsent(a) || compare.IsAbsent(b) {
		return a, b, nil
	}

	va, err := c.accessor.Get(a, name)
	if err != nil {
		return nil, nil, err
	}

	vb, err := c.accessor.Get(b, name)
	if err != nil {
		return nil, nil, err
	}

	return va, vb, nil
}

// CompareValues applies the fallback ordering to two property values.
func (c *PropertyComparator[T]) CompareValues(va, vb any) int {
	return c.ordering.Compare(va, vb)
}

// Property returns the compared property, or None when whole values are compared.
func (c *PropertyComparator[T]) Property() optional.Value[string] {
	return c.property
}

// Ordering returns the fallback ordering.
func (c *PropertyComparator[T]) Ordering() compare.Ordering { //nolint:ireturn
	return c.ordering
}

// Accessor returns the property accessor.
func (c *PropertyComparator[T]) Accessor() property.Accessor { //nolint:ireturn
	return c.accessor
}

// Func returns Compare as a compare.Func, ready for slices.SortFunc.
func (c *PropertyComparator[T]) Func() compare.Func[T] {
	return c.Compare
}

// Equals reports whether two comparators have equal fallback orderings (see
// compare.Equal) and the same property, or both have none. Accessors are not
// considered.
func (c *PropertyComparator[T]) Equals(other *PropertyComparator[T]) bool {
	if c == nil || other == nil {
		return c == other
	}

	return compare.Equal(c.ordering, other.ordering) &&
		c.property.Equals(other.property, func(a, b string) bool { return a == b })
}

// UpdateHash implements hashing.Hashable. Only the fallback ordering
// contributes, so comparators that differ only in their property collide;
// that is consistent with Equals, which they still fail.
func (c *PropertyComparator[T]) UpdateHash(h hash.Hash) error {
	if hashable, ok := c.ordering.(hashing.Hashable); ok {
		return hashable.UpdateHash(h)
	}

	return hashing.HashableString(fmt.Sprintf("%T", c.ordering)).UpdateHash(h)
}

// HashCode returns the XXH3 hash of UpdateHash.
func (c *PropertyComparator[T]) HashCode() (uint64, error) {
	return hashing.Sum64(c)
}

// Digest returns UpdateHash through the comparator's hash function (see
// WithHashFunc) as a hex string.
func (c *PropertyComparator[T]) Digest() (string, error) {
	return c.hash(c)
}

func (c *PropertyComparator[T]) String() string {
	return fmt.Sprintf("PropertyComparator(%s, %v)", c.property.GetOrElse("*"), c.ordering)
}

var (
	_ compare.Comparable[*PropertyComparator[any]] = (*PropertyComparator[any])(nil)
	_ hashing.Hashable                             = (*PropertyComparator[any])(nil)
)
