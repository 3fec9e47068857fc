package comparators

import (
	"github.com/astrapi69/jobj-compare/compare"
	"github.com/astrapi69/jobj-compare/hashing"
	"github.com/astrapi69/jobj-compare/optional"
	"github.com/astrapi69/jobj-compare/property"
	"go.uber.org/atomic"
)

// Bean is a PropertyComparator whose property can be changed after
// construction. Changing it is race free, but a comparison running
// concurrently with SetProperty may use either name, and a sort whose
// comparator changes midway is not ordered by anything.
//
// Deprecated: build a new PropertyComparator per property instead.
type Bean[T any] struct {
	property *atomic.String
	ordering compare.Ordering
	accessor property.Accessor
	hash     hashing.HashFunc
}

// NewBean returns a Bean comparing by the named property; an empty name
// compares whole values.
//
// Deprecated: use ByProperty.
func NewBean[T any](name string, opts ...Option) *Bean[T] {
	s := newSettings(opts)

	return &Bean[T]{property: atomic.NewString(name), ordering: s.ordering, accessor: s.accessor, hash: s.hash}
}

// SetProperty replaces the compared property. An empty name compares whole values.
func (b *Bean[T]) SetProperty(name string) {
	b.property.Store(name)
}

// Property returns the compared property, or None when whole values are compared.
func (b *Bean[T]) Property() optional.Value[string] {
	return optional.NonZero(b.property.Load())
}

// Snapshot returns an immutable comparator for the current property.
func (b *Bean[T]) Snapshot() *PropertyComparator[T] {
	return &PropertyComparator[T]{property: b.Property(), ordering: b.ordering, accessor: b.accessor, hash: b.hash}
}

// Compare behaves like PropertyComparator.Compare for the current property.
func (b *Bean[T]) Compare(x, y T) int {
	return b.Snapshot().Compare(x, y)
}

// TryCompare behaves like PropertyComparator.TryCompare for the current property.
func (b *Bean[T]) TryCompare(x, y T) (int, error) {
	return b.Snapshot().TryCompare(x, y)
}
