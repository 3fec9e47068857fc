package property

import (
	"fmt"
	"maps"
	"slices"

	"github.com/astrapi69/jobj-compare/assert"
	"github.com/astrapi69/jobj-compare/errors"
)

// Getter reads one property from a T.
type Getter[T any] func(T) (any, error)

// Table is an Accessor over explicitly registered getters, for callers who
// would rather not rely on reflection. Tables are immutable: With returns an
// extended copy, so a Table may be shared freely.
type Table[T any] struct {
	getters map[string]Getter[T]
}

// NewTable returns an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{getters: map[string]Getter[T]{}}
}

// With returns a copy of the table with an infallible getter registered
// under name.
func (t *Table[T]) With(name string, get func(T) any) *Table[T] {
	return t.WithGetter(name, func(obj T) (any, error) {
		return get(obj), nil
	})
}

// WithGetter returns a copy of the table with a fallible getter registered
// under name. Registering TypeProperty has no effect since it is reserved.
func (t *Table[T]) WithGetter(name string, get Getter[T]) *Table[T] {
	getters := maps.Clone(t.getters)

	if name != TypeProperty {
		getters[name] = get
	}

	return &Table[T]{getters: getters}
}

var _ Accessor = (*Table[any])(nil)

// Names implements Accessor.
func (t *Table[T]) Names(obj any) ([]string, error) {
	if _, err := assert.Type[T](obj); err != nil {
		return nil, newError(obj, "", errors.ErrWrongType, err)
	}

	return slices.Sorted(maps.Keys(t.getters)), nil
}

// Get implements Accessor. Getter errors and panics are reported as
// errors.ErrInvocation.
func (t *Table[T]) Get(obj any, name string) (result any, err error) {
	if name == TypeProperty {
		return TypeName(obj), nil
	}

	typed, err := assert.Type[T](obj)
	if err != nil {
		return nil, newError(obj, name, errors.ErrWrongType, err)
	}

	get, ok := t.getters[name]
	if !ok {
		return nil, NoSuchProperty(obj, name)
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			result, err = nil, Invocation(obj, name, fmt.Errorf("getter panicked: %v", recovered)) //nolint:err113
		}
	}()

	value, err := get(typed)
	if err != nil {
		return nil, Invocation(obj, name, err)
	}

	return value, nil
}
