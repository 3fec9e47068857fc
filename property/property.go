// Package property reads named properties from arbitrary values.
//
// An Accessor lists the readable property names of a value and reads a single
// property by name. Reflector discovers properties through reflection (struct
// fields, getter methods and string-keyed map entries); Table uses getters
// registered explicitly at compile time.
package property

import (
	"maps"
	"path"
	"reflect"
	"slices"
)

// TypeProperty is the reserved synthetic property naming the runtime type of
// a value. It is never listed by Accessor.Names, but Reflector.Get resolves it.
const TypeProperty = "class"

// Accessor reads named properties from values.
type Accessor interface {
	// Names lists the readable property names of obj, excluding TypeProperty.
	Names(obj any) ([]string, error)

	// Get reads the named property from obj. Failures are *Error values.
	Get(obj any, name string) (any, error)
}

// Names is a set of property names.
type Names map[string]struct{}

// NewNames returns a set holding the given names.
func NewNames(names ...string) Names {
	set := make(Names, len(names))
	for _, name := range names {
		set.Add(name)
	}

	return set
}

// Add inserts a name into the set.
func (n Names) Add(name string) {
	n[name] = struct{}{}
}

// Contains reports whether the name is in the set.
func (n Names) Contains(name string) bool {
	_, ok := n[name]

	return ok
}

// Sorted returns the names in ascending order, so iteration is deterministic.
func (n Names) Sorted() []string {
	return slices.Sorted(maps.Keys(n))
}

// TypeName returns the symbolic name of the value's type with pointers
// removed, e.g. "structural.Person". Unnamed types use their literal form.
func TypeName(obj any) string {
	t := reflect.TypeOf(obj)
	if t == nil {
		return "<nil>"
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Name() == "" || t.PkgPath() == "" {
		return t.String()
	}

	return path.Base(t.PkgPath()) + "." + t.Name()
}
