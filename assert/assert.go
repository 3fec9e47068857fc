// Package assert provides the typed assertions and contract checks shared by
// the comparators and the structural engine.
package assert

import (
	"fmt"
	"reflect"

	"github.com/astrapi69/jobj-compare/compare"
	"github.com/astrapi69/jobj-compare/errors"
)

// Type asserts that the given value is of the expected type T.
// If the assertion fails, it returns an error wrapping errors.ErrWrongType.
//
//nolint:ireturn
func Type[T any](val any) (T, error) {
	of, ok := val.(T)
	if !ok {
		return of, fmt.Errorf("%w: expected type %T, but received %T", errors.ErrWrongType, of, val)
	}

	return of, nil
}

// Present returns an errors.ErrInvalidArgument error naming the argument when
// the value is absent (a nil interface or a nil pointer, map, slice, channel,
// function or interface).
func Present(name string, value any) error {
	if compare.IsAbsent(value) {
		return fmt.Errorf("%w: %s must be non-null", errors.ErrInvalidArgument, name)
	}

	return nil
}

// SameType returns an errors.ErrInvalidArgument error when a and b do not share
// a dynamic type. Absent values must be rejected beforehand with Present.
func SameType(a, b any) error {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return fmt.Errorf("%w: objects must be the same type, got %v and %v", errors.ErrInvalidArgument, ta, tb)
	}

	return nil
}

// True asserts that the given value is true.
// If the assertion fails, it panics with a message.
// The optional args can be used to provide a formatted panic message:
// - If the first arg is a string, it's used as a format string with remaining args.
// - Otherwise, all args are included in the panic message.
func True(value bool, args ...any) {
	if value {
		return
	}

	if len(args) == 0 {
		panic("assertion failed")
	}

	if format, ok := args[0].(string); ok {
		panic(fmt.Sprintf(format, args[1:]...))
	}

	panic(fmt.Sprintf("assertion failed: %v", args))
}
