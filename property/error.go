package property

import (
	"fmt"

	"github.com/astrapi69/jobj-compare/errors"
)

// Error describes a failure to read a property. Kind is one of
// errors.ErrNoSuchProperty, errors.ErrIllegalAccess, errors.ErrInvocation or
// errors.ErrWrongType; Cause is the getter's own error, if any. Both are
// reachable through errors.Is and errors.As.
type Error struct {
	Type     string
	Property string
	Kind     error
	Cause    error
}

func newError(obj any, name string, kind, cause error) *Error {
	return &Error{Type: TypeName(obj), Property: name, Kind: kind, Cause: cause}
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%v: property %q on %s", e.Kind, e.Property, e.Type)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	return msg
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Cause}
}

// NoSuchProperty returns an *Error of kind errors.ErrNoSuchProperty.
func NoSuchProperty(obj any, name string) error {
	return newError(obj, name, errors.ErrNoSuchProperty, nil)
}

// IllegalAccess returns an *Error of kind errors.ErrIllegalAccess.
func IllegalAccess(obj any, name string) error {
	return newError(obj, name, errors.ErrIllegalAccess, nil)
}

// Invocation returns an *Error of kind errors.ErrInvocation wrapping cause.
func Invocation(obj any, name string, cause error) error {
	return newError(obj, name, errors.ErrInvocation, cause)
}
