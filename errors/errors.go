// Package errors defines the error taxonomy shared by the comparison packages.
//
// Precondition violations wrap ErrInvalidArgument. Property resolution failures
// wrap one of ErrNoSuchProperty, ErrIllegalAccess or ErrInvocation. Values that
// no ordering can handle wrap ErrNotOrderable and are raised as panics, since
// they indicate a programming error rather than a recoverable condition.
package errors

import "errors"

var (
	// ErrInvalidArgument is returned when a required value is absent or
	// two values that must share a type do not.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrWrongType is returned when a value is not of the type an accessor
	// or assertion expects.
	ErrWrongType = errors.New("wrong type")

	// ErrNoSuchProperty is returned when the named property does not exist on a type.
	ErrNoSuchProperty = errors.New("no such property")

	// ErrIllegalAccess is returned when a property exists but is not readable,
	// e.g. an unexported struct field or a field excluded by its tag.
	ErrIllegalAccess = errors.New("illegal access")

	// ErrInvocation is returned when a property getter fails. The getter's own
	// error (or recovered panic) is wrapped alongside it.
	ErrInvocation = errors.New("invocation failure")

	// ErrNotOrderable is the contract violation raised when two values cannot be
	// ordered by any available ordering.
	ErrNotOrderable = errors.New("values are not orderable")

	// ErrDepthExceeded is returned when a deep structural comparison nests past
	// the configured maximum depth (usually a reference cycle).
	ErrDepthExceeded = errors.New("maximum comparison depth exceeded")
)

// Is reports whether any error in err's tree matches target. It is errors.Is
// re-exported so callers need a single errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target. It is errors.As
// re-exported so callers need a single errors import.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Collection is a thread-unsafe utility for accumulating multiple errors.
// It provides methods to add errors, check for errors, and retrieve them as a single combined error.
type Collection struct {
	errors []error
}

// Add appends an error to the collection. Nil errors are automatically ignored.
func (c *Collection) Add(err error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// HasError returns true if the collection contains at least one error.
func (c *Collection) HasError() bool {
	return len(c.errors) > 0
}

// Len returns the number of collected errors.
func (c *Collection) Len() int {
	return len(c.errors)
}

// GetError returns the collected errors as a single error.
// Returns nil if the collection is empty, the single error if there's only one,
// or a joined error (using errors.Join) if there are multiple errors.
func (c *Collection) GetError() error {
	switch len(c.errors) {
	case 0:
		return nil
	case 1:
		return c.errors[0]
	default:
		return errors.Join(c.errors...)
	}
}
