package ufunc

import (
	"errors"
	"fmt"
)

// Common errors.
var (
	ErrInvalidFunction = errors.New("object does not describe an elementwise function")
	ErrAlreadyBound    = errors.New("operator is already bound to a function")
	ErrNotBound        = errors.New("operator is not bound to a function")
	ErrArgCount        = errors.New("wrong number of arguments")
	ErrEvaluate        = errors.New("cannot evaluate function")

	// ErrDeferWrap is returned by an OutputWrapper that has no opinion on a
	// raw output; the slot falls back to the default return rule.
	ErrDeferWrap = errors.New("wrapper defers to default return")

	// ErrUnsupportedContext is returned by an OutputWrapper that does not
	// accept the call context form; the wrapper is retried once with a nil
	// context.
	ErrUnsupportedContext = errors.New("wrapper does not accept call context")
)

// WrapError reports a reconstruction-method failure for one output slot.
type WrapError struct {
	Index int   // output slot
	Err   error // wrapper's failure
}

// Error implements the error interface.
func (e *WrapError) Error() string {
	return fmt.Sprintf("wrapping output %d: %v", e.Index, e.Err)
}

// Unwrap returns the wrapper's failure.
func (e *WrapError) Unwrap() error {
	return e.Err
}
