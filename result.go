package cotask

import "errors"

// errNilError is stored when a computation reports failure without an error value.
var errNilError = errors.New("cotask: completed with nil error")

// Result is the outcome of a computation: a value or an error, never both.
// A Result is immutable once constructed.
type Result[T any] struct {
	value T
	err   error
}

// ValueOf returns a successful Result carrying v.
func ValueOf[T any](v T) Result[T] {
	return Result[T]{value: v}
}

// ErrorOf returns a failed Result carrying err.
// A nil err is replaced with a sentinel so the error leg is never empty.
func ErrorOf[T any](err error) Result[T] {
	if err == nil {
		err = errNilError
	}
	return Result[T]{err: err}
}

// Get returns the value on the success leg, or the stored error.
func (r Result[T]) Get() (T, error) {
	if r.err != nil {
		var zero T
		return zero, r.err
	}
	return r.value, nil
}

// Err returns the error leg, nil on success.
func (r Result[T]) Err() error {
	return r.err
}

// IsError reports whether r is on the error leg.
func (r Result[T]) IsError() bool {
	return r.err != nil
}
