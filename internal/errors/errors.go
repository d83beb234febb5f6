package errors

import (
	"errors"
	"fmt"
)

// Failure kinds returned by the core. Wrap them with the constructors below and
// test with errors.Is.
var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidState    = errors.New("invalid state")
	ErrUnauthenticated = errors.New("unauthenticated")
)

// Category is the user-facing bucket an error falls into.
type Category string

const (
	CategoryFixInput     Category = "FIX_INPUT"
	CategoryNotFound     Category = "NOT_FOUND"
	CategoryTryAgain     Category = "TRY_AGAIN"
	CategoryNotAllowed   Category = "NOT_ALLOWED"
	CategoryInvalidState Category = "INVALID_STATE"
	CategorySignIn       Category = "SIGN_IN"
	CategoryInternal     Category = "INTERNAL"
)

func Validation(format string, args ...any) error { return wrap(ErrValidation, format, args...) }
func NotFound(format string, args ...any) error   { return wrap(ErrNotFound, format, args...) }
func Conflict(format string, args ...any) error   { return wrap(ErrConflict, format, args...) }
func Forbidden(format string, args ...any) error  { return wrap(ErrForbidden, format, args...) }
func InvalidState(format string, args ...any) error {
	return wrap(ErrInvalidState, format, args...)
}
func Unauthenticated(format string, args ...any) error {
	return wrap(ErrUnauthenticated, format, args...)
}

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// CategoryOf classifies err for display.
func CategoryOf(err error) Category {
	switch {
	case errors.Is(err, ErrValidation):
		return CategoryFixInput
	case errors.Is(err, ErrNotFound):
		return CategoryNotFound
	case errors.Is(err, ErrConflict):
		return CategoryTryAgain
	case errors.Is(err, ErrForbidden):
		return CategoryNotAllowed
	case errors.Is(err, ErrInvalidState):
		return CategoryInvalidState
	case errors.Is(err, ErrUnauthenticated):
		return CategorySignIn
	default:
		return CategoryInternal
	}
}
