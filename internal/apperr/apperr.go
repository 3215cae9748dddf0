// Package apperr defines the sentinel errors shared by every module.
// Services wrap them with a human-readable message via the constructors
// below; handlers match them with errors.Is to pick a status code.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")
	// ErrInsufficientStock marks a conditional inventory decrement that
	// affected zero rows.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrNotFound marks a referenced record or location that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStateConflict marks a status transition not permitted from the
	// record's current status.
	ErrStateConflict = errors.New("state conflict")
	// ErrForbidden marks a caller not authorized for the target record.
	ErrForbidden = errors.New("forbidden")
	// ErrUnavailable marks an underlying storage failure. It is the only
	// unexpected member of the taxonomy and propagates unchanged.
	ErrUnavailable = errors.New("store unavailable")
)

func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func InsufficientStock(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInsufficientStock, fmt.Sprintf(format, args...))
}

func NotFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func StateConflict(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrStateConflict, fmt.Sprintf(format, args...))
}

func Forbidden(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}

func Unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
