// Package common defines shared constants and sentinel errors used across
// the service layers. Callers should use errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Input errors (400-class).
	ErrValidation  = errors.New("validation error")
	ErrUnknownStep = errors.New("unknown onboarding step")

	// Uniqueness violations (409-class). Usually wrapped in a
	// DuplicateFieldError naming the colliding column.
	ErrDuplicateField = errors.New("duplicate field")

	// Auth errors (401-class). The three specific kinds all match
	// ErrAuthenticationFailed via errors.Is.
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrMissingCredential    = fmt.Errorf("%w: missing credential", ErrAuthenticationFailed)
	ErrMalformedToken       = fmt.Errorf("%w: malformed token", ErrAuthenticationFailed)
	ErrInvalidCredential    = fmt.Errorf("%w: invalid credential", ErrAuthenticationFailed)

	// Store-level failures (500-class). Internal detail is logged, never
	// exposed to the caller.
	ErrStorageFailure = errors.New("storage failure")
	ErrTimeout        = errors.New("store timeout")

	ErrInternal = errors.New("internal error")
)

// DuplicateFieldError reports which unique column a write collided on.
// It matches ErrDuplicateField via errors.Is.
type DuplicateFieldError struct {
	Field string
}

func (e *DuplicateFieldError) Error() string {
	return fmt.Sprintf("duplicate field: %s", e.Field)
}

func (e *DuplicateFieldError) Is(target error) bool {
	return target == ErrDuplicateField
}

// ValidationError reports a missing or malformed input field.
// It matches ErrValidation via errors.Is.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError with a formatted message.
func NewValidationError(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
