package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrValidation         = errors.New("validation error")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrExternalDependency = errors.New("external dependency error")
)

// Specific failures. Each one wraps exactly one sentinel above so callers can
// match either the precise kind or the broad class.
var (
	ErrDuplicateEmail        = fmt.Errorf("duplicate email: %w", ErrAlreadyExists)
	ErrInvalidRoleAttributes = fmt.Errorf("invalid role attributes: %w", ErrValidation)
	ErrInvalidRating         = fmt.Errorf("invalid rating: %w", ErrValidation)
	ErrTargetNotFound        = fmt.Errorf("target not found: %w", ErrNotFound)
	ErrExternalCheckTimeout  = fmt.Errorf("external check timeout: %w", ErrExternalDependency)
	ErrAlreadyCanceled       = fmt.Errorf("already canceled: %w", ErrConflict)
	ErrInvalidCredentials    = fmt.Errorf("invalid credentials: %w", ErrForbidden)
	ErrAccountDisabled       = fmt.Errorf("account disabled: %w", ErrForbidden)
)

// IsRetryable reports whether err is a transient failure of an external
// dependency. Nothing was mutated when such an error is returned.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrExternalDependency)
}

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// TransitionError reports a rejected state-machine move. It matches
// ErrInvalidTransition via errors.Is.
type TransitionError struct {
	Entity string
	From   string
	To     string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: cannot transition from %s to %s", e.Entity, e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// NewTransitionError creates a TransitionError.
func NewTransitionError(entity, from, to string) *TransitionError {
	return &TransitionError{Entity: entity, From: from, To: to}
}
