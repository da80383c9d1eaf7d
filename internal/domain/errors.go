package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity or input fails validation.
	// This is usually wrapped in a ValidationError naming the offending field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or empty.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidCategory is returned when an answer category is not recognized.
	ErrInvalidCategory = errors.New("invalid answer category")

	// ErrInvalidRole is returned when a user role is not recognized.
	ErrInvalidRole = errors.New("invalid user role")

	// ErrInvalidSection is returned when a section number is below 1.
	ErrInvalidSection = errors.New("section must be at least 1")

	// ErrInvalidMonth is returned when a month number is outside 1-12.
	ErrInvalidMonth = errors.New("month must be between 1 and 12")

	// ErrEmptyContent is returned when required text is empty.
	ErrEmptyContent = errors.New("content cannot be empty")
)

// ValidationError describes a single invalid field. It wraps ErrValidation so
// callers can match it with errors.Is regardless of the field involved.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Err != nil && e.Err != ErrValidation {
		return fmt.Sprintf("invalid %s: %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Unwrap returns both ErrValidation and the specific cause.
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil || e.Err == ErrValidation {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Err}
}

// NewValidationError creates a ValidationError for the given field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: message, Err: err}
}
