// Package errors provides sentinel errors and structured error types
// for the skel CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates template-set option validation failed.
	ErrValidation = errors.New("validation error")

	// ErrConflict indicates a staging or merge collision on a path.
	ErrConflict = errors.New("conflict")

	// ErrNotFound indicates a template set, path, or file was not found.
	ErrNotFound = errors.New("not found")

	// ErrVersion indicates the engine does not satisfy a template set's
	// minimum engine constraint.
	ErrVersion = errors.New("version mismatch")
)

// DetailError captures structured error information for terminal display.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the template path or file path involved (optional).
	Location string

	// Field is the option name for validation errors (optional).
	Field string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	if e.Field != "" {
		b.WriteString("  Field: ")
		b.WriteString(e.Field)
		b.WriteString("\n")
	}
	for k, v := range e.Context {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(v)
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, field, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Field:    field,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewConflictError creates a conflict error with details.
func NewConflictError(message, location, hint string) error {
	return &DetailError{
		Type:     "conflict",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrConflict,
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// NewVersionError creates a version mismatch error with details.
func NewVersionError(message string, context map[string]string, hint string) error {
	return &DetailError{
		Type:    "version mismatch",
		Message: message,
		Context: context,
		Hint:    hint,
		Cause:   ErrVersion,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
