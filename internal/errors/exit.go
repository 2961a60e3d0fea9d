package errors

import "errors"

// Exit codes for the skel CLI.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitValidationError indicates option or template validation failed.
	ExitValidationError = 2

	// ExitConflict indicates a staging or merge collision on a path.
	ExitConflict = 3

	// ExitNotFound indicates a template set, path, or file was not found.
	ExitNotFound = 4

	// ExitVersionMismatch indicates the engine is too old for a
	// template set's minEngine constraint.
	ExitVersionMismatch = 5
)

// ExitCodeName returns the name of the exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitSuccess:
		return "Success"
	case ExitGeneralError:
		return "General Error"
	case ExitValidationError:
		return "Validation Error"
	case ExitConflict:
		return "Conflict"
	case ExitNotFound:
		return "Not Found"
	case ExitVersionMismatch:
		return "Version Mismatch"
	default:
		return "Unknown"
	}
}

// ExitError wraps an error with an exit code. Printed marks errors the
// command layer has already written to the terminal, so main does not
// print them twice.
type ExitError struct {
	Err     error
	Code    int
	Printed bool
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case errors.Is(err, ErrValidation):
		return ExitValidationError
	case errors.Is(err, ErrConflict):
		return ExitConflict
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrVersion):
		return ExitVersionMismatch
	default:
		return ExitGeneralError
	}
}
