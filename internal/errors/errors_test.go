package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailErrorFormat(t *testing.T) {
	err := &DetailError{
		Type:     "validation failed",
		Message:  "option name is required",
		Location: "templateset.yaml",
		Field:    "name",
		Hint:     "Pass --set name=<value>.",
		Cause:    ErrValidation,
	}

	out := err.Error()
	assert.Contains(t, out, "Error: validation failed")
	assert.Contains(t, out, "Location: templateset.yaml")
	assert.Contains(t, out, "Field: name")
	assert.Contains(t, out, "option name is required")
	assert.Contains(t, out, "Hint: Pass --set name=<value>.")
}

func TestDetailErrorUnwrap(t *testing.T) {
	assert.ErrorIs(t, NewValidationError("bad", "", "", ""), ErrValidation)
	assert.ErrorIs(t, NewConflictError("clash", "a.ts", ""), ErrConflict)
	assert.ErrorIs(t, NewNotFoundError("gone", "", ""), ErrNotFound)
	assert.ErrorIs(t, NewVersionError("too old", nil, ""), ErrVersion)
}

func TestWrap(t *testing.T) {
	err := Wrap(ErrNotFound, "template set widget")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "template set widget")
}

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "validation sentinel", err: Wrap(ErrValidation, "bad"), want: ExitValidationError},
		{name: "conflict sentinel", err: Wrap(ErrConflict, "clash"), want: ExitConflict},
		{name: "not found sentinel", err: Wrap(ErrNotFound, "gone"), want: ExitNotFound},
		{name: "version sentinel", err: Wrap(ErrVersion, "old"), want: ExitVersionMismatch},
		{name: "explicit exit error", err: &ExitError{Code: ExitConflict, Err: errors.New("x")}, want: ExitConflict},
		{name: "wrapped exit error", err: fmt.Errorf("outer: %w", &ExitError{Code: ExitNotFound, Err: errors.New("x")}), want: ExitNotFound},
		{name: "unknown", err: errors.New("boom"), want: ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitErrorUnwrap(t *testing.T) {
	inner := NewNotFoundError("gone", "", "")
	exit := NewExitError(inner, ExitNotFound)

	require.ErrorIs(t, exit, ErrNotFound)
	assert.Equal(t, inner.Error(), exit.Error())
}

func TestExitCodeName(t *testing.T) {
	assert.Equal(t, "Success", ExitCodeName(ExitSuccess))
	assert.Equal(t, "Conflict", ExitCodeName(ExitConflict))
	assert.Equal(t, "Unknown", ExitCodeName(42))
}
