package cmd

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/skelgen/cli/internal/errors"
	"github.com/skelgen/cli/internal/names"
	"github.com/skelgen/cli/internal/options"
	"github.com/skelgen/cli/internal/rule"
	"github.com/skelgen/cli/internal/template"
	"github.com/skelgen/cli/internal/tree"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "invalid options",
			err:  &options.InvalidOptionsError{},
			want: oerrors.ExitValidationError,
		},
		{
			name: "invalid identifier",
			err:  &names.InvalidIdentifierError{Identifier: "9lives", Reason: "leading digit"},
			want: oerrors.ExitValidationError,
		},
		{
			name: "unresolved reference",
			err:  &template.UnresolvedReferenceError{Template: "a.ts", Reference: "nope"},
			want: oerrors.ExitValidationError,
		},
		{
			name: "path already exists",
			err:  &tree.PathAlreadyExistsError{Path: "a.ts"},
			want: oerrors.ExitConflict,
		},
		{
			name: "merge conflict",
			err:  &rule.MergeConflictError{Path: "a.ts"},
			want: oerrors.ExitConflict,
		},
		{
			name: "path not found",
			err:  &tree.PathNotFoundError{Path: "a.ts"},
			want: oerrors.ExitNotFound,
		},
		{
			name: "wrapped engine error",
			err:  fmt.Errorf("running pipeline: %w", &rule.MergeConflictError{Path: "a.ts"}),
			want: oerrors.ExitConflict,
		},
		{
			name: "sentinel not found",
			err:  oerrors.Wrap(oerrors.ErrNotFound, "no such set"),
			want: oerrors.ExitNotFound,
		},
		{
			name: "unknown error",
			err:  errors.New("boom"),
			want: oerrors.ExitGeneralError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestExitErrWrapsOnce(t *testing.T) {
	err := exitErr(&tree.PathNotFoundError{Path: "a.ts"})

	var exit *oerrors.ExitError
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, oerrors.ExitNotFound, exit.Code)

	// already-wrapped errors pass through unchanged
	assert.Equal(t, err, exitErr(err))
}

func TestExitErrNil(t *testing.T) {
	assert.NoError(t, exitErr(nil))
}
