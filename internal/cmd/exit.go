package cmd

import (
	"errors"

	oerrors "github.com/skelgen/cli/internal/errors"
	"github.com/skelgen/cli/internal/names"
	"github.com/skelgen/cli/internal/options"
	"github.com/skelgen/cli/internal/rule"
	"github.com/skelgen/cli/internal/template"
	"github.com/skelgen/cli/internal/tree"
)

// exitCode maps engine errors to CLI exit codes.
func exitCode(err error) int {
	var (
		invalidOpts *options.InvalidOptionsError
		invalidID   *names.InvalidIdentifierError
		unresolved  *template.UnresolvedReferenceError
		exists      *tree.PathAlreadyExistsError
		notFound    *tree.PathNotFoundError
		conflict    *rule.MergeConflictError
	)

	switch {
	case errors.As(err, &invalidOpts),
		errors.As(err, &invalidID),
		errors.As(err, &unresolved):
		return oerrors.ExitValidationError
	case errors.As(err, &exists),
		errors.As(err, &conflict):
		return oerrors.ExitConflict
	case errors.As(err, &notFound):
		return oerrors.ExitNotFound
	default:
		return oerrors.ExitCodeFromError(err)
	}
}

// exitErr wraps an error with its mapped exit code for main to honor.
func exitErr(err error) error {
	if err == nil {
		return nil
	}
	var exit *oerrors.ExitError
	if errors.As(err, &exit) {
		return err
	}
	return &oerrors.ExitError{Code: exitCode(err), Err: err}
}
