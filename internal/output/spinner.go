package output

import (
	"github.com/charmbracelet/huh/spinner"
)

// RunWithSpinner runs fn while showing a spinner with the given title.
// When stdout is not a terminal the spinner is skipped and fn runs
// directly, so piped output stays clean.
func RunWithSpinner(title string, fn func() error) error {
	if !IsTTY() {
		return fn()
	}

	var runErr error
	err := spinner.New().
		Title(title).
		Action(func() {
			runErr = fn()
		}).
		Run()
	if err != nil {
		return err
	}
	return runErr
}
