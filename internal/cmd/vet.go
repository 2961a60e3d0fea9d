package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	oerrors "github.com/skelgen/cli/internal/errors"
	"github.com/skelgen/cli/internal/output"
	"github.com/skelgen/cli/internal/source"
	"github.com/skelgen/cli/internal/template"
)

// NewVetCmd creates the vet command.
func NewVetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vet <set>",
		Short: "Validate a template set",
		Long: `Validate a template set without generating anything.

Checks that the manifest parses, the options schema compiles, the gate
predicates compile, and every template entry renders against
placeholder options, so unresolved references surface before the set is
ever used.`,
		Args: cobra.ExactArgs(1),
		RunE: runVet,
	}
}

func runVet(cmd *cobra.Command, args []string) error {
	setName := args[0]

	// Resolve already exercises manifest parse, schema compile, gate
	// compile, and the engine version check.
	set, err := source.Resolve(setName, searchDirs())
	if err != nil {
		if errors.Is(err, oerrors.ErrNotFound) {
			return exitErr(oerrors.NewNotFoundError(
				err.Error(), setName,
				"Run `skel list` to see the available template sets.",
			))
		}
		return exitErr(err)
	}

	ctx := template.NewContext(placeholderOptions(set))

	var problems []string
	for _, entry := range set.Entries {
		if _, err := template.Render(entry, ctx); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if len(problems) > 0 {
		for _, p := range problems {
			output.Error(p)
		}
		return exitErr(&oerrors.ExitError{
			Code:    oerrors.ExitValidationError,
			Err:     fmt.Errorf("template set %s: %d template(s) failed to render", set.Manifest.Name, len(problems)),
			Printed: false,
		})
	}

	output.Println(output.FormatCheckmark(fmt.Sprintf(
		"%s is valid (%d templates, %d options)",
		output.StyleNoun.Render(set.Manifest.Name), len(set.Entries), len(set.Schema.Fields()))))

	return nil
}

// placeholderOptions synthesizes an option record that exercises every
// declared field: defaults where present, type-shaped placeholders
// otherwise. Booleans are forced true so both conditional branches and
// gated templates are reachable during the dry render.
func placeholderOptions(set *source.Set) map[string]any {
	opts := map[string]any{}
	for _, name := range set.Schema.Fields() {
		field, _ := set.Schema.Field(name)
		switch field.Type {
		case "boolean":
			opts[name] = true
		case "number", "integer":
			if field.Default != nil {
				opts[name] = field.Default
			} else {
				opts[name] = 1
			}
		default:
			if field.Default != nil {
				opts[name] = field.Default
			} else {
				opts[name] = "placeholder"
			}
		}
	}
	return opts
}
