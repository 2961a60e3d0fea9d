package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	oerrors "github.com/skelgen/cli/internal/errors"
	"github.com/skelgen/cli/internal/generate"
	"github.com/skelgen/cli/internal/options"
	"github.com/skelgen/cli/internal/output"
	"github.com/skelgen/cli/internal/rule"
	"github.com/skelgen/cli/internal/source"
	"github.com/skelgen/cli/internal/storage"
)

var (
	generateSetFlags []string
	generateDest     string
	generateDryRun   bool
	generateForce    bool
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [set] [name]",
		Short: "Generate files from a template set",
		Long: `Generate files from a template set into the destination directory.

The set is resolved in order: an existing directory at the given path,
the configured template directories, then the built-in sets. When no set
is named, the configured default set is used.

Options are passed as --set key=value pairs; a second positional
argument is shorthand for --set name=<value>.

Examples:
  # Generate a component named SideMenu with the built-in set
  skel generate component SideMenu

  # Use the configured default set
  skel generate --set name=SideMenu

  # Pass options explicitly
  skel generate component --set name=SideMenu --set generateService=true

  # Preview the pending changes without writing anything
  skel generate component SideMenu --dry-run`,
		Args: cobra.MaximumNArgs(2),
		RunE: runGenerate,
	}

	cmd.Flags().StringArrayVar(&generateSetFlags, "set", nil, "Set a template option (key=value, repeatable)")
	cmd.Flags().StringVarP(&generateDest, "dest", "d", ".", "Destination directory")
	cmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Print the pending changes without writing them")
	cmd.Flags().BoolVar(&generateForce, "force", false, "Overwrite existing files instead of failing")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	setName := resolveSetName(args)

	opts, err := parseSetFlags(generateSetFlags)
	if err != nil {
		return exitErr(err)
	}
	if len(args) == 2 {
		if _, dup := opts["name"]; dup {
			return exitErr(oerrors.NewValidationError(
				"name given both as argument and --set name=...",
				"", "name", "Pass the name once.",
			))
		}
		opts["name"] = args[1]
	}

	set, err := source.Resolve(setName, searchDirs())
	if err != nil {
		if errors.Is(err, oerrors.ErrNotFound) {
			return exitErr(oerrors.NewNotFoundError(
				err.Error(), setName,
				"Run `skel list` to see the available template sets.",
			))
		}
		// a found set that fails to load (bad manifest, minEngine gap)
		// keeps its own error taxonomy
		return exitErr(err)
	}

	destFS := osfs.New(generateDest)
	target, err := storage.ReadBaseline(destFS)
	if err != nil {
		return exitErr(err)
	}

	result, err := generate.Execute(generate.Run{
		Set:     set,
		Options: opts,
		Force:   generateForce,
	}, target)
	if err != nil {
		return exitErr(conflictHint(err))
	}

	diff := result.Tree.Diff()
	if len(diff) == 0 {
		output.Println("Nothing to generate.")
		return nil
	}

	files := make(map[string]string, len(diff))
	for _, op := range diff {
		kind := op.Kind.String()
		files[op.Path] = output.OpStyle(kind).Render(kind)
	}

	if generateDryRun {
		output.Println(fmt.Sprintf("Would apply %d change(s) in %s\n", len(diff), generateDest))
		output.Print(output.RenderFileTree(generateDest, files))
		return nil
	}

	err = output.RunWithSpinner("Writing files...", func() error {
		return storage.Commit(destFS, diff)
	})
	if err != nil {
		return exitErr(fmt.Errorf("committing changes: %w", err))
	}

	output.Println(output.FormatCheckmark(fmt.Sprintf(
		"Generated %s (%d files)\n", output.StyleNoun.Render(result.SetName), len(diff))))
	output.Print(output.RenderFileTree(generateDest, files))

	return nil
}

// resolveSetName picks the template set for a run: the first positional
// argument when given, else the configured default set, else the
// built-in default.
func resolveSetName(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	if name := GetConfig().DefaultSet; name != "" {
		return name
	}
	return source.DefaultSetName
}

// conflictHint decorates merge collisions with the --force remedy before
// they reach the terminal.
func conflictHint(err error) error {
	var conflict *rule.MergeConflictError
	if errors.As(err, &conflict) {
		return oerrors.NewConflictError(
			conflict.Error(), conflict.Path,
			"Re-run with --force to overwrite existing files.",
		)
	}
	return err
}

// parseSetFlags converts --set key=value pairs into an option record.
// Values parse as bool, then number, then fall back to string.
func parseSetFlags(pairs []string) (options.Options, error) {
	opts := options.Options{}
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, oerrors.NewValidationError(
				fmt.Sprintf("malformed --set value %q", pair),
				"", "", "Use --set key=value.",
			)
		}
		opts[key] = coerce(value)
	}
	return opts, nil
}

// coerce guesses the value type of a flag literal.
func coerce(value string) any {
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	if i, err := strconv.ParseInt(value, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}
	return value
}
