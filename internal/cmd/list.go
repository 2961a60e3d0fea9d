package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/skelgen/cli/internal/output"
	"github.com/skelgen/cli/internal/source"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available template sets",
		Long: `List the template sets discovered in the configured template
directories, the user templates directory, and built in.`,
		Args: cobra.NoArgs,
		RunE: runList,
	}
}

// listedSet is one row of list output.
type listedSet struct {
	name        string
	version     string
	description string
	origin      string
}

func runList(cmd *cobra.Command, args []string) error {
	var rows []listedSet
	seen := map[string]bool{}

	// Directory sets shadow embedded sets of the same name, matching the
	// resolution order of generate.
	for _, dir := range searchDirs() {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			setDir := filepath.Join(dir, entry.Name())
			if _, err := os.Stat(filepath.Join(setDir, source.ManifestFile)); err != nil {
				continue
			}
			set, err := source.LoadDir(setDir)
			if err != nil {
				output.Warn("skipping template set", "dir", setDir, "error", err)
				continue
			}
			if seen[set.Manifest.Name] {
				continue
			}
			seen[set.Manifest.Name] = true
			rows = append(rows, listedSet{
				name:        set.Manifest.Name,
				version:     set.Manifest.Version,
				description: set.Manifest.Description,
				origin:      dir,
			})
		}
	}

	embedded, err := source.EmbeddedSets()
	if err != nil {
		return exitErr(err)
	}
	for _, set := range embedded {
		if seen[set.Manifest.Name] {
			continue
		}
		seen[set.Manifest.Name] = true
		rows = append(rows, listedSet{
			name:        set.Manifest.Name,
			version:     set.Manifest.Version,
			description: set.Manifest.Description,
			origin:      "built-in",
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].name < rows[j].name })

	if len(rows) == 0 {
		output.Println("No template sets found.")
		return nil
	}

	for _, row := range rows {
		line := output.StyleNoun.Render(row.name)
		if row.version != "" {
			line += " " + row.version
		}
		line += output.StyleMuted.Render(fmt.Sprintf("  (%s)", row.origin))
		output.Println(line)
		if row.description != "" {
			output.Println("  " + row.description)
		}
	}

	return nil
}
