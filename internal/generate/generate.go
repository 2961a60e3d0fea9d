// Package generate orchestrates a full scaffolding run: option
// validation, template selection and rendering, staging, and the final
// merge into the target tree.
package generate

import (
	"path"

	"github.com/skelgen/cli/internal/options"
	"github.com/skelgen/cli/internal/output"
	"github.com/skelgen/cli/internal/rule"
	"github.com/skelgen/cli/internal/source"
	"github.com/skelgen/cli/internal/template"
	"github.com/skelgen/cli/internal/tree"
)

// Run describes one generation invocation.
type Run struct {
	// Set is the loaded template set.
	Set *source.Set

	// Options is the caller-supplied option record.
	Options options.Options

	// Dir is an extra path prefix for every generated file, joined in
	// front of the set's own sourceDir option.
	Dir string

	// Force downgrades merge conflicts to overwrites. Without it a
	// create colliding with an existing file is a hard failure.
	Force bool
}

// Result is the product of a successful run.
type Result struct {
	// Tree is the merged tree, ready to commit.
	Tree *tree.Tree

	// Ops are the operations the run contributed, in diff order.
	Ops []tree.Op

	// SetName is the name of the template set that produced the run.
	SetName string
}

// Generate runs the full pipeline against target and returns the merged
// tree. On any failure target is left untouched.
func Generate(opts options.Options, set *source.Set, target *tree.Tree) (*tree.Tree, error) {
	result, err := Execute(Run{Set: set, Options: opts}, target)
	if err != nil {
		return nil, err
	}
	return result.Tree, nil
}

// Execute runs the pipeline described by run against target.
//
// Sequence: validate options against the set's schema (every violation
// collected into one InvalidOptionsError), apply defaults, normalize
// path-typed fields, select participating templates, render path and
// body of each, stage into a fresh tree, then merge into a branch of
// target. Nothing is written to real storage here.
func Execute(run Run, target *tree.Tree) (*Result, error) {
	set := run.Set

	if err := set.Schema.Validate(run.Options); err != nil {
		return nil, err
	}
	opts := set.Schema.NormalizePaths(set.Schema.ApplyDefaults(run.Options))

	base := run.Dir
	if dir, ok := opts["sourceDir"].(string); ok {
		base = path.Join(base, dir)
	}

	selected := set.Selector.Select(set.Paths(), opts)
	output.Debug("selected templates", "set", set.Manifest.Name, "count", len(selected))

	ctx := template.NewContext(opts)

	staged := tree.New()
	for _, p := range selected {
		entry, ok := set.Entry(p)
		if !ok {
			continue
		}
		rendered, err := template.Render(entry, ctx)
		if err != nil {
			return nil, err
		}

		dest := rendered.Path
		if base != "" && base != "." {
			dest = path.Join(base, dest)
		}
		if err := staged.Create(dest, []byte(rendered.Content)); err != nil {
			return nil, err
		}
	}

	merge := rule.MergeInto(target)
	if run.Force {
		merge = mergeForced(target)
	}

	merged, err := rule.Chain(rule.Noop, merge)(staged)
	if err != nil {
		return nil, err
	}

	return &Result{
		Tree:    merged,
		Ops:     staged.Diff(),
		SetName: set.Manifest.Name,
	}, nil
}

// mergeForced is MergeInto with conflict downgrade: a create colliding
// with an existing file becomes an overwrite instead of a failure.
func mergeForced(target *tree.Tree) rule.Rule {
	return func(src *tree.Tree) (*tree.Tree, error) {
		merged := target.Branch()
		for _, op := range src.Diff() {
			switch op.Kind {
			case tree.OpCreate:
				if merged.Exists(op.Path) {
					if err := merged.Overwrite(op.Path, op.Content); err != nil {
						return nil, err
					}
					continue
				}
				if err := merged.Create(op.Path, op.Content); err != nil {
					return nil, err
				}
			case tree.OpModify:
				if err := merged.Overwrite(op.Path, op.Content); err != nil {
					return nil, err
				}
			case tree.OpDelete:
				if err := merged.Delete(op.Path); err != nil {
					return nil, err
				}
			}
		}
		return merged, nil
	}
}
