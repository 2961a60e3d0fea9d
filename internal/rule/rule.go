// Package rule composes tree transformations into ordered pipelines.
//
// A Rule maps one staged tree to a new staged tree or fails. Rules never
// touch real storage; committing a tree is the storage adapter's job.
package rule

import (
	"fmt"

	"github.com/skelgen/cli/internal/tree"
)

// Rule transforms a staged tree into a new staged tree.
type Rule func(*tree.Tree) (*tree.Tree, error)

// MergeConflictError indicates a create operation collided with a file
// that already exists in the merge target. Creation conflicts are hard
// failures; existing files are never silently overwritten.
type MergeConflictError struct {
	Path string
}

func (e *MergeConflictError) Error() string {
	return fmt.Sprintf("merge conflict: %s already exists in target", e.Path)
}

// Chain folds the given rules into a single Rule. Each rule's output tree
// is the next rule's input; the first failing rule aborts the chain and
// its error is returned with no partial tree exposed.
func Chain(rules ...Rule) Rule {
	return func(t *tree.Tree) (*tree.Tree, error) {
		current := t
		for _, r := range rules {
			next, err := r(current)
			if err != nil {
				return nil, err
			}
			current = next
		}
		return current, nil
	}
}

// MergeInto returns a Rule that replays the input tree's diff onto a
// branch of target. The target itself is never mutated; on success the
// merged branch is returned.
func MergeInto(target *tree.Tree) Rule {
	return func(src *tree.Tree) (*tree.Tree, error) {
		merged := target.Branch()
		for _, op := range src.Diff() {
			switch op.Kind {
			case tree.OpCreate:
				if merged.Exists(op.Path) {
					return nil, &MergeConflictError{Path: op.Path}
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

// Noop returns its input tree unchanged.
func Noop(t *tree.Tree) (*tree.Tree, error) {
	return t, nil
}
