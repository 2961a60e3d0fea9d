// Package storage is the real-storage boundary of the engine: it seeds
// staging trees from a filesystem and commits diffs back. The pure
// pipeline in between never performs I/O.
package storage

import (
	"fmt"
	"os"
	"path"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/skelgen/cli/internal/output"
	"github.com/skelgen/cli/internal/tree"
)

// skipDirs are well-known directories never loaded into a baseline.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
}

// ReadBaseline walks the filesystem and returns a tree seeded with every
// file's content. A missing root yields an empty baseline.
func ReadBaseline(fsys billy.Filesystem) (*tree.Tree, error) {
	files := map[string][]byte{}
	if err := readDir(fsys, ".", files); err != nil {
		return nil, fmt.Errorf("reading baseline: %w", err)
	}
	return tree.Seed(files), nil
}

func readDir(fsys billy.Filesystem, dir string, files map[string][]byte) error {
	infos, err := fsys.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) && dir == "." {
			return nil
		}
		return err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })

	for _, info := range infos {
		p := path.Join(dir, info.Name())
		if info.IsDir() {
			if skipDirs[info.Name()] {
				continue
			}
			if err := readDir(fsys, p, files); err != nil {
				return err
			}
			continue
		}
		content, err := util.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		files[p] = content
	}
	return nil
}

// undo reverses one applied operation during rollback.
type undo struct {
	path     string
	existed  bool
	previous []byte
}

// Commit applies a diff to the filesystem as a single transaction: every
// write and directory creation is journaled, and the first failure rolls
// back all earlier changes before the error is returned.
func Commit(fsys billy.Filesystem, ops []tree.Op) (err error) {
	journal := make([]undo, 0, len(ops))
	var dirJournal []string

	defer func() {
		if err == nil {
			return
		}
		for i := len(journal) - 1; i >= 0; i-- {
			u := journal[i]
			if u.existed {
				if werr := util.WriteFile(fsys, u.path, u.previous, 0o644); werr != nil {
					output.Error("rollback failed", "path", u.path, "error", werr)
				}
			} else if rerr := fsys.Remove(u.path); rerr != nil {
				output.Error("rollback failed", "path", u.path, "error", rerr)
			}
		}
		// directories this commit created, deepest first, now empty
		for i := len(dirJournal) - 1; i >= 0; i-- {
			if rerr := fsys.Remove(dirJournal[i]); rerr != nil && !os.IsNotExist(rerr) {
				output.Error("rollback failed", "path", dirJournal[i], "error", rerr)
			}
		}
	}()

	for _, op := range ops {
		previous, readErr := util.ReadFile(fsys, op.Path)
		existed := readErr == nil

		switch op.Kind {
		case tree.OpCreate, tree.OpModify:
			if dir := path.Dir(op.Path); dir != "." {
				dirJournal = append(dirJournal, missingDirs(fsys, dir)...)
				if err = fsys.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("creating directory %s: %w", dir, err)
				}
			}
			if err = util.WriteFile(fsys, op.Path, op.Content, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", op.Path, err)
			}
		case tree.OpDelete:
			if err = fsys.Remove(op.Path); err != nil {
				return fmt.Errorf("deleting %s: %w", op.Path, err)
			}
		}

		journal = append(journal, undo{path: op.Path, existed: existed, previous: previous})
	}

	return nil
}

// missingDirs lists the ancestors of dir that do not exist yet,
// shallowest first, so rollback can remove them in reverse.
func missingDirs(fsys billy.Filesystem, dir string) []string {
	var missing []string
	for d := dir; d != "." && d != "/"; d = path.Dir(d) {
		if _, err := fsys.Stat(d); err == nil {
			break
		}
		missing = append(missing, d)
	}
	for i, j := 0, len(missing)-1; i < j; i, j = i+1, j-1 {
		missing[i], missing[j] = missing[j], missing[i]
	}
	return missing
}
