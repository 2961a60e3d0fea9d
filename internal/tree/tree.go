// Package tree implements the in-memory staging file tree used by
// generation runs. A Tree records pending creates, modifies, and deletes
// against an immutable baseline and never touches real storage.
package tree

import (
	"fmt"
	"sort"
)

// State is the lifecycle state of a staged path.
type State int

const (
	// StateUnchanged mirrors the baseline file system.
	StateUnchanged State = iota

	// StateCreated is a pending file creation.
	StateCreated

	// StateModified is a pending content change to a baseline file.
	StateModified

	// StateDeleted is a pending removal of a baseline file.
	StateDeleted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUnchanged:
		return "unchanged"
	case StateCreated:
		return "created"
	case StateModified:
		return "modified"
	case StateDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// OpKind is the kind of a pending diff operation.
type OpKind int

const (
	// OpCreate writes a file that has no baseline.
	OpCreate OpKind = iota

	// OpModify replaces the content of a baseline file.
	OpModify

	// OpDelete removes a baseline file.
	OpDelete
)

// String returns the operation kind name.
func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpModify:
		return "modify"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Op is one pending operation relative to the baseline.
type Op struct {
	// Kind is the operation kind.
	Kind OpKind

	// Path is the slash-separated file path.
	Path string

	// Content is the file content for create and modify operations.
	Content []byte
}

// PathAlreadyExistsError indicates a create on a path that is already
// present in the tree.
type PathAlreadyExistsError struct {
	Path string
}

func (e *PathAlreadyExistsError) Error() string {
	return fmt.Sprintf("path already exists: %s", e.Path)
}

// PathNotFoundError indicates an operation on a path with no baseline file
// and no pending create.
type PathNotFoundError struct {
	Path string
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("path not found: %s", e.Path)
}

// node is the authoritative staged state for one path.
type node struct {
	state   State
	content []byte
}

// Tree is a staged view of a file system. The baseline map is read-only
// and may be shared between branches; the staged map is owned exclusively
// by one Tree.
type Tree struct {
	baseline map[string][]byte
	staged   map[string]node
}

// New returns an empty Tree with no baseline.
func New() *Tree {
	return &Tree{
		baseline: map[string][]byte{},
		staged:   map[string]node{},
	}
}

// Seed returns a Tree whose baseline is the given path -> content snapshot.
// The snapshot is copied; the caller keeps ownership of its map.
func Seed(files map[string][]byte) *Tree {
	baseline := make(map[string][]byte, len(files))
	for p, c := range files {
		baseline[p] = c
	}
	return &Tree{
		baseline: baseline,
		staged:   map[string]node{},
	}
}

// Branch returns an independent copy of the tree. The baseline is shared
// (it is immutable); pending state is copied so the branches never observe
// each other's mutations.
func (t *Tree) Branch() *Tree {
	staged := make(map[string]node, len(t.staged))
	for p, n := range t.staged {
		staged[p] = n
	}
	return &Tree{
		baseline: t.baseline,
		staged:   staged,
	}
}

// Exists reports whether the path currently resolves to a file, taking
// pending operations into account.
func (t *Tree) Exists(path string) bool {
	if n, ok := t.staged[path]; ok {
		return n.state != StateDeleted
	}
	_, ok := t.baseline[path]
	return ok
}

// Read returns the current content of the path.
func (t *Tree) Read(path string) ([]byte, error) {
	if n, ok := t.staged[path]; ok {
		if n.state == StateDeleted {
			return nil, &PathNotFoundError{Path: path}
		}
		return n.content, nil
	}
	if c, ok := t.baseline[path]; ok {
		return c, nil
	}
	return nil, &PathNotFoundError{Path: path}
}

// State returns the lifecycle state of the path. Paths absent from both
// the baseline and the staged set report StateUnchanged with ok=false.
func (t *Tree) State(path string) (State, bool) {
	if n, ok := t.staged[path]; ok {
		return n.state, true
	}
	if _, ok := t.baseline[path]; ok {
		return StateUnchanged, true
	}
	return StateUnchanged, false
}

// Create stages a new file. It fails with PathAlreadyExistsError when the
// path already resolves to a file. Creating a path that was staged deleted
// is allowed and results in a pending content replacement.
func (t *Tree) Create(path string, content []byte) error {
	if t.Exists(path) {
		return &PathAlreadyExistsError{Path: path}
	}
	t.staged[path] = node{state: StateCreated, content: content}
	return nil
}

// Overwrite stages a content change for an existing file. A path that was
// staged deleted is gone; it must be re-created explicitly first.
func (t *Tree) Overwrite(path string, content []byte) error {
	if !t.Exists(path) {
		return &PathNotFoundError{Path: path}
	}
	state := StateModified
	if n, ok := t.staged[path]; ok && n.state == StateCreated {
		// last writer within the run wins; a pending create stays a create
		state = StateCreated
	}
	t.staged[path] = node{state: state, content: content}
	return nil
}

// Delete stages a file removal. Deleting a pending create that has no
// baseline cancels the create entirely.
func (t *Tree) Delete(path string) error {
	if !t.Exists(path) {
		return &PathNotFoundError{Path: path}
	}
	if _, inBaseline := t.baseline[path]; !inBaseline {
		delete(t.staged, path)
		return nil
	}
	t.staged[path] = node{state: StateDeleted}
	return nil
}

// Diff returns the pending operations relative to the baseline in a
// deterministic order: creates, then modifies, then deletes, each sorted
// by path.
func (t *Tree) Diff() []Op {
	ops := make([]Op, 0, len(t.staged))
	for p, n := range t.staged {
		_, inBaseline := t.baseline[p]
		switch n.state {
		case StateDeleted:
			ops = append(ops, Op{Kind: OpDelete, Path: p})
		case StateCreated, StateModified:
			kind := OpCreate
			if inBaseline {
				kind = OpModify
			}
			ops = append(ops, Op{Kind: kind, Path: p, Content: n.content})
		}
	}

	sort.Slice(ops, func(i, j int) bool {
		if ops[i].Kind != ops[j].Kind {
			return ops[i].Kind < ops[j].Kind
		}
		return ops[i].Path < ops[j].Path
	})
	return ops
}

// Paths returns every path that currently resolves to a file, sorted.
func (t *Tree) Paths() []string {
	seen := make(map[string]struct{}, len(t.baseline)+len(t.staged))
	for p := range t.baseline {
		seen[p] = struct{}{}
	}
	for p, n := range t.staged {
		if n.state == StateDeleted {
			delete(seen, p)
			continue
		}
		seen[p] = struct{}{}
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
