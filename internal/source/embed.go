package source

import (
	"embed"
	"fmt"
	"sort"
)

// Embedded starter sets ship inside the binary. Template file names start
// with "__", so the all: prefix is required to embed them.
//
//go:embed all:embedded
var embeddedFS embed.FS

// DefaultSetName is the set used when the caller names none.
const DefaultSetName = "component"

// Embedded loads one of the built-in template sets.
func Embedded(name string) (*Set, error) {
	entries, err := embeddedFS.ReadDir("embedded")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() && e.Name() == name {
			return loadIOFS(embeddedFS, "embedded/"+name)
		}
	}
	return nil, fmt.Errorf("unknown embedded template set %q", name)
}

// EmbeddedNames lists the built-in template set names, sorted.
func EmbeddedNames() []string {
	entries, err := embeddedFS.ReadDir("embedded")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

// EmbeddedSets loads every built-in set, for list output.
func EmbeddedSets() ([]*Set, error) {
	var sets []*Set
	for _, name := range EmbeddedNames() {
		set, err := Embedded(name)
		if err != nil {
			return nil, err
		}
		sets = append(sets, set)
	}
	return sets, nil
}
