// Package source loads template sets: collections of (path, content)
// template entries plus the manifest describing their options schema and
// selection rules.
package source

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"

	oerrors "github.com/skelgen/cli/internal/errors"
	"github.com/skelgen/cli/internal/options"
	"github.com/skelgen/cli/internal/template"
	"github.com/skelgen/cli/internal/version"
)

const (
	// ManifestFile is the template-set manifest name at the set root.
	ManifestFile = "templateset.yaml"

	// filesDir is the subdirectory holding the template entries.
	filesDir = "files"
)

// Manifest describes a template set.
type Manifest struct {
	// Name identifies the set.
	Name string `yaml:"name"`

	// Description explains the set's purpose for list output.
	Description string `yaml:"description,omitempty"`

	// Version is the set's own version.
	Version string `yaml:"version,omitempty"`

	// MinEngine is an optional semver constraint on the engine version.
	MinEngine string `yaml:"minEngine,omitempty"`

	// Options declares the recognized option fields.
	Options map[string]options.Field `yaml:"options"`

	// BackupSuffixes overrides the default always-excluded suffixes.
	BackupSuffixes []string `yaml:"backupSuffixes,omitempty"`

	// Gates conditionally include template paths based on options.
	Gates []template.Gate `yaml:"gates,omitempty"`
}

// Set is a loaded, compiled template set ready for generation runs.
type Set struct {
	// Manifest is the parsed set metadata.
	Manifest Manifest

	// Entries are the immutable template sources, sorted by path.
	Entries []template.Entry

	// Schema is the compiled options schema.
	Schema *options.Schema

	// Selector applies the set's selection rules.
	Selector *template.Selector
}

// Paths returns the entry paths in order.
func (s *Set) Paths() []string {
	paths := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		paths[i] = e.Path
	}
	return paths
}

// Entry returns the entry at the given path.
func (s *Set) Entry(p string) (template.Entry, bool) {
	for _, e := range s.Entries {
		if e.Path == p {
			return e, true
		}
	}
	return template.Entry{}, false
}

// build assembles a Set from raw manifest bytes and entries.
func build(manifestData []byte, entries []template.Entry) (*Set, error) {
	var m Manifest
	if err := yaml.Unmarshal(manifestData, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ManifestFile, err)
	}
	if m.Name == "" {
		return nil, fmt.Errorf("parsing %s: missing set name", ManifestFile)
	}

	if err := CheckEngine(m.MinEngine); err != nil {
		return nil, fmt.Errorf("template set %s: %w", m.Name, err)
	}

	schema, err := options.Compile(m.Options)
	if err != nil {
		return nil, fmt.Errorf("template set %s: %w", m.Name, err)
	}

	selector, err := template.NewSelector(m.BackupSuffixes, m.Gates)
	if err != nil {
		return nil, fmt.Errorf("template set %s: %w", m.Name, err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	return &Set{
		Manifest: m,
		Entries:  entries,
		Schema:   schema,
		Selector: selector,
	}, nil
}

// CheckEngine verifies a manifest's minEngine constraint against the
// running engine version. An empty constraint always passes.
func CheckEngine(minEngine string) error {
	if minEngine == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(minEngine)
	if err != nil {
		return fmt.Errorf("invalid minEngine constraint %q: %w", minEngine, err)
	}
	engine, err := semver.NewVersion(version.EngineVersion)
	if err != nil {
		return fmt.Errorf("invalid engine version %q: %w", version.EngineVersion, err)
	}
	if !constraint.Check(engine) {
		return oerrors.NewVersionError(
			fmt.Sprintf("requires engine %s, running %s", minEngine, version.EngineVersion),
			map[string]string{
				"required": minEngine,
				"engine":   version.EngineVersion,
			},
			"Upgrade skel to a newer release to use this template set.",
		)
	}
	return nil
}

// LoadBilly loads a template set from the root of a billy filesystem.
func LoadBilly(fsys billy.Filesystem) (*Set, error) {
	manifestData, err := util.ReadFile(fsys, ManifestFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ManifestFile, err)
	}

	var entries []template.Entry
	err = walkBilly(fsys, filesDir, func(p string, content []byte) {
		entries = append(entries, template.Entry{
			Path:    strings.TrimPrefix(p, filesDir+"/"),
			Content: string(content),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("reading template entries: %w", err)
	}

	return build(manifestData, entries)
}

// LoadDir loads a template set from a directory on the OS filesystem.
func LoadDir(dir string) (*Set, error) {
	return LoadBilly(osfs.New(dir))
}

// walkBilly visits every file below root in path order.
func walkBilly(fsys billy.Filesystem, root string, visit func(string, []byte)) error {
	infos, err := fsys.ReadDir(root)
	if err != nil {
		return err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })

	for _, info := range infos {
		p := path.Join(root, info.Name())
		if info.IsDir() {
			if err := walkBilly(fsys, p, visit); err != nil {
				return err
			}
			continue
		}
		content, err := util.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		visit(p, content)
	}
	return nil
}

// loadIOFS loads a set rooted at dir inside an io/fs filesystem; used for
// the embedded starter sets.
func loadIOFS(fsys fs.FS, dir string) (*Set, error) {
	manifestData, err := fs.ReadFile(fsys, path.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ManifestFile, err)
	}

	var entries []template.Entry
	root := path.Join(dir, filesDir)
	err = fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		entries = append(entries, template.Entry{
			Path:    strings.TrimPrefix(p, root+"/"),
			Content: string(content),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reading template entries: %w", err)
	}

	return build(manifestData, entries)
}

// Resolve locates a template set by name or path. Resolution order:
// an existing directory at name, then <dir>/name for each search dir,
// then the embedded sets.
func Resolve(name string, searchDirs []string) (*Set, error) {
	if info, err := os.Stat(name); err == nil && info.IsDir() {
		return LoadDir(name)
	}

	for _, dir := range searchDirs {
		candidate := path.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return LoadDir(candidate)
		}
	}

	if set, err := Embedded(name); err == nil {
		return set, nil
	}

	return nil, oerrors.Wrap(oerrors.ErrNotFound,
		fmt.Sprintf("template set %q (searched %d dirs and embedded sets: %s)",
			name, len(searchDirs), strings.Join(EmbeddedNames(), ", ")))
}
