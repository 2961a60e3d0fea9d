package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/skelgen/cli/internal/errors"
)

func writeSet(t *testing.T, fsys billy.Filesystem, manifest string, files map[string]string) {
	t.Helper()
	require.NoError(t, util.WriteFile(fsys, ManifestFile, []byte(manifest), 0o644))
	for p, content := range files {
		require.NoError(t, util.WriteFile(fsys, "files/"+p, []byte(content), 0o644))
	}
}

const minimalManifest = `name: widget
description: test widget
options:
  name:
    type: string
    required: true
`

func TestLoadBilly(t *testing.T) {
	fsys := memfs.New()
	writeSet(t, fsys, minimalManifest, map[string]string{
		"__name@dasherize__.ts.tmpl": "export const x = '<%= name %>';\n",
		"sub/readme.md":              "docs\n",
	})

	set, err := LoadBilly(fsys)
	require.NoError(t, err)

	assert.Equal(t, "widget", set.Manifest.Name)
	assert.Equal(t, []string{
		"__name@dasherize__.ts.tmpl",
		"sub/readme.md",
	}, set.Paths())

	entry, ok := set.Entry("sub/readme.md")
	require.True(t, ok)
	assert.Equal(t, "docs\n", entry.Content)
}

func TestLoadBillyMissingManifest(t *testing.T) {
	_, err := LoadBilly(memfs.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), ManifestFile)
}

func TestLoadBillyMissingName(t *testing.T) {
	fsys := memfs.New()
	writeSet(t, fsys, "description: nameless\noptions: {}\n", map[string]string{"a.txt": "a"})

	_, err := LoadBilly(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing set name")
}

func TestCheckEngine(t *testing.T) {
	tests := []struct {
		name      string
		minEngine string
		wantErr   bool
	}{
		{name: "empty constraint passes", minEngine: "", wantErr: false},
		{name: "satisfied constraint", minEngine: ">= 0.1.0", wantErr: false},
		{name: "future engine required", minEngine: ">= 99.0.0", wantErr: true},
		{name: "malformed constraint", minEngine: "not-a-version", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckEngine(tt.minEngine)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckEngineVersionMismatchTagged(t *testing.T) {
	err := CheckEngine(">= 99.0.0")
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrVersion)
	assert.Equal(t, oerrors.ExitVersionMismatch, oerrors.ExitCodeFromError(err))

	// a malformed constraint is a set authoring error, not a version gap
	err = CheckEngine("not-a-version")
	require.Error(t, err)
	assert.NotErrorIs(t, err, oerrors.ErrVersion)
}

func TestLoadBillyRejectsTooNewSet(t *testing.T) {
	fsys := memfs.New()
	manifest := `name: widget
minEngine: ">= 99.0.0"
options: {}
`
	writeSet(t, fsys, manifest, map[string]string{"a.txt": "a"})

	_, err := LoadBilly(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires engine")
	assert.ErrorIs(t, err, oerrors.ErrVersion)
}

func TestEmbedded(t *testing.T) {
	set, err := Embedded("component")
	require.NoError(t, err)

	assert.Equal(t, "component", set.Manifest.Name)
	assert.Len(t, set.Entries, 4)

	_, err = Embedded("no-such-set")
	require.Error(t, err)
}

func TestEmbeddedNames(t *testing.T) {
	names := EmbeddedNames()
	assert.Contains(t, names, "component")
	assert.Contains(t, names, "page")
}

func TestResolveSearchDirs(t *testing.T) {
	dir := t.TempDir()
	setDir := filepath.Join(dir, "widget")
	require.NoError(t, os.MkdirAll(filepath.Join(setDir, "files"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(setDir, ManifestFile), []byte(minimalManifest), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(setDir, "files", "a.txt"), []byte("a"), 0o644))

	set, err := Resolve("widget", []string{dir})
	require.NoError(t, err)
	assert.Equal(t, "widget", set.Manifest.Name)
}

func TestResolveFallsBackToEmbedded(t *testing.T) {
	set, err := Resolve("component", []string{t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "component", set.Manifest.Name)
}

func TestResolveNotFound(t *testing.T) {
	_, err := Resolve("no-such-set", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
}
