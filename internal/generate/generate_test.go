package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skelgen/cli/internal/options"
	"github.com/skelgen/cli/internal/rule"
	"github.com/skelgen/cli/internal/source"
	"github.com/skelgen/cli/internal/tree"
)

func componentSet(t *testing.T) *source.Set {
	t.Helper()
	set, err := source.Embedded("component")
	require.NoError(t, err)
	return set
}

func TestGenerateWithoutService(t *testing.T) {
	target := tree.New()

	merged, err := Generate(options.Options{"name": "SideMenu"}, componentSet(t), target)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"src/side-menu.component.html",
		"src/side-menu.component.ts",
	}, merged.Paths())

	content, err := merged.Read("src/side-menu.component.ts")
	require.NoError(t, err)
	assert.Contains(t, string(content), "export class SideMenuComponent {")
	assert.Contains(t, string(content), "items: string[] = ['First item', 'Second item', 'Third item'];")
	assert.NotContains(t, string(content), "SideMenuService")
}

func TestGenerateWithService(t *testing.T) {
	target := tree.New()

	merged, err := Generate(options.Options{
		"name":            "SideMenu",
		"generateService": true,
	}, componentSet(t), target)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"src/side-menu.component.html",
		"src/side-menu.component.ts",
		"src/side-menu.service.spec.ts",
		"src/side-menu.service.ts",
	}, merged.Paths())

	content, err := merged.Read("src/side-menu.component.ts")
	require.NoError(t, err)
	assert.Contains(t, string(content), "import { SideMenuService } from './side-menu.service';")
	assert.Contains(t, string(content), "constructor(private service: SideMenuService)")
	assert.NotContains(t, string(content), "'First item'")
}

func TestGenerateInvalidOptionsNoWrites(t *testing.T) {
	target := tree.New()
	require.NoError(t, target.Create("existing.txt", []byte("keep")))

	before := target.Paths()

	_, err := Generate(options.Options{"generateService": "yes"}, componentSet(t), target)
	require.Error(t, err)

	var invalidErr *options.InvalidOptionsError
	require.ErrorAs(t, err, &invalidErr)

	// both problems reported in one error: missing name, mistyped flag
	require.Len(t, invalidErr.Problems, 2)

	assert.Equal(t, before, target.Paths())
}

func TestGenerateCustomSourceDir(t *testing.T) {
	merged, err := Generate(options.Options{
		"name":      "SideMenu",
		"sourceDir": `app\menu`,
	}, componentSet(t), tree.New())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"app/menu/side-menu.component.html",
		"app/menu/side-menu.component.ts",
	}, merged.Paths())
}

func TestGenerateConflictLeavesTargetUntouched(t *testing.T) {
	target := tree.New()
	require.NoError(t, target.Create("src/side-menu.component.ts", []byte("mine")))

	_, err := Generate(options.Options{"name": "SideMenu"}, componentSet(t), target)
	require.Error(t, err)

	var conflict *rule.MergeConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "src/side-menu.component.ts", conflict.Path)

	content, err := target.Read("src/side-menu.component.ts")
	require.NoError(t, err)
	assert.Equal(t, "mine", string(content))
}

func TestExecuteForceOverwritesConflicts(t *testing.T) {
	target := tree.New()
	require.NoError(t, target.Create("src/side-menu.component.ts", []byte("mine")))

	result, err := Execute(Run{
		Set:     componentSet(t),
		Options: options.Options{"name": "SideMenu"},
		Force:   true,
	}, target)
	require.NoError(t, err)

	content, err := result.Tree.Read("src/side-menu.component.ts")
	require.NoError(t, err)
	assert.Contains(t, string(content), "export class SideMenuComponent {")

	// the original target branch stays untouched
	content, err = target.Read("src/side-menu.component.ts")
	require.NoError(t, err)
	assert.Equal(t, "mine", string(content))
}

func TestExecuteDirPrefix(t *testing.T) {
	result, err := Execute(Run{
		Set:     componentSet(t),
		Options: options.Options{"name": "SideMenu"},
		Dir:     "packages/web",
	}, tree.New())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"packages/web/src/side-menu.component.html",
		"packages/web/src/side-menu.component.ts",
	}, result.Tree.Paths())
}

func TestExecuteOpsAreRunContribution(t *testing.T) {
	target := tree.New()
	require.NoError(t, target.Create("README.md", []byte("hello")))

	result, err := Execute(Run{
		Set:     componentSet(t),
		Options: options.Options{"name": "SideMenu"},
	}, target)
	require.NoError(t, err)

	require.Len(t, result.Ops, 2)
	for _, op := range result.Ops {
		assert.Equal(t, tree.OpCreate, op.Kind)
		assert.NotEqual(t, "README.md", op.Path)
	}
	assert.Equal(t, "component", result.SetName)
}
