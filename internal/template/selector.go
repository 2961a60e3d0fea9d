package template

import (
	"fmt"
	"path"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Gate declares a conditional inclusion rule for template paths: paths
// matching Pattern participate in a run only when the When predicate
// evaluates to true against the options.
type Gate struct {
	// Pattern is a path.Match pattern. Patterns without a slash match
	// against the file base name.
	Pattern string `yaml:"pattern"`

	// When is an expr predicate over the option values.
	When string `yaml:"when"`
}

// DefaultBackupSuffixes are excluded from every run regardless of options.
var DefaultBackupSuffixes = []string{".bak", "~"}

type compiledGate struct {
	pattern string
	program *vm.Program
}

// Selector decides which template paths participate in a generation run.
// Selection is pure and total: a missing gate option simply evaluates
// falsy and excludes the gated paths.
type Selector struct {
	backupSuffixes []string
	gates          []compiledGate
}

// NewSelector compiles the gate predicates and validates the patterns.
// A nil backupSuffixes falls back to DefaultBackupSuffixes.
func NewSelector(backupSuffixes []string, gates []Gate) (*Selector, error) {
	if backupSuffixes == nil {
		backupSuffixes = DefaultBackupSuffixes
	}

	compiled := make([]compiledGate, 0, len(gates))
	for _, g := range gates {
		if _, err := path.Match(g.Pattern, "probe"); err != nil {
			return nil, fmt.Errorf("gate pattern %q: %w", g.Pattern, err)
		}
		// Compiled without an environment so unknown option names stay
		// legal: they evaluate to nil at run time, which is falsy.
		program, err := expr.Compile(g.When)
		if err != nil {
			return nil, fmt.Errorf("gate predicate %q: %w", g.When, err)
		}
		compiled = append(compiled, compiledGate{pattern: g.Pattern, program: program})
	}

	return &Selector{backupSuffixes: backupSuffixes, gates: compiled}, nil
}

// Select returns the subset of paths participating in a run with the
// given option values, preserving input order.
func (s *Selector) Select(paths []string, vars map[string]any) []string {
	selected := make([]string, 0, len(paths))
	for _, p := range paths {
		if s.excluded(p, vars) {
			continue
		}
		selected = append(selected, p)
	}
	return selected
}

func (s *Selector) excluded(p string, vars map[string]any) bool {
	for _, suffix := range s.backupSuffixes {
		if strings.HasSuffix(p, suffix) {
			return true
		}
	}

	candidate := strings.TrimSuffix(p, ".tmpl")
	for _, g := range s.gates {
		if !matchPath(g.pattern, candidate) {
			continue
		}
		out, err := expr.Run(g.program, vars)
		if err != nil {
			// selection never throws; an unevaluable gate excludes
			return true
		}
		if truth, ok := out.(bool); !ok || !truth {
			return true
		}
	}
	return false
}

// matchPath matches a pattern against a path; slash-less patterns match
// the base name so manifests can gate files anywhere in the set.
func matchPath(pattern, p string) bool {
	target := p
	if !strings.Contains(pattern, "/") {
		target = path.Base(p)
	}
	ok, err := path.Match(pattern, target)
	return err == nil && ok
}
