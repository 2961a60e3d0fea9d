// Package template evaluates scaffolding templates. Both file bodies and
// file names may carry directives that resolve against a caller-supplied
// options context plus the casing transforms from internal/names.
//
// Directive forms:
//
//	<%= expr %>                              value interpolation
//	<%= dasherize(name) %>                   transform application
//	<% if (cond) { %> … <% } else { %> … <% } %>  conditional span
//
// File names additionally support the compact token form:
//
//	__name__.ts        __name@dasherize__.ts
package template

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/skelgen/cli/internal/names"
)

// Entry is an immutable template source: a path and its raw content.
type Entry struct {
	Path    string
	Content string
}

// Rendered is the product of applying a context to an Entry.
type Rendered struct {
	Path    string
	Content string
}

// TransformFunc is a pure string transform callable from templates.
type TransformFunc func(string) (string, error)

// UnresolvedReferenceError indicates a directive named a context field or
// transform function that the supplied context does not provide.
type UnresolvedReferenceError struct {
	// Template is the template path being rendered.
	Template string

	// Reference is the unresolved expression or name.
	Reference string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("template %s: unresolved reference %q", e.Template, e.Reference)
}

// Context carries the variables and transform functions available to
// directives. It is read-only during a render.
type Context struct {
	env   map[string]any
	funcs map[string]TransformFunc
}

// NewContext builds a render context from the given option values and
// registers the canonical transforms (dasherize, classify).
func NewContext(vars map[string]any) *Context {
	funcs := map[string]TransformFunc{
		"dasherize": names.Dasherize,
		"classify":  names.Classify,
	}

	env := make(map[string]any, len(vars)+len(funcs))
	for k, v := range vars {
		env[k] = v
	}
	for name, fn := range funcs {
		env[name] = fn
	}

	return &Context{env: env, funcs: funcs}
}

// eval compiles and runs one expression against the context. Unknown
// names are reported as UnresolvedReferenceError attributed to where.
func (c *Context) eval(code, where string) (any, error) {
	program, err := expr.Compile(code, expr.Env(c.env))
	if err != nil {
		if strings.Contains(err.Error(), "unknown name") {
			return nil, &UnresolvedReferenceError{Template: where, Reference: code}
		}
		return nil, fmt.Errorf("template %s: compiling expression %q: %w", where, code, err)
	}

	out, err := expr.Run(program, c.env)
	if err != nil {
		return nil, fmt.Errorf("template %s: evaluating expression %q: %w", where, code, err)
	}
	return out, nil
}

// Render applies the context to an entry's path and content independently
// using the same directive resolution logic.
func Render(e Entry, ctx *Context) (Rendered, error) {
	p, err := RenderPath(e.Path, ctx)
	if err != nil {
		return Rendered{}, err
	}

	content, err := RenderString(e.Content, ctx, e.Path)
	if err != nil {
		return Rendered{}, err
	}

	return Rendered{Path: p, Content: content}, nil
}

// RenderString resolves the directives in s. where names the template for
// error attribution.
func RenderString(s string, ctx *Context, where string) (string, error) {
	nodes, err := parseTemplate(s, where)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := evalNodes(nodes, ctx, where, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// pathToken matches __field__ and __field@fn__ file-name tokens.
var pathToken = regexp.MustCompile(`__([A-Za-z][A-Za-z0-9]*)(?:@([A-Za-z][A-Za-z0-9]*))?__`)

// RenderPath resolves a file-name template: directives first, then the
// compact __field@fn__ tokens, then the .tmpl staging suffix is dropped.
func RenderPath(p string, ctx *Context) (string, error) {
	resolved, err := RenderString(p, ctx, p)
	if err != nil {
		return "", err
	}

	var tokenErr error
	resolved = pathToken.ReplaceAllStringFunc(resolved, func(match string) string {
		if tokenErr != nil {
			return match
		}
		groups := pathToken.FindStringSubmatch(match)
		field, fn := groups[1], groups[2]

		value, ok := ctx.env[field]
		if !ok {
			tokenErr = &UnresolvedReferenceError{Template: p, Reference: field}
			return match
		}
		text := fmt.Sprintf("%v", value)

		if fn == "" {
			return text
		}
		transform, ok := ctx.funcs[fn]
		if !ok {
			tokenErr = &UnresolvedReferenceError{Template: p, Reference: fn}
			return match
		}
		out, err := transform(text)
		if err != nil {
			tokenErr = fmt.Errorf("template %s: applying %s: %w", p, fn, err)
			return match
		}
		return out
	})
	if tokenErr != nil {
		return "", tokenErr
	}

	return strings.TrimSuffix(resolved, ".tmpl"), nil
}

// evalNodes walks the parsed template left to right. Conditionals are
// resolved outer-first, so nodes inside an excluded branch are never
// evaluated.
func evalNodes(nodes []node, ctx *Context, where string, b *strings.Builder) error {
	for _, n := range nodes {
		switch n := n.(type) {
		case textNode:
			b.WriteString(string(n))

		case exprNode:
			out, err := ctx.eval(n.code, where)
			if err != nil {
				return err
			}
			fmt.Fprintf(b, "%v", out)

		case *condNode:
			out, err := ctx.eval(n.cond, where)
			if err != nil {
				return err
			}
			truth, ok := out.(bool)
			if !ok {
				return fmt.Errorf("template %s: condition %q is not boolean (got %T)", where, n.cond, out)
			}
			branch := n.then
			if !truth {
				branch = n.els
			}
			if err := evalNodes(branch, ctx, where, b); err != nil {
				return err
			}
		}
	}
	return nil
}
