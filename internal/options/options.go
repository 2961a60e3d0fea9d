// Package options defines the typed option record supplied to a
// generation run and its declarative schema validation.
package options

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// Options is the caller-supplied option record for one generation run.
// It is constructed once per invocation and read-only thereafter.
type Options map[string]any

// Field describes one recognized option in a template-set manifest.
type Field struct {
	// Type is one of: string, boolean, number, integer, path.
	// The path type is a string whose value is normalized to a
	// slash-separated clean path before rendering.
	Type string `yaml:"type"`

	// Default is applied when the option is absent.
	Default any `yaml:"default,omitempty"`

	// Required marks options that must be supplied by the caller.
	Required bool `yaml:"required,omitempty"`

	// Description documents the option for list/help output.
	Description string `yaml:"description,omitempty"`
}

// Problem is one field-level validation failure.
type Problem struct {
	// Field is the option name, or "" for record-level problems.
	Field string

	// Message describes the failure.
	Message string
}

// InvalidOptionsError reports every schema violation found in an option
// record; validation never stops at the first failure.
type InvalidOptionsError struct {
	Problems []Problem
}

func (e *InvalidOptionsError) Error() string {
	var b strings.Builder
	b.WriteString("invalid options:")
	for _, p := range e.Problems {
		b.WriteString("\n  - ")
		if p.Field != "" {
			b.WriteString(p.Field)
			b.WriteString(": ")
		}
		b.WriteString(p.Message)
	}
	return b.String()
}

// Schema is a compiled option schema.
type Schema struct {
	fields   map[string]Field
	names    []string
	compiled *jsonschema.Schema
}

// Compile builds a Schema from manifest field declarations. The fields
// are translated to a JSON Schema document and compiled once; Validate
// runs are pure afterwards.
func Compile(fields map[string]Field) (*Schema, error) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	properties := map[string]any{}
	var required []string
	for _, name := range names {
		f := fields[name]
		jsonType, err := jsonType(f.Type)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", name, err)
		}
		properties[name] = map[string]any{"type": jsonType}
		if f.Required {
			required = append(required, name)
		}
	}

	doc := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		doc["required"] = required
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding option schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("options.json", bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("adding option schema: %w", err)
	}
	compiled, err := compiler.Compile("options.json")
	if err != nil {
		return nil, fmt.Errorf("compiling option schema: %w", err)
	}

	return &Schema{fields: fields, names: names, compiled: compiled}, nil
}

// jsonType maps a manifest field type to its JSON Schema type.
func jsonType(t string) (string, error) {
	switch t {
	case "string", "path":
		return "string", nil
	case "boolean", "number", "integer":
		return t, nil
	default:
		return "", fmt.Errorf("unknown type %q", t)
	}
}

// Fields returns the declared option names in sorted order.
func (s *Schema) Fields() []string {
	return s.names
}

// Field returns the declaration for one option name.
func (s *Schema) Field(name string) (Field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Validate checks the option record against the schema, collecting every
// missing or mistyped field into a single InvalidOptionsError.
func (s *Schema) Validate(opts Options) error {
	// round-trip through JSON so yaml/flag-decoded values use the value
	// kinds the validator understands
	raw, err := json.Marshal(map[string]any(opts))
	if err != nil {
		return fmt.Errorf("encoding options: %w", err)
	}
	var instance any
	if err := json.Unmarshal(raw, &instance); err != nil {
		return fmt.Errorf("decoding options: %w", err)
	}

	err = s.compiled.Validate(instance)
	if err == nil {
		return nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}

	problems := collectProblems(validationErr, nil)
	sort.Slice(problems, func(i, j int) bool {
		if problems[i].Field != problems[j].Field {
			return problems[i].Field < problems[j].Field
		}
		return problems[i].Message < problems[j].Message
	})
	return &InvalidOptionsError{Problems: problems}
}

// collectProblems flattens a validation error tree into leaf problems.
func collectProblems(e *jsonschema.ValidationError, problems []Problem) []Problem {
	if len(e.Causes) == 0 {
		field := strings.TrimPrefix(e.InstanceLocation, "/")
		problems = append(problems, Problem{Field: field, Message: e.Message})
		return problems
	}
	for _, cause := range e.Causes {
		problems = collectProblems(cause, problems)
	}
	return problems
}

// ApplyDefaults returns a copy of opts with schema defaults filled in for
// absent fields. The input record is not mutated.
func (s *Schema) ApplyDefaults(opts Options) Options {
	out := make(Options, len(opts)+len(s.fields))
	for k, v := range opts {
		out[k] = v
	}
	for _, name := range s.names {
		if _, present := out[name]; present {
			continue
		}
		if d := s.fields[name].Default; d != nil {
			out[name] = d
		}
	}
	return out
}

// NormalizePaths returns a copy of opts with every path-typed field
// collapsed to a slash-separated clean relative form.
func (s *Schema) NormalizePaths(opts Options) Options {
	out := make(Options, len(opts))
	for k, v := range opts {
		out[k] = v
	}
	for _, name := range s.names {
		if s.fields[name].Type != "path" {
			continue
		}
		if v, ok := out[name].(string); ok {
			out[name] = NormalizePath(v)
		}
	}
	return out
}

// NormalizePath collapses OS-specific separators into the canonical
// slash-separated clean form used throughout the staging tree.
func NormalizePath(p string) string {
	cleaned := path.Clean(strings.ReplaceAll(filepath.ToSlash(p), `\`, "/"))
	if cleaned == "." {
		return ""
	}
	return strings.TrimPrefix(cleaned, "./")
}
