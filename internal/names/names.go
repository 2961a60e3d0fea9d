// Package names provides identifier casing transforms used in template
// paths and generated code.
package names

import (
	"fmt"
	"strings"
	"unicode"
)

// InvalidIdentifierError indicates an identifier that cannot be transformed.
type InvalidIdentifierError struct {
	// Identifier is the offending input string.
	Identifier string

	// Reason describes why the identifier was rejected.
	Reason string
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid identifier %q: %s", e.Identifier, e.Reason)
}

// Dasherize converts an identifier to a hyphen-joined lowercase path
// segment. Word boundaries are case transitions, whitespace, hyphens, and
// underscores. Idempotent: Dasherize(Dasherize(s)) == Dasherize(s).
//
// Examples: "SideMenu" -> "side-menu", "my_app" -> "my-app".
func Dasherize(identifier string) (string, error) {
	words, err := splitWords(identifier)
	if err != nil {
		return "", err
	}

	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "-"), nil
}

// Classify converts an identifier to an upper-camel type name. Idempotent
// on already-classified input.
//
// Examples: "side-menu" -> "SideMenu", "side menu" -> "SideMenu".
func Classify(identifier string) (string, error) {
	words, err := splitWords(identifier)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String(), nil
}

// splitWords validates the identifier and splits it into words at
// separator characters and case transitions. An all-caps run followed by a
// lowercase letter starts a new word before its last capital, so acronyms
// survive intact ("HTTPServer" -> ["HTTP", "Server"]).
func splitWords(identifier string) ([]string, error) {
	if identifier == "" {
		return nil, &InvalidIdentifierError{Identifier: identifier, Reason: "empty string"}
	}
	for _, r := range identifier {
		if !isIdentifierRune(r) {
			return nil, &InvalidIdentifierError{
				Identifier: identifier,
				Reason:     fmt.Sprintf("character %q not allowed", r),
			}
		}
	}

	runes := []rune(identifier)
	var words []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = nil
		}
	}

	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if len(current) > 0 {
			prev := current[len(current)-1]
			// lower/digit -> Upper starts a new word
			if unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
				flush()
			} else if unicode.IsUpper(r) && unicode.IsUpper(prev) &&
				i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				// end of an acronym run: the capital before a lowercase
				// letter belongs to the next word
				flush()
			}
		}

		current = append(current, r)
	}
	flush()

	if len(words) == 0 {
		return nil, &InvalidIdentifierError{Identifier: identifier, Reason: "no word characters"}
	}
	return words, nil
}

func isIdentifierRune(r rune) bool {
	return r == '-' || r == '_' || unicode.IsSpace(r) ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isSeparator(r rune) bool {
	return r == '-' || r == '_' || unicode.IsSpace(r)
}
