package template

import (
	"fmt"
	"strings"
)

const (
	tagOpen  = "<%"
	tagClose = "%>"
)

// node is one parsed template fragment.
type node interface{}

// textNode is literal output.
type textNode string

// exprNode is a <%= expr %> interpolation.
type exprNode struct {
	code string
}

// condNode is a <% if (cond) { %> … <% } else { %> … <% } %> span.
type condNode struct {
	cond string
	then []node
	els  []node
}

// frame tracks the branch currently receiving parsed nodes.
type frame struct {
	cond   *condNode
	inElse bool
}

// parseTemplate splits s into literal, interpolation, and conditional
// nodes. where names the template for error attribution.
func parseTemplate(s, where string) ([]node, error) {
	var root []node
	var stack []frame

	appendNode := func(n node) {
		if len(stack) == 0 {
			root = append(root, n)
			return
		}
		top := stack[len(stack)-1]
		if top.inElse {
			top.cond.els = append(top.cond.els, n)
		} else {
			top.cond.then = append(top.cond.then, n)
		}
	}

	rest := s
	for {
		open := strings.Index(rest, tagOpen)
		if open < 0 {
			if rest != "" {
				appendNode(textNode(rest))
			}
			break
		}
		if open > 0 {
			appendNode(textNode(rest[:open]))
		}

		end := strings.Index(rest[open:], tagClose)
		if end < 0 {
			return nil, fmt.Errorf("template %s: unterminated %q directive", where, tagOpen)
		}
		tag := rest[open+len(tagOpen) : open+end]
		rest = rest[open+end+len(tagClose):]

		if strings.HasPrefix(tag, "=") {
			code := strings.TrimSpace(tag[1:])
			if code == "" {
				return nil, fmt.Errorf("template %s: empty interpolation directive", where)
			}
			appendNode(exprNode{code: code})
			continue
		}

		switch code := strings.TrimSpace(tag); {
		case strings.HasPrefix(code, "if"):
			cond, err := parseIfHeader(code, where)
			if err != nil {
				return nil, err
			}
			c := &condNode{cond: cond}
			appendNode(c)
			stack = append(stack, frame{cond: c})

		case squash(code) == "}else{":
			if len(stack) == 0 || stack[len(stack)-1].inElse {
				return nil, fmt.Errorf("template %s: unexpected else directive", where)
			}
			stack[len(stack)-1].inElse = true

		case code == "}":
			if len(stack) == 0 {
				return nil, fmt.Errorf("template %s: unmatched closing directive", where)
			}
			stack = stack[:len(stack)-1]

		default:
			return nil, fmt.Errorf("template %s: unrecognized directive %q", where, code)
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("template %s: unclosed conditional (missing <%% } %%>)", where)
	}
	return root, nil
}

// parseIfHeader extracts the condition from "if (cond) {", honoring
// nested parentheses inside cond.
func parseIfHeader(code, where string) (string, error) {
	open := strings.Index(code, "(")
	if open < 0 {
		return "", fmt.Errorf("template %s: malformed if directive %q", where, code)
	}

	depth := 0
	closeIdx := -1
	for i := open; i < len(code); i++ {
		switch code[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				closeIdx = i
			}
		}
		if closeIdx >= 0 {
			break
		}
	}
	if closeIdx < 0 {
		return "", fmt.Errorf("template %s: malformed if directive %q", where, code)
	}

	if strings.TrimSpace(code[closeIdx+1:]) != "{" {
		return "", fmt.Errorf("template %s: malformed if directive %q", where, code)
	}

	cond := strings.TrimSpace(code[open+1 : closeIdx])
	if cond == "" {
		return "", fmt.Errorf("template %s: empty condition in if directive", where)
	}
	return cond, nil
}

// squash removes all whitespace, used to recognize the else directive in
// any spacing.
func squash(s string) string {
	return strings.Join(strings.Fields(s), "")
}
