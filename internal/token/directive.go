package token

import (
	"regexp"
	"strings"
)

// DirectiveKind tells why a comment is protected from rewriting.
type DirectiveKind uint8

const (
	// NotDirective marks an ordinary comment.
	NotDirective DirectiveKind = iota
	// DirectiveShebang is "#!" on the first line.
	DirectiveShebang
	// DirectiveCoding is a PEP 263 encoding declaration on line 1 or 2.
	DirectiveCoding
	// DirectivePragma is a tool pragma such as "# noqa" or "# type: ignore".
	DirectivePragma
)

func (k DirectiveKind) String() string {
	switch k {
	case DirectiveShebang:
		return "shebang"
	case DirectiveCoding:
		return "coding"
	case DirectivePragma:
		return "pragma"
	default:
		return "none"
	}
}

// DefaultPragmas lists comment prefixes that other tools parse and that must
// stay on their own physical line.
var DefaultPragmas = []string{
	"fmt:",
	"type:",
	"noqa",
	"pylint:",
	"isort:",
	"pragma:",
	"mypy:",
	"pyright:",
	"ruff:",
}

var codingRe = regexp.MustCompile(`^[ \t\f]*#.*?coding[:=][ \t]*([-\w.]+)`)

// ClassifyComment decides whether the comment text starting with '#' on the
// given 1-based line is a directive. The pragma match is done on the text
// after the leading '#' and spaces.
func ClassifyComment(text string, line int, pragmas []string) DirectiveKind {
	if line == 1 && strings.HasPrefix(text, "#!") {
		return DirectiveShebang
	}
	if line <= 2 && codingRe.MatchString(text) {
		return DirectiveCoding
	}
	body := strings.TrimLeft(text, "# \t")
	for _, p := range pragmas {
		if p != "" && strings.HasPrefix(body, p) {
			return DirectivePragma
		}
	}
	return NotDirective
}
