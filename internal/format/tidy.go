package format

import (
	"strings"

	"comform/internal/token"
)

// Tidy is the builtin whitespace pass: it drops trailing blanks on every line,
// collapses blank lines at the end of the file and makes a non-empty file end
// with a line break. Whitespace inside string literals is left alone.
func Tidy(tokens []token.Token) []token.Token {
	nl := DetectNewline(tokens)
	out := make([]token.Token, 0, len(tokens)+1)
	for _, t := range tokens {
		switch t.Kind {
		case token.Newline, token.EOF:
			t.Leading = ""
		case token.Comment, token.Directive:
			t.Text = strings.TrimRight(t.Text, " \t\f")
		}
		out = append(out, t)
	}

	eof := token.Token{Kind: token.EOF}
	if n := len(out); n > 0 && out[n-1].Kind == token.EOF {
		eof = out[n-1]
		out = out[:n-1]
	}

	end := len(out)
	for end > 0 && out[end-1].Kind == token.Newline {
		end--
	}
	if end == 0 {
		return append(out[:0], eof)
	}
	if end < len(out) {
		out = out[:end+1]
	} else {
		out = append(out, token.Token{Kind: token.Newline, Text: nl})
	}
	return append(out, eof)
}
