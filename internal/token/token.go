package token

import (
	"comform/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	// Leading is the horizontal whitespace between the previous token and this
	// one on the same physical line.
	Leading string
	// Line is 1-based; zero for synthesized tokens.
	Line int
	// Col is the 0-based display column of the first byte of Text.
	Col int
	// LineText is the physical source line holding the token, without its
	// terminator.
	LineText string
}

// IsComment reports whether the token takes part in comment grouping.
func (t Token) IsComment() bool { return t.Kind == Comment }

// IsNewline reports whether the token is a logical line break.
func (t Token) IsNewline() bool { return t.Kind == Newline }

// Synthetic reports whether the token was produced by a rewrite rather than
// lexed from a file.
func (t Token) Synthetic() bool { return t.Line == 0 }

// Width returns the display width of Leading+Text starting at column 0.
func (t Token) Width(tabWidth int) int {
	return source.Width(t.Leading+t.Text, tabWidth)
}
