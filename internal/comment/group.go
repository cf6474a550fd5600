package comment

import (
	"strings"

	"comform/internal/token"
)

// Group is one run of comment lines. Tokens aliases the file's token slice
// and must not be modified.
type Group struct {
	Tokens []token.Token
	// Start is the index of Tokens[0] in the file's token stream.
	Start int
}

// Groups partitions the comment tokens of a file into maximal runs, in
// source order.
func Groups(tokens []token.Token) []Group {
	var groups []Group
	for i := 0; i < len(tokens); {
		if tokens[i].Kind != token.Comment {
			i++
			continue
		}
		j := i + 1
		for j < len(tokens) && continues(tokens, j) {
			j++
		}
		groups = append(groups, Group{Tokens: tokens[i:j:j], Start: i})
		i = j
	}
	return groups
}

func continues(tokens []token.Token, j int) bool {
	switch tokens[j].Kind {
	case token.Comment:
		return true
	case token.Newline:
		return j+1 < len(tokens) && tokens[j+1].Kind == token.Comment
	default:
		return false
	}
}

// Len is the number of original tokens the group covers.
func (g Group) Len() int { return len(g.Tokens) }

// Comments returns the comment tokens of the group.
func (g Group) Comments() []token.Token {
	out := make([]token.Token, 0, (len(g.Tokens)+1)/2)
	for _, t := range g.Tokens {
		if t.Kind == token.Comment {
			out = append(out, t)
		}
	}
	return out
}

// Text is the paragraph: every comment with '#', spaces and tabs trimmed from
// both ends, empty ones dropped, joined by single spaces.
func (g Group) Text() string {
	comments := g.Comments()
	parts := make([]string, 0, len(comments))
	for _, t := range comments {
		if s := strings.Trim(t.Text, "# \t"); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// InitialColumn is the display column of the first comment.
func (g Group) InitialColumn() int { return g.Tokens[0].Col }

// CodeBlockIndent is the leading whitespace of the first comment's line.
func (g Group) CodeBlockIndent() string {
	line := g.Tokens[0].LineText
	return line[:len(line)-len(strings.TrimLeft(line, " \t\f"))]
}

// StartsOnOwnLine reports whether nothing but indentation precedes the first
// comment on its line, i.e. InitialColumn equals the width of CodeBlockIndent.
func (g Group) StartsOnOwnLine() bool {
	line := g.Tokens[0].LineText
	return strings.HasPrefix(line[len(g.CodeBlockIndent()):], "#")
}

// EndsWithNewline reports whether the last token of the group is a line break.
func (g Group) EndsWithNewline() bool {
	return g.Tokens[len(g.Tokens)-1].Kind == token.Newline
}
