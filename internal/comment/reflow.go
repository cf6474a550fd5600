package comment

import (
	"strings"

	"comform/internal/source"
	"comform/internal/token"
	"comform/internal/wrap"
)

// Options controls reflow. There are no package defaults: callers pass the
// configured line length.
type Options struct {
	LineLength int
	TabWidth   int
	// Newline is written between emitted lines; empty means "\n".
	Newline string
}

// Rule names the continuation indentation policy picked for a group.
type Rule uint8

const (
	// RuleOwnLine aligns continuation lines with the code block.
	RuleOwnLine Rule = iota
	// RuleAligned keeps continuation text under the first comment.
	RuleAligned
	// RuleHalfWidth starts continuation text at half the line length.
	RuleHalfWidth
)

func (r Rule) String() string {
	switch r {
	case RuleOwnLine:
		return "own-line"
	case RuleAligned:
		return "aligned"
	case RuleHalfWidth:
		return "half-width"
	}
	return "?"
}

// Layout is the indentation decision for one group.
type Layout struct {
	Rule Rule
	// InitialColumn is where the first line's '#' sits.
	InitialColumn int
	// Continuation prefixes every line after the first, before "# ".
	Continuation string
	// ContinuationColumn is the display column where continuation lines
	// start their "# " text marker.
	ContinuationColumn int
}

// Plan computes the layout of g without wrapping it.
func Plan(g Group, opts Options) Layout {
	col := g.InitialColumn()
	indent := g.CodeBlockIndent()
	tab := tabWidth(opts)

	if g.StartsOnOwnLine() {
		return Layout{
			Rule:               RuleOwnLine,
			InitialColumn:      col,
			Continuation:       indent,
			ContinuationColumn: source.Width(indent, tab),
		}
	}

	rule, target := RuleHalfWidth, opts.LineLength/2
	// exact comparison against two thirds, no rounding of the threshold
	if 3*col < 2*opts.LineLength {
		rule, target = RuleAligned, col
	}
	head := indent + "#"
	pad := max(target-source.Width(head, tab), 0)
	cont := head + strings.Repeat(" ", pad)
	return Layout{
		Rule:               rule,
		InitialColumn:      col,
		Continuation:       cont,
		ContinuationColumn: source.Width(cont, tab),
	}
}

// Reflow refills g and returns the tokens that replace it. A group without
// any comment text is returned as is.
func Reflow(g Group, opts Options) []token.Token {
	text := g.Text()
	if text == "" {
		return g.Tokens
	}
	layout := Plan(g, opts)
	tab := tabWidth(opts)

	placeholder := strings.Repeat("_", layout.InitialColumn)
	lines := wrap.Lines(text, wrap.Options{
		Width:      opts.LineLength,
		Initial:    placeholder + "# ",
		Subsequent: layout.Continuation + "# ",
		TabWidth:   tab,
	})
	lines[0] = strings.TrimPrefix(lines[0], placeholder)

	nl := opts.Newline
	if nl == "" {
		nl = "\n"
	}

	out := make([]token.Token, 0, 2*len(lines))
	for i, line := range lines {
		if i > 0 {
			out = append(out, token.Token{Kind: token.Newline, Text: nl})
		}
		tok := token.Token{Kind: token.Comment, Text: line}
		if i == 0 {
			tok.Leading = g.Tokens[0].Leading
			tok.Col = layout.InitialColumn
		} else {
			cut := strings.IndexByte(line, '#')
			tok.Leading, tok.Text = line[:cut], line[cut:]
			tok.Col = source.Width(tok.Leading, tab)
		}
		out = append(out, tok)
	}
	if g.EndsWithNewline() {
		out = append(out, token.Token{Kind: token.Newline, Text: nl})
	}
	return out
}

func tabWidth(opts Options) int {
	if opts.TabWidth <= 0 {
		return source.DefaultTabWidth
	}
	return opts.TabWidth
}
