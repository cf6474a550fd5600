// Package wrap fills a paragraph into lines of a fixed display width.
//
// Words are never split: a word wider than the remaining budget goes onto a
// line of its own even when that line then exceeds Width.
package wrap

import (
	"strings"

	"comform/internal/source"
)

// Options describes one wrap request.
type Options struct {
	// Width is the maximum display width of a line, prefix included.
	Width int
	// Initial prefixes the first line, Subsequent every other line.
	Initial    string
	Subsequent string
	// TabWidth is used to measure prefixes holding tabs.
	TabWidth int
}

// Words splits text on ASCII whitespace only. Other Unicode spaces, such as
// U+00A0, stay inside their word.
func Words(text string) []string {
	return strings.FieldsFunc(text, isBreakSpace)
}

func isBreakSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// Lines splits text into Words and greedily refills them. Empty or blank
// text yields no lines.
func Lines(text string, opts Options) []string {
	words := Words(text)
	if len(words) == 0 {
		return nil
	}

	lines := make([]string, 0, 1+len(text)/max(opts.Width, 1))
	var sb strings.Builder
	col, n := startLine(&sb, opts.Initial, opts.TabWidth), 0
	for _, w := range words {
		ww := source.Width(w, opts.TabWidth)
		if n > 0 && col+1+ww > opts.Width {
			lines = append(lines, sb.String())
			sb.Reset()
			col, n = startLine(&sb, opts.Subsequent, opts.TabWidth), 0
		}
		if n > 0 {
			sb.WriteByte(' ')
			col++
		}
		sb.WriteString(w)
		col += ww
		n++
	}
	return append(lines, sb.String())
}

func startLine(sb *strings.Builder, prefix string, tabWidth int) int {
	sb.WriteString(prefix)
	return source.Width(prefix, tabWidth)
}

// Overlong reports whether line exceeds width for a reason other than a
// single word that cannot fit behind prefix.
func Overlong(line, prefix string, width, tabWidth int) bool {
	if source.Width(line, tabWidth) <= width {
		return false
	}
	body := strings.TrimPrefix(line, prefix)
	return len(Words(body)) > 1
}
