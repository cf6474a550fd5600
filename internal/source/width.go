package source

import (
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

// DefaultTabWidth is the tab stop used by the Python tokenizer for indentation.
const DefaultTabWidth = 8

// Width returns the number of terminal columns s occupies when it starts at
// column 0. Tabs advance to the next multiple of tabWidth; combining sequences
// are measured in their composed form.
func Width(s string, tabWidth int) int {
	return Advance(0, s, tabWidth)
}

// Advance returns the column reached after writing s starting at col.
func Advance(col int, s string, tabWidth int) int {
	if !norm.NFC.IsNormalString(s) {
		s = norm.NFC.String(s)
	}
	for _, r := range s {
		if r == '\t' {
			if tabWidth <= 0 {
				tabWidth = DefaultTabWidth
			}
			col += tabWidth - col%tabWidth
			continue
		}
		col += runewidth.RuneWidth(r)
	}
	return col
}
