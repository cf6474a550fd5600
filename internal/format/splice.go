package format

import (
	"cmp"
	"slices"

	"comform/internal/diag"
	"comform/internal/token"
)

// Edit replaces Len tokens starting at index Start of the original stream.
type Edit struct {
	Start       int
	Len         int
	Replacement []token.Token
}

// Splice applies edits in one pass over tokens. Edits may be given in any
// order; they must not overlap and must lie inside the stream.
func Splice(tokens []token.Token, edits []Edit) ([]token.Token, error) {
	if len(edits) == 0 {
		return tokens, nil
	}
	sorted := slices.Clone(edits)
	slices.SortStableFunc(sorted, func(a, b Edit) int { return cmp.Compare(a.Start, b.Start) })

	size, prevEnd := len(tokens), 0
	for i, e := range sorted {
		if e.Start < 0 || e.Len < 0 || e.Start+e.Len > len(tokens) {
			return nil, diag.Internalf("%s: edit [%d,+%d) outside stream of %d tokens",
				diag.RwSpliceRange.ID(), e.Start, e.Len, len(tokens))
		}
		if i > 0 && e.Start < prevEnd {
			return nil, diag.Internalf("%s: edit at %d overlaps previous edit ending at %d",
				diag.RwSpliceOverlap.ID(), e.Start, prevEnd)
		}
		prevEnd = e.Start + e.Len
		size += len(e.Replacement) - e.Len
	}

	out := make([]token.Token, 0, size)
	pos := 0
	for _, e := range sorted {
		out = append(out, tokens[pos:e.Start]...)
		out = append(out, e.Replacement...)
		pos = e.Start + e.Len
	}
	return append(out, tokens[pos:]...), nil
}
