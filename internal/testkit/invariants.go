// Package testkit holds invariant checks shared by unit tests and fuzz
// harnesses.
package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"comform/internal/comment"
	"comform/internal/source"
	"comform/internal/token"
	"comform/internal/wrap"
)

// CheckTokenInvariants verifies that tokens tile file exactly:
// 1) every Leading and Text is the file content at its position
// 2) consecutive tokens leave no gap and never overlap
// 3) the stream ends with one EOF at the end of the content
func CheckTokenInvariants(file *source.File, tokens []token.Token) error {
	if file == nil {
		return fmt.Errorf("nil file")
	}
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		return fmt.Errorf("token stream does not end with EOF")
	}
	lenContent, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var pos uint32
	for i, tok := range tokens {
		if tok.Kind == token.EOF && i != len(tokens)-1 {
			return fmt.Errorf("EOF at token %d of %d", i, len(tokens))
		}
		sp := tok.Span
		if sp.File != file.ID {
			return fmt.Errorf("token %d span file mismatch: got=%d want=%d", i, sp.File, file.ID)
		}
		lead, err := safecast.Conv[uint32](len(tok.Leading))
		if err != nil {
			return fmt.Errorf("token %d leading overflow: %w", i, err)
		}
		if sp.Start != pos+lead {
			return fmt.Errorf("token %d starts at %d, want %d", i, sp.Start, pos+lead)
		}
		if sp.End < sp.Start || sp.End > lenContent {
			return fmt.Errorf("token %d span %v is outside the content (%d bytes)", i, sp, lenContent)
		}
		if got := string(file.Content[pos:sp.Start]); got != tok.Leading {
			return fmt.Errorf("token %d leading %q, content has %q", i, tok.Leading, got)
		}
		if got := string(file.Content[sp.Start:sp.End]); got != tok.Text {
			return fmt.Errorf("token %d text %q, content has %q", i, tok.Text, got)
		}
		pos = sp.End
	}
	if pos != lenContent {
		return fmt.Errorf("tokens end at %d, content has %d bytes", pos, lenContent)
	}
	return nil
}

// CheckGroupInvariants verifies that groups are ordered, disjoint slices of
// tokens made of alternating comments and line breaks, starting and ending
// with a comment.
func CheckGroupInvariants(tokens []token.Token, groups []comment.Group) error {
	next := 0
	for gi, g := range groups {
		if g.Len() == 0 {
			return fmt.Errorf("group %d is empty", gi)
		}
		if g.Start < next {
			return fmt.Errorf("group %d starts at %d, overlapping the previous group", gi, g.Start)
		}
		if g.Start+g.Len() > len(tokens) {
			return fmt.Errorf("group %d runs past the token stream", gi)
		}
		for i, tok := range g.Tokens {
			want := token.Comment
			if i%2 == 1 {
				want = token.Newline
			}
			if tok.Kind != want {
				return fmt.Errorf("group %d token %d is %v, want %v", gi, i, tok.Kind, want)
			}
			if tok != tokens[g.Start+i] {
				return fmt.Errorf("group %d token %d differs from the stream", gi, i)
			}
		}
		if g.EndsWithNewline() {
			return fmt.Errorf("group %d ends with a line break", gi)
		}
		next = g.Start + g.Len()
	}
	return nil
}

// CheckReflowInvariants verifies that reflowed keeps the words of g in order
// and that no line is longer than the limit unless it holds a single word
// that cannot fit.
func CheckReflowInvariants(g comment.Group, reflowed []token.Token, opts comment.Options) error {
	if g.Text() == "" {
		return nil
	}
	layout := comment.Plan(g, opts)
	tab := opts.TabWidth
	if tab <= 0 {
		tab = source.DefaultTabWidth
	}

	var words []string
	line := 0
	for _, tok := range reflowed {
		if tok.Kind != token.Comment {
			continue
		}
		var full, prefix string
		if line == 0 {
			full = strings.Repeat(" ", layout.InitialColumn) + tok.Text
			prefix = strings.Repeat(" ", layout.InitialColumn) + "# "
		} else {
			full = tok.Leading + tok.Text
			prefix = layout.Continuation + "# "
		}
		if !strings.HasPrefix(full, prefix) {
			return fmt.Errorf("line %d %q does not start with %q", line, full, prefix)
		}
		if wrap.Overlong(full, prefix, opts.LineLength, tab) {
			return fmt.Errorf("line %d %q is longer than %d", line, full, opts.LineLength)
		}
		words = append(words, wrap.Words(strings.TrimPrefix(full, prefix))...)
		line++
	}

	want := wrap.Words(g.Text())
	if strings.Join(words, " ") != strings.Join(want, " ") {
		return fmt.Errorf("words changed: got %q, want %q", words, want)
	}
	return nil
}
