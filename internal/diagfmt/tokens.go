package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"comform/internal/source"
	"comform/internal/token"
)

// TokenOutput is the JSON form of a token.
type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Leading string      `json:"leading,omitempty"`
	Span    source.Span `json:"span"`
	Line    int         `json:"line"`
	Col     int         `json:"col"`
}

// FormatTokensPretty prints one token per line:
//
//	  3: Comment         "# note" at 1:11 (leading "  ")
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String()); err != nil {
			return err
		}
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d", tok.Line, tok.Col)
		if tok.Leading != "" {
			fmt.Fprintf(w, " (leading %q)", tok.Leading)
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON prints tokens as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Leading: tok.Leading,
			Span:    tok.Span,
			Line:    tok.Line,
			Col:     tok.Col,
		})
		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
