package format

import (
	"bytes"

	"comform/internal/token"
)

// DetectNewline returns the text of the first line break token, or "\n".
func DetectNewline(tokens []token.Token) string {
	for i := range tokens {
		if tokens[i].Kind == token.Newline {
			return tokens[i].Text
		}
	}
	return "\n"
}

// NormalizeNewlines converts "\r\n" and lone "\r" to "\n".
func NormalizeNewlines(b []byte) []byte {
	if bytes.IndexByte(b, '\r') < 0 {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\r' {
			out = append(out, b[i])
			continue
		}
		out = append(out, '\n')
		if i+1 < len(b) && b[i+1] == '\n' {
			i++
		}
	}
	return out
}

// ApplyNewline rewrites every "\n" in LF-normalised b to nl.
func ApplyNewline(b []byte, nl string) []byte {
	if nl == "" || nl == "\n" {
		return b
	}
	return bytes.ReplaceAll(b, []byte{'\n'}, []byte(nl))
}
