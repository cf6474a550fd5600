package format

import (
	"comform/internal/token"
)

// Print serialises tokens. A stream fresh from the lexer prints back to the
// exact bytes it was lexed from.
func Print(tokens []token.Token) []byte {
	size := 0
	for i := range tokens {
		size += len(tokens[i].Leading) + len(tokens[i].Text)
	}
	w := NewWriter(size)
	for i := range tokens {
		w.WriteToken(tokens[i])
	}
	return w.Bytes()
}
