package lexer

import (
	"strings"

	"comform/internal/diag"
)

// scanString consumes a string literal whose opening quote is under the
// cursor. start marks the beginning of the prefix (if any) and is used for
// diagnostics. Returns false when the literal is unterminated; the cursor is
// then left on the offending line break or at EOF.
func (lx *Lexer) scanString(start Mark, prefix string) bool {
	q := lx.cursor.Bump()
	triple := false
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == q && b1 == q {
		lx.cursor.Bump()
		lx.cursor.Bump()
		triple = true
	}
	formatted := strings.ContainsAny(prefix, "fFtT")
	depth := 0 // replacement field nesting inside f-strings

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			lx.cursor.Bump()
			if !lx.cursor.EatNewline() {
				lx.cursor.Bump()
			}
		case formatted && b == '{':
			lx.cursor.Bump()
			if depth == 0 && lx.cursor.Eat('{') {
				continue
			}
			depth++
		case formatted && b == '}' && depth > 0:
			lx.cursor.Bump()
			depth--
		case formatted && depth > 0 && isQuote(b):
			if !lx.scanString(lx.cursor.Mark(), "") {
				return false
			}
		case b == q:
			if !triple {
				lx.cursor.Bump()
				return true
			}
			if b0, b1, b2, ok := lx.cursor.Peek3(); ok && b0 == q && b1 == q && b2 == q {
				lx.cursor.Bump()
				lx.cursor.Bump()
				lx.cursor.Bump()
				return true
			}
			lx.cursor.Bump()
		case isLineBreak(b) && !triple:
			lx.errLex(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "unterminated string literal")
			return false
		default:
			lx.cursor.Bump()
		}
	}

	msg := "unterminated string literal"
	if triple {
		msg = "unterminated triple-quoted string literal"
	}
	lx.errLex(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), msg)
	return false
}

// isStringPrefix reports whether word is a valid Python string prefix.
func isStringPrefix(word string) bool {
	if word == "" || len(word) > 2 {
		return false
	}
	switch strings.ToLower(word) {
	case "r", "u", "b", "f", "t", "br", "rb", "fr", "rf", "tr", "rt":
		return true
	}
	return false
}
