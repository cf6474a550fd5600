package lexer

import (
	"comform/internal/token"
)

// scanOther consumes a run of code up to the next blank, comment, line break
// or continuation backslash. String literals inside the run are consumed
// whole, so a '#' or a line break inside them never ends the run.
func (lx *Lexer) scanOther() token.Kind {
	kind := token.Other
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isBlank(b) || isLineBreak(b) || b == '#' || b == '\\':
			return kind
		case isQuote(b):
			if !lx.scanString(lx.cursor.Mark(), "") {
				return token.Invalid
			}
		case isIdentStartByte(b) || b >= utf8RuneSelf:
			start := lx.cursor.Mark()
			word := lx.scanWord()
			if isQuote(lx.cursor.Peek()) && isStringPrefix(word) {
				if !lx.scanString(start, word) {
					return token.Invalid
				}
			}
		default:
			lx.cursor.Bump()
		}
	}
	return kind
}

// scanWord consumes an identifier-like word and returns it.
func (lx *Lexer) scanWord() string {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if !isIdentContinueByte(b) && b < utf8RuneSelf {
			break
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return string(lx.file.Content[sp.Start:sp.End])
}
