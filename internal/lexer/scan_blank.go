package lexer

import (
	"comform/internal/diag"
	"comform/internal/token"
)

// scanBlanks consumes horizontal whitespace and returns it verbatim.
func (lx *Lexer) scanBlanks() string {
	start := lx.cursor.Mark()
	for isBlank(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	if sp.Empty() {
		return ""
	}
	return string(lx.file.Content[sp.Start:sp.End])
}

// scanComment consumes '#' up to, not including, the line terminator.
func (lx *Lexer) scanComment() {
	for !lx.cursor.EOF() && !isLineBreak(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}

// scanContinuation handles a backslash outside string literals. Together
// with its line terminator it forms one Other token so that the next physical
// line never looks like the start of a logical line.
func (lx *Lexer) scanContinuation() token.Kind {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\\'
	if lx.cursor.EatNewline() {
		return token.Other
	}
	if lx.cursor.EOF() {
		lx.errLex(diag.LexBadContinuation, lx.cursor.SpanFrom(start), "unexpected end of file after line continuation")
		return token.Invalid
	}
	lx.errLex(diag.LexBadContinuation, lx.cursor.SpanFrom(start), "unexpected character after line continuation character")
	return token.Invalid
}
