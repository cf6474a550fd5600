package lexer

import "unicode/utf8"

const utf8RuneSelf = utf8.RuneSelf

func isBlank(b byte) bool {
	return b == ' ' || b == '\t' || b == '\f'
}

func isLineBreak(b byte) bool {
	return b == '\n' || b == '\r'
}

func isQuote(b byte) bool {
	return b == '\'' || b == '"'
}

// ASCII fast path for identifiers; bytes >= utf8.RuneSelf are accepted by the
// callers as part of a word.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || (b >= '0' && b <= '9')
}
