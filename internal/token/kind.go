package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input. Its Leading holds trailing blanks.
	EOF
	// Comment is a '#' comment up to (not including) the line terminator.
	Comment
	// Newline is a physical line terminator outside string literals:
	// "\n", "\r\n" or "\r".
	Newline
	// Directive is a comment that must never be rewritten.
	Directive
	// Other is a blank-delimited run of code. String literals (including their
	// line breaks) and backslash continuations are always inside one Other.
	Other
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Comment:   "Comment",
	Newline:   "Newline",
	Directive: "Directive",
	Other:     "Other",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}
