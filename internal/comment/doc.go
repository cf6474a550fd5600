// Package comment finds runs of '#' comments in a token stream and refills
// each run as one paragraph.
//
// A run starts at a Comment token and extends over every following Comment,
// and over every Newline whose next token is a Comment. Anything else,
// including a second Newline (a blank line) or a Directive, ends the run and
// stays outside it.
package comment
