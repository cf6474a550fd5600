// Package token defines the lexical tokens of a Python source file as seen by
// the comment reflower.
// Invariants:
//   - Token.Text is a slice of the original source (no copies) for lexed tokens.
//   - Printing Leading+Text of every token in order reproduces the file bytes.
//   - Token.Span matches Text exactly; Leading sits immediately before Span.Start.
//   - Only three kinds matter for grouping: Comment, Newline and everything else.
//     Directive comments (shebang, coding cookie, pragmas) count as everything else.
//   - Tokens built by the reflower have an empty Span and Line == 0.
package token
