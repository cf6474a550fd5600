// Package format turns token streams back into text.
//
// It splices rewritten token runs into the original stream by index, prints
// tokens, deals with line ending styles and carries the builtin whitespace
// pass used when no external formatter is available.
// Dependencies: internal/token, internal/diag.
package format
