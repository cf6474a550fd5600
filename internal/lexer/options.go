package lexer

import (
	"comform/internal/diag"
	"comform/internal/source"
)

// Options configures a Lexer.
type Options struct {
	Reporter diag.Reporter // may be nil; errors are then dropped but lexing goes on
	// TabWidth is used for display columns; zero means source.DefaultTabWidth.
	TabWidth int
	// Pragmas are comment prefixes treated as directives; nil means
	// token.DefaultPragmas, an empty slice disables pragma detection.
	Pragmas []string
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(diag.NewError(code, sp, msg))
	}
}
