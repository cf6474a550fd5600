package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"comform/internal/diag"
	"comform/internal/source"
)

// Pretty renders diagnostics for humans. Each one prints as
//
//	<path>:<line>:<col>: <severity> <CODE>: <message>
//	   3 | x = "abc
//	     |     ^~~~
//
// followed by its notes when opts.ShowNotes is set.
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	paint := func(c *color.Color, s string) string {
		if !opts.Color {
			return s
		}
		c.EnableColor()
		return c.Sprint(s)
	}
	for i, d := range diags {
		if i > 0 {
			fmt.Fprintln(w)
		}
		sevColor := color.New(color.FgYellow, color.Bold)
		if d.Severity == diag.SevError {
			sevColor = color.New(color.FgRed, color.Bold)
		}
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			location(d.Primary, fs, opts),
			paint(sevColor, d.Severity.String()),
			d.Code.ID(),
			d.Message)
		writeSnippet(w, d.Primary, fs, func(s string) string { return paint(sevColor, s) })

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "%s: %s: %s\n", location(n.Span, fs, opts), paint(color.New(color.FgCyan), "note"), n.Msg)
		}
	}
}

func location(sp source.Span, fs *source.FileSet, opts PrettyOpts) string {
	f := fs.Get(sp.File)
	if f == nil {
		return fmt.Sprintf("@%d", sp.Start)
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(f.Path, opts.PathMode, opts.BaseDir), start.Line, start.Col)
}

func writeSnippet(w io.Writer, sp source.Span, fs *source.FileSet, paint func(string) string) {
	f := fs.Get(sp.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(sp)
	line := f.GetLine(start.Line)
	if line == "" && sp.Empty() {
		return
	}
	gutter := fmt.Sprintf("%4d | ", start.Line)
	fmt.Fprintf(w, "%s%s\n", gutter, line)

	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	pad := runewidth.StringWidth(strings.ReplaceAll(line[:col], "\t", " "))
	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		stop := min(int(end.Col)-1, len(line))
		width = max(runewidth.StringWidth(line[col:stop]), 1)
	}
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s%s%s\n", strings.Repeat(" ", len(gutter)-2)+"| ", strings.Repeat(" ", pad), paint(marker))
}
