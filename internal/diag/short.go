package diag

import (
	"fmt"
	"strings"

	"comform/internal/source"
)

// FormatShort renders diagnostics one per line as "path:line:col: message".
// Positions are resolved through fs; without a file set the byte offset is
// printed instead.
func FormatShort(diags []Diagnostic, fs *source.FileSet) string {
	var sb strings.Builder
	for i, d := range diags {
		if i > 0 {
			sb.WriteByte('\n')
		}
		writeShort(&sb, d.Primary, d.Message, fs)
		for _, n := range d.Notes {
			sb.WriteString("\n  ")
			writeShort(&sb, n.Span, "note: "+n.Msg, fs)
		}
	}
	return sb.String()
}

func writeShort(sb *strings.Builder, sp source.Span, msg string, fs *source.FileSet) {
	msg = strings.ReplaceAll(msg, "\n", " ")
	if fs == nil {
		fmt.Fprintf(sb, "@%d: %s", sp.Start, msg)
		return
	}
	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	fmt.Fprintf(sb, "%s:%d:%d: %s", f.Path, start.Line, start.Col, msg)
}
