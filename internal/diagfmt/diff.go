package diagfmt

import (
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/pmezard/go-difflib/difflib"
)

// UnifiedDiff returns a unified diff between before and after, or "" when
// they are equal.
func UnifiedDiff(path string, before, after []byte, context int) (string, error) {
	if string(before) == string(after) {
		return "", nil
	}
	if context <= 0 {
		context = 3
	}
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(before)),
		B:        difflib.SplitLines(string(after)),
		FromFile: path,
		ToFile:   path,
		Context:  context,
	})
}

// WriteDiff writes the diff of one file to w, highlighted when opts.Color is
// set.
func WriteDiff(w io.Writer, path string, before, after []byte, opts DiffOpts) error {
	text, err := UnifiedDiff(path, before, after, opts.Context)
	if err != nil || text == "" {
		return err
	}
	if !opts.Color {
		_, err = io.WriteString(w, text)
		return err
	}
	return highlightDiff(w, text, opts.Style)
}

func highlightDiff(w io.Writer, text, styleName string) error {
	lexer := lexers.Get("diff")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)
	if styleName == "" {
		styleName = "monokai"
	}
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return err
	}
	return formatter.Format(w, style, it)
}
