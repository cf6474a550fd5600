package style

import (
	"context"

	"comform/internal/diag"
	"comform/internal/format"
	"comform/internal/lexer"
	"comform/internal/source"
)

// Tidy is the builtin formatter: trailing whitespace, blank lines at the end
// of the file and the final line break. Code is not touched.
type Tidy struct{}

func (Tidy) Name() string { return Builtin }

func (Tidy) Style(_ context.Context, src []byte, _ int) ([]byte, error) {
	fs := source.NewFileSet()
	id := fs.Add("<builtin>", src, source.FileVirtual)
	bag := diag.NewBag(8)
	toks := lexer.Tokenize(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		return nil, &diag.TokenizeError{Path: "<builtin>", Diagnostics: bag.Errors(), Files: fs}
	}
	return format.Print(format.Tidy(toks)), nil
}

// Nop leaves the source as it is.
type Nop struct{}

func (Nop) Name() string { return None }

func (Nop) Style(_ context.Context, src []byte, _ int) ([]byte, error) {
	return src, nil
}
