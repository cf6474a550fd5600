package driver

import (
	"comform/internal/comment"
	"comform/internal/diag"
	"comform/internal/lexer"
	"comform/internal/source"
	"comform/internal/token"
)

// TokenizeResult is what the inspection commands print.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Groups  []comment.Group
	Bag     *diag.Bag
}

// Tokenize lexes one Python file and groups its comments. Lexing problems
// are left in Bag rather than returned.
func Tokenize(path string, opts Options) (*TokenizeResult, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = defaultMaxDiagnostics
	}
	bag := diag.NewBag(maxDiag)
	tokens := lexer.Tokenize(file, lexer.Options{
		Reporter: diag.BagReporter{Bag: bag},
		TabWidth: opts.TabWidth,
		Pragmas:  opts.Pragmas,
	})
	bag.Sort()

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Groups:  comment.Groups(tokens),
		Bag:     bag,
	}, nil
}
