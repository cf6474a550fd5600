package lexer

import (
	"comform/internal/source"
	"comform/internal/token"
)

// Lexer splits a Python file into the tokens the comment reflower cares
// about. Every byte of the file ends up in exactly one Leading or Text.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	line   lineCache
}

type lineCache struct {
	num   uint32
	start uint32
	text  string
}

// New returns a lexer positioned at the start of file.
func New(file *source.File, opts Options) *Lexer {
	if opts.TabWidth <= 0 {
		opts.TabWidth = source.DefaultTabWidth
	}
	if opts.Pragmas == nil {
		opts.Pragmas = token.DefaultPragmas
	}
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next token with its Leading whitespace attached.
// After the end of input it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	leading := lx.scanBlanks()
	start := lx.cursor.Mark()

	var kind token.Kind
	switch b := lx.cursor.Peek(); {
	case lx.cursor.EOF():
		kind = token.EOF
	case b == '#':
		lx.scanComment()
		kind = token.Comment
	case b == '\n' || b == '\r':
		lx.cursor.EatNewline()
		kind = token.Newline
	case b == '\\':
		kind = lx.scanContinuation()
	default:
		kind = lx.scanOther()
	}

	tok := lx.finish(kind, start)
	tok.Leading = leading
	if kind == token.Comment && token.ClassifyComment(tok.Text, tok.Line, lx.opts.Pragmas) != token.NotDirective {
		tok.Kind = token.Directive
	}
	return tok
}

func (lx *Lexer) finish(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	line, col, lineText := lx.position(sp.Start)
	return token.Token{
		Kind:     kind,
		Span:     sp,
		Text:     string(lx.file.Content[sp.Start:sp.End]),
		Line:     line,
		Col:      col,
		LineText: lineText,
	}
}

// position returns the 1-based line, the 0-based display column and the text
// of the physical line holding off.
func (lx *Lexer) position(off uint32) (line, col int, text string) {
	pos := lx.file.Position(off)
	if lx.line.num != pos.Line {
		lx.line = lineCache{
			num:   pos.Line,
			start: lx.file.LineStart(pos.Line),
			text:  lx.file.GetLine(pos.Line),
		}
	}
	col = source.Width(string(lx.file.Content[lx.line.start:off]), lx.opts.TabWidth)
	return int(pos.Line), col, lx.line.text
}

// Tokenize lexes the whole file. The result always ends with an EOF token.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	out := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}
