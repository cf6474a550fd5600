package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comform/internal/comment"
	"comform/internal/diag"
	"comform/internal/lexer"
	"comform/internal/source"
	"comform/internal/token"
)

func lex(t *testing.T, src string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	return lexer.Tokenize(fs.Get(fs.AddVirtual("t.py", []byte(src))), lexer.Options{})
}

func TestFormatTokensPretty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatTokensPretty(&buf, lex(t, "x = 1  # hi\n")))
	out := buf.String()
	assert.Contains(t, out, `Comment         "# hi" at 1:7 (leading "  ")`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "at 2:0"), out)
}

func TestFormatTokensJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatTokensJSON(&buf, lex(t, "# a\n")))
	var got []TokenOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "Comment", got[0].Kind)
	assert.Equal(t, "Newline", got[1].Kind)
	assert.Equal(t, "EOF", got[2].Kind)
}

func TestFormatGroups(t *testing.T) {
	groups := comment.Groups(lex(t, "x = 1  # alpha beta\n# gamma\n"))
	require.Len(t, groups, 1)
	opts := comment.Options{LineLength: 88}

	var buf bytes.Buffer
	require.NoError(t, FormatGroupsPretty(&buf, groups, opts))
	assert.Equal(t,
		"group 1: line 1, 3 tokens, aligned, col 7 -> 7\n"+
			"  text: \"alpha beta gamma\"\n"+
			"  |   # alpha beta gamma\n",
		buf.String())

	buf.Reset()
	require.NoError(t, FormatGroupsJSON(&buf, groups, opts))
	var got []GroupOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "aligned", got[0].Rule)
	assert.Equal(t, 3, got[0].Tokens)
}

func TestPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.py", []byte("x = 'abc\n"))
	d := diag.NewError(diag.LexUnterminatedString, source.Span{File: id, Start: 4, End: 8}, "unterminated string literal").
		WithNote(source.Span{File: id, Start: 0, End: 1}, "statement starts here")

	var buf bytes.Buffer
	Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{ShowNotes: true})
	assert.Equal(t,
		"bad.py:1:5: error LEX1002: unterminated string literal\n"+
			"   1 | x = 'abc\n"+
			"     |     ^~~~\n"+
			"bad.py:1:1: note: statement starts here\n",
		buf.String())
}

func TestJSONDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.py", []byte("a\nx = 'abc\n"))
	diags := []diag.Diagnostic{
		diag.NewError(diag.LexUnterminatedString, source.Span{File: id, Start: 6, End: 10}, "unterminated"),
		diag.New(diag.SevWarning, diag.LexInfo, source.Span{File: id}, "info"),
	}

	out := BuildDiagnosticsOutput(diags, fs, JSONOpts{IncludePositions: true, Max: 1})
	require.Equal(t, 1, out.Count)
	loc := out.Diagnostics[0].Location
	assert.Equal(t, "bad.py", loc.File)
	assert.Equal(t, uint32(2), loc.StartLine)
	assert.Equal(t, uint32(5), loc.StartCol)
	assert.Equal(t, "LEX1002", out.Diagnostics[0].Code)

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, diags, fs, JSONOpts{PathMode: PathModeBasename}))
	assert.Contains(t, buf.String(), `"count": 2`)
	assert.NotContains(t, buf.String(), "start_line")
}

func TestUnifiedDiff(t *testing.T) {
	before := []byte("x = 1\n# a\n")
	after := []byte("x = 1\n# b\n")

	text, err := UnifiedDiff("a.py", before, before, 0)
	require.NoError(t, err)
	assert.Empty(t, text)

	text, err = UnifiedDiff("a.py", before, after, 0)
	require.NoError(t, err)
	assert.Contains(t, text, "--- a.py")
	assert.Contains(t, text, "+++ a.py")
	assert.Contains(t, text, "-# a\n")
	assert.Contains(t, text, "+# b\n")

	var plain, colored bytes.Buffer
	require.NoError(t, WriteDiff(&plain, "a.py", before, after, DiffOpts{}))
	assert.Equal(t, text, plain.String())
	require.NoError(t, WriteDiff(&colored, "a.py", before, after, DiffOpts{Color: true}))
	assert.Contains(t, colored.String(), "\x1b[")
	assert.Contains(t, colored.String(), "# b")
}

func TestFormatPath(t *testing.T) {
	assert.Equal(t, "mod.py", formatPath("pkg/mod.py", PathModeBasename, ""))
	assert.Equal(t, "pkg/mod.py", formatPath("pkg/mod.py", PathModeAuto, ""))
	assert.Equal(t, "mod.py", formatPath("pkg/mod.py", PathModeRelative, "pkg"))
}
