package diag

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comform/internal/source"
)

func TestBagLimitAndErrors(t *testing.T) {
	b := NewBag(2)
	assert.True(t, b.Add(New(SevWarning, LexInfo, source.Span{}, "w")))
	assert.True(t, b.Add(NewError(LexUnterminatedString, source.Span{Start: 3}, "e")))
	assert.False(t, b.Add(NewError(LexUnknownChar, source.Span{}, "dropped")))

	assert.Equal(t, 2, b.Len())
	assert.True(t, b.HasErrors())
	errs := b.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, LexUnterminatedString, errs[0].Code)
}

func TestBagSort(t *testing.T) {
	b := NewBag(4)
	b.Add(NewError(LexUnknownChar, source.Span{Start: 9, End: 10}, "late"))
	b.Add(New(SevWarning, LexInfo, source.Span{Start: 1, End: 2}, "warn"))
	b.Add(NewError(LexUnterminatedString, source.Span{Start: 1, End: 2}, "err"))
	b.Sort()

	got := make([]string, 0, b.Len())
	for _, d := range b.Items() {
		got = append(got, d.Message)
	}
	assert.Equal(t, []string{"err", "warn", "late"}, got)
}

func TestWithNoteDoesNotAlias(t *testing.T) {
	base := NewError(LexUnterminatedString, source.Span{Start: 1, End: 4}, "unterminated").
		WithNote(source.Span{Start: 1, End: 2}, "opened here")
	a := base.WithNote(source.Span{Start: 3}, "a")
	b := base.WithNote(source.Span{Start: 4}, "b")

	require.Len(t, base.Notes, 1)
	assert.Equal(t, "a", a.Notes[1].Msg)
	assert.Equal(t, "b", b.Notes[1].Msg)
	assert.Equal(t, "error", base.Severity.String())
	assert.Equal(t, "unknown", Severity(9).String())
}

func TestDedupReporter(t *testing.T) {
	b := NewBag(4)
	r := Dedup(BagReporter{Bag: b})
	sp := source.Span{Start: 2, End: 5}
	r.Report(NewError(LexUnterminatedString, sp, "first"))
	r.Report(NewError(LexUnterminatedString, sp, "again"))
	r.Report(NewError(LexUnknownChar, sp, "other code"))
	assert.Equal(t, 2, b.Len())
}

func TestCodeID(t *testing.T) {
	assert.Equal(t, "LEX1002", LexUnterminatedString.ID())
	assert.Equal(t, "IO4003", IONotPython.ID())
	assert.Equal(t, "CFG5001", CfgBadFile.ID())
	assert.Equal(t, "RW6001", RwSpliceOverlap.ID())
	assert.Equal(t, "E0000", UnknownCode.ID())
	assert.Equal(t, "Unknown error", Code(42).Title())
}

func TestTokenizeErrorRendersPositions(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("pkg/m.py", []byte("x = 1\ny = 'abc\n"))
	err := &TokenizeError{
		Path:  "pkg/m.py",
		Files: fs,
		Diagnostics: []Diagnostic{
			NewError(LexUnterminatedString, source.Span{File: id, Start: 10, End: 14}, "unterminated string literal"),
		},
	}
	assert.Equal(t, "pkg/m.py:2:5: unterminated string literal", err.Error())

	var te *TokenizeError
	assert.True(t, errors.As(fmt.Errorf("wrap: %w", err), &te))
	assert.Equal(t, "pkg/m.py: cannot tokenize", (&TokenizeError{Path: "pkg/m.py"}).Error())
}

func TestValidationAndInternal(t *testing.T) {
	err := fmt.Errorf("run: %w", &ValidationError{Path: "a.txt", Reason: "not a Python source file"})
	assert.True(t, IsValidation(err))
	assert.EqualError(t, err, "run: a.txt: not a Python source file")

	ie := Internalf("edit %d overlaps edit %d", 2, 1)
	assert.ErrorIs(t, ie, ErrInternal)
	assert.False(t, IsValidation(ie))
}
