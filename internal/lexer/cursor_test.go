package lexer

import (
	"testing"

	"comform/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(content))
	return fs.Get(id)
}

func TestCursorSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	for _, want := range []byte("a\nb") {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Peek = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() {
		t.Fatal("expected EOF at end")
	}
	if cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Error("Peek/Bump at EOF must return 0")
	}
}

func TestCursorPeek2Peek3(t *testing.T) {
	cursor := NewCursor(createFile("abc"))
	if b0, b1, ok := cursor.Peek2(); !ok || b0 != 'a' || b1 != 'b' {
		t.Errorf("Peek2 = %q %q %v", b0, b1, ok)
	}
	if b0, b1, b2, ok := cursor.Peek3(); !ok || b0 != 'a' || b1 != 'b' || b2 != 'c' {
		t.Errorf("Peek3 = %q %q %q %v", b0, b1, b2, ok)
	}
	cursor.Bump()
	if _, _, _, ok := cursor.Peek3(); ok {
		t.Error("Peek3 must fail with two bytes left")
	}
	cursor.Bump()
	if _, _, ok := cursor.Peek2(); ok {
		t.Error("Peek2 must fail with one byte left")
	}
}

func TestCursorSpanFrom(t *testing.T) {
	cursor := NewCursor(createFile("α\nβ"))
	mark := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	sp := cursor.SpanFrom(mark)
	if sp.Start != 0 || sp.End != 2 {
		t.Errorf("span = %v, want 0-2", sp)
	}
}

func TestCursorEatNewline(t *testing.T) {
	cases := []struct {
		src  string
		ok   bool
		rest byte
	}{
		{"\nx", true, 'x'},
		{"\r\nx", true, 'x'},
		{"\rx", true, 'x'},
		{"x", false, 'x'},
	}
	for _, tc := range cases {
		cursor := NewCursor(createFile(tc.src))
		if got := cursor.EatNewline(); got != tc.ok {
			t.Errorf("EatNewline(%q) = %v", tc.src, got)
		}
		if got := cursor.Peek(); got != tc.rest {
			t.Errorf("after EatNewline(%q) Peek = %q, want %q", tc.src, got, tc.rest)
		}
	}
}

func TestCursorMarkEat(t *testing.T) {
	cursor := NewCursor(createFile("abc"))
	mark := cursor.Mark()
	if cursor.Eat('x') {
		t.Error("Eat must fail on mismatch")
	}
	if !cursor.Eat('a') {
		t.Error("Eat must succeed on match")
	}
	if sp := cursor.SpanFrom(mark); sp.Start != 0 || sp.End != 1 {
		t.Errorf("SpanFrom(mark) = %+v, want [0,1)", sp)
	}
}

func TestIsStringPrefix(t *testing.T) {
	for _, p := range []string{"r", "R", "b", "rb", "Br", "f", "fR", "u", "t"} {
		if !isStringPrefix(p) {
			t.Errorf("%q should be a string prefix", p)
		}
	}
	for _, p := range []string{"", "x", "ub", "rbf", "print"} {
		if isStringPrefix(p) {
			t.Errorf("%q should not be a string prefix", p)
		}
	}
}
