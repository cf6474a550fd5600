package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("pkg/mod.py", []byte("x = 1\n"), 0)
	if id1 != 0 {
		t.Fatalf("expected first FileID to be 0, got %d", id1)
	}
	id2 := fs.Add("pkg/./mod.py", []byte("x = 2\n"), 0)
	if id2 != 1 {
		t.Fatalf("expected second FileID to be 1, got %d", id2)
	}

	latest, ok := fs.GetLatest("pkg/mod.py")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d, %v; want %d, true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "x = 1\n" {
		t.Errorf("old revision content = %q", got)
	}
}

func TestLineIndexTerminators(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []uint32
	}{
		{"empty", "", nil},
		{"lf", "a\nb\n", []uint32{1, 3}},
		{"crlf", "a\r\nb\r\n", []uint32{2, 5}},
		{"lone cr", "a\rb", []uint32{1}},
		{"mixed", "a\r\n\nb\r", []uint32{2, 3, 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := buildLineIndex([]byte(tc.src))
			if len(got) != len(tc.want) {
				t.Fatalf("LineIdx = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("LineIdx = %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.py", []byte("ab\r\ncd\nef"))

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // '\r'
		{3, LineCol{1, 4}}, // '\n'
		{4, LineCol{2, 1}},
		{7, LineCol{3, 1}},
		{9, LineCol{3, 3}},
	}
	for _, tc := range cases {
		start, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if start != tc.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tc.off, start, tc.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("a.py", []byte("def f():\r\n    # note\r\n\r\nreturn")))

	want := []string{"def f():", "    # note", "", "return", ""}
	for i, w := range want {
		if got := f.GetLine(uint32(i + 1)); got != w {
			t.Errorf("GetLine(%d) = %q, want %q", i+1, got, w)
		}
	}
	if got := f.GetLine(0); got != "" {
		t.Errorf("GetLine(0) = %q, want empty", got)
	}
	if got := f.LineStart(2); got != 10 {
		t.Errorf("LineStart(2) = %d, want 10", got)
	}
}

func TestLoadKeepsCRLFAndStripsBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "m.py")
	raw := append(append([]byte{}, utf8BOM...), []byte("a = 1\r\n# c\r\n")...)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if got := string(f.Content); got != "a = 1\r\n# c\r\n" {
		t.Errorf("Content = %q", got)
	}
	if f.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM")
	}
	if f.Flags&FileVirtual != 0 {
		t.Error("loaded file must not be virtual")
	}
	if got := string(WithBOM(f.Content)); got != string(raw) {
		t.Errorf("WithBOM round trip = %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.py")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	if got := a.Cover(b); got != (Span{File: 1, Start: 2, End: 8}) {
		t.Errorf("Cover = %v", got)
	}
	if got := a.Cover(Span{File: 2, Start: 0, End: 1}); got != a {
		t.Errorf("Cover across files = %v", got)
	}
	if !(Span{Start: 3, End: 3}).Empty() || a.Len() != 4 {
		t.Error("Empty/Len mismatch")
	}
}

func TestWidth(t *testing.T) {
	cases := []struct {
		s    string
		tab  int
		want int
	}{
		{"", 8, 0},
		{"    ", 8, 4},
		{"\t", 8, 8},
		{"  \t", 8, 8},
		{"\t", 4, 4},
		{"x = 1  ", 8, 7},
		{"日本", 8, 4},
		{"é", 8, 1},
	}
	for _, tc := range cases {
		if got := Width(tc.s, tc.tab); got != tc.want {
			t.Errorf("Width(%q, %d) = %d, want %d", tc.s, tc.tab, got, tc.want)
		}
	}
	if got := Advance(3, "\tx", 4); got != 5 {
		t.Errorf("Advance = %d, want 5", got)
	}
}
