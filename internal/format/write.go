package format

import (
	"comform/internal/token"
)

// Writer accumulates printed tokens.
type Writer struct {
	buf []byte
}

// NewWriter creates a writer with room for sizeHint bytes.
func NewWriter(sizeHint int) *Writer {
	return &Writer{buf: make([]byte, 0, sizeHint)}
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// WriteString writes s verbatim.
func (w *Writer) WriteString(s string) {
	w.buf = append(w.buf, s...)
}

// WriteToken writes the token's leading whitespace followed by its text.
func (w *Writer) WriteToken(t token.Token) {
	w.WriteString(t.Leading)
	w.WriteString(t.Text)
}
