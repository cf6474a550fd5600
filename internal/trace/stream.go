package trace

import (
	"bufio"
	"io"
	"sync"

	"go.uber.org/multierr"
)

// StreamTracer writes every event as it happens.
type StreamTracer struct {
	mu     sync.Mutex
	w      io.Writer
	buf    *bufio.Writer // set when the tracer owns a file
	closer io.Closer     // set when the tracer owns a file
	level  Level
	format Format
	err    error
}

// NewStreamTracer writes to w unbuffered. The caller keeps ownership of w.
func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	if format == FormatAuto {
		format = FormatText
	}
	return &StreamTracer{w: w, level: level, format: format}
}

// newOwnedStream buffers writes to wc and closes it on Close.
func newOwnedStream(wc io.WriteCloser, level Level, format Format) *StreamTracer {
	t := NewStreamTracer(wc, level, format)
	t.buf = bufio.NewWriter(wc)
	t.closer = wc
	return t
}

// Emit writes ev. Write errors are kept for Flush and never interrupt
// formatting.
func (t *StreamTracer) Emit(ev *Event) {
	if ev == nil || !t.level.ShouldEmit(ev.Scope) {
		return
	}
	data := FormatEvent(ev, t.format)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return
	}
	var w io.Writer = t.w
	if t.buf != nil {
		w = t.buf
	}
	if _, err := w.Write(data); err != nil {
		t.err = err
	}
}

// Flush reports the first write error and drains the buffer.
func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return t.err
	}
	if t.buf != nil {
		t.err = t.buf.Flush()
	}
	return t.err
}

// Close flushes and closes an owned file.
func (t *StreamTracer) Close() error {
	err := t.Flush()
	if t.closer != nil {
		err = multierr.Append(err, t.closer.Close())
		t.closer = nil
	}
	return err
}

func (t *StreamTracer) Level() Level { return t.level }

func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
