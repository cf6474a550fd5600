package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"off": LevelOff, "": LevelOff, "ERROR": LevelError, "phase": LevelPhase,
		"Detail": LevelDetail, " debug ": LevelDebug,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	assert.ErrorContains(t, err, "off|error|phase|detail|debug")
}

func TestShouldEmit(t *testing.T) {
	assert.True(t, LevelPhase.ShouldEmit(ScopePass))
	assert.False(t, LevelPhase.ShouldEmit(ScopeFile))
	assert.True(t, LevelDetail.ShouldEmit(ScopeFile))
	assert.False(t, LevelDetail.ShouldEmit(ScopeGroup))
	assert.True(t, LevelDebug.ShouldEmit(ScopeGroup))
	assert.False(t, LevelError.ShouldEmit(ScopeDriver))
	assert.False(t, Level(42).ShouldEmit(ScopeDriver))
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithTracer(context.Background(), NewStreamTracer(&buf, LevelDetail, FormatText))

	ctx, root := Start(ctx, ScopeDriver, "format")
	fileCtx, file := StartFile(ctx, "a.py")
	_, group := Start(fileCtx, ScopeGroup, "group")
	assert.Nil(t, group)
	group.End("")
	_, pass := Start(fileCtx, ScopePass, "reflow")
	pass.End("2 groups")
	file.Annotate("groups", "2").Annotate("changed", "true").End("ok")
	root.End("")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "→ format")
	assert.Contains(t, lines[1], "    → file:a.py")
	assert.Contains(t, lines[2], "  → reflow @a.py")
	assert.Contains(t, lines[3], "← reflow @a.py (2 groups)")
	assert.Contains(t, lines[4], "← file:a.py (ok) {changed=true, groups=2}")
	assert.NotContains(t, out, "→ group")
}

func TestFileAttributionSurvivesFiltering(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithTracer(context.Background(), NewStreamTracer(&buf, LevelPhase, FormatText))

	ctx, file := StartFile(ctx, "pkg/b.py")
	assert.Nil(t, file)
	assert.Equal(t, "pkg/b.py", FileOf(ctx))
	_, pass := Start(ctx, ScopePass, "lex")
	pass.End("")
	assert.Contains(t, buf.String(), "lex @pkg/b.py")
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeStream, Output: &buf, OutputPath: "trace.ndjson"})
	require.NoError(t, err)
	ctx := WithTracer(context.Background(), tr)

	ctx, span := Start(ctx, ScopePass, "read")
	Point(ctx, ScopePass, "cache", "hit")
	span.End("")
	require.NoError(t, tr.Flush())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	var ev map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &ev))
	assert.Equal(t, "point", ev["kind"])
	assert.Equal(t, "hit", ev["detail"])
	assert.Equal(t, "pass", ev["scope"])
	assert.EqualValues(t, span.ID(), ev["parent_id"])
}

func TestStreamTracerOwnsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.jsonl")
	tr, err := New(Config{Level: LevelPhase, Mode: ModeStream, OutputPath: path})
	require.NoError(t, err)
	ctx := WithTracer(context.Background(), tr)
	_, span := Start(ctx, ScopeDriver, "format")
	span.End("")
	require.NoError(t, tr.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "{"))
}

func TestRingTracerWraps(t *testing.T) {
	tr := NewRingTracer(3, LevelDebug)
	ctx := WithTracer(context.Background(), tr)
	for _, name := range []string{"a", "b", "c", "d"} {
		Point(ctx, ScopeGroup, name, "")
	}
	snap := tr.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, "b", snap[0].Name)
	assert.Equal(t, "d", snap[2].Name)
	assert.EqualValues(t, 1, tr.Dropped())

	var buf bytes.Buffer
	require.NoError(t, tr.Dump(&buf, FormatText))
	assert.Equal(t, 4, strings.Count(buf.String(), "\n"))
	assert.True(t, strings.HasPrefix(buf.String(), "... 1 earlier events dropped\n"))
}

func TestBothMode(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf, RingSize: 8})
	require.NoError(t, err)
	multi, ok := tr.(*MultiTracer)
	require.True(t, ok)
	assert.Equal(t, LevelPhase, multi.Level())

	_, span := Start(WithTracer(context.Background(), tr), ScopeDriver, "format")
	span.End("")
	require.NotNil(t, multi.Ring())
	assert.Len(t, multi.Ring().Snapshot(), 2)
	assert.NotEmpty(t, buf.String())
}

func TestNopAndContext(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	require.NoError(t, err)
	assert.False(t, tr.Enabled())

	assert.Equal(t, Nop, FromContext(context.Background()))
	ring := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	assert.Equal(t, Tracer(ring), FromContext(ctx))

	_, span := Start(context.Background(), ScopeDriver, "x")
	assert.Zero(t, span.End(""))
	assert.Zero(t, span.ID())

	_, err = ParseMode("tape")
	assert.Error(t, err)
	mode, err := ParseMode("Both")
	require.NoError(t, err)
	assert.Equal(t, "both", mode.String())
}
