package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comform/internal/pipeline"
)

func feed(t *testing.T, m tea.Model, events ...pipeline.Event) *progressModel {
	t.Helper()
	for _, ev := range events {
		var cmd tea.Cmd
		m, cmd = m.Update(eventMsg(ev))
		require.NotNil(t, cmd)
	}
	pm, ok := m.(*progressModel)
	require.True(t, ok)
	return pm
}

func TestProgressModelCounts(t *testing.T) {
	events := make(chan pipeline.Event)
	m := NewProgressModel("comform", []string{"a.py", "b.py", "c.py"}, events)

	pm := feed(t, m,
		pipeline.Event{File: "a.py", Stage: pipeline.StageReflow, Status: pipeline.StatusWorking},
		pipeline.Event{File: "a.py", Stage: pipeline.StageWrite, Status: pipeline.StatusDone},
		pipeline.Event{File: "b.py", Stage: pipeline.StageRead, Status: pipeline.StatusSkipped},
		pipeline.Event{File: "c.py", Stage: pipeline.StageStyle, Status: pipeline.StatusWorking},
		pipeline.Event{File: "unknown.py", Stage: pipeline.StageRead, Status: pipeline.StatusDone},
	)
	assert.Equal(t, 1, pm.changed)
	assert.Equal(t, 1, pm.unchanged)
	assert.Equal(t, 2, pm.finished())

	view := pm.View()
	assert.Contains(t, view, "(2/3)")
	assert.Contains(t, view, "styling")
	assert.Contains(t, view, "c.py")
	assert.NotContains(t, view, "b.py")
	assert.Contains(t, view, "1 reformatted, 1 unchanged, 0 failed")

	pm = feed(t, pm, pipeline.Event{File: "c.py", Stage: pipeline.StageStyle, Status: pipeline.StatusError, Err: errors.New("black failed")})
	// a finished file ignores late events
	pm = feed(t, pm, pipeline.Event{File: "a.py", Stage: pipeline.StageWrite, Status: pipeline.StatusError})
	assert.Equal(t, 1, pm.failed)
	assert.Equal(t, 1, pm.changed)

	next, cmd := pm.Update(doneMsg{})
	require.NotNil(t, cmd)
	assert.True(t, strings.HasPrefix(stripANSI(next.View()), "done: comform (3/3)"))
}

func TestListenForEventClosesOnChannelClose(t *testing.T) {
	events := make(chan pipeline.Event, 1)
	pm := NewProgressModel("x", []string{"a.py"}, events).(*progressModel)
	events <- pipeline.Event{File: "a.py", Status: pipeline.StatusWorking}
	close(events)

	msg := pm.listenForEvent()()
	_, isEvent := msg.(eventMsg)
	assert.True(t, isEvent)
	_, isDone := pm.listenForEvent()().(doneMsg)
	assert.True(t, isDone)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short.py", truncate("short.py", 20))
	assert.Equal(t, "very...", truncate("very/long/path/to/module.py", 10))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestEmptyModelView(t *testing.T) {
	assert.Empty(t, NewProgressModel("x", nil, nil).View())
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestCtrlCInterrupts(t *testing.T) {
	m := NewProgressModel("comform", []string{"a.py"}, make(chan pipeline.Event))
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	pm, ok := next.(*progressModel)
	require.True(t, ok)
	assert.True(t, pm.Interrupted())

	next, cmd = pm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Nil(t, cmd)
	_ = next
}
