package style

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeLookPath(found ...string) LookPathFunc {
	return func(file string) (string, error) {
		for _, f := range found {
			if f == file {
				return "/usr/bin/" + file, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func TestResolve(t *testing.T) {
	cases := []struct {
		name  string
		found []string
		want  string
		err   bool
	}{
		{Auto, []string{Black}, Black, false},
		{Auto, nil, Builtin, false},
		{"", nil, Builtin, false},
		{Black, []string{Black}, Black, false},
		{Black, nil, "", true},
		{Ruff, []string{Ruff}, Ruff, false},
		{Ruff, []string{Black}, "", true},
		{"Builtin", nil, Builtin, false},
		{None, nil, None, false},
		{"yapf", nil, "", true},
	}
	for _, tc := range cases {
		s, err := ResolveWith(tc.name, fakeLookPath(tc.found...))
		if tc.err {
			assert.Error(t, err, tc.name)
			continue
		}
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, s.Name(), tc.name)
	}
}

func TestCommandArgs(t *testing.T) {
	assert.Equal(t, []string{"-q", "--line-length", "79", "-"}, NewBlack("black").Args(79))
	assert.Equal(t, []string{"format", "--line-length", "100", "-"}, NewRuff("ruff").Args(100))
}

func TestCommandPipesStdinToStdout(t *testing.T) {
	path, err := exec.LookPath("cat")
	if err != nil {
		t.Skip("cat not available")
	}
	c := &Command{Tool: "cat", Path: path}
	out, err := c.Style(context.Background(), []byte("x = 1\n"), 88)
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(out))
}

func TestCommandReportsStderr(t *testing.T) {
	path, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	c := &Command{Tool: "fake", Path: path, Args: func(int) []string {
		return []string{"-c", "echo 'cannot parse' >&2; exit 123"}
	}}
	_, err = c.Style(context.Background(), []byte("x"), 88)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fake")
	assert.Contains(t, err.Error(), "cannot parse")
	var exitErr *exec.ExitError
	assert.True(t, errors.As(err, &exitErr))
}

func TestCommandHonoursCancellation(t *testing.T) {
	path, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep not available")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	c := &Command{Tool: "sleep", Path: path, Args: func(int) []string { return []string{"5"} }}
	_, err = c.Style(ctx, nil, 88)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestTidyAndNop(t *testing.T) {
	src := []byte("x = 1   \n\n\n")
	out, err := Tidy{}.Style(context.Background(), src, 88)
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(out))

	out, err = Nop{}.Style(context.Background(), src, 88)
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestTidyRejectsBrokenSource(t *testing.T) {
	_, err := Tidy{}.Style(context.Background(), []byte("s = 'open\n"), 88)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated string literal")
}
