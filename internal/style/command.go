package style

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Command runs an external formatter that reads the source on stdin and
// writes the result to stdout.
type Command struct {
	Tool string
	Path string
	// Args builds the argument list for a line length.
	Args func(lineLength int) []string
}

// NewBlack returns a Command running "black -q --line-length N -".
func NewBlack(path string) *Command {
	return &Command{
		Tool: Black,
		Path: path,
		Args: func(n int) []string {
			return []string{"-q", "--line-length", strconv.Itoa(n), "-"}
		},
	}
}

// NewRuff returns a Command running "ruff format --line-length N -".
func NewRuff(path string) *Command {
	return &Command{
		Tool: Ruff,
		Path: path,
		Args: func(n int) []string {
			return []string{"format", "--line-length", strconv.Itoa(n), "-"}
		},
	}
}

func (c *Command) Name() string { return c.Tool }

// Style runs the formatter. Cancelling ctx kills the process.
func (c *Command) Style(ctx context.Context, src []byte, lineLength int) ([]byte, error) {
	var args []string
	if c.Args != nil {
		args = c.Args(lineLength)
	}
	// #nosec G204 -- the formatter binary is resolved from PATH by name
	cmd := exec.CommandContext(ctx, c.Path, args...)
	cmd.Stdin = bytes.NewReader(src)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%s: %w", c.Tool, ctxErr)
		}
		msg := strings.TrimSpace(stderr.String())
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", c.Tool, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", c.Tool, err)
	}
	return stdout.Bytes(), nil
}
