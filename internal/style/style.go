// Package style runs the final whitespace pass over a rewritten file, either
// through an external formatter or with the builtin tidy pass.
package style

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Names accepted by Resolve.
const (
	Auto    = "auto"
	Black   = "black"
	Ruff    = "ruff"
	Builtin = "builtin"
	None    = "none"
)

// Names lists the accepted formatter names in help order.
var Names = []string{Auto, Black, Ruff, Builtin, None}

// Styler formats a complete Python source. Input and output use "\n" line
// endings; callers restore the file's own style afterwards.
type Styler interface {
	Name() string
	Style(ctx context.Context, src []byte, lineLength int) ([]byte, error)
}

// LookPathFunc finds an executable, like exec.LookPath.
type LookPathFunc func(file string) (string, error)

// Resolve maps a formatter name to a Styler using exec.LookPath.
func Resolve(name string) (Styler, error) {
	return ResolveWith(name, exec.LookPath)
}

// ResolveWith is Resolve with an explicit executable lookup. "auto" picks
// black when it is installed and the builtin pass otherwise.
func ResolveWith(name string, lookPath LookPathFunc) (Styler, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case Auto, "":
		if path, err := lookPath(Black); err == nil {
			return NewBlack(path), nil
		}
		return Tidy{}, nil
	case Black:
		path, err := lookPath(Black)
		if err != nil {
			return nil, fmt.Errorf("formatter %q not found on PATH: %w", Black, err)
		}
		return NewBlack(path), nil
	case Ruff:
		path, err := lookPath(Ruff)
		if err != nil {
			return nil, fmt.Errorf("formatter %q not found on PATH: %w", Ruff, err)
		}
		return NewRuff(path), nil
	case Builtin:
		return Tidy{}, nil
	case None:
		return Nop{}, nil
	}
	return nil, fmt.Errorf("unknown formatter %q (want one of %s)", name, strings.Join(Names, ", "))
}
