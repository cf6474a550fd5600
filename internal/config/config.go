// Package config loads comform settings from pyproject.toml.
//
// Settings live in [tool.comform]. When that table does not set a line
// length, [tool.black].line-length is used so both tools agree.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"comform/internal/token"
)

const (
	// DefaultLineLength is the flag and config default, nothing more.
	DefaultLineLength = 88
	DefaultFormatter  = "auto"
	DefaultTabWidth   = 8
	// FileName is the configuration file looked up from the working directory.
	FileName = "pyproject.toml"
)

// Settings are the knobs that shape the output.
type Settings struct {
	LineLength int
	Formatter  string
	// Safe enables the code-equivalence check before writing.
	Safe     bool
	TabWidth int
	// Pragmas replaces the default directive prefixes when non-nil.
	Pragmas []string
	// Extend adds directive prefixes to Pragmas (or to the defaults).
	Extend []string
	// Path is the file the settings came from; empty for defaults.
	Path string
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		LineLength: DefaultLineLength,
		Formatter:  DefaultFormatter,
		Safe:       true,
		TabWidth:   DefaultTabWidth,
	}
}

// EffectivePragmas is the directive prefix list handed to the lexer.
func (s Settings) EffectivePragmas() []string {
	base := s.Pragmas
	if base == nil {
		base = token.DefaultPragmas
	}
	out := slices.Clone(base)
	for _, p := range s.Extend {
		if !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// Validate rejects values no run can use.
func (s Settings) Validate() error {
	if s.LineLength <= 0 {
		return fmt.Errorf("line length must be positive, got %d", s.LineLength)
	}
	if s.TabWidth <= 0 {
		return fmt.Errorf("tab width must be positive, got %d", s.TabWidth)
	}
	return nil
}

type pyproject struct {
	Tool struct {
		Comform comformTable `toml:"comform"`
		Black   struct {
			LineLength int `toml:"line-length"`
		} `toml:"black"`
	} `toml:"tool"`
}

type comformTable struct {
	LineLength    int      `toml:"line-length"`
	Formatter     string   `toml:"formatter"`
	Safe          bool     `toml:"safe"`
	TabWidth      int      `toml:"tab-width"`
	Pragmas       []string `toml:"pragmas"`
	ExtendPragmas []string `toml:"extend-pragmas"`
}

// Find walks up from startDir to the nearest pyproject.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads settings from the pyproject.toml at path. Keys that are not set
// keep their defaults.
func Load(path string) (Settings, error) {
	var doc pyproject
	meta, err := toml.DecodeFile(path, &doc)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if unknown := unknownKeys(meta); len(unknown) > 0 {
		return Settings{}, fmt.Errorf("%s: unknown keys in [tool.comform]: %s", path, strings.Join(unknown, ", "))
	}

	s := Default()
	s.Path = path
	c := doc.Tool.Comform
	switch {
	case meta.IsDefined("tool", "comform", "line-length"):
		s.LineLength = c.LineLength
	case meta.IsDefined("tool", "black", "line-length"):
		s.LineLength = doc.Tool.Black.LineLength
	}
	if meta.IsDefined("tool", "comform", "formatter") {
		s.Formatter = strings.TrimSpace(c.Formatter)
	}
	if meta.IsDefined("tool", "comform", "safe") {
		s.Safe = c.Safe
	}
	if meta.IsDefined("tool", "comform", "tab-width") {
		s.TabWidth = c.TabWidth
	}
	if meta.IsDefined("tool", "comform", "pragmas") {
		s.Pragmas = c.Pragmas
		if s.Pragmas == nil {
			s.Pragmas = []string{}
		}
	}
	s.Extend = c.ExtendPragmas

	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Discover finds and loads the settings that apply to startDir. Without a
// pyproject.toml it returns Default.
func Discover(startDir string) (Settings, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Settings{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func unknownKeys(meta toml.MetaData) []string {
	var out []string
	for _, k := range meta.Undecoded() {
		if len(k) > 2 && k[0] == "tool" && k[1] == "comform" {
			out = append(out, k.String())
		}
	}
	sort.Strings(out)
	return out
}
