package driver

import (
	"comform/internal/cache"
	"comform/internal/pipeline"
	"comform/internal/style"
	"comform/internal/version"
)

// Mode selects what happens with a formatted file.
type Mode uint8

const (
	// ModeWrite rewrites changed files in place.
	ModeWrite Mode = iota
	// ModeCheck only reports whether files would change.
	ModeCheck
	// ModeDiff reports a diff instead of writing.
	ModeDiff
	// ModeStdout returns the formatted content instead of writing.
	ModeStdout
)

func (m Mode) String() string {
	switch m {
	case ModeWrite:
		return "write"
	case ModeCheck:
		return "check"
	case ModeDiff:
		return "diff"
	case ModeStdout:
		return "stdout"
	}
	return "unknown"
}

// Options configures a run. LineLength has no default here: callers pass the
// configured value.
type Options struct {
	LineLength int
	TabWidth   int
	// Pragmas are directive prefixes; nil means the lexer defaults.
	Pragmas []string
	// Styler runs after reflow; nil skips styling.
	Styler style.Styler
	// Safe checks that code is unchanged by the reflow before anything is
	// written.
	Safe bool
	Mode Mode
	// Cache may be nil.
	Cache *cache.Cache
	// Jobs bounds concurrent files; zero means GOMAXPROCS.
	Jobs           int
	Progress       pipeline.ProgressSink
	MaxDiagnostics int
}

// Result captures the outcome for one file.
type Result struct {
	Path    string
	Changed bool
	// Cached is set when the cache proved the file already formatted.
	Cached bool
	Groups int
	// Original is kept in ModeDiff.
	Original []byte
	// Formatted is kept in ModeDiff and ModeStdout.
	Formatted []byte
	Timings   pipeline.Timings
	Err       error
}

// CacheKey identifies the settings that shape output, so cache entries made
// under other settings are not reused.
func CacheKey(opts Options) (string, error) {
	styler := style.None
	if opts.Styler != nil {
		styler = opts.Styler.Name()
	}
	return cache.Key(struct {
		Version    string
		LineLength int
		TabWidth   int
		Pragmas    []string
		Styler     string
		Safe       bool
	}{version.Version, opts.LineLength, opts.TabWidth, opts.Pragmas, styler, opts.Safe})
}
