package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"comform/internal/cache"
	"comform/internal/config"
	"comform/internal/diag"
	"comform/internal/diagfmt"
	"comform/internal/driver"
	"comform/internal/observ"
	"comform/internal/pipeline"
	"comform/internal/style"
)

type formatFlags struct {
	lineLength int
	check      bool
	diff       bool
	stdout     bool
	formatter  string
	fast       bool
	noCache    bool
	jobs       int
	configPath string
}

var fmtFlags formatFlags

func init() {
	f := rootCmd.Flags()
	f.IntVarP(&fmtFlags.lineLength, "line-length", "l", config.DefaultLineLength, "maximum line length")
	f.BoolVar(&fmtFlags.check, "check", false, "don't write files; exit 1 if any would change")
	f.BoolVar(&fmtFlags.diff, "diff", false, "print a unified diff instead of writing files")
	f.BoolVar(&fmtFlags.stdout, "stdout", false, "print formatted content instead of writing files")
	f.StringVar(&fmtFlags.formatter, "formatter", config.DefaultFormatter, "code formatter (auto|black|ruff|builtin|none)")
	f.BoolVar(&fmtFlags.fast, "fast", false, "skip the code structure safety check")
	f.BoolVar(&fmtFlags.noCache, "no-cache", false, "neither read nor update the cache")
	f.IntVarP(&fmtFlags.jobs, "jobs", "j", 0, "files formatted in parallel (0 = GOMAXPROCS)")
	f.StringVar(&fmtFlags.configPath, "config", "", "read settings from this pyproject.toml")
}

func (f formatFlags) mode() (driver.Mode, error) {
	switch {
	case f.stdout && (f.check || f.diff):
		return 0, usageError{err: errors.New("--stdout cannot be combined with --check or --diff")}
	case f.stdout:
		return driver.ModeStdout, nil
	case f.diff:
		return driver.ModeDiff, nil
	case f.check:
		return driver.ModeCheck, nil
	default:
		return driver.ModeWrite, nil
	}
}

type runSummary struct {
	changed   int
	unchanged int
	failed    int
	// internal is set when a failure broke a rewrite invariant.
	internal bool
}

type renderOpts struct {
	mode    driver.Mode
	check   bool
	quiet   bool
	color   bool
	baseDir string
	maxDiag int
}

func runFormat(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return usageError{err: errors.New("at least one path is required")}
	}
	mode, err := fmtFlags.mode()
	if err != nil {
		return err
	}
	root := cmd.Root().PersistentFlags()
	quiet, err := root.GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := root.GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiagnostics, err := root.GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	uiValue, err := root.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	uiSetting, err := parseSwitch("ui", uiValue)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	timer := observ.NewTimer()

	idx := timer.Begin("config")
	settings, err := loadSettings(cmd, fmtFlags, args)
	timer.End(idx, settings.Path)
	if err != nil {
		return err
	}
	styler, err := style.Resolve(settings.Formatter)
	if err != nil {
		return err
	}

	opts := driver.Options{
		LineLength:     settings.LineLength,
		TabWidth:       settings.TabWidth,
		Pragmas:        settings.EffectivePragmas(),
		Styler:         styler,
		Safe:           settings.Safe,
		Mode:           mode,
		Jobs:           fmtFlags.jobs,
		MaxDiagnostics: maxDiagnostics,
	}
	if !fmtFlags.noCache {
		opts.Cache = openCache(errOut, opts)
	}

	idx = timer.Begin("collect")
	files, err := driver.CollectFiles(ctx, args)
	timer.End(idx, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		if !quiet {
			fmt.Fprintln(errOut, "No Python files are present to be formatted. Nothing to do.")
		}
		return nil
	}

	idx = timer.Begin("format")
	var results []driver.Result
	var runErr error
	if mode != driver.ModeStdout && !quiet && shouldUseTUI(uiSetting, len(files)) {
		results, runErr = runFormatWithUI(ctx, "comform", files, opts)
	} else {
		results, runErr = driver.FormatPaths(ctx, files, opts)
	}
	timer.End(idx, styler.Name())
	if results == nil && runErr != nil {
		return runErr
	}

	cwd, _ := os.Getwd()
	summary := renderResults(out, errOut, results, renderOpts{
		mode:    mode,
		check:   fmtFlags.check,
		quiet:   quiet,
		color:   !color.NoColor,
		baseDir: cwd,
		maxDiag: maxDiagnostics,
	})
	if summary.internal {
		dumpTraceRing(ctx, errOut)
	}
	if runErr != nil && summary.failed == 0 {
		// only the cache could not be saved
		warn(errOut, runErr)
	}
	if showTimings {
		recordStageTimings(timer, results)
		fmt.Fprint(errOut, timer.Summary())
	}

	switch {
	case summary.failed > 0:
		return exitStatus(1)
	case fmtFlags.check && summary.changed > 0:
		return exitStatus(1)
	}
	return nil
}

// loadSettings reads pyproject.toml (explicit or discovered from the first
// path) and applies the flags the user set.
func loadSettings(cmd *cobra.Command, flags formatFlags, paths []string) (config.Settings, error) {
	var settings config.Settings
	var err error
	if flags.configPath != "" {
		settings, err = config.Load(flags.configPath)
	} else {
		settings, err = config.Discover(configStartDir(paths))
	}
	if err != nil {
		return settings, err
	}
	fs := cmd.Flags()
	if fs.Changed("line-length") {
		settings.LineLength = flags.lineLength
	}
	if fs.Changed("formatter") {
		settings.Formatter = flags.formatter
	}
	if flags.fast {
		settings.Safe = false
	}
	if err := settings.Validate(); err != nil {
		return settings, usageError{err: err}
	}
	return settings, nil
}

func configStartDir(paths []string) string {
	if len(paths) == 0 {
		return "."
	}
	first := paths[0]
	if info, err := os.Stat(first); err == nil && info.IsDir() {
		return first
	}
	return filepath.Dir(first)
}

func openCache(errOut io.Writer, opts driver.Options) *cache.Cache {
	key, err := driver.CacheKey(opts)
	if err != nil {
		warn(errOut, fmt.Errorf("cache disabled: %w", err))
		return nil
	}
	c, err := cache.Open("comform", key)
	switch {
	case err == nil:
		return c
	case errors.Is(err, cache.ErrCorrupt):
		warn(errOut, fmt.Errorf("%w; starting a fresh cache", err))
		if err := c.Drop(); err != nil {
			warn(errOut, err)
		}
		return c
	default:
		warn(errOut, fmt.Errorf("cache disabled: %w", err))
		return nil
	}
}

func warn(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", color.New(color.FgYellow, color.Bold).Sprint("warning:"), err)
}

func renderResults(out, errOut io.Writer, results []driver.Result, opts renderOpts) runSummary {
	var summary runSummary
	for i := range results {
		res := &results[i]
		display := pipeline.DisplayPath(res.Path, opts.baseDir)
		switch {
		case res.Err != nil:
			summary.failed++
			summary.internal = summary.internal || errors.Is(res.Err, diag.ErrInternal)
			renderFileError(errOut, display, res.Err, opts)
			continue
		case res.Changed:
			summary.changed++
		default:
			summary.unchanged++
		}

		switch opts.mode {
		case driver.ModeStdout:
			if _, err := out.Write(res.Formatted); err != nil {
				warn(errOut, err)
			}
		case driver.ModeDiff:
			if res.Changed {
				err := diagfmt.WriteDiff(out, display, res.Original, res.Formatted, diagfmt.DiffOpts{Color: opts.color})
				if err != nil {
					warn(errOut, err)
				}
			}
		}
		if res.Changed && !opts.quiet {
			switch {
			case opts.mode == driver.ModeWrite && len(results) > 1:
				fmt.Fprintf(errOut, "reformatted %s\n", display)
			case opts.check:
				fmt.Fprintf(errOut, "would reformat %s\n", display)
			}
		}
	}

	if opts.quiet || opts.mode == driver.ModeStdout {
		return summary
	}
	if opts.mode == driver.ModeWrite && len(results) == 1 && summary.failed == 0 {
		fmt.Fprintln(out, "File formatted.")
		return summary
	}
	fmt.Fprintln(errOut, summaryLine(summary, opts.mode != driver.ModeWrite))
	return summary
}

func renderFileError(w io.Writer, display string, err error, opts renderOpts) {
	var tokErr *diag.TokenizeError
	if errors.As(err, &tokErr) && tokErr.Files != nil {
		diagnostics := tokErr.Diagnostics
		if opts.maxDiag > 0 && len(diagnostics) > opts.maxDiag {
			diagnostics = diagnostics[:opts.maxDiag]
		}
		diagfmt.Pretty(w, diagnostics, tokErr.Files, diagfmt.PrettyOpts{
			Color:     opts.color,
			PathMode:  diagfmt.PathModeRelative,
			BaseDir:   opts.baseDir,
			ShowNotes: true,
		})
		return
	}
	fmt.Fprintf(w, "%s cannot format %s: %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), display, err)
}

func summaryLine(s runSummary, dryRun bool) string {
	changedVerb, unchangedVerb, failedVerb := "reformatted", "left unchanged", "failed to reformat"
	if dryRun {
		changedVerb, unchangedVerb, failedVerb = "would be reformatted", "would be left unchanged", "would fail to reformat"
	}
	line := ""
	add := func(n int, verb string) {
		if n == 0 {
			return
		}
		if line != "" {
			line += ", "
		}
		line += fmt.Sprintf("%d %s %s", n, plural(n, "file"), verb)
	}
	add(s.changed, changedVerb)
	add(s.unchanged, unchangedVerb)
	add(s.failed, failedVerb)
	if line == "" {
		return "Nothing to do."
	}
	return line + "."
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
