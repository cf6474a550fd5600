package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"comform/internal/diag"
	"comform/internal/trace"
	"comform/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "comform [flags] <path>...",
	Short: "Reflow multiline comments in Python source files",
	Long: `comform fills out runs of # comments up to the line length, then passes the
result through a code formatter (black, ruff, or the builtin tidier).
Directories are searched recursively for Python files.`,
	Args:              cobra.ArbitraryArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRoot,
	RunE:              runFormat,
}

// Cleanups run once the command returns, before the process exits.
var (
	traceCleanup   = func() {}
	profileCleanup = func() {}
)

// usageError marks bad invocations; they exit with status 2.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// exitStatus carries a status for failures that were already reported.
type exitStatus int

func (e exitStatus) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

func init() {
	rootCmd.Version = version.Version
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(versionCmd)
	registerPersistentFlags(rootCmd)
}

func registerPersistentFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.String("ui", "auto", "progress UI mode (auto|on|off)")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	flags.String("trace", "", "write trace events to a file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	flags.String("cpu-profile", "", "write a CPU profile to file")
	flags.String("mem-profile", "", "write a heap profile to file")
	flags.String("runtime-trace", "", "write a Go runtime trace to file")
}

func main() {
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if errors.Is(err, diag.ErrInternal) {
		dumpTraceRing(rootCmd.Context(), os.Stderr)
	}
	profileCleanup()
	traceCleanup()
	os.Exit(reportError(os.Stderr, err))
}

func setupRoot(cmd *cobra.Command, _ []string) error {
	if err := setupColor(cmd); err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return usageError{err: err}
	}
	traceCleanup = cleanup
	stopProfiles, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	profileCleanup = stopProfiles
	return nil
}

// setupColor applies --color to every fatih/color writer.
func setupColor(cmd *cobra.Command) error {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	mode, err := parseSwitch("color", value)
	if err != nil {
		return err
	}
	if mode == modeAuto {
		// NO_COLOR and dumb terminals already set NoColor
		color.NoColor = color.NoColor || !mode.resolve()
	} else {
		color.NoColor = mode == modeOff
	}
	return nil
}

// reportError prints err and maps it to a process exit status.
func reportError(w io.Writer, err error) int {
	if err == nil {
		return 0
	}
	code := exitCode(err)
	var status exitStatus
	if errors.As(err, &status) {
		return code
	}
	fmt.Fprintf(w, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
	if code == 2 && !diag.IsValidation(err) {
		fmt.Fprintln(w, "Run 'comform --help' for usage.")
	}
	return code
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var status exitStatus
	if errors.As(err, &status) {
		return int(status)
	}
	var usage usageError
	if errors.As(err, &usage) || diag.IsValidation(err) {
		return 2
	}
	return 1
}

func dumpTraceRing(ctx context.Context, w io.Writer) {
	if ctx == nil {
		return
	}
	var ring *trace.RingTracer
	switch t := trace.FromContext(ctx).(type) {
	case *trace.RingTracer:
		ring = t
	case *trace.MultiTracer:
		ring = t.Ring()
	}
	if ring == nil {
		return
	}
	fmt.Fprintln(w, "trace: events before the failure:")
	if err := ring.Dump(w, trace.FormatText); err != nil {
		fmt.Fprintf(w, "trace: dump error: %v\n", err)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
