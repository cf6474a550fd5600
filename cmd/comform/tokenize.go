package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"comform/internal/config"
	"comform/internal/diagfmt"
	"comform/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.py",
	Short: "Dump the tokens of a Python file",
	Long:  `Tokenize shows the comment, newline and directive tokens comform sees in a file`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return usageError{err: fmt.Errorf("unknown format: %s", format)}
	}

	result, _, err := inspect(cmd, args[0], format == "json")
	if err != nil {
		return err
	}

	switch format {
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	default:
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens)
	}
}

// inspect tokenizes path under the settings that apply to it and prints any
// lexing diagnostics to stderr, as JSON when jsonDiags is set.
func inspect(cmd *cobra.Command, path string, jsonDiags bool) (*driver.TokenizeResult, config.Settings, error) {
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return nil, config.Settings{}, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if err := driver.ValidatePath(path); err != nil {
		return nil, config.Settings{}, err
	}
	settings, err := config.Discover(configStartDir([]string{path}))
	if err != nil {
		return nil, settings, err
	}

	result, err := driver.Tokenize(path, driver.Options{
		TabWidth:       settings.TabWidth,
		Pragmas:        settings.EffectivePragmas(),
		MaxDiagnostics: maxDiagnostics,
	})
	if err != nil {
		return nil, settings, fmt.Errorf("tokenization failed: %w", err)
	}

	items := result.Bag.Items()
	cwd, _ := os.Getwd()
	switch {
	case len(items) == 0:
	case jsonDiags:
		err = diagfmt.JSON(cmd.ErrOrStderr(), items, result.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			BaseDir:          cwd,
			Max:              maxDiagnostics,
			IncludeNotes:     true,
		})
	default:
		diagfmt.Pretty(cmd.ErrOrStderr(), items, result.FileSet, diagfmt.PrettyOpts{
			Color:     !color.NoColor,
			PathMode:  diagfmt.PathModeRelative,
			BaseDir:   cwd,
			ShowNotes: true,
		})
	}
	return result, settings, err
}
