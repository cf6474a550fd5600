package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"comform/internal/comment"
	"comform/internal/diagfmt"
	"comform/internal/format"
)

var groupsCmd = &cobra.Command{
	Use:   "groups [flags] file.py",
	Short: "Show the comment groups of a Python file and how they reflow",
	Args:  cobra.ExactArgs(1),
	RunE:  runGroups,
}

func init() {
	groupsCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	groupsCmd.Flags().IntP("line-length", "l", 0, "maximum line length (default from config, else 88)")
}

func runGroups(cmd *cobra.Command, args []string) error {
	outFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if outFormat != "pretty" && outFormat != "json" {
		return usageError{err: fmt.Errorf("unknown format: %s", outFormat)}
	}
	lineLength, err := cmd.Flags().GetInt("line-length")
	if err != nil {
		return fmt.Errorf("failed to get line-length flag: %w", err)
	}

	result, settings, err := inspect(cmd, args[0], outFormat == "json")
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("line-length") {
		if lineLength <= 0 {
			return usageError{err: fmt.Errorf("line-length must be positive, got %d", lineLength)}
		}
		settings.LineLength = lineLength
	}

	opts := comment.Options{
		LineLength: settings.LineLength,
		TabWidth:   settings.TabWidth,
		Newline:    format.DetectNewline(result.Tokens),
	}
	if outFormat == "json" {
		return diagfmt.FormatGroupsJSON(cmd.OutOrStdout(), result.Groups, opts)
	}
	return diagfmt.FormatGroupsPretty(cmd.OutOrStdout(), result.Groups, opts)
}
