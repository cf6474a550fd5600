package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"comform/internal/version"
)

// buildInfo is what `comform version` reports. Fields left empty were not
// requested.
type buildInfo struct {
	Tool    string `json:"tool"`
	Version string `json:"version"`
	Commit  string `json:"git_commit,omitempty"`
	Message string `json:"git_message,omitempty"`
	Built   string `json:"build_date,omitempty"`
}

var versionFlags struct {
	format              string
	hash, message, date bool
	full                bool
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show comform build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		format := strings.ToLower(versionFlags.format)
		if format != "pretty" && format != "json" {
			return usageError{err: fmt.Errorf("unsupported format %q (must be pretty or json)", versionFlags.format)}
		}
		f := versionFlags
		info := describeBuild(f.hash || f.full, f.message || f.full, f.date || f.full)
		if format == "json" {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(info)
		}
		printBuild(cmd.OutOrStdout(), info)
		return nil
	},
}

func init() {
	fl := versionCmd.Flags()
	fl.StringVar(&versionFlags.format, "format", "pretty", "output format (pretty|json)")
	fl.BoolVar(&versionFlags.hash, "hash", false, "include git commit hash")
	fl.BoolVar(&versionFlags.message, "message", false, "include git commit message")
	fl.BoolVar(&versionFlags.date, "date", false, "include build timestamp")
	fl.BoolVar(&versionFlags.full, "full", false, "show all recorded build metadata")
}

func describeBuild(hash, message, date bool) buildInfo {
	info := buildInfo{Tool: "comform", Version: orDefault(version.Version, "dev")}
	if hash {
		info.Commit = orDefault(version.GitCommit, "unknown")
	}
	if message {
		info.Message = orDefault(version.GitMessage, "unknown")
	}
	if date {
		info.Built = orDefault(version.BuildDate, "unknown")
	}
	return info
}

func printBuild(out io.Writer, info buildInfo) {
	fmt.Fprintf(out, "comform %s\n", version.Colored())
	for _, row := range [][2]string{{"commit:", info.Commit}, {"message:", info.Message}, {"built:", info.Built}} {
		if row[1] != "" {
			fmt.Fprintf(out, "%-8s %s\n", row[0], row[1])
		}
	}
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}
