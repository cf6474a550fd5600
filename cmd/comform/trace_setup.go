package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"comform/internal/trace"
)

// traceConfig reads the --trace* flags. ok is false when tracing stays off.
func traceConfig(cmd *cobra.Command) (cfg trace.Config, ok bool, err error) {
	flags := cmd.Root().PersistentFlags()

	if cfg.OutputPath, err = flags.GetString("trace"); err != nil {
		return cfg, false, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return cfg, false, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return cfg, false, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}
	if cfg.RingSize, err = flags.GetInt("trace-ring-size"); err != nil {
		return cfg, false, fmt.Errorf("failed to get trace-ring-size flag: %w", err)
	}

	if cfg.Level, err = trace.ParseLevel(levelStr); err != nil {
		return cfg, false, err
	}
	if cfg.Mode, err = trace.ParseMode(modeStr); err != nil {
		return cfg, false, err
	}
	if cfg.Level == trace.LevelOff {
		if cfg.OutputPath == "" {
			return cfg, false, nil
		}
		// an output without a level asks for the per-file stages
		cfg.Level = trace.LevelPhase
	}
	return cfg, true, nil
}

// setupTracing attaches the configured tracer to the command context and
// returns the cleanup that flushes it.
func setupTracing(cmd *cobra.Command) (func(), error) {
	cfg, ok, err := traceConfig(cmd)
	if err != nil {
		return nil, err
	}
	tracer := trace.Nop
	if ok {
		if tracer, err = trace.New(cfg); err != nil {
			return nil, fmt.Errorf("failed to create tracer: %w", err)
		}
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)
	cmd.Root().SetContext(ctx)

	return func() {
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: %v\n", err)
		}
	}, nil
}
