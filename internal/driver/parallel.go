package driver

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"comform/internal/pipeline"
	"comform/internal/trace"
)

// FormatPaths formats files and directories (walked recursively for Python
// files). Invalid explicit paths abort before any file is touched with a
// *diag.ValidationError. Otherwise every file gets a Result, in path order,
// and the returned error combines the per-file failures.
func FormatPaths(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "driver:format")
	defer span.End("")

	files, err := CollectFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	span.Annotate("files", fmt.Sprint(len(files)))
	if len(files) == 0 {
		return nil, nil
	}
	pipeline.EmitQueued(opts.Progress, files)

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// each goroutine owns one index
	results := make([]Result, len(files))
	var g errgroup.Group
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{Path: path, Err: err}
				return err
			}
			results[i] = FormatFile(ctx, path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}

	var errs error
	for _, r := range results {
		errs = multierr.Append(errs, r.Err)
	}
	if err := opts.Cache.Save(); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("cache: %w", err))
	}
	return results, errs
}
