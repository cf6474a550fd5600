package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"comform/internal/comment"
	"comform/internal/diag"
	"comform/internal/format"
	"comform/internal/lexer"
	"comform/internal/pipeline"
	"comform/internal/source"
	"comform/internal/style"
	"comform/internal/trace"
	"comform/internal/verify"
)

const defaultMaxDiagnostics = 64

// fileRun carries per-file bookkeeping through the stages.
type fileRun struct {
	path    string
	sink    pipeline.ProgressSink
	timings pipeline.Timings
	groups  int
}

func (r *fileRun) begin(ctx context.Context, stage pipeline.Stage) func(detail string) {
	pipeline.Emit(r.sink, r.path, stage, pipeline.StatusWorking, nil, 0)
	_, span := trace.Start(ctx, trace.ScopePass, string(stage))
	start := time.Now()
	return func(detail string) {
		span.End(detail)
		r.timings.Add(stage, time.Since(start))
	}
}

// FormatSource runs the pipeline on src, which was read from path, and
// returns the new content. path is only used in messages.
func FormatSource(ctx context.Context, path string, src []byte, opts Options) ([]byte, error) {
	return formatSource(ctx, src, opts, &fileRun{path: path})
}

func formatSource(ctx context.Context, src []byte, opts Options, run *fileRun) ([]byte, error) {
	if opts.LineLength <= 0 {
		return nil, fmt.Errorf("%s: line length must be positive, got %d", run.path, opts.LineLength)
	}
	fileSet := source.NewFileSet()
	file := fileSet.Get(fileSet.AddVirtual(run.path, src))

	done := run.begin(ctx, pipeline.StageLex)
	maxDiag := opts.MaxDiagnostics
	if maxDiag <= 0 {
		maxDiag = defaultMaxDiagnostics
	}
	bag := diag.NewBag(maxDiag)
	tokens := lexer.Tokenize(file, lexer.Options{
		Reporter: diag.Dedup(diag.BagReporter{Bag: bag}),
		TabWidth: opts.TabWidth,
		Pragmas:  opts.Pragmas,
	})
	done(fmt.Sprintf("%d tokens", len(tokens)))
	if bag.HasErrors() {
		bag.Sort()
		return nil, &diag.TokenizeError{Path: run.path, Diagnostics: bag.Errors(), Files: fileSet}
	}
	nl := format.DetectNewline(tokens)

	done = run.begin(ctx, pipeline.StageReflow)
	_, groupSpan := trace.Start(ctx, trace.ScopePass, "group")
	groups := comment.Groups(tokens)
	groupSpan.End(fmt.Sprintf("%d groups", len(groups)))
	run.groups = len(groups)

	copts := comment.Options{LineLength: opts.LineLength, TabWidth: opts.TabWidth, Newline: nl}
	edits := make([]format.Edit, 0, len(groups))
	traceGroups := trace.FromContext(ctx).Level().ShouldEmit(trace.ScopeGroup)
	for _, g := range groups {
		repl := comment.Reflow(g, copts)
		if traceGroups {
			trace.Point(ctx, trace.ScopeGroup, "group",
				fmt.Sprintf("line %d: %s", g.Tokens[0].Line, comment.Plan(g, copts).Rule))
		}
		edits = append(edits, format.Edit{Start: g.Start, Len: g.Len(), Replacement: repl})
	}
	_, spliceSpan := trace.Start(ctx, trace.ScopePass, "splice")
	spliced, err := format.Splice(tokens, edits)
	spliceSpan.End("")
	done(fmt.Sprintf("%d groups", len(groups)))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", run.path, err)
	}
	out := format.Print(spliced)

	if opts.Safe && !bytes.Equal(file.Content, out) {
		done = run.begin(ctx, pipeline.StageVerify)
		err := verify.Equivalent(ctx, file.Content, out)
		done("")
		if err != nil {
			return nil, fmt.Errorf("%s: %w", run.path, err)
		}
	}

	if styler := opts.Styler; styler != nil && styler.Name() != style.None {
		done = run.begin(ctx, pipeline.StageStyle)
		_, external := styler.(*style.Command)
		in := out
		if external {
			in = format.NormalizeNewlines(in)
		}
		styled, err := styler.Style(ctx, in, opts.LineLength)
		done(styler.Name())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", run.path, err)
		}
		if external && nl != "\n" {
			styled = format.ApplyNewline(styled, nl)
		}
		out = styled
	}

	if file.Flags&source.FileHadBOM != 0 {
		out = source.WithBOM(out)
	}
	return out, nil
}

// FormatFile validates path, formats it and, in ModeWrite, writes the result
// back when it changed.
func FormatFile(ctx context.Context, path string, opts Options) Result {
	res := Result{Path: path}
	run := &fileRun{path: path, sink: opts.Progress}
	fail := func(stage pipeline.Stage, err error) Result {
		res.Err = err
		res.Timings = run.timings
		pipeline.Emit(run.sink, path, stage, pipeline.StatusError, err, run.timings.Sum())
		return res
	}

	if err := ctx.Err(); err != nil {
		return fail(pipeline.StageRead, err)
	}
	ctx, span := trace.StartFile(ctx, path)
	defer span.End("")

	if err := ValidatePath(path); err != nil {
		return fail(pipeline.StageRead, err)
	}

	done := run.begin(ctx, pipeline.StageRead)
	key := cacheKeyPath(path)
	info, err := os.Stat(path)
	if err != nil {
		done("")
		return fail(pipeline.StageRead, fmt.Errorf("%s: %w", path, err))
	}
	hit := opts.Cache.Fresh(key, info)
	var src []byte
	if !hit || opts.Mode == ModeStdout {
		src, err = os.ReadFile(path)
		if err != nil {
			done("")
			return fail(pipeline.StageRead, fmt.Errorf("%s: %w", path, err))
		}
		if !hit && opts.Cache.FreshContent(key, src) {
			opts.Cache.Record(key, info, src)
			hit = true
		}
	}
	if hit {
		done("cached")
		span.Annotate("cache", "hit")
		res.Cached = true
		if opts.Mode == ModeStdout {
			res.Formatted = src
		}
		res.Timings = run.timings
		pipeline.Emit(run.sink, path, pipeline.StageRead, pipeline.StatusSkipped, nil, run.timings.Sum())
		return res
	}
	done("")

	formatted, err := formatSource(ctx, src, opts, run)
	res.Groups = run.groups
	if err != nil {
		opts.Cache.Forget(key)
		return fail(pipeline.StageReflow, err)
	}
	res.Changed = !bytes.Equal(src, formatted)
	span.Annotate("changed", fmt.Sprint(res.Changed))

	switch opts.Mode {
	case ModeDiff:
		res.Original = src
		res.Formatted = formatted
	case ModeStdout:
		res.Formatted = formatted
	}

	switch {
	case !res.Changed:
		opts.Cache.Record(key, info, src)
	case opts.Mode == ModeWrite:
		done = run.begin(ctx, pipeline.StageWrite)
		err := writeFileAtomic(path, formatted, info.Mode().Perm())
		done("")
		if err != nil {
			return fail(pipeline.StageWrite, fmt.Errorf("%s: %w", path, err))
		}
		if newInfo, err := os.Stat(path); err == nil {
			opts.Cache.Record(key, newInfo, formatted)
		}
	}

	res.Timings = run.timings
	status := pipeline.StatusSkipped
	if res.Changed {
		status = pipeline.StatusDone
	}
	pipeline.Emit(run.sink, path, pipeline.StageWrite, status, nil, run.timings.Sum())
	return res
}

func cacheKeyPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// writeFileAtomic replaces path through a temporary file in the same
// directory, so readers never see a partial file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), ".comform-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()
	if _, err = f.Write(data); err != nil {
		return err
	}
	if err = f.Chmod(perm); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
