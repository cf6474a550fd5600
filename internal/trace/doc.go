// Package trace records what comform does while it formats files.
//
// Tracing is off by default and enabled from the command line:
//
//	comform --trace=- --trace-level=detail src/
//	comform --trace=run.ndjson --trace-mode=both src/
//
// # Tracers
//
//   - Nop: used when tracing is disabled
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for a dump after an internal error
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// LevelPhase emits driver and pass spans, LevelDetail adds one span per
// file, LevelDebug adds one event per comment group.
//
// # Context propagation
//
// The tracer and the current span travel in a context.Context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, file := trace.StartFile(ctx, path)
//	defer file.End("")
//	_, pass := trace.Start(ctx, trace.ScopePass, "reflow")
//	pass.End("3 groups")
//
// Events below a file span carry that file's path.
package trace
