package trace

import (
	"context"
	"sync/atomic"
	"time"
)

var (
	seq     atomic.Uint64
	spanIDs atomic.Uint64
)

// Span is an open span. A nil *Span, returned when the scope is filtered
// out, accepts every method call.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	file    string
	started time.Time
	extra   map[string]string
}

// Start opens a span below the one carried by ctx, using the tracer in ctx,
// and returns a context carrying the new span.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	cur := currentSpan(ctx)
	return start(ctx, cur, scope, name, cur.file)
}

// StartFile opens the span of one source file. Every event below it is
// attributed to path, even when the file span itself is filtered out.
func StartFile(ctx context.Context, path string) (context.Context, *Span) {
	cur := currentSpan(ctx)
	return start(ctx, cur, ScopeFile, "file:"+path, path)
}

func start(ctx context.Context, cur spanContext, scope Scope, name, file string) (context.Context, *Span) {
	t := FromContext(ctx)
	if !t.Level().ShouldEmit(scope) {
		if file != cur.file {
			ctx = withSpan(ctx, spanContext{id: cur.id, file: file})
		}
		return ctx, nil
	}

	s := &Span{
		tracer:  t,
		id:      spanIDs.Add(1),
		parent:  cur.id,
		scope:   scope,
		name:    name,
		file:    file,
		started: time.Now(),
	}
	t.Emit(&Event{
		Time:     s.started,
		Seq:      seq.Add(1),
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: s.parent,
		File:     file,
		Name:     name,
	})
	return withSpan(ctx, spanContext{id: s.id, file: file}), s
}

// End emits the end event and returns the span's duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil {
		return 0
	}
	now := time.Now()
	dur := now.Sub(s.started)
	s.tracer.Emit(&Event{
		Time:     now,
		Seq:      seq.Add(1),
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		File:     s.file,
		Name:     s.name,
		Detail:   detail,
		Elapsed:  dur,
		Extra:    s.extra,
	})
	return dur
}

// Annotate adds a key-value pair to the end event.
func (s *Span) Annotate(key, value string) *Span {
	if s == nil {
		return nil
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// ID returns the span ID, zero for a filtered span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event below the span in ctx.
func Point(ctx context.Context, scope Scope, name, detail string) {
	t := FromContext(ctx)
	if !t.Level().ShouldEmit(scope) {
		return
	}
	cur := currentSpan(ctx)
	t.Emit(&Event{
		Time:     time.Now(),
		Seq:      seq.Add(1),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: cur.id,
		File:     cur.file,
		Name:     name,
		Detail:   detail,
	})
}
