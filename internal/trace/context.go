package trace

import "context"

type tracerKey struct{}

type spanKey struct{}

// spanContext is what child spans inherit.
type spanContext struct {
	id   uint64
	file string
}

// FromContext returns the Tracer in ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches t to ctx; nil means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FileOf returns the file whose span encloses ctx, or "".
func FileOf(ctx context.Context) string {
	return currentSpan(ctx).file
}

func currentSpan(ctx context.Context) spanContext {
	if ctx == nil {
		return spanContext{}
	}
	sc, _ := ctx.Value(spanKey{}).(spanContext)
	return sc
}

func withSpan(ctx context.Context, sc spanContext) context.Context {
	return context.WithValue(ctx, spanKey{}, sc)
}
