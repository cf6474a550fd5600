package diag

import "comform/internal/source"

// Reporter receives diagnostics as the lexer finds them.
type Reporter interface {
	Report(d Diagnostic)
}

// BagReporter stores into Bag; a nil Bag drops everything.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(d Diagnostic) {
	if r.Bag != nil {
		r.Bag.Add(d)
	}
}

// Dedup forwards only the first diagnostic per code and primary span. The
// lexer can hit the same broken string again after resynchronising.
func Dedup(next Reporter) Reporter {
	return &dedup{next: next, seen: make(map[dedupKey]struct{})}
}

type dedupKey struct {
	code Code
	span source.Span
}

type dedup struct {
	next Reporter
	seen map[dedupKey]struct{}
}

func (r *dedup) Report(d Diagnostic) {
	k := dedupKey{d.Code, d.Primary}
	if _, ok := r.seen[k]; ok {
		return
	}
	r.seen[k] = struct{}{}
	if r.next != nil {
		r.next.Report(d)
	}
}
