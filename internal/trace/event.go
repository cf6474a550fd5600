package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd
	// KindPoint represents an instant event.
	KindPoint
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope indicates the granularity of an event. Lower values are coarser.
type Scope uint8

const (
	// ScopeDriver covers a whole run over many files.
	ScopeDriver Scope = iota + 1
	// ScopePass covers one stage of one file (lex, reflow, style, verify, write).
	ScopePass
	// ScopeFile covers one source file.
	ScopeFile
	// ScopeGroup covers one comment group.
	ScopeGroup
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopePass:   "pass",
	ScopeFile:   "file",
	ScopeGroup:  "group",
}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64 // global, increasing
	Kind     Kind
	Scope    Scope
	SpanID   uint64 // zero for points
	ParentID uint64 // zero at the root
	// File is the source file being formatted when the event happened.
	File   string
	Name   string // e.g. "reflow", "file:pkg/mod.py"
	Detail string
	// Elapsed is set on span ends.
	Elapsed time.Duration
	Extra   map[string]string
}
