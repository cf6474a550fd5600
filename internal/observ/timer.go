// Package observ measures how long the phases of a run take.
package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Phase is one timed step. Wall phases come from Begin/End and make up the
// run total; aggregated phases come from Record and are sums over files that
// overlap the wall phases.
type Phase struct {
	Name       string
	Start      time.Time
	Dur        time.Duration
	Note       string
	Aggregated bool
}

// Timer collects phases. It is safe for concurrent use and a nil *Timer
// ignores everything.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
	now    func() time.Time
}

func NewTimer() *Timer { return &Timer{now: time.Now} }

// Begin opens a wall phase and returns the handle End expects.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: t.now()})
	return len(t.phases) - 1
}

// End closes the phase opened by Begin. Unknown handles are ignored.
func (t *Timer) End(idx int, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) || t.phases[idx].Aggregated {
		return
	}
	p := &t.phases[idx]
	p.Dur = t.now().Sub(p.Start)
	p.Note = note
}

// Record adds an aggregated phase measured elsewhere.
func (t *Timer) Record(name string, dur time.Duration, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Dur: dur, Note: note, Aggregated: true})
}

// PhaseReport is the serializable form of a phase.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
	Aggregated bool    `json:"aggregated,omitempty"`
}

// Report is a snapshot of a Timer in milliseconds. TotalMS only counts wall
// phases.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	if t == nil {
		return Report{}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.phases) == 0 {
		return Report{}
	}
	var r Report
	var total time.Duration
	for _, p := range t.phases {
		if !p.Aggregated {
			total += p.Dur
		}
		r.Phases = append(r.Phases, PhaseReport{
			Name:       p.Name,
			DurationMS: millis(p.Dur),
			Note:       p.Note,
			Aggregated: p.Aggregated,
		})
	}
	r.TotalMS = millis(total)
	return r
}

// Summary renders the report as a table: wall phases with their share of the
// total, then the aggregated phases under their own heading.
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	var agg []PhaseReport
	for _, p := range r.Phases {
		if p.Aggregated {
			agg = append(agg, p)
			continue
		}
		writeRow(&sb, p, share(p.DurationMS, r.TotalMS))
	}
	fmt.Fprintf(&sb, "  %-20s %9.2f ms\n", "total", r.TotalMS)
	if len(agg) > 0 {
		sb.WriteString("across files:\n")
		for _, p := range agg {
			writeRow(&sb, p, "")
		}
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, p PhaseReport, pct string) {
	fmt.Fprintf(sb, "  %-20s %9.2f ms", p.Name, p.DurationMS)
	if pct != "" {
		sb.WriteString(" " + pct)
	}
	if p.Note != "" {
		sb.WriteString("  // " + p.Note)
	}
	sb.WriteByte('\n')
}

func share(part, total float64) string {
	if total <= 0 {
		return ""
	}
	return fmt.Sprintf("%5.1f%%", 100*part/total)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
