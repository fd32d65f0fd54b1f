// Package observ keeps wall-clock timings of the load, lex, parse and render
// phases for the --timings flag.
package observ

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// SlowestShown caps the per-file lines Summary prints under each phase.
const SlowestShown = 5

// Phase is one timed step. Names of the form "parent:item" are sub-phases
// (one per file in directory runs) and may overlap each other.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

func (p Phase) parent() (string, bool) {
	parent, _, ok := strings.Cut(p.Name, ":")
	return parent, ok
}

// Timer collects phases. It is safe for concurrent use and every method
// accepts a nil receiver, so callers never check whether timing is on.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

func NewTimer() *Timer { return &Timer{} }

// Begin opens a phase and returns a handle for End.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now()})
	return len(t.phases) - 1
}

// End closes the phase opened by Begin; an unknown handle is ignored.
func (t *Timer) End(idx int, note string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	t.phases[idx].Dur = time.Since(t.phases[idx].Start)
	t.phases[idx].Note = note
}

// Measure times fn; its return value becomes the phase note.
func (t *Timer) Measure(name string, fn func() string) {
	idx := t.Begin(name)
	t.End(idx, fn())
}

func (t *Timer) snapshot() []Phase {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.phases)
}

// PhaseReport is one phase in milliseconds.
type PhaseReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report lists phases in start order. TotalMS sums top-level phases only.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

func (t *Timer) Report() Report {
	phases := t.snapshot()
	if len(phases) == 0 {
		return Report{}
	}
	r := Report{Phases: make([]PhaseReport, len(phases))}
	var total time.Duration
	for i, p := range phases {
		if _, sub := p.parent(); !sub {
			total += p.Dur
		}
		r.Phases[i] = PhaseReport{Name: p.Name, DurationMS: millis(p.Dur), Note: p.Note}
	}
	r.TotalMS = millis(total)
	return r
}

// Summary renders the timings table printed by --timings. Sub-phases are
// listed under their parent, slowest first, at most SlowestShown of them.
func (t *Timer) Summary() string {
	phases := t.snapshot()
	subs := make(map[string][]Phase)
	var top []Phase
	var total time.Duration
	for _, p := range phases {
		if parent, ok := p.parent(); ok {
			subs[parent] = append(subs[parent], p)
			continue
		}
		top = append(top, p)
		total += p.Dur
	}

	var sb strings.Builder
	sb.WriteString("timings:\n")
	line := func(indent, name string, d time.Duration, note string) {
		fmt.Fprintf(&sb, "%s%-*s %7.2f ms", indent, 22-len(indent), name, millis(d))
		if note != "" {
			sb.WriteString("  // " + note)
		}
		sb.WriteByte('\n')
	}
	for _, p := range top {
		line("  ", p.Name, p.Dur, p.Note)
		children := subs[p.Name]
		delete(subs, p.Name)
		slices.SortStableFunc(children, func(a, b Phase) int { return cmp.Compare(b.Dur, a.Dur) })
		for _, c := range children[:min(len(children), SlowestShown)] {
			_, item, _ := strings.Cut(c.Name, ":")
			line("    ", item, c.Dur, c.Note)
		}
		if hidden := len(children) - SlowestShown; hidden > 0 {
			fmt.Fprintf(&sb, "    ... %d more\n", hidden)
		}
	}
	line("  ", "total", total, "")
	return sb.String()
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
