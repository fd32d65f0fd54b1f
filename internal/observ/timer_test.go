package observ

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("load")
	time.Sleep(time.Millisecond)
	tm.End(idx, "1 file")
	tm.Measure("parse", func() string { return "3 tags" })

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %d, want 2", len(r.Phases))
	}
	if r.Phases[0].Name != "load" || r.Phases[0].Note != "1 file" {
		t.Fatalf("unexpected first phase: %+v", r.Phases[0])
	}
	if r.Phases[0].DurationMS <= 0 || r.TotalMS < r.Phases[0].DurationMS {
		t.Fatalf("durations not accumulated: %+v", r)
	}

	sum := tm.Summary()
	for _, want := range []string{"timings:", "load", "// 3 tags", "total"} {
		if !strings.Contains(sum, want) {
			t.Errorf("summary missing %q:\n%s", want, sum)
		}
	}
}

func TestTimerEndOutOfRange(t *testing.T) {
	tm := NewTimer()
	tm.End(5, "ignored")
	if len(tm.Report().Phases) != 0 {
		t.Fatal("End with bad index must not add phases")
	}
	var nilTimer *Timer
	nilTimer.End(nilTimer.Begin("x"), "")
}

func TestTimerConcurrentFilePhases(t *testing.T) {
	tm := NewTimer()
	top := tm.Begin("parse")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Measure("file:x.sdl", func() string { return "" })
		}()
	}
	wg.Wait()
	tm.End(top, "")

	r := tm.Report()
	if len(r.Phases) != 9 {
		t.Fatalf("phases = %d, want 9", len(r.Phases))
	}
	if r.TotalMS != r.Phases[0].DurationMS {
		t.Fatalf("file phases must not count towards total: %v vs %v", r.TotalMS, r.Phases[0].DurationMS)
	}
}

func TestSummaryGroupsFilePhases(t *testing.T) {
	tm := NewTimer()
	top := tm.Begin("parse")
	for i := range SlowestShown + 2 {
		tm.Measure(fmt.Sprintf("parse:f%d.sdl", i), func() string { return "" })
	}
	tm.End(top, "7 files")

	sum := tm.Summary()
	if !strings.Contains(sum, "  parse ") || !strings.Contains(sum, "// 7 files") {
		t.Fatalf("summary misses the parent phase:\n%s", sum)
	}
	if n := strings.Count(sum, ".sdl"); n != SlowestShown {
		t.Fatalf("expected %d file lines, got %d:\n%s", SlowestShown, n, sum)
	}
	if !strings.Contains(sum, "... 2 more") {
		t.Fatalf("summary misses the hidden count:\n%s", sum)
	}
	if strings.Contains(sum, "parse:") {
		t.Fatalf("file lines must drop the parent prefix:\n%s", sum)
	}
}
