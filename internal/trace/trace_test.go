package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug"} {
		lvl, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if lvl.String() != s {
			t.Fatalf("round trip %q -> %q", s, lvl.String())
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	sp := Begin(tr, ScopePass, "parse", 0)
	Point(tr, ScopeNode, "tag", sp.ID(), "filtered out")
	sp.WithExtra("tags", "3").End("ok")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "→ pass parse") {
		t.Errorf("begin line: %q", lines[0])
	}
	if !strings.Contains(lines[1], "← pass parse (ok) {tags=3}") {
		t.Errorf("end line: %q", lines[1])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeNode, "tag", 0, "user")

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid ndjson %q: %v", buf.String(), err)
	}
	if got["kind"] != "point" || got["scope"] != "node" || got["detail"] != "user" {
		t.Fatalf("unexpected event: %v", got)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopePass, Name: name})
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d, want 3", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Errorf("snap[%d] = %q, want %q", i, snap[i].Name, want)
		}
	}
}

func TestRingAtErrorLevelRecordsForDump(t *testing.T) {
	tr, err := New(Config{Level: LevelError, Mode: ModeRing})
	if err != nil {
		t.Fatal(err)
	}
	sp := Begin(tr, ScopeDriver, "parse", 0)
	sp.End("failed")

	ring := Ring(tr)
	if ring == nil {
		t.Fatal("expected ring tracer")
	}
	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "driver parse (failed)") {
		t.Fatalf("dump missing span end:\n%s", buf.String())
	}
}

func TestMultiTracerFansOut(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Point(tr, ScopePass, "load", 0, "")
	if buf.Len() == 0 {
		t.Fatal("stream side received nothing")
	}
	if n := len(Ring(tr).Snapshot()); n != 1 {
		t.Fatalf("ring side has %d events, want 1", n)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatal("off tracer must be disabled")
	}
	if sp := Begin(tr, ScopeDriver, "x", 0); sp.ID() != 0 {
		t.Fatal("disabled tracer must not allocate span ids")
	}
}

func TestContextPropagation(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	ctx := WithTracer(context.Background(), tr)

	outer, ctx := Start(ctx, ScopeDriver, "parse")
	inner, _ := Start(ctx, ScopeFile, "file:a.sdl")
	inner.End("")
	outer.End("")

	dec := json.NewDecoder(&buf)
	var parents []uint64
	for dec.More() {
		var ev struct {
			Name     string `json:"name"`
			ParentID uint64 `json:"parent_id"`
		}
		if err := dec.Decode(&ev); err != nil {
			t.Fatal(err)
		}
		if ev.Name == "file:a.sdl" {
			parents = append(parents, ev.ParentID)
		}
	}
	if len(parents) != 2 || parents[0] != outer.ID() {
		t.Fatalf("inner span parents = %v, want %d", parents, outer.ID())
	}
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context must yield Nop")
	}
}

func TestFormatSpanEndDuration(t *testing.T) {
	ev := &Event{Seq: 7, Kind: KindSpanEnd, Scope: ScopeDriver, Name: "load", Dur: 1500 * time.Microsecond}
	text := string(formatText(ev))
	if !strings.HasSuffix(text, "driver load 1.5ms\n") {
		t.Errorf("text = %q", text)
	}

	var got map[string]any
	if err := json.Unmarshal(formatNDJSON(ev), &got); err != nil {
		t.Fatal(err)
	}
	if got["dur_us"] != float64(1500) {
		t.Errorf("dur_us = %v, want 1500", got["dur_us"])
	}
}
