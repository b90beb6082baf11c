package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeSuite, false},
		{LevelError, ScopeSuite, false},
		{LevelGroup, ScopeGroup, true},
		{LevelGroup, ScopeCase, false},
		{LevelCase, ScopeCase, true},
		{LevelCase, ScopeAssert, false},
		{LevelDebug, ScopeAssert, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestLevelAdmitsFailures(t *testing.T) {
	ev := &Event{Kind: KindPoint, Scope: ScopeAssert, Failure: true}
	if !LevelError.Admits(ev) {
		t.Fatalf("LevelError must admit failure events")
	}
	if LevelOff.Admits(ev) {
		t.Fatalf("LevelOff must admit nothing")
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "group", "case", "debug"} {
		l, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if l.String() != s {
			t.Fatalf("ParseLevel(%q).String() = %q", s, l.String())
		}
	}
	if _, err := ParseLevel("phase"); err == nil {
		t.Fatalf("ParseLevel(phase) must fail")
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelCase, FormatText)

	group := Begin(tr, ScopeGroup, "group:token", 0)
	c := Begin(tr, ScopeCase, "case:test_create_token", group.ID())
	Point(tr, ScopeAssert, "assert", "filtered at case level", c.ID(), false)
	c.WithExtra("status", "passed").End("")
	group.End("1 case")

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "\u2192 group:token") {
		t.Errorf("unexpected begin line %q", lines[0])
	}
	if !strings.Contains(lines[2], "case:test_create_token {status=passed}") {
		t.Errorf("unexpected case end line %q", lines[2])
	}
	if !strings.HasSuffix(lines[3], "group:token (1 case)") {
		t.Errorf("unexpected group end line %q", lines[3])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelError, FormatNDJSON)

	Begin(tr, ScopeCase, "case:ok", 0).End("")
	Begin(tr, ScopeCase, "case:bad", 0).Fail().End("assertion")

	out := buf.String()
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("only the failed end event should pass LevelError:\n%s", out)
	}
	if !strings.Contains(out, `"name":"case:bad"`) || !strings.Contains(out, `"failure":true`) {
		t.Fatalf("unexpected ndjson: %s", out)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeCase, Name: name})
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot len = %d, want 3", len(snap))
	}
	for i, want := range []string{"c", "d", "e"} {
		if snap[i].Name != want {
			t.Fatalf("snapshot[%d] = %q, want %q", i, snap[i].Name, want)
		}
	}

	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Fatalf("dump must hold 3 lines:\n%s", buf.String())
	}
}

func TestMultiTracerFansOut(t *testing.T) {
	var buf bytes.Buffer
	ring := NewRingTracer(8, LevelGroup)
	m := NewMultiTracer(LevelGroup, NewStreamTracer(&buf, LevelGroup, FormatText), ring)

	Begin(m, ScopeGroup, "group:x", 0).End("")

	if got, ok := m.Ring(); !ok || got != ring {
		t.Fatalf("Ring() did not return the ring tracer")
	}
	if len(ring.Snapshot()) != 2 || strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("both tracers must see begin and end")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tr.Enabled() {
		t.Fatalf("off tracer must be disabled")
	}
	if _, err := New(Config{Level: LevelCase}); err == nil {
		t.Fatalf("missing mode must be rejected")
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatalf("empty context must yield Nop")
	}
	r := NewRingTracer(1, LevelDebug)
	ctx := WithParent(WithTracer(context.Background(), r), 42)
	if FromContext(ctx) != Tracer(r) {
		t.Fatalf("tracer not propagated")
	}
	if ParentFromContext(ctx) != 42 {
		t.Fatalf("parent not propagated")
	}
}

func TestNewModes(t *testing.T) {
	var buf bytes.Buffer

	stream, err := New(Config{Level: LevelCase, Mode: ModeStream, Output: &buf})
	if err != nil {
		t.Fatalf("New(stream): %v", err)
	}
	if _, ok := stream.(*StreamTracer); !ok {
		t.Fatalf("stream mode built %T", stream)
	}

	ring, err := New(Config{Level: LevelCase, Mode: ModeRing})
	if err != nil {
		t.Fatalf("New(ring): %v", err)
	}
	if _, ok := ring.(*RingTracer); !ok {
		t.Fatalf("ring mode built %T", ring)
	}

	both, err := New(Config{Level: LevelCase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatalf("New(both): %v", err)
	}
	multi, ok := both.(*MultiTracer)
	if !ok {
		t.Fatalf("both mode built %T", both)
	}
	if _, ok := multi.Ring(); !ok {
		t.Fatalf("both mode must keep a ring")
	}
}

func TestStreamFormatFromPath(t *testing.T) {
	tests := []struct {
		cfg  Config
		want Format
	}{
		{Config{OutputPath: "run.ndjson"}, FormatNDJSON},
		{Config{OutputPath: "run.jsonl"}, FormatNDJSON},
		{Config{OutputPath: "run.log"}, FormatText},
		{Config{OutputPath: "-"}, FormatText},
		{Config{OutputPath: "run.log", Format: FormatNDJSON}, FormatNDJSON},
	}
	for _, tt := range tests {
		if got := tt.cfg.streamFormat(); got != tt.want {
			t.Errorf("streamFormat(%+v) = %v, want %v", tt.cfg, got, tt.want)
		}
	}
}

func TestSpanEndCarriesFailureAndExtra(t *testing.T) {
	ring := NewRingTracer(8, LevelCase)

	s := Begin(ring, ScopeCase, "case:x", 7)
	s.Fail().WithExtra("status", "failed").End("a.go:3")

	evs := ring.Snapshot()
	if len(evs) != 2 {
		t.Fatalf("want begin and end, got %d events", len(evs))
	}
	begin, end := evs[0], evs[1]
	if begin.Kind != KindSpanBegin || end.Kind != KindSpanEnd {
		t.Fatalf("kinds = %v, %v", begin.Kind, end.Kind)
	}
	if begin.SpanID != s.ID() || end.SpanID != s.ID() || end.ParentID != 7 {
		t.Fatalf("ids: begin=%d end=%d parent=%d span=%d", begin.SpanID, end.SpanID, end.ParentID, s.ID())
	}
	if !end.Failure || end.Detail != "a.go:3" || end.Extra["status"] != "failed" {
		t.Fatalf("end event = %+v", end)
	}
	if begin.Seq >= end.Seq {
		t.Fatalf("sequence must increase: %d then %d", begin.Seq, end.Seq)
	}
}
