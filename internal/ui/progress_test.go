package ui

import (
	"strings"
	"testing"

	"jargon/internal/harness"
)

func TestApplyEventTracksFraction(t *testing.T) {
	events := make(chan harness.Event)
	m := NewProgressModel("jargon test", []string{
		CaseKey("token", "test_create_token"),
		CaseKey("diagnostics", "test_pass"),
	}, events).(*progressModel)

	m.applyEvent(harness.Event{Group: "token", Stage: harness.StageGroup, Status: harness.StatusRunning})
	if m.groupNote != "group token" {
		t.Fatalf("groupNote = %q", m.groupNote)
	}

	m.applyEvent(harness.Event{Group: "token", Case: "test_create_token", Stage: harness.StageCase, Status: harness.StatusRunning})
	if m.fraction() != 0 {
		t.Fatalf("running case must not count as done")
	}
	m.applyEvent(harness.Event{Group: "token", Case: "test_create_token", Stage: harness.StageCase, Status: harness.StatusPassed})
	if m.fraction() != 0.5 {
		t.Fatalf("fraction = %v, want 0.5", m.fraction())
	}
	m.applyEvent(harness.Event{Group: "other", Case: "unknown", Status: harness.StatusFailed})
	if m.fraction() != 0.5 {
		t.Fatalf("unknown case must be ignored")
	}

	view := m.View()
	if !strings.Contains(view, "token/test_create_token") || !strings.Contains(view, "passed") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"a_very_long_case_name", 10, "a_very_..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
