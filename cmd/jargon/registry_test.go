package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"jargon/internal/harness"
)

func groupNames(groups []*harness.Group) []string {
	names := make([]string, len(groups))
	for i, g := range groups {
		names[i] = g.Name()
	}
	return names
}

func TestSelectGroups(t *testing.T) {
	all, err := selectGroups(nil)
	if err != nil {
		t.Fatalf("selectGroups(nil): %v", err)
	}
	if diff := cmp.Diff([]string{"token", "diagnostics"}, groupNames(all)); diff != "" {
		t.Fatalf("registry order (-want +got):\n%s", diff)
	}

	picked, err := selectGroups([]string{"diagnostics", "token", "token"})
	if err != nil {
		t.Fatalf("selectGroups: %v", err)
	}
	if diff := cmp.Diff([]string{"token", "diagnostics"}, groupNames(picked)); diff != "" {
		t.Fatalf("selection keeps registry order (-want +got):\n%s", diff)
	}

	_, err = selectGroups([]string{"token", "lexer"})
	if harness.ClassOf(err) != harness.ConfigError {
		t.Fatalf("unknown group must be a CONFIG error, got %v", err)
	}
}

func TestSuiteName(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{nil, defaultSuiteName},
		{[]string{"token"}, "token"},
		{[]string{"token", "diagnostics"}, "diagnostics+token"},
		{[]string{"diagnostics", "token", "diagnostics"}, "diagnostics+token"},
	}
	for _, tt := range tests {
		if got := suiteName(tt.in); got != tt.want {
			t.Errorf("suiteName(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
