package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, "a", configFileName)
	if err := os.WriteFile(want, []byte("[run]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, ok, err := findConfig(nested)
	if err != nil {
		t.Fatalf("findConfig: %v", err)
	}
	if !ok || got != want {
		t.Fatalf("findConfig = %q, %v; want %q, true", got, ok, want)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[run]
groups = ["token"]
filter = "create"
stack = true

[output]
format = "json"
color = "off"
ui = "auto"
timings = true

[cache]
enabled = false
dir = "runs-cache"
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	disabled := false
	want := config{
		Run:    runConfig{Groups: []string{"token"}, Filter: "create", Stack: true},
		Output: outputConfig{Format: "json", Color: "off", UI: "auto", Timings: true},
		Cache:  cacheConfig{Enabled: &disabled, Dir: filepath.Join(filepath.Dir(path), "runs-cache")},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.cacheEnabled() {
		t.Fatalf("cache must be disabled")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, ""))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if diff := cmp.Diff(defaultConfig(), cfg); diff != "" {
		t.Fatalf("empty file must yield defaults (-want +got):\n%s", diff)
	}
	if !cfg.cacheEnabled() {
		t.Fatalf("cache is enabled by default")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[run\n", "failed to parse TOML"},
		{"unknown key", "[output]\nverbose = true\n", "unknown keys: output.verbose"},
		{"bad format", "[output]\nformat = \"xml\"\n", "[output].format"},
		{"bad color", "[output]\ncolor = \"rainbow\"\n", "[output].color"},
		{"bad ui", "[output]\nui = \"maybe\"\n", "[output].ui"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.body))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}
