package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"jargon/internal/harness"
	"jargon/internal/trace"
)

// execRoot runs rootCmd with args after restoring every flag to its default.
func execRoot(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, configFileName)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

func TestTestCommand_TokenGroupPretty(t *testing.T) {
	cfg := writeConfig(t, "[cache]\ndir = \"cache\"\n")

	stdout, stderr, err := execRoot(t, "test", "token", "--config", cfg, "--color", "off")
	if err != nil {
		t.Fatalf("test command failed: %v\nstderr:\n%s", err, stderr)
	}

	want := strings.Join([]string{
		"[==========] Running 1 test(s).",
		"[ RUN      ] test_create_token",
		"[       OK ] test_create_token",
		"[==========] 1 test(s) run.",
		"[  PASSED  ] 1 test(s).",
		"[==========]",
		"",
	}, "\n")
	if stdout != want {
		t.Fatalf("stdout mismatch\nwant:\n%s\ngot:\n%s", want, stdout)
	}

	if _, err := os.Stat(filepath.Join(filepath.Dir(cfg), "cache", "runs", "token.mp")); err != nil {
		t.Fatalf("report not cached: %v", err)
	}
}

func TestTestCommand_AllGroupsBannerPerGroup(t *testing.T) {
	cfg := writeConfig(t, "[cache]\nenabled = false\n")

	stdout, _, err := execRoot(t, "test", "--config", cfg, "--color", "off")
	if err != nil {
		t.Fatalf("test command failed: %v", err)
	}
	if got := strings.Count(stdout, "[==========]\n"); got != 2 {
		t.Fatalf("banner printed %d times, want 2:\n%s", got, stdout)
	}
	if !strings.Contains(stdout, "[ RUN      ] test_pass") || !strings.Contains(stdout, "[ RUN      ] test_fail") {
		t.Fatalf("diagnostics cases missing:\n%s", stdout)
	}
}

func TestTestCommand_JSON(t *testing.T) {
	cfg := writeConfig(t, "[cache]\nenabled = false\n")

	stdout, _, err := execRoot(t, "test", "--config", cfg, "--format", "json", "--run", "^test_pass$")
	if err != nil {
		t.Fatalf("test command failed: %v", err)
	}

	var report harness.Report
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("stdout is not a JSON report: %v\n%s", err, stdout)
	}
	if report.Suite != defaultSuiteName {
		t.Fatalf("suite = %q, want %q", report.Suite, defaultSuiteName)
	}
	if report.Totals.Run != 1 || report.Totals.Passed != 1 {
		t.Fatalf("totals = %+v, want one passing case", report.Totals)
	}
	if strings.Contains(stdout, "[==========]") {
		t.Fatalf("json output must not carry the console banner")
	}
}

func TestTestCommand_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		body string
	}{
		{name: "unknown group", args: []string{"test", "nope"}, body: ""},
		{name: "bad filter", args: []string{"test", "--run", "("}, body: ""},
		{name: "bad format flag", args: []string{"test", "--format", "xml"}, body: ""},
		{name: "unknown key", args: []string{"test"}, body: "[run]\nparallel = 4\n"},
		{name: "bad ui value", args: []string{"test"}, body: "[output]\nui = \"sometimes\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := writeConfig(t, tt.body+"\n[cache]\nenabled = false\n")
			args := append(append([]string{}, tt.args...), "--config", cfg)

			stdout, stderr, err := execRoot(t, args...)
			if got := exitCode(err); got != harness.ConfigError.ExitCode() {
				t.Fatalf("exit code = %d, want %d (err=%v, stderr=%s)", got, harness.ConfigError.ExitCode(), err, stderr)
			}
			if strings.Contains(stdout, "[ RUN      ]") {
				t.Fatalf("no case may run on a configuration error:\n%s", stdout)
			}
			if !strings.Contains(stderr, "CONFIG") {
				t.Fatalf("stderr must name the failure class, got %q", stderr)
			}
		})
	}
}

func TestLastCommand(t *testing.T) {
	cfg := writeConfig(t, "[cache]\ndir = \"cache\"\n")

	if _, _, err := execRoot(t, "test", "token", "--config", cfg, "--color", "off"); err != nil {
		t.Fatalf("test command failed: %v", err)
	}

	stdout, _, err := execRoot(t, "last", "token", "--config", cfg, "--color", "off")
	if err != nil {
		t.Fatalf("last command failed: %v", err)
	}
	if !strings.Contains(stdout, "suite token") || !strings.Contains(stdout, "token: 1 passed, 0 failed, 0 skipped") {
		t.Fatalf("unexpected last output:\n%s", stdout)
	}

	_, stderr, err := execRoot(t, "last", "diagnostics", "--config", cfg)
	if exitCode(err) != 1 || !strings.Contains(stderr, `no cached report for "diagnostics"`) {
		t.Fatalf("missing report: err=%v stderr=%q", err, stderr)
	}

	if _, _, err := execRoot(t, "last", "--drop", "--config", cfg); err != nil {
		t.Fatalf("drop failed: %v", err)
	}
	if _, _, err := execRoot(t, "last", "token", "--config", cfg); exitCode(err) != 1 {
		t.Fatalf("report must be gone after --drop, err=%v", err)
	}
}

func TestListCommand(t *testing.T) {
	stdout, _, err := execRoot(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{"token", "test_create_token", "diagnostics", "test_pass", "test_fail"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("list output missing %q:\n%s", want, stdout)
		}
	}
}

func TestVersionCommandJSON(t *testing.T) {
	stdout, _, err := execRoot(t, "version", "--format", "json", "--hash")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, stdout)
	}
	if payload.Tool != "jargon" || payload.GitCommit != "unknown" || payload.BuildDate != "" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestTestCommand_Profiles(t *testing.T) {
	cfg := writeConfig(t, "[cache]\nenabled = false\n")
	dir := filepath.Dir(cfg)
	cpu := filepath.Join(dir, "cpu.pprof")
	mem := filepath.Join(dir, "mem.pprof")

	_, stderr, err := execRoot(t, "test", "token", "--config", cfg, "--quiet", "--timings",
		"--cpu-profile", cpu, "--mem-profile", mem)
	if err != nil {
		t.Fatalf("test command failed: %v", err)
	}
	for _, path := range []string{cpu, mem} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("profile %s not written: %v", path, err)
		}
	}
	if !strings.Contains(stderr, "timings:") || !strings.Contains(stderr, "wall ") {
		t.Fatalf("--timings must print the phase table to stderr, got:\n%s", stderr)
	}
}

func TestTestCommand_TraceFile(t *testing.T) {
	cfg := writeConfig(t, "[cache]\nenabled = false\n")
	out := filepath.Join(filepath.Dir(cfg), "run.ndjson")

	if _, _, err := execRoot(t, "test", "token", "--config", cfg, "--quiet",
		"--trace", out, "--trace-level", "case", "--trace-mode", "stream"); err != nil {
		t.Fatalf("test command failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("trace not written: %v", err)
	}
	for _, want := range []string{`"suite:token"`, `"group:token"`, `"case:test_create_token"`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("trace missing %s:\n%s", want, data)
		}
	}
}

func TestTraceConfig(t *testing.T) {
	tf := traceFlags{output: "run.log", level: "off", mode: "ring", format: "auto", ringSize: 16}
	cfg, err := tf.traceConfig()
	if err != nil {
		t.Fatalf("traceConfig: %v", err)
	}
	if cfg.Level != trace.LevelGroup || cfg.Mode != trace.ModeBoth {
		t.Fatalf("an output path must switch tracing on: %+v", cfg)
	}

	if _, err := (traceFlags{level: "loud", mode: "ring"}).traceConfig(); err == nil {
		t.Fatalf("invalid level must be rejected")
	}
	if _, err := (traceFlags{level: "case", mode: "disk"}).traceConfig(); err == nil {
		t.Fatalf("invalid mode must be rejected")
	}
}
