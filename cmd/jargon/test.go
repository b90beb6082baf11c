package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"jargon/internal/harness"
	"jargon/internal/runcache"
)

var testCmd = &cobra.Command{
	Use:   "test [group...]",
	Short: "Run the registered test groups",
	Long: `Run the registered test groups (all of them when none are named).
Each group prints bracketed status lines followed by the [==========] marker.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTest,
}

func init() {
	testCmd.Flags().String("run", "", "run only cases whose name matches this regular expression")
	testCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	testCmd.Flags().String("ui", "off", "progress UI (auto|on|off)")
	testCmd.Flags().Bool("stack", false, "include a stack trace in fault messages")
	testCmd.Flags().Bool("no-cache", false, "do not store the report in the run cache")
}

func runTest(cmd *cobra.Command, args []string) error {
	errOut := cmd.ErrOrStderr()
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return &exitError{code: reportConfigError(errOut, err)}
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	names := args
	if len(names) == 0 {
		names = cfg.Run.Groups
	}
	groups, err := selectGroups(names)
	if err != nil {
		fmt.Fprintln(errOut, "jargon:", err)
		return &exitError{code: harness.ClassOf(err).ExitCode()}
	}

	tracer, cleanup, err := setupTracing(cmd)
	if err != nil {
		return &exitError{code: reportConfigError(errOut, err)}
	}
	defer cleanup()

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return ioFailure(errOut, err)
	}
	defer stopProfiling()

	format, _ := readFormat(cfg.Output.Format)
	colors, _ := readColorMode(cfg.Output.Color)
	mode, _ := readUIMode(cfg.Output.UI)
	out := cmd.OutOrStdout()
	useColor := colors.useColor(os.Stdout)

	name := suiteName(names)
	opts := harness.SuiteOptions{
		Options: harness.Options{Stack: cfg.Run.Stack},
		Name:    name,
		Filter:  cfg.Run.Filter,
	}
	if format == formatPretty && !quiet {
		opts.Reporter = harness.NewConsoleReporter(out, useColor)
		opts.Banner = out
	}

	started := time.Now()
	var report harness.Report
	useTUI := format == formatPretty && !quiet && shouldUseTUI(mode)
	if useTUI {
		report, err = runSuiteWithUI(cmd.Context(), os.Stdout, "jargon test "+name, groups, opts)
	} else {
		report, err = harness.RunSuite(cmd.Context(), groups, opts)
	}
	wall := time.Since(started)
	if err != nil {
		var herr *harness.Error
		if !errors.As(err, &herr) {
			herr = harness.NewError(harness.InternalIO, "progress ui", err)
		}
		fmt.Fprintln(errOut, "jargon:", herr)
		return &exitError{code: herr.Class.ExitCode()}
	}

	switch {
	case format == formatJSON:
		if err := dumpJSON(out, report, colors); err != nil {
			return ioFailure(errOut, err)
		}
	case useTUI:
		printSummary(out, report, useColor)
	}

	if cfg.Output.Timings {
		printTimings(errOut, report.Timings, wall)
	}

	if cfg.cacheEnabled() {
		if err := storeReport(cfg, report); err != nil {
			// reported, never fatal
			fmt.Fprintf(errOut, "jargon: run cache: %v\n", err)
		}
	}

	if !report.OK() {
		if err := dumpTraceRing(errOut, tracer); err != nil {
			fmt.Fprintf(errOut, "trace: dump error: %v\n", err)
		}
		if quiet && format == formatPretty {
			fmt.Fprintf(errOut, "jargon: %s\n", failedGroups(report))
		}
		return &exitError{code: report.ExitCode()}
	}
	return nil
}

func storeReport(cfg config, report harness.Report) error {
	cache, err := runcache.Open("jargon", cfg.Cache.Dir)
	if err != nil {
		return err
	}
	return cache.Put(report)
}

func failedGroups(report harness.Report) string {
	var failed []string
	for _, g := range report.Groups {
		if !g.OK() {
			failed = append(failed, fmt.Sprintf("%s (%s)", g.Group, g.Class()))
		}
	}
	return "failed: " + strings.Join(failed, ", ")
}

func ioFailure(errOut io.Writer, err error) error {
	herr := harness.NewError(harness.InternalIO, "write output", err)
	fmt.Fprintln(errOut, "jargon:", herr)
	return &exitError{code: herr.Class.ExitCode()}
}
