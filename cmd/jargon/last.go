package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jargon/internal/runcache"
)

var lastCmd = &cobra.Command{
	Use:   "last [group...]",
	Short: "Show the cached report of the previous run",
	Long: `Show the report stored by the last "jargon test" run with the same
group selection. --drop clears the cache instead.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runLast,
}

func init() {
	lastCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	lastCmd.Flags().Bool("drop", false, "remove every cached report")
}

func runLast(cmd *cobra.Command, args []string) error {
	errOut := cmd.ErrOrStderr()
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return &exitError{code: reportConfigError(errOut, err)}
	}
	cache, err := runcache.Open("jargon", cfg.Cache.Dir)
	if err != nil {
		return ioFailure(errOut, err)
	}

	drop, err := cmd.Flags().GetBool("drop")
	if err != nil {
		return fmt.Errorf("failed to get drop flag: %w", err)
	}
	if drop {
		if err := cache.DropAll(); err != nil {
			return ioFailure(errOut, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "dropped cached reports in %s\n", cache.Dir())
		return nil
	}

	name := suiteName(args)
	report, ok, err := cache.Get(name)
	switch {
	case errors.Is(err, runcache.ErrSchema):
		fmt.Fprintf(errOut, "jargon: cached report for %q was written by another version; run `jargon test` again\n", name)
		return &exitError{code: 1}
	case err != nil:
		return ioFailure(errOut, err)
	case !ok:
		fmt.Fprintf(errOut, "jargon: no cached report for %q\n", name)
		return &exitError{code: 1}
	}

	format, _ := readFormat(cfg.Output.Format)
	colors, _ := readColorMode(cfg.Output.Color)
	if format == formatJSON {
		if err := dumpJSON(cmd.OutOrStdout(), report, colors); err != nil {
			return ioFailure(errOut, err)
		}
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "suite %s, ran %s\n", report.Suite, report.StartedAt.Format("2006-01-02 15:04:05"))
	printSummary(cmd.OutOrStdout(), report, colors.useColor(os.Stdout))
	return nil
}
