package main

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/mattn/go-isatty"

	"jargon/internal/harness"
	"jargon/internal/observ"
)

// dumpJSON writes v as indented JSON. Colour is used only when mode allows it
// and w is a terminal.
func dumpJSON(w io.Writer, v any, mode colorMode) error {
	opts := []json.EncodeOptionFunc{json.DisableHTMLEscape()}
	if mode != colorOff {
		if f, ok := w.(interface{ Fd() uintptr }); ok && isatty.IsTerminal(f.Fd()) {
			opts = append(opts, json.Colorize(json.DefaultColorScheme))
		}
	}

	b, err := json.MarshalIndentWithOption(v, "", "  ", opts...)
	if err != nil {
		return fmt.Errorf("json.MarshalIndentWithOption: %w", err)
	}
	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}

// printSummary is the compact per-group view used after the progress UI and
// by `jargon last`.
func printSummary(out io.Writer, report harness.Report, useColor bool) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	for _, c := range []*color.Color{green, red, yellow} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, g := range report.Groups {
		status := green.Sprint("ok  ")
		if !g.OK() {
			status = red.Sprint("FAIL")
		}
		fmt.Fprintf(out, "%s %s: %d passed, %d failed, %d skipped\n",
			status, g.Group, len(g.Passed()), len(g.Failed()), len(g.Skipped()))
		if g.Setup != nil {
			fmt.Fprintf(out, "     setup: %s\n", red.Sprintf("%s %s", g.Setup.Class, g.Setup.Message))
		}
		for _, c := range g.Failed() {
			line := fmt.Sprintf("%s: %s %s", c.Name, c.Class, c.Message)
			if c.Location != "" {
				line += " (" + c.Location + ")"
			}
			fmt.Fprintf(out, "     %s\n", red.Sprint(line))
		}
		for _, c := range g.Skipped() {
			fmt.Fprintf(out, "     %s\n", yellow.Sprintf("%s: %s", c.Name, c.Message))
		}
		if g.Teardown != nil {
			fmt.Fprintf(out, "     teardown: %s\n", red.Sprintf("%s %s", g.Teardown.Class, g.Teardown.Message))
		}
	}
	t := report.Totals
	fmt.Fprintf(out, "%d group(s), %d case(s): %d passed, %d failed, %d skipped\n",
		t.Groups, t.Run, t.Passed, t.Failed+t.Faulted, t.Skipped)
}

func printTimings(out io.Writer, timings observ.Report, total time.Duration) {
	if out == nil {
		return
	}
	if summary := timings.Summary(); summary != "" {
		fmt.Fprint(out, summary)
	}
	fmt.Fprintf(out, "wall %.1f ms\n", toMillis(total))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
