package harness

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Banner is the completion marker written after a group finishes.
const Banner = "[==========]"

// WriteBanner writes Banner and a newline to w.
func WriteBanner(w io.Writer) error {
	_, err := fmt.Fprintln(w, Banner)
	return err
}

// Reporter receives lifecycle callbacks from Run.
type Reporter interface {
	GroupStarted(group string, cases int)
	CaseStarted(group, name string)
	CaseFinished(group string, r CaseResult)
	HookFailed(group string, stage Stage, r HookResult)
	GroupFinished(r GroupResult)
}

// NopReporter discards everything.
type NopReporter struct{}

func (NopReporter) GroupStarted(string, int)             {}
func (NopReporter) CaseStarted(string, string)           {}
func (NopReporter) CaseFinished(string, CaseResult)      {}
func (NopReporter) HookFailed(string, Stage, HookResult) {}
func (NopReporter) GroupFinished(GroupResult)            {}

// ConsoleReporter prints bracketed progress lines, one per event.
type ConsoleReporter struct {
	w      io.Writer
	green  *color.Color
	red    *color.Color
	yellow *color.Color
}

// NewConsoleReporter writes to w, coloring status tags when useColor is set.
func NewConsoleReporter(w io.Writer, useColor bool) *ConsoleReporter {
	r := &ConsoleReporter{
		w:      w,
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed, color.Bold),
		yellow: color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{r.green, r.red, r.yellow} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

const (
	tagBanner  = "=========="
	tagRun     = " RUN      "
	tagOK      = "       OK "
	tagFailed  = "  FAILED  "
	tagError   = "  ERROR   "
	tagLine    = "   LINE   "
	tagPassed  = "  PASSED  "
	tagSkipped = "  SKIPPED "
)

func (r *ConsoleReporter) line(c *color.Color, tag, format string, args ...any) {
	fmt.Fprintf(r.w, "[%s] %s\n", c.Sprint(tag), fmt.Sprintf(format, args...))
}

func (r *ConsoleReporter) GroupStarted(group string, cases int) {
	r.line(r.green, tagBanner, "Running %d test(s).", cases)
}

func (r *ConsoleReporter) CaseStarted(_, name string) {
	r.line(r.green, tagRun, "%s", name)
}

func (r *ConsoleReporter) CaseFinished(_ string, cr CaseResult) {
	switch cr.Status {
	case StatusPassed:
		r.line(r.green, tagOK, "%s", cr.Name)
	case StatusSkipped:
		r.line(r.yellow, tagSkipped, "%s", cr.Name)
	case StatusFaulted:
		r.line(r.red, tagError, "--- %s", cr.Message)
		r.line(r.red, tagFailed, "%s", cr.Name)
	default:
		r.line(r.red, tagError, "--- %s", cr.Message)
		if cr.Location != "" {
			r.line(r.red, tagLine, "--- %s: error: Failure!", cr.Location)
		}
		r.line(r.red, tagFailed, "%s", cr.Name)
	}
}

func (r *ConsoleReporter) HookFailed(_ string, stage Stage, hr HookResult) {
	r.line(r.red, tagError, "--- %s", hr.Message)
	r.line(r.red, tagFailed, "GROUP %s", strings.ToUpper(string(stage)))
}

func (r *ConsoleReporter) GroupFinished(gr GroupResult) {
	run := len(gr.Cases)
	r.line(r.green, tagBanner, "%d test(s) run.", run)
	r.line(r.green, tagPassed, "%d test(s).", len(gr.Passed()))

	if skipped := gr.Skipped(); len(skipped) > 0 {
		r.line(r.yellow, tagSkipped, "%d test(s), listed below:", len(skipped))
		for _, c := range skipped {
			r.line(r.yellow, tagSkipped, "%s", c.Name)
		}
	}

	failed := gr.Failed()
	if len(failed) == 0 {
		return
	}
	r.line(r.red, tagFailed, "%d test(s), listed below:", len(failed))
	for _, c := range failed {
		r.line(r.red, tagFailed, "%s", c.Name)
	}
	fmt.Fprintf(r.w, "\n %d FAILED TEST(S)\n", len(failed))
}
