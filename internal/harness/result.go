package harness

import (
	"time"

	"github.com/samber/lo"

	"jargon/internal/observ"
)

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name       string  `json:"name" msgpack:"name"`
	Status     Status  `json:"status" msgpack:"status"`
	Class      Class   `json:"class,omitempty" msgpack:"class,omitempty"`
	Message    string  `json:"message,omitempty" msgpack:"message,omitempty"`
	Location   string  `json:"location,omitempty" msgpack:"location,omitempty"`
	DurationMS float64 `json:"duration_ms" msgpack:"duration_ms"`
	Err        error   `json:"-" msgpack:"-"`
}

// HookResult is the outcome of a setup or teardown hook that failed.
type HookResult struct {
	Class   Class  `json:"class" msgpack:"class"`
	Message string `json:"message" msgpack:"message"`
	Err     error  `json:"-" msgpack:"-"`
}

// GroupResult is the outcome of one group run.
type GroupResult struct {
	Group    string        `json:"group" msgpack:"group"`
	Cases    []CaseResult  `json:"cases" msgpack:"cases"`
	Setup    *HookResult   `json:"setup,omitempty" msgpack:"setup,omitempty"`
	Teardown *HookResult   `json:"teardown,omitempty" msgpack:"teardown,omitempty"`
	Timings  observ.Report `json:"timings" msgpack:"timings"`
}

// OK reports whether both hooks succeeded and no case failed or faulted.
func (r GroupResult) OK() bool {
	if r.Setup != nil || r.Teardown != nil {
		return false
	}
	return len(r.Failed()) == 0
}

// Passed returns the cases that passed.
func (r GroupResult) Passed() []CaseResult { return r.withStatus(StatusPassed) }

// Skipped returns the cases that were skipped.
func (r GroupResult) Skipped() []CaseResult { return r.withStatus(StatusSkipped) }

// Failed returns failed and faulted cases in run order.
func (r GroupResult) Failed() []CaseResult {
	return lo.Filter(r.Cases, func(c CaseResult, _ int) bool {
		return c.Status == StatusFailed || c.Status == StatusFaulted
	})
}

func (r GroupResult) withStatus(s Status) []CaseResult {
	return lo.Filter(r.Cases, func(c CaseResult, _ int) bool { return c.Status == s })
}

// Class returns the most significant failure class of the group, or "".
func (r GroupResult) Class() Class {
	switch {
	case r.Setup != nil:
		return r.Setup.Class
	case len(r.Failed()) > 0:
		return r.Failed()[0].Class
	case r.Teardown != nil:
		return r.Teardown.Class
	}
	return ""
}

// Totals counts case outcomes across a report.
type Totals struct {
	Groups  int `json:"groups" msgpack:"groups"`
	Run     int `json:"run" msgpack:"run"`
	Passed  int `json:"passed" msgpack:"passed"`
	Failed  int `json:"failed" msgpack:"failed"`
	Skipped int `json:"skipped" msgpack:"skipped"`
	Faulted int `json:"faulted" msgpack:"faulted"`
}

// Report is the outcome of running several groups.
type Report struct {
	Suite     string        `json:"suite" msgpack:"suite"`
	StartedAt time.Time     `json:"started_at" msgpack:"started_at"`
	Groups    []GroupResult `json:"groups" msgpack:"groups"`
	Totals    Totals        `json:"totals" msgpack:"totals"`
	Timings   observ.Report `json:"timings" msgpack:"timings"`
}

// OK reports whether every group is OK.
func (r Report) OK() bool {
	for _, g := range r.Groups {
		if !g.OK() {
			return false
		}
	}
	return true
}

// ExitCode returns 0 for an OK report and the class exit code otherwise.
func (r Report) ExitCode() int {
	for _, g := range r.Groups {
		if c := g.Class(); c != "" {
			return c.ExitCode()
		}
	}
	return 0
}

func countTotals(groups []GroupResult) Totals {
	return lo.Reduce(groups, func(t Totals, g GroupResult, _ int) Totals {
		t.Groups++
		for _, c := range g.Cases {
			t.Run++
			switch c.Status {
			case StatusPassed:
				t.Passed++
			case StatusFailed:
				t.Failed++
			case StatusSkipped:
				t.Skipped++
			case StatusFaulted:
				t.Faulted++
			}
		}
		return t
	}, Totals{})
}
