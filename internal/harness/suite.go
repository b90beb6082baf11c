package harness

import (
	"context"
	"fmt"
	"io"
	"time"

	"jargon/internal/trace"
)

// SuiteOptions configures RunSuite.
type SuiteOptions struct {
	Options
	// Name labels the report.
	Name string
	// Filter is a case-name regular expression applied to every group.
	Filter string
	// Banner, if set, receives the completion marker after each group.
	Banner io.Writer
}

// RunSuite runs groups one after another and aggregates their results.
// Only an invalid Filter makes it fail before running anything.
func RunSuite(ctx context.Context, groups []*Group, opts SuiteOptions) (Report, error) {
	selected, err := FilterGroups(groups, opts.Filter)
	if err != nil {
		return Report{}, err
	}

	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeSuite, "suite:"+opts.Name, trace.ParentFromContext(ctx))
	ctx = trace.WithParent(ctx, span.ID())

	report := Report{Suite: opts.Name, StartedAt: time.Now()}
	for _, g := range selected {
		if opts.Progress != nil {
			for _, name := range g.CaseNames() {
				opts.Progress.OnEvent(Event{Group: g.Name(), Case: name, Stage: StageCase, Status: StatusQueued})
			}
		}
	}
	for _, g := range selected {
		res := Run(ctx, g, opts.Options)
		report.Groups = append(report.Groups, res)
		report.Timings = report.Timings.Merge(g.Name()+"/", res.Timings)
		if opts.Banner != nil {
			if err := WriteBanner(opts.Banner); err != nil {
				return report, NewError(InternalIO, "write banner", err)
			}
		}
	}
	report.Totals = countTotals(report.Groups)

	if !report.OK() {
		span.Fail()
	}
	span.End(fmt.Sprintf("%d/%d passed", report.Totals.Passed, report.Totals.Run))
	return report, nil
}

// FilterGroups applies pattern to every group, as RunSuite does. An invalid
// pattern is a CONFIG error.
func FilterGroups(groups []*Group, pattern string) ([]*Group, error) {
	selected := make([]*Group, 0, len(groups))
	for _, g := range groups {
		fg, err := g.Filter(pattern)
		if err != nil {
			return nil, NewError(ConfigError, "bad filter", err)
		}
		selected = append(selected, fg)
	}
	return selected, nil
}
