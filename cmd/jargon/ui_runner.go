package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"jargon/internal/harness"
	"jargon/internal/ui"
)

// runSuiteWithUI runs the suite while a Bubble Tea program renders its
// progress events. The console reporter stays off; the caller prints the
// summary once the program has exited.
func runSuiteWithUI(ctx context.Context, out io.Writer, title string, groups []*harness.Group, opts harness.SuiteOptions, progOpts ...tea.ProgramOption) (harness.Report, error) {
	keys, err := progressKeys(groups, opts.Filter)
	if err != nil {
		return harness.Report{}, err
	}
	events := make(chan harness.Event, 256)

	var report harness.Report
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer close(events)
		suiteOpts := opts
		suiteOpts.Reporter = harness.NopReporter{}
		suiteOpts.Banner = nil
		suiteOpts.Progress = harness.ChannelSink{Ch: events}
		res, err := harness.RunSuite(egCtx, groups, suiteOpts)
		report = res
		return err
	})
	eg.Go(func() error {
		model := ui.NewProgressModel(title, keys, events)
		program := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithOutput(out)}, progOpts...)...)
		_, err := program.Run()
		// the suite must never block on a full channel
		for range events {
		}
		return err
	})
	err = eg.Wait()
	return report, err
}

// progressKeys lists the cases that will actually run once filter is
// applied, in run order.
func progressKeys(groups []*harness.Group, filter string) ([]string, error) {
	selected, err := harness.FilterGroups(groups, filter)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, g := range selected {
		for _, name := range g.CaseNames() {
			keys = append(keys, ui.CaseKey(g.Name(), name))
		}
	}
	return keys, nil
}
