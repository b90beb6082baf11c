// Package tokentest holds the harness groups that verify the token model.
package tokentest

import (
	"context"
	"io"
	"os"

	"github.com/fatih/color"

	"jargon/internal/harness"
	"jargon/internal/sample"
	"jargon/internal/token"
)

// Group returns the token group: test_create_token with no-op hooks.
func Group() *harness.Group {
	return harness.NewGroup("token").
		WithSetup(setup).
		WithTeardown(teardown).
		Add("test_create_token", testCreateToken)
}

// Diagnostics returns the group that exercises the harness's own pass and
// fail reporting paths against the sample functions.
func Diagnostics() *harness.Group {
	return harness.NewGroup("diagnostics").
		Add("test_pass", testPass).
		Add("test_fail", testFail)
}

func setup(*harness.State) error    { return nil }
func teardown(*harness.State) error { return nil }

func testCreateToken(*harness.State) error {
	start, length := 0, 8

	exp := token.Token{
		Start:  start,
		Length: length,
	}

	act := token.Create(start, length)

	if err := harness.True(exp.Start == act.Start, "exp.Start == act.Start"); err != nil {
		return err
	}
	return harness.True(exp.Length == act.Length, "exp.Length == act.Length")
}

func testPass(*harness.State) error {
	return harness.True(true == sample.Affirm(), "true == sample.Affirm()")
}

func testFail(*harness.State) error {
	return harness.False(0 == sample.Code(), "0 == sample.Code()")
}

// RunTokenTests runs the token group on stdout and prints the completion
// banner.
func RunTokenTests() {
	_ = RunTokenTestsTo(context.Background(), os.Stdout, !color.NoColor)
}

// RunTokenTestsTo runs the token group with console output on w, writes the
// completion banner and returns the result.
func RunTokenTestsTo(ctx context.Context, w io.Writer, useColor bool) harness.GroupResult {
	res := harness.Run(ctx, Group(), harness.Options{
		Reporter: harness.NewConsoleReporter(w, useColor),
	})
	_ = harness.WriteBanner(w)
	return res
}
