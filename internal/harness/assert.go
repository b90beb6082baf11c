package harness

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// True returns nil if cond holds and an *AssertionError naming expr otherwise.
//
//	if err := harness.True(exp.Start == act.Start, "exp.Start == act.Start"); err != nil {
//		return err
//	}
func True(cond bool, expr string) error {
	if cond {
		return nil
	}
	return failAt(1, expr, "")
}

// False is the inverse of True.
func False(cond bool, expr string) error {
	if !cond {
		return nil
	}
	return failAt(1, expr, "expected false")
}

// Equal fails when want != got.
func Equal[T comparable](want, got T, expr string) error {
	if want == got {
		return nil
	}
	return failAt(1, expr, fmt.Sprintf("want %v, got %v", want, got))
}

// Skip marks the calling case as skipped.
func Skip(reason string) error {
	return &skipError{reason: reason}
}

// failAt builds the error for the caller skip frames above the assertion.
func failAt(skip int, expr, msg string) *AssertionError {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		file, line = "???", 0
	}
	return &AssertionError{
		Expr: expr,
		Msg:  msg,
		File: filepath.Base(file),
		Line: line,
	}
}
