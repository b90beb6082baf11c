package harness

import (
	"errors"
	"fmt"
	"strings"
)

// Class is a stable failure category.
type Class string

const (
	AssertionFailure Class = "ASSERTION_FAILURE"
	CaseError        Class = "CASE_ERROR"
	SetupFailure     Class = "SETUP_FAILURE"
	TeardownFailure  Class = "TEARDOWN_FAILURE"
	Fault            Class = "FAULT"
	ConfigError      Class = "CONFIG"
	InternalIO       Class = "INTERNAL_IO"
)

// ExitCode returns the process exit code for this failure class.
func (c Class) ExitCode() int {
	switch c {
	case ConfigError:
		return 2
	case InternalIO:
		return 10
	default:
		return 1
	}
}

// Error is the structured error for everything except assertion failures.
type Error struct {
	Class   Class
	Group   string
	Case    string
	Message string
	Cause   error

	origin error // what the case returned, when this is a case-scoped copy
}

func (e *Error) Error() string {
	where := e.Group
	if e.Case != "" {
		if where != "" {
			where += "/"
		}
		where += e.Case
	}
	msg := e.Message
	switch {
	case msg == "" && e.Cause != nil:
		msg = e.Cause.Error()
	case e.Cause != nil && !strings.Contains(msg, e.Cause.Error()):
		msg += ": " + e.Cause.Error()
	}
	if where == "" {
		return fmt.Sprintf("%s: %s", e.Class, msg)
	}
	return fmt.Sprintf("%s %s: %s", e.Class, where, msg)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether the error a case returned matches target, so a
// case-scoped copy still satisfies errors.Is against shared sentinels.
func (e *Error) Is(target error) bool {
	return e.origin != nil && errors.Is(e.origin, target)
}

// scoped returns a copy of he bound to group and case. he itself is left
// untouched.
func scoped(err error, he *Error, group, name string) *Error {
	cp := *he
	cp.Group, cp.Case = group, name
	cp.origin = err
	return &cp
}

// NewError creates an Error with no case attached.
func NewError(class Class, message string, cause error) *Error {
	return &Error{Class: class, Message: message, Cause: cause}
}

// ClassOf returns the class of err, AssertionFailure for *AssertionError, or
// CaseError for any other non-nil error.
func ClassOf(err error) Class {
	if err == nil {
		return ""
	}
	var ae *AssertionError
	if errors.As(err, &ae) {
		return AssertionFailure
	}
	var he *Error
	if errors.As(err, &he) {
		return he.Class
	}
	return CaseError
}

// AssertionError reports a violated expectation with its source location.
type AssertionError struct {
	Expr string // failing condition as written by the test
	Msg  string // optional detail, e.g. want/got values
	File string
	Line int
}

func (e *AssertionError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s:%d: %s: %s", e.File, e.Line, e.Expr, e.Msg)
	}
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Expr)
}

// Location returns file:line.
func (e *AssertionError) Location() string {
	return fmt.Sprintf("%s:%d", e.File, e.Line)
}

type skipError struct{ reason string }

func (e *skipError) Error() string { return "skipped: " + e.reason }

// IsSkip reports whether err was produced by Skip.
func IsSkip(err error) bool {
	var se *skipError
	return errors.As(err, &se)
}
