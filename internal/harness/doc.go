// Package harness registers, runs and reports groups of test cases that share
// one setup/teardown lifecycle.
//
// # Model
//
//   - Case – a named Func. A Func receives the group's *State and returns an
//     error: nil on success, an *AssertionError produced by True/False/Equal,
//     the value of Skip, or any other error.
//   - Group – an ordered list of cases plus optional Setup and Teardown hooks.
//     Cases run in registration order.
//   - State – one opaque slot shared by the hooks and the cases of a single
//     group run. A fresh State is created for every run; nothing is global.
//
// # Lifecycle
//
// Run drives a group through Setup, the cases, Teardown, in that order:
//
//   - a failing Setup aborts the run: no case and no Teardown executes;
//   - a failing case never stops its siblings;
//   - a panic inside a case is recovered and recorded as a FAULT for that
//     case only;
//   - Teardown runs exactly once whenever Setup succeeded.
//
// A GroupResult is OK only if every case passed or was skipped and both hooks
// succeeded.
//
// # Output
//
// Reporter receives lifecycle callbacks. ConsoleReporter renders them in the
// bracketed console format ("[ RUN      ] name", "[       OK ] name", ...).
// ProgressSink receives coarser Events for progress views. Both are optional.
//
// Every group, hook and case is also wrapped in a trace span taken from the
// context passed to Run.
package harness
