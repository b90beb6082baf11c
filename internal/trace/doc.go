// Package trace is the structured logging layer of jargon.
//
// The harness does not print diagnostics through a logger; instead every
// group, hook and test case is wrapped in a trace span, and the spans are
// written by whichever Tracer the caller configured.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	jargon test --trace=- --trace-level=case
//
// # Architecture
//
//   - Nop: zero-overhead tracer used when tracing is disabled
//   - StreamTracer: writes each event immediately (file/stderr)
//   - RingTracer: keeps the last N events for dumping after a failure
//   - MultiTracer: fans out to several tracers
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only failure events
//   - LevelGroup: suite and group boundaries, hooks
//   - LevelCase: every test case
//   - LevelDebug: everything including individual assertions
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeGroup, "group:token", 0)
//	defer span.End("")
package trace
