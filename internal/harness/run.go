package harness

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"jargon/internal/observ"
	"jargon/internal/trace"
)

// Options configures Run. The zero value runs silently.
type Options struct {
	Reporter Reporter
	Progress ProgressSink
	// Stack keeps the goroutine stack of recovered case panics in the
	// case message.
	Stack bool
}

func (o Options) reporter() Reporter {
	if o.Reporter == nil {
		return NopReporter{}
	}
	return o.Reporter
}

func (o Options) progress() ProgressSink {
	if o.Progress == nil {
		return nopSink{}
	}
	return o.Progress
}

// Run executes g once: setup, every case in order, teardown.
func Run(ctx context.Context, g *Group, opts Options) GroupResult {
	tr := trace.FromContext(ctx)
	rep := opts.reporter()
	sink := opts.progress()
	timer := observ.NewTimer()

	span := trace.Begin(tr, trace.ScopeGroup, "group:"+g.name, trace.ParentFromContext(ctx))
	res := GroupResult{Group: g.name, Cases: make([]CaseResult, 0, len(g.cases))}
	st := &State{}

	rep.GroupStarted(g.name, len(g.cases))
	sink.OnEvent(Event{Group: g.name, Stage: StageGroup, Status: StatusRunning})

	if g.setup != nil {
		if hr := runHook(tr, span.ID(), timer, g.name, StageSetup, g.setup, st); hr != nil {
			res.Setup = hr
			rep.HookFailed(g.name, StageSetup, *hr)
			sink.OnEvent(Event{Group: g.name, Stage: StageSetup, Status: StatusFailed, Err: hr.Err})
			return finish(span, timer, rep, sink, res)
		}
	}

	for _, c := range g.cases {
		rep.CaseStarted(g.name, c.Name)
		sink.OnEvent(Event{Group: g.name, Case: c.Name, Stage: StageCase, Status: StatusRunning})

		cr := runCase(tr, span.ID(), timer, g.name, c, st, opts.Stack)
		res.Cases = append(res.Cases, cr)

		rep.CaseFinished(g.name, cr)
		sink.OnEvent(Event{
			Group:   g.name,
			Case:    c.Name,
			Stage:   StageCase,
			Status:  cr.Status,
			Err:     cr.Err,
			Elapsed: time.Duration(cr.DurationMS * float64(time.Millisecond)),
		})
	}

	if g.teardown != nil {
		if hr := runHook(tr, span.ID(), timer, g.name, StageTeardown, g.teardown, st); hr != nil {
			res.Teardown = hr
			rep.HookFailed(g.name, StageTeardown, *hr)
			sink.OnEvent(Event{Group: g.name, Stage: StageTeardown, Status: StatusFailed, Err: hr.Err})
		}
	}

	return finish(span, timer, rep, sink, res)
}

func finish(span *trace.Span, timer *observ.Timer, rep Reporter, sink ProgressSink, res GroupResult) GroupResult {
	res.Timings = timer.Report()
	status := StatusPassed
	if !res.OK() {
		status = StatusFailed
		span.Fail()
	}
	span.WithExtra("cases", fmt.Sprint(len(res.Cases))).End(string(status))
	rep.GroupFinished(res)
	sink.OnEvent(Event{Group: res.Group, Stage: StageGroup, Status: status})
	return res
}

// runHook runs a setup or teardown hook. A panic inside the hook is
// recovered and reported as a hook failure of class FAULT.
func runHook(tr trace.Tracer, parent uint64, timer *observ.Timer, group string, stage Stage, h Hook, st *State) *HookResult {
	span := trace.Begin(tr, trace.ScopeGroup, string(stage)+":"+group, parent)
	idx := timer.Begin(string(stage))

	err := protect(func() error { return h(st) }, false)

	timer.End(idx, "")
	if err == nil {
		span.End("ok")
		return nil
	}

	class := SetupFailure
	if stage == StageTeardown {
		class = TeardownFailure
	}
	if ClassOf(err) == Fault {
		class = Fault
	}
	span.Fail().End(err.Error())
	return &HookResult{
		Class:   class,
		Message: fmt.Sprintf("%s: %v", stage, err),
		Err:     &Error{Class: class, Group: group, Message: string(stage) + " failed", Cause: err},
	}
}

func runCase(tr trace.Tracer, parent uint64, timer *observ.Timer, group string, c Case, st *State, stack bool) CaseResult {
	span := trace.Begin(tr, trace.ScopeCase, "case:"+c.Name, parent)
	idx := timer.Begin(c.Name)

	err := protect(func() error { return c.Func(st) }, stack)

	cr := CaseResult{Name: c.Name}
	switch {
	case err == nil:
		cr.Status = StatusPassed
	case IsSkip(err):
		cr.Status = StatusSkipped
		cr.Message = err.Error()
	default:
		cr.Status = StatusFailed
		cr.Class = ClassOf(err)
		if cr.Class == Fault {
			cr.Status = StatusFaulted
		}
		var he *Error
		if errors.As(err, &he) {
			err = scoped(err, he, group, c.Name)
		}
		cr.Message, cr.Location = describe(err)
	}
	cr.Err = err

	cr.DurationMS = float64(timer.End(idx, string(cr.Status))) / float64(time.Millisecond)

	if cr.Status == StatusFailed || cr.Status == StatusFaulted {
		trace.Point(tr, trace.ScopeAssert, "fail:"+c.Name, cr.Message, span.ID(), true)
		span.Fail()
	}
	span.WithExtra("status", string(cr.Status)).End(cr.Location)
	return cr
}

// describe splits err into the message shown after "---" and the location.
func describe(err error) (msg, loc string) {
	var ae *AssertionError
	if errors.As(err, &ae) {
		msg = ae.Expr
		if ae.Msg != "" {
			msg += " (" + ae.Msg + ")"
		}
		return msg, ae.Location()
	}
	var he *Error
	if errors.As(err, &he) && he.Class == Fault {
		return "Test failed with exception: " + he.Message, ""
	}
	return err.Error(), ""
}

// protect calls fn and turns a panic into a FAULT error.
func protect(fn func() error, stack bool) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		msg := fmt.Sprint(r)
		if stack {
			msg += "\n" + strings.TrimSpace(string(debug.Stack()))
		}
		cause, _ := r.(error)
		err = &Error{Class: Fault, Message: msg, Cause: cause}
	}()
	return fn()
}
