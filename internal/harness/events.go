package harness

import "time"

// Stage describes which part of a group run an Event refers to.
type Stage string

const (
	// StageGroup is the group as a whole.
	StageGroup Stage = "group"
	// StageSetup is the setup hook.
	StageSetup Stage = "setup"
	// StageCase is a single test case.
	StageCase Stage = "case"
	// StageTeardown is the teardown hook.
	StageTeardown Stage = "teardown"
)

// Status is both the progress state of a running step and the outcome of a
// finished case.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusRunning Status = "running"
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
	StatusFaulted Status = "faulted"
)

// Done reports whether s is a final case outcome.
func (s Status) Done() bool {
	switch s {
	case StatusPassed, StatusFailed, StatusSkipped, StatusFaulted:
		return true
	}
	return false
}

// Event reports progress for a case (or for the group when Case is empty).
type Event struct {
	Group   string
	Case    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

type nopSink struct{}

func (nopSink) OnEvent(Event) {}
