package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	// KindSpanBegin marks the start of a logical operation.
	KindSpanBegin Kind = iota + 1
	// KindSpanEnd marks the end of a logical operation.
	KindSpanEnd
	// KindPoint represents an instant event.
	KindPoint
	KindHeartbeat // periodic liveness signal
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindSpanBegin:
		return "begin"
	case KindSpanEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	default:
		return "unknown"
	}
}

// Scope indicates the granularity level of the event.
// Lower numeric values represent coarser events.
type Scope uint8

const (
	// ScopeSuite covers a whole run of one or more groups.
	ScopeSuite Scope = iota + 1
	// ScopeGroup covers one test group including its hooks.
	ScopeGroup
	// ScopeCase covers a single test case.
	ScopeCase
	ScopeAssert // individual assertion outcomes
)

// String returns the string representation of Scope.
func (s Scope) String() string {
	switch s {
	case ScopeSuite:
		return "suite"
	case ScopeGroup:
		return "group"
	case ScopeCase:
		return "case"
	case ScopeAssert:
		return "assert"
	default:
		return "unknown"
	}
}

// Event represents a single trace event.
type Event struct {
	Time     time.Time         // wall-clock timestamp
	Seq      uint64            // global sequence number (monotonic)
	Kind     Kind              // event kind
	Scope    Scope             // granularity level
	SpanID   uint64            // unique span identifier
	ParentID uint64            // parent span (0 if root)
	Name     string            // e.g. "group:token", "case:test_create_token"
	Detail   string            // optional detail message
	Failure  bool              // event reports a failure; passes LevelError
	Extra    map[string]string // extensible key-value pairs
}
