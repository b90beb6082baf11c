package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff    Level = iota // no tracing
	LevelError               // only failure events
	LevelGroup               // suite + group boundaries
	LevelCase                // every test case
	LevelDebug               // everything including assertions
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelGroup:
		return "group"
	case LevelCase:
		return "case"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "group":
		return LevelGroup, nil
	case "case":
		return LevelCase, nil
	case "debug":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|group|case|debug)", s)
	}
}

// ShouldEmit returns true if the given scope should emit at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelOff, LevelError:
		return false // failures go through Admits
	case LevelGroup:
		return scope <= ScopeGroup
	case LevelCase:
		return scope <= ScopeCase
	case LevelDebug:
		return true
	}
	return false
}

// Admits reports whether ev passes the level filter.
func (l Level) Admits(ev *Event) bool {
	if l == LevelOff {
		return false
	}
	if ev.Kind == KindHeartbeat || ev.Failure {
		return true
	}
	return l.ShouldEmit(ev.Scope)
}
