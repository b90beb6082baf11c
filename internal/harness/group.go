package harness

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// State is the context object shared by the hooks and cases of one group run.
type State struct {
	Value any
}

// StateValue returns st.Value as a T.
func StateValue[T any](st *State) (T, bool) {
	var zero T
	if st == nil {
		return zero, false
	}
	v, ok := st.Value.(T)
	return v, ok
}

// Func is the body of a test case.
type Func func(st *State) error

// Hook is a group-level setup or teardown callback.
type Hook func(st *State) error

// Case is one registered test case.
type Case struct {
	Name string
	Func Func
}

// Group is an ordered set of cases with optional lifecycle hooks.
type Group struct {
	name     string
	cases    []Case
	seen     map[string]struct{}
	setup    Hook
	teardown Hook
}

// NewGroup creates an empty group.
func NewGroup(name string) *Group {
	return &Group{
		name: name,
		seen: make(map[string]struct{}),
	}
}

// Name returns the group name.
func (g *Group) Name() string { return g.name }

// Add registers a case at the end of the group. It panics on an empty name,
// a nil func, or a name already registered (after NFC normalization).
func (g *Group) Add(name string, fn Func) *Group {
	key := norm.NFC.String(strings.TrimSpace(name))
	if key == "" {
		panic(fmt.Sprintf("harness: group %q: empty case name", g.name))
	}
	if fn == nil {
		panic(fmt.Sprintf("harness: group %q: nil func for case %q", g.name, name))
	}
	if _, dup := g.seen[key]; dup {
		panic(fmt.Sprintf("harness: group %q: duplicate case %q", g.name, name))
	}
	g.seen[key] = struct{}{}
	g.cases = append(g.cases, Case{Name: name, Func: fn})
	return g
}

// WithSetup sets the hook run once before the first case.
func (g *Group) WithSetup(h Hook) *Group {
	g.setup = h
	return g
}

// WithTeardown sets the hook run once after the last case.
func (g *Group) WithTeardown(h Hook) *Group {
	g.teardown = h
	return g
}

// Cases returns a copy of the registered cases in order.
func (g *Group) Cases() []Case {
	out := make([]Case, len(g.cases))
	copy(out, g.cases)
	return out
}

// CaseNames returns the case names in registration order.
func (g *Group) CaseNames() []string {
	out := make([]string, len(g.cases))
	for i, c := range g.cases {
		out[i] = c.Name
	}
	return out
}

// Len returns the number of registered cases.
func (g *Group) Len() int { return len(g.cases) }

// Filter returns a copy of g keeping only the cases whose name matches
// pattern. Hooks are kept. An empty pattern keeps every case.
func (g *Group) Filter(pattern string) (*Group, error) {
	out := NewGroup(g.name)
	out.setup, out.teardown = g.setup, g.teardown
	if pattern == "" {
		for _, c := range g.cases {
			out.Add(c.Name, c.Func)
		}
		return out, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid case filter %q: %w", pattern, err)
	}
	for _, c := range g.cases {
		if re.MatchString(c.Name) {
			out.Add(c.Name, c.Func)
		}
	}
	return out, nil
}
