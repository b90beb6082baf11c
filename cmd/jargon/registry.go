package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"

	"jargon/internal/harness"
	"jargon/internal/tokentest"
)

const defaultSuiteName = "default"

// registeredGroups lists every group the binary knows, in run order.
func registeredGroups() []*harness.Group {
	return []*harness.Group{
		tokentest.Group(),
		tokentest.Diagnostics(),
	}
}

// selectGroups returns the named groups in registry order; no names means all.
func selectGroups(names []string) ([]*harness.Group, error) {
	all := registeredGroups()
	if len(names) == 0 {
		return all, nil
	}
	known := lo.Map(all, func(g *harness.Group, _ int) string { return g.Name() })
	if unknown, _ := lo.Difference(lo.Uniq(names), known); len(unknown) > 0 {
		return nil, harness.NewError(harness.ConfigError,
			fmt.Sprintf("unknown group(s) %s (known: %s)", strings.Join(unknown, ", "), strings.Join(known, ", ")), nil)
	}
	return lo.Filter(all, func(g *harness.Group, _ int) bool { return lo.Contains(names, g.Name()) }), nil
}

// suiteName derives the cache key for a selection of groups.
func suiteName(names []string) string {
	if len(names) == 0 {
		return defaultSuiteName
	}
	uniq := lo.Uniq(names)
	sort.Strings(uniq)
	return strings.Join(uniq, "+")
}
