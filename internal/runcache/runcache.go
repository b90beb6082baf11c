// Package runcache persists the report of the last run on disk so it can be
// shown again without re-running the groups.
package runcache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"jargon/internal/harness"
)

// Current schema version - increment when Entry format changes
const schemaVersion uint16 = 1

// ErrSchema is returned by Get for entries written by another schema.
var ErrSchema = errors.New("runcache: schema mismatch")

// Cache stores one msgpack file per suite name. Thread-safe.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// Entry is the on-disk payload.
type Entry struct {
	Schema uint16         `msgpack:"schema"`
	Report harness.Report `msgpack:"report"`
}

// Open returns a cache rooted at dir, or at $XDG_CACHE_HOME/<app> (falling
// back to ~/.cache/<app>) when dir is empty.
func Open(app, dir string) (*Cache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("runcache: %w", err)
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(filepath.Join(dir, "runs"), 0o755); err != nil {
		return nil, fmt.Errorf("runcache: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string { return c.dir }

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func (c *Cache) pathFor(suite string) string {
	name := unsafeName.ReplaceAllString(suite, "_")
	if name == "" {
		name = "default"
	}
	return filepath.Join(c.dir, "runs", name+".mp")
}

// Put writes report atomically, replacing any previous entry for its suite.
func (c *Cache) Put(report harness.Report) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(report.Suite)
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return fmt.Errorf("runcache: %w", err)
	}
	defer func() {
		// after a successful rename the temp file is gone
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = fmt.Errorf("runcache: %w", rmErr)
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&Entry{Schema: schemaVersion, Report: report}); err != nil {
		_ = f.Close()
		return fmt.Errorf("runcache: encode: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("runcache: %w", err)
	}
	// атомарная замена
	if err := os.Rename(f.Name(), p); err != nil {
		return fmt.Errorf("runcache: %w", err)
	}
	return nil
}

// Get loads the last report of suite. ok is false when nothing is cached.
func (c *Cache) Get(suite string) (report harness.Report, ok bool, err error) {
	if c == nil {
		return harness.Report{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(suite))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return harness.Report{}, false, nil
		}
		return harness.Report{}, false, fmt.Errorf("runcache: %w", err)
	}
	defer f.Close()

	var e Entry
	if err := msgpack.NewDecoder(f).Decode(&e); err != nil {
		return harness.Report{}, false, fmt.Errorf("runcache: decode: %w", err)
	}
	if e.Schema != schemaVersion {
		return harness.Report{}, false, ErrSchema
	}
	return e.Report, true, nil
}

// DropAll removes every cached run.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	runs := filepath.Join(c.dir, "runs")
	if err := os.RemoveAll(runs); err != nil {
		return fmt.Errorf("runcache: %w", err)
	}
	return os.MkdirAll(runs, 0o755)
}
