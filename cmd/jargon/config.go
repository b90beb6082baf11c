package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"jargon/internal/harness"
)

const configFileName = "jargon.toml"

type config struct {
	Run    runConfig    `toml:"run"`
	Output outputConfig `toml:"output"`
	Cache  cacheConfig  `toml:"cache"`
}

type runConfig struct {
	Groups []string `toml:"groups"`
	Filter string   `toml:"filter"`
	Stack  bool     `toml:"stack"`
}

type outputConfig struct {
	Format  string `toml:"format"`
	Color   string `toml:"color"`
	UI      string `toml:"ui"`
	Timings bool   `toml:"timings"`
}

type cacheConfig struct {
	Enabled *bool  `toml:"enabled"`
	Dir     string `toml:"dir"`
}

func defaultConfig() config {
	return config{
		Output: outputConfig{Format: "pretty", Color: "auto", UI: "off"},
	}
}

func (c config) cacheEnabled() bool {
	return c.Cache.Enabled == nil || *c.Cache.Enabled
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfig decodes path over the defaults. Unknown keys and invalid enum
// values are errors.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return config{}, fmt.Errorf("%s: %w", path, err)
	}
	// относительный каталог кэша считается от файла конфигурации
	if cfg.Cache.Dir != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(filepath.Dir(path), cfg.Cache.Dir)
	}
	return cfg, nil
}

func (c config) validate() error {
	if _, err := readFormat(c.Output.Format); err != nil {
		return fmt.Errorf("[output].format: %w", err)
	}
	if _, err := readColorMode(c.Output.Color); err != nil {
		return fmt.Errorf("[output].color: %w", err)
	}
	if _, err := readUIMode(c.Output.UI); err != nil {
		return fmt.Errorf("[output].ui: %w", err)
	}
	return nil
}

// resolveConfig loads --config, or the nearest jargon.toml, or the defaults,
// then applies every flag the user set explicitly.
func resolveConfig(cmd *cobra.Command) (config, error) {
	root := cmd.Root().PersistentFlags()
	path, err := root.GetString("config")
	if err != nil {
		return config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	found := path != ""
	if !found {
		path, found, err = findConfig(".")
		if err != nil {
			return config{}, err
		}
	}
	cfg := defaultConfig()
	if found {
		if cfg, err = loadConfig(path); err != nil {
			return config{}, err
		}
	}

	if root.Changed("color") {
		cfg.Output.Color, _ = root.GetString("color")
	}
	if root.Changed("timings") {
		cfg.Output.Timings, _ = root.GetBool("timings")
	}
	flags := cmd.Flags()
	if flags.Lookup("format") != nil && flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Lookup("ui") != nil && flags.Changed("ui") {
		cfg.Output.UI, _ = flags.GetString("ui")
	}
	if flags.Lookup("run") != nil && flags.Changed("run") {
		cfg.Run.Filter, _ = flags.GetString("run")
	}
	if flags.Lookup("stack") != nil && flags.Changed("stack") {
		cfg.Run.Stack, _ = flags.GetBool("stack")
	}
	if flags.Lookup("no-cache") != nil && flags.Changed("no-cache") {
		noCache, _ := flags.GetBool("no-cache")
		enabled := !noCache
		cfg.Cache.Enabled = &enabled
	}
	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

// reportConfigError prints err as a CONFIG failure and returns its exit code.
func reportConfigError(w io.Writer, err error) int {
	herr := harness.NewError(harness.ConfigError, "configuration", err)
	fmt.Fprintln(w, "jargon:", herr)
	return herr.Class.ExitCode()
}
