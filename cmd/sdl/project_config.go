package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"sdl/internal/diagfmt"
	"sdl/internal/trace"
)

const projectConfigName = "sdl.toml"

// projectConfig mirrors sdl.toml. Every key is optional; flags set on the
// command line win over file values.
type projectConfig struct {
	Parse  parseConfig  `toml:"parse"`
	Output outputConfig `toml:"output"`
	Cache  cacheConfig  `toml:"cache"`
	Trace  traceConfig  `toml:"trace"`

	path string
	meta toml.MetaData
}

type parseConfig struct {
	Input    string `toml:"input"`
	Format   string `toml:"format"`
	MaxDepth int    `toml:"max_depth"`
	Jobs     int    `toml:"jobs"`
}

type outputConfig struct {
	Color          string `toml:"color"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Quiet          bool   `toml:"quiet"`
}

type cacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type traceConfig struct {
	Level string `toml:"level"`
}

// defined reports whether key was present in the file.
func (c *projectConfig) defined(key ...string) bool {
	return c != nil && c.meta.IsDefined(key...)
}

// resolve makes a path from the file relative to the file's directory.
func (c *projectConfig) resolve(p string) string {
	if c == nil || p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(filepath.Dir(c.path), filepath.FromSlash(p))
}

func findProjectConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, projectConfigName)
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

func loadProjectConfig(path string) (*projectConfig, error) {
	cfg := &projectConfig{path: path}
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	cfg.meta = meta

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("parse", "format") {
		if _, err := diagfmt.ParseTagFormat(cfg.Parse.Format); err != nil {
			return nil, fmt.Errorf("%s: [parse].format: %w", path, err)
		}
	}
	if meta.IsDefined("parse", "max_depth") && cfg.Parse.MaxDepth < 0 {
		return nil, fmt.Errorf("%s: [parse].max_depth must not be negative", path)
	}
	if meta.IsDefined("output", "color") {
		if _, err := parseColorMode(cfg.Output.Color); err != nil {
			return nil, fmt.Errorf("%s: [output].color: %w", path, err)
		}
	}
	if meta.IsDefined("trace", "level") {
		if _, err := trace.ParseLevel(cfg.Trace.Level); err != nil {
			return nil, fmt.Errorf("%s: [trace].level: %w", path, err)
		}
	}
	return cfg, nil
}

// discoverProjectConfig loads explicit (when set) or the nearest sdl.toml
// above the working directory. A missing file is not an error.
func discoverProjectConfig(explicit string) (*projectConfig, error) {
	if explicit != "" {
		return loadProjectConfig(explicit)
	}
	path, ok, err := findProjectConfig(".")
	if err != nil || !ok {
		return nil, err
	}
	return loadProjectConfig(path)
}
