package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sdl/internal/driver"
	"sdl/internal/observ"
)

type colorMode string

const (
	colorAuto colorMode = "auto"
	colorOn   colorMode = "on"
	colorOff  colorMode = "off"
)

func parseColorMode(s string) (colorMode, error) {
	switch colorMode(s) {
	case colorAuto, colorOn, colorOff:
		return colorMode(s), nil
	default:
		return colorAuto, fmt.Errorf("invalid color mode %q (expected: auto|on|off)", s)
	}
}

// settings are the effective options of one command run.
type settings struct {
	color          bool
	quiet          bool
	maxDiagnostics int
	maxDepth       int
	timer          *observ.Timer
	cache          *driver.DiskCache
	config         *projectConfig
}

func (s *settings) driverOptions() driver.Options {
	return driver.Options{
		MaxDiagnostics: s.maxDiagnostics,
		MaxDepth:       s.maxDepth,
		Cache:          s.cache,
		Timer:          s.timer,
	}
}

// loadSettings merges root flags with sdl.toml. A flag given explicitly
// always wins; otherwise the file value is used when present.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	flags := cmd.Root().PersistentFlags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := discoverProjectConfig(configPath)
	if err != nil {
		return nil, err
	}

	s := &settings{config: cfg}

	colorFlag, err := flags.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	if !flags.Changed("color") && cfg.defined("output", "color") {
		colorFlag = cfg.Output.Color
	}
	mode, err := parseColorMode(colorFlag)
	if err != nil {
		return nil, err
	}
	s.color = mode == colorOn || (mode == colorAuto && isTerminal(os.Stderr))

	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if !flags.Changed("quiet") && cfg.defined("output", "quiet") {
		s.quiet = cfg.Output.Quiet
	}

	if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if !flags.Changed("max-diagnostics") && cfg.defined("output", "max_diagnostics") {
		s.maxDiagnostics = cfg.Output.MaxDiagnostics
	}

	if s.maxDepth, err = flags.GetInt("max-depth"); err != nil {
		return nil, fmt.Errorf("failed to get max-depth flag: %w", err)
	}
	if !flags.Changed("max-depth") && cfg.defined("parse", "max_depth") {
		s.maxDepth = cfg.Parse.MaxDepth
	}
	if s.maxDepth < 0 {
		return nil, fmt.Errorf("--max-depth must not be negative")
	}

	timings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if timings {
		s.timer = observ.NewTimer()
	}

	useCache, err := flags.GetBool("cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache flag: %w", err)
	}
	cacheDir, err := flags.GetString("cache-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	if !flags.Changed("cache") && cfg.defined("cache", "enabled") {
		useCache = cfg.Cache.Enabled
	}
	if !flags.Changed("cache-dir") && cfg.defined("cache", "dir") {
		cacheDir = cfg.resolve(cfg.Cache.Dir)
	}
	if useCache {
		if s.cache, err = driver.OpenDiskCache(cacheDir); err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
	}
	return s, nil
}

// printTimings writes the phase summary to stderr when --timings is set.
func (s *settings) printTimings(cmd *cobra.Command) {
	if s.timer == nil {
		return
	}
	fmt.Fprint(cmd.ErrOrStderr(), s.timer.Summary())
}
