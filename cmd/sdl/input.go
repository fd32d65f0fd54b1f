package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sdl/internal/driver"
)

const (
	defaultInput = "config.sdl"
	stdinName    = "<stdin>"
)

// resolveInput picks the path to work on: the argument, then [parse].input
// from sdl.toml, then config.sdl in the working directory. "-" is stdin.
func resolveInput(args []string, cfg *projectConfig) string {
	if len(args) > 0 {
		return args[0]
	}
	if cfg.defined("parse", "input") && cfg.Parse.Input != "" {
		return cfg.resolve(cfg.Parse.Input)
	}
	return defaultInput
}

func isDir(path string) (bool, error) {
	if path == "-" {
		return false, nil
	}
	st, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("failed to stat path: %w", err)
	}
	return st.IsDir(), nil
}

// parseInput parses a single file or stdin.
func parseInput(ctx context.Context, cmd *cobra.Command, path string, opts driver.Options) (*driver.ParseResult, error) {
	if path == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return driver.ParseSource(ctx, stdinName, content, opts), nil
	}
	res, err := driver.Parse(ctx, path, opts)
	if err != nil {
		return nil, fmt.Errorf("parsing failed: %w", err)
	}
	return res, nil
}

// tokenizeInput lexes a single file or stdin.
func tokenizeInput(ctx context.Context, cmd *cobra.Command, path string, opts driver.Options) (*driver.TokenizeResult, error) {
	if path == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return driver.TokenizeSource(ctx, stdinName, content, opts), nil
	}
	res, err := driver.Tokenize(ctx, path, opts)
	if err != nil {
		return nil, fmt.Errorf("tokenization failed: %w", err)
	}
	return res, nil
}

// displayPath renders the path of res the way diagnostics do.
func displayPath(res *driver.ParseResult, fallback string) string {
	if res == nil || res.File == nil {
		return fallback
	}
	return res.File.FormatPath("auto", res.FileSet.BaseDir())
}
