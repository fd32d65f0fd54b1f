package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"sdl/internal/driver"
	"sdl/internal/source"
	"sdl/internal/ui"
)

type dirOutcome struct {
	fs      *source.FileSet
	results []driver.ParseDirResult
	err     error
}

// parseDirFor runs driver.ParseDir for cmd, drawing the progress view
// when the command's --ui flag asks for it.
func parseDirFor(cmd *cobra.Command, dir string, jobs int) (*source.FileSet, []driver.ParseDirResult, error) {
	useTUI := false
	if cmd.Flags().Lookup("ui") != nil {
		value, err := cmd.Flags().GetString("ui")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get ui flag: %w", err)
		}
		mode, err := readUIMode(value)
		if err != nil {
			return nil, nil, err
		}
		useTUI = shouldUseTUI(mode, active.quiet)
	}
	opts := active.driverOptions()
	if !useTUI {
		return driver.ParseDir(cmd.Context(), dir, opts, jobs)
	}
	return runParseDirWithUI(cmd, dir, opts, jobs)
}

func runParseDirWithUI(cmd *cobra.Command, dir string, opts driver.Options, jobs int) (*source.FileSet, []driver.ParseDirResult, error) {
	files, err := driver.ListFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	events := make(chan driver.ProgressEvent, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.ParseDir(cmd.Context(), dir, opts, jobs)
		outcomeCh <- dirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	display := func(path string) string {
		if rel, relErr := filepath.Rel(dir, path); relErr == nil {
			return filepath.ToSlash(rel)
		}
		return path
	}
	model := ui.NewProgressModel(cmd.Name()+" "+dir, files, display, events)
	program := tea.NewProgram(model,
		tea.WithOutput(os.Stderr),
		tea.WithInput(nil),
		tea.WithContext(cmd.Context()),
	)
	_, uiErr := program.Run()
	if uiErr != nil {
		// дочитываем события, чтобы ParseDir не встал на полном канале
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
