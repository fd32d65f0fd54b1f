package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sdl/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "sdl",
	Short:         "Scanner, parser and formatter for SDL tag configuration files",
	Long:          `sdl reads tag configuration documents, reports lexical and syntax errors and prints the parsed tag trees`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		stopProf, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		cleanup, err := setupTracing(cmd, s.config)
		if err != nil {
			stopProf()
			return err
		}
		active = s
		traceCleanup = func(runErr error) {
			cleanup(runErr)
			stopProf()
		}
		return nil
	},
}

// active holds the settings resolved for the running command.
var active *settings

// traceCleanup flushes the tracer after the command finishes.
var traceCleanup = func(error) {}

// exitError carries a process exit code without an extra message;
// diagnostics have already been printed.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

var errHasDiagnostics = &exitError{code: 1}

func init() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().Int("max-depth", 0, "maximum brace nesting depth (0=default)")
	rootCmd.PersistentFlags().String("config", "", "path to sdl.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().Bool("cache", false, "reuse parse results from the disk cache")
	rootCmd.PersistentFlags().String("cache-dir", "", "cache directory (default: $XDG_CACHE_HOME/sdl)")

	// Трассировка
	rootCmd.PersistentFlags().String("trace", "", "write trace events to file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept in the ring buffer")

	// Профилирование
	rootCmd.PersistentFlags().String("cpuprofile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("memprofile", "", "write heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")
}

// main executes the root command. Interrupts cancel the command context.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	traceCleanup(err)
	stop()

	if err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, "sdl:", err)
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
