package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"sdl/internal/diag"
	"sdl/internal/diagfmt"
	"sdl/internal/source"
	"sdl/internal/trace"
)

// diagFormat selects how diagnostics are written to stderr.
type diagFormat string

const (
	diagPretty diagFormat = "pretty"
	diagShort  diagFormat = "short"
	diagJSON   diagFormat = "json"
)

func parseDiagFormat(s string) (diagFormat, error) {
	switch diagFormat(s) {
	case diagPretty, diagShort, diagJSON:
		return diagFormat(s), nil
	default:
		return diagPretty, fmt.Errorf("unknown diagnostics format %q (expected: pretty|short|json)", s)
	}
}

// reportDiagnostics writes bag to the command's stderr.
func reportDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet, format diagFormat) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	sp, _ := trace.Start(cmd.Context(), trace.ScopePass, "render-diagnostics")
	defer sp.End(fmt.Sprintf("%d diagnostics", bag.Len()))

	bag.Sort()
	w := cmd.ErrOrStderr()
	switch format {
	case diagShort:
		if _, err := fmt.Fprintln(w, diag.FormatShort(bag.Items(), fs, true)); err != nil {
			return err
		}
		return writeDropped(w, bag)
	case diagJSON:
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeRelative,
			IncludeNotes:     true,
		})
	default:
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     active.color,
			PathMode:  diagfmt.PathModeAuto,
			ShowNotes: true,
		})
		return writeDropped(w, bag)
	}
}

// writeDropped tells the user that --max-diagnostics hid part of the output.
func writeDropped(w io.Writer, bag *diag.Bag) error {
	if n := bag.Dropped(); n > 0 {
		_, err := fmt.Fprintf(w, "%d more diagnostic(s) not shown (raise --max-diagnostics)\n", n)
		return err
	}
	return nil
}

// renderSpan wraps an output step in a trace span.
func renderSpan(cmd *cobra.Command, name string, fn func() error) error {
	sp, _ := trace.Start(cmd.Context(), trace.ScopePass, name)
	err := fn()
	if err != nil {
		sp.End(err.Error())
		return err
	}
	sp.End("")
	return nil
}

// writeHeader prints the "== path ==" separator used in directory mode.
func writeHeader(w io.Writer, path string, first bool) error {
	if !first {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "== %s ==\n", path)
	return err
}
