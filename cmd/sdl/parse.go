package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sdl/internal/diagfmt"
	"sdl/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] [file.sdl|directory|-]",
	Short: "Parse an SDL file or directory and print the tag trees",
	Long: `Parse reads an SDL document (config.sdl by default) or every *.sdl file in a
directory and prints the parsed tags. On a syntax error the tags read before
it are still printed and the command exits with status 1.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|tree|json|yaml|msgpack|sdl)")
	parseCmd.Flags().String("diagnostics", "pretty", "diagnostics format (pretty|short|json)")
	parseCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	parseCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
	parseCmd.Flags().StringP("output", "o", "", "write tags to file instead of stdout")
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := active.config

	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if !cmd.Flags().Changed("format") && cfg.defined("parse", "format") {
		formatStr = cfg.Parse.Format
	}
	format, err := diagfmt.ParseTagFormat(formatStr)
	if err != nil {
		return err
	}

	diagStr, err := cmd.Flags().GetString("diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get diagnostics flag: %w", err)
	}
	dfmt, err := parseDiagFormat(diagStr)
	if err != nil {
		return err
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if !cmd.Flags().Changed("jobs") && cfg.defined("parse", "jobs") {
		jobs = cfg.Parse.Jobs
	}

	outPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	out, closeOut, err := openOutput(cmd, outPath, format)
	if err != nil {
		return err
	}
	defer closeOut()

	path := resolveInput(args, cfg)
	dir, err := isDir(path)
	if err != nil {
		return err
	}
	defer active.printTimings(cmd)

	if !dir {
		return parseSingle(cmd, out, path, format, dfmt)
	}
	return parseDirectory(cmd, out, path, format, dfmt, jobs)
}

func parseSingle(cmd *cobra.Command, out io.Writer, path string, format diagfmt.TagFormat, dfmt diagFormat) error {
	res, err := parseInput(cmd.Context(), cmd, path, active.driverOptions())
	if err != nil {
		return err
	}
	if err := reportDiagnostics(cmd, res.Bag, res.FileSet, dfmt); err != nil {
		return err
	}

	err = renderSpan(cmd, "render", func() error {
		return diagfmt.FormatTags(out, displayPath(res, path), res.Tags, format, res.FileSet)
	})
	if err != nil {
		return err
	}
	if !res.OK() {
		return errHasDiagnostics
	}
	return nil
}

func parseDirectory(cmd *cobra.Command, out io.Writer, dir string, format diagfmt.TagFormat, dfmt diagFormat, jobs int) error {
	fs, results, err := parseDirFor(cmd, dir, jobs)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	failed := false
	merged := driver.MergeBags(results, active.maxDiagnostics)
	for _, r := range results {
		failed = failed || !r.OK()
	}
	if err := reportDiagnostics(cmd, merged, fs, dfmt); err != nil {
		return err
	}

	err = renderSpan(cmd, "render", func() error {
		if format.Structured() {
			docs := make([]diagfmt.DocumentOutput, 0, len(results))
			for _, r := range results {
				docs = append(docs, diagfmt.BuildDocumentOutput(displayPath(r.ParseResult, r.Path), r.Tags))
			}
			return diagfmt.FormatDocuments(out, docs, format)
		}
		for i, r := range results {
			name := displayPath(r.ParseResult, r.Path)
			if !active.quiet {
				if err := writeHeader(out, name, i == 0); err != nil {
					return err
				}
			}
			if err := diagfmt.FormatTags(out, name, r.Tags, format, fs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if failed {
		return errHasDiagnostics
	}
	return nil
}

// openOutput returns stdout or the -o file. Binary formats refuse to write
// to a terminal.
func openOutput(cmd *cobra.Command, path string, format diagfmt.TagFormat) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		if format.Binary() && isTerminal(os.Stdout) {
			return nil, nil, fmt.Errorf("refusing to write %s to a terminal; use -o or redirect stdout", format)
		}
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output: %w", err)
	}
	return f, func() {
		if err := f.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "sdl: close %s: %v\n", path, err)
		}
	}, nil
}
