package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sdl/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.sdl|directory|-]",
	Short: "Report lexical and syntax errors without printing tags",
	Long: `Check parses an SDL file or every *.sdl file in a directory and only reports
diagnostics. It exits with status 1 when any file fails.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().String("ui", "auto", "progress view for directories (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	formatStr, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	dfmt, err := parseDiagFormat(formatStr)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if !cmd.Flags().Changed("jobs") && active.config.defined("parse", "jobs") {
		jobs = active.config.Parse.Jobs
	}

	path := resolveInput(args, active.config)
	dir, err := isDir(path)
	if err != nil {
		return err
	}
	defer active.printTimings(cmd)

	var files, tags, failed int
	if dir {
		fs, results, err := parseDirFor(cmd, path, jobs)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		for _, r := range results {
			files++
			tags += len(r.Tags)
			if !r.OK() {
				failed++
			}
		}
		if err := reportDiagnostics(cmd, driver.MergeBags(results, active.maxDiagnostics), fs, dfmt); err != nil {
			return err
		}
	} else {
		res, err := parseInput(cmd.Context(), cmd, path, active.driverOptions())
		if err != nil {
			return err
		}
		files, tags = 1, len(res.Tags)
		if !res.OK() {
			failed = 1
		}
		if err := reportDiagnostics(cmd, res.Bag, res.FileSet, dfmt); err != nil {
			return err
		}
	}

	if failed > 0 {
		if !active.quiet && dfmt != diagJSON {
			fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d file(s) failed\n", failed, files)
		}
		return errHasDiagnostics
	}
	if !active.quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d file(s), %d tag(s)\n", files, tags)
	}
	return nil
}
