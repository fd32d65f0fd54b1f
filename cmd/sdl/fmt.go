package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sdl/internal/ast"
	"sdl/internal/driver"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] [file.sdl|directory|-]",
	Short: "Print SDL documents in canonical form",
	Long: `Fmt re-serializes documents: values in order, attributes sorted by name,
children indented by two spaces. Comments are not preserved.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().BoolP("write", "w", false, "write result to the source file instead of stdout")
	fmtCmd.Flags().Bool("check", false, "list files whose formatting differs and exit 1")
	fmtCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
}

type fmtTarget struct {
	path   string
	name   string
	source []byte
	tags   []*ast.Tag
}

func runFmt(cmd *cobra.Command, args []string) error {
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return fmt.Errorf("failed to get write flag: %w", err)
	}
	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return fmt.Errorf("failed to get check flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	path := resolveInput(args, active.config)
	if write && path == "-" {
		return fmt.Errorf("cannot use --write with stdin")
	}
	dir, err := isDir(path)
	if err != nil {
		return err
	}
	defer active.printTimings(cmd)

	var targets []fmtTarget
	failed := false
	if dir {
		fs, results, err := driver.ParseDir(cmd.Context(), path, active.driverOptions(), jobs)
		if err != nil {
			return fmt.Errorf("parsing failed: %w", err)
		}
		if err := reportDiagnostics(cmd, driver.MergeBags(results, active.maxDiagnostics), fs, diagPretty); err != nil {
			return err
		}
		for _, r := range results {
			if !r.OK() {
				failed = true
				continue
			}
			targets = append(targets, fmtTarget{path: r.Path, name: displayPath(r.ParseResult, r.Path), source: r.File.Content, tags: r.Tags})
		}
	} else {
		res, err := parseInput(cmd.Context(), cmd, path, active.driverOptions())
		if err != nil {
			return err
		}
		if err := reportDiagnostics(cmd, res.Bag, res.FileSet, diagPretty); err != nil {
			return err
		}
		if !res.OK() {
			return errHasDiagnostics
		}
		targets = append(targets, fmtTarget{path: path, name: displayPath(res, path), source: res.File.Content, tags: res.Tags})
	}

	differs := false
	err = renderSpan(cmd, "render", func() error {
		for _, t := range targets {
			formatted := []byte(ast.DocumentSource(t.tags))
			same := bytes.Equal(formatted, t.source)
			switch {
			case check:
				if !same {
					differs = true
					fmt.Fprintln(cmd.OutOrStdout(), t.name)
				}
			case write:
				if same {
					continue
				}
				if err := writeFileAtomic(t.path, formatted); err != nil {
					return err
				}
				if !active.quiet {
					fmt.Fprintf(cmd.ErrOrStderr(), "formatted %s\n", t.name)
				}
			default:
				if _, err := cmd.OutOrStdout().Write(formatted); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if failed || differs {
		return errHasDiagnostics
	}
	return nil
}

// writeFileAtomic replaces path via a temp file in the same directory,
// keeping the original permissions.
func writeFileAtomic(path string, data []byte) error {
	st, err := os.Stat(path)
	if err != nil {
		return err
	}
	tmp := path + ".sdlfmt.tmp"
	if err := os.WriteFile(tmp, data, st.Mode().Perm()); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
