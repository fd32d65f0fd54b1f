package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sdl/internal/diagfmt"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] [file.sdl|-]",
	Short: "Tokenize an SDL file",
	Long:  `Tokenize breaks an SDL document into tokens and prints them with their positions`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	path := resolveInput(args, active.config)
	result, err := tokenizeInput(cmd.Context(), cmd, path, active.driverOptions())
	if err != nil {
		return err
	}
	defer active.printTimings(cmd)

	// Диагностику в stderr, токены в stdout
	if err := reportDiagnostics(cmd, result.Bag, result.FileSet, diagPretty); err != nil {
		return err
	}

	return renderSpan(cmd, "render", func() error {
		if format == "json" {
			return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens, result.FileSet)
		}
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	})
}
