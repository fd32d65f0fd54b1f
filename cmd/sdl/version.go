package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"sdl/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func currentVersion() versionPayload {
	return versionPayload{
		Tool:      "sdl",
		Version:   strings.TrimSpace(version.Version),
		GitCommit: strings.TrimSpace(version.GitCommit),
		BuildDate: strings.TrimSpace(version.BuildDate),
	}
}

type versionRenderer func(cmd *cobra.Command, w io.Writer) error

var versionRenderers = map[string]versionRenderer{
	"pretty": func(cmd *cobra.Command, w io.Writer) error {
		// version пропускает PersistentPreRunE, поэтому --color читаем напрямую
		mode, _ := cmd.Root().PersistentFlags().GetString("color")
		colored := mode == "on" || (mode == "auto" && isTerminal(os.Stdout))
		if colored {
			color.NoColor = false
		}
		_, err := io.WriteString(w, version.Describe(colored))
		return err
	},
	"short": func(_ *cobra.Command, w io.Writer) error {
		_, err := fmt.Fprintln(w, currentVersion().Version)
		return err
	},
	"json": func(_ *cobra.Command, w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(currentVersion())
	},
}

var versionFormat string

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|short|json)")
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show sdl build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		render, ok := versionRenderers[strings.ToLower(versionFormat)]
		if !ok {
			names := make([]string, 0, len(versionRenderers))
			for name := range versionRenderers {
				names = append(names, name)
			}
			slices.Sort(names)
			return fmt.Errorf("unsupported format %q (expected %s)", versionFormat, strings.Join(names, "|"))
		}
		return render(cmd, cmd.OutOrStdout())
	},
}
