package main

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"ember/internal/version"
)

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
}

func newVersionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show ember build information",
		Args:  cobra.NoArgs,
	}
	format := cmd.Flags().String("format", "pretty", "output format (pretty|json)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		switch *format {
		case "pretty":
			_, err := fmt.Fprintln(a.stdout, version.Banner(a.colorOut))
			return err
		case "json":
			enc := json.NewEncoder(a.stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(versionPayload{
				Tool:      "ember",
				Version:   version.Version,
				GitCommit: version.GitCommit,
				BuildDate: version.BuildDate,
				GoVersion: runtime.Version(),
			})
		default:
			return fmt.Errorf("unsupported format %q (must be pretty or json)", *format)
		}
	}
	return cmd
}
