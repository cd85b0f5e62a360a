package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the build version and Go version used to build cify.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()

			info, ok := debug.ReadBuildInfo()
			if !ok || info.Main.Version == "" {
				_, _ = fmt.Fprintln(out, "version: unknown")
				return
			}

			_, _ = fmt.Fprintf(out, "cify version\t%s\n", info.Main.Version)
			_, _ = fmt.Fprintf(out, "go version\t%s\n", info.GoVersion)
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
