// Command progressive runs the JSON formatter on the progressive engine and
// serves its diagnostics.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "progressive",
		Short: "Reactive component engine tools",
		Long: `Progressive renders component trees that re-render only what changed.

The formatter app sorts and pretty-prints JSON through the engine; the debug
command serves the live component tree, metrics and a lifecycle stream.

Settings are read from progressive.yaml in the config directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("config-dir", ".", "Directory containing progressive.yaml")

	rootCmd.AddCommand(
		formatCmd(),
		debugCmd(),
		versionCmd(),
	)
	return rootCmd
}
