// Package cmd provides the command-line interface for partwright.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "partwright",
	Short: "Partwright builds parametric components with pluggable designers.",
	Long: `Partwright builds parametric components with pluggable designers. ` +
		`It lists the designers found in the plugin directory, builds ` +
		`components from parameters and design rules, and serves a monitor ` +
		`for live sessions.`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("env-file", "", "Load settings from this file instead of .env")
	flags.String("plugin-dir", "", "Directory to discover plugins in")
	flags.String("design-rules", "", "Design rules database")
	flags.Int("workers", 0, "Number of scheduler workers, 0 for one per CPU with at least 2")
	flags.String("log-level", "", "One of debug, info, warn and error")
	flags.String("record", "", "Record tasks and recomputes into this SQLite file")
	flags.Bool("no-builtin", false, "Do not register the built-in primitives")
	flags.Bool("no-color", false, "Disable colored log output")
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		atexit.Exit(1)
	}
}
