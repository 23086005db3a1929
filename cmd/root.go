package cmd

import (
	"github.com/spf13/cobra"

	"setup-toolchain/internal/logger"
)

// debug indicates whether debug logging should be enabled.
// It can be toggled via the `--debug` command-line flag.
var debug bool

// rootCmd is the base command for the CLI tool `setup-toolchain`.
var rootCmd = &cobra.Command{
	Use:   "setup-toolchain",
	Short: "macOS developer toolchain provisioner",

	// PersistentPreRun runs before any subcommand; initialize the logger here
	// so every command sees the --debug flag.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},
}

// Execute initializes flags, registers subcommands, and starts command
// execution. It's the entry point for the CLI when invoked by the user (or by
// the installer framework running the packaged post-install script).
func Execute() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	_ = rootCmd.Execute()
}
