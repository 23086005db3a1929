package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"setup-toolchain/internal/config"
	"setup-toolchain/internal/logger"
	"setup-toolchain/internal/state"
	"setup-toolchain/internal/toolchain"
)

// statusCmd reports what this tool has installed, combining the live
// Command Line Tools directory check with the recorded state file.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what the toolchain provisioner has installed",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			logger.Error("[ERROR] %v\n", err)
			os.Exit(1)
		}
		st := state.Load(cfg.StatePath)

		if toolchain.Installed(cfg.ToolchainDir) {
			logger.Info("Command Line Tools: installed (%s)\n", cfg.ToolchainDir)
			if st.Toolchain.UpdateLabel != "" {
				logger.Info("  installed from update label %q\n", st.Toolchain.UpdateLabel)
			}
		} else {
			logger.Warn("Command Line Tools: not installed\n")
		}

		if st.Compiler.Version != "" {
			logger.Info("gfortran: %s (verified MD5 %s)\n", st.Compiler.Version, st.Compiler.Checksum)
		} else {
			logger.Warn("gfortran: not installed by this tool\n")
		}

		if len(st.Tools) == 0 {
			logger.Info("extra tools: none\n")
			return
		}
		for name, tool := range st.Tools {
			logger.Info("extra tool %s: %s at %s\n", name, tool.Version, tool.InstallPath)
		}
	},
}

func init() {
	statusCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to optional configuration file")
	rootCmd.AddCommand(statusCmd)
}
