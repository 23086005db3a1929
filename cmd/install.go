package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"setup-toolchain/internal/config"
	"setup-toolchain/internal/logger"
	"setup-toolchain/internal/runner"
	"setup-toolchain/internal/state"
	"setup-toolchain/internal/toolchain"
)

// configPath holds the path to an optional configuration YAML file.
// When empty, the built-in defaults are used (the packaged post-install
// invocation passes no arguments at all).
var configPath string

// installCmd is the top-level install command: the full orchestrated run of
// Command Line Tools, environment-file cleanup, gfortran, and extra tools.
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Provision the full macOS developer toolchain (CLT, gfortran, extra tools)",
	Run: func(cmd *cobra.Command, args []string) {
		runStage(func(o *toolchain.Orchestrator) error { return o.Run() })
	},
}

// installCltCmd installs only the Command Line Tools.
var installCltCmd = &cobra.Command{
	Use:   "clt",
	Short: "Install only the Command Line Tools for Xcode",
	Run: func(cmd *cobra.Command, args []string) {
		runStage(func(o *toolchain.Orchestrator) error { return o.InstallBaseToolchain() })
	},
}

// installGfortranCmd installs only the gfortran compiler package.
var installGfortranCmd = &cobra.Command{
	Use:   "gfortran",
	Short: "Install only the gfortran compiler for this macOS version",
	Run: func(cmd *cobra.Command, args []string) {
		runStage(func(o *toolchain.Orchestrator) error { return o.InstallCompiler() })
	},
}

// installToolsCmd installs only the extra tools declared in the config file.
var installToolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Install only the extra tools declared in the config file",
	Run: func(cmd *cobra.Command, args []string) {
		runStage(func(o *toolchain.Orchestrator) error { return o.InstallExtraTools() })
	},
}

// runStage loads config and state, runs the given orchestrator stage, saves
// state, and exits non-zero on failure. State is saved even when the run
// fails so the stages that did complete are recorded.
func runStage(stage func(*toolchain.Orchestrator) error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}

	st := state.Load(cfg.StatePath)
	orch := toolchain.New(cfg, runner.ExecRunner{}, st)

	err = stage(orch)
	state.Save(cfg.StatePath, st)
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}
}

// init sets up CLI flags and registers the install command tree.
func init() {
	installCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to optional configuration file")

	installCmd.AddCommand(installCltCmd)
	installCmd.AddCommand(installGfortranCmd)
	installCmd.AddCommand(installToolsCmd)
	rootCmd.AddCommand(installCmd)
}
