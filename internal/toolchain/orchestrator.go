package toolchain

import (
	"fmt"
	"os"

	"setup-toolchain/internal/config"
	"setup-toolchain/internal/installer"
	"setup-toolchain/internal/logger"
	"setup-toolchain/internal/macos"
	"setup-toolchain/internal/runner"
	"setup-toolchain/internal/state"
)

// Stage identifies a step of the provisioning state machine. The current
// stage lives in memory on the Orchestrator; the only filesystem marker is
// the softwareupdate on-demand sentinel, which is written for the catalog's
// benefit and never read back.
type Stage int

const (
	StageCheckBaseToolchain Stage = iota
	StageResetSelection
	StageResolveUpdateLabel
	StageInstallBase
	StageCleanupEnvFiles
	StageResolveCompilerTarget
	StageFetchCompiler
	StageVerifyCompiler
	StageInstallCompiler
	StageInstallTools
	StageDone
)

var stageNames = map[Stage]string{
	StageCheckBaseToolchain:    "check base toolchain",
	StageResetSelection:        "reset tool selection",
	StageResolveUpdateLabel:    "resolve update label",
	StageInstallBase:           "install base toolchain",
	StageCleanupEnvFiles:       "clean up environment files",
	StageResolveCompilerTarget: "resolve compiler target",
	StageFetchCompiler:         "fetch compiler",
	StageVerifyCompiler:        "verify compiler",
	StageInstallCompiler:       "install compiler",
	StageInstallTools:          "install extra tools",
	StageDone:                  "done",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Orchestrator drives the sequential provisioning run: base toolchain via the
// update catalog, environment-file cleanup, then the checksum-verified
// gfortran install, then any configured extra tools. Execution is strictly
// single-threaded and fail-fast; every external operation blocks until it
// completes. Concurrent runs are not supported (they would race on the
// scratch paths and the sentinel) and must be prevented by the invoking
// context.
type Orchestrator struct {
	Config config.Config
	Runner runner.Runner
	State  *state.State

	stage Stage
}

// New builds an Orchestrator over the given config, command runner, and
// loaded state.
func New(cfg config.Config, r runner.Runner, st *state.State) *Orchestrator {
	return &Orchestrator{Config: cfg, Runner: r, State: st}
}

func (o *Orchestrator) enterStage(s Stage) {
	o.stage = s
	logger.Info("[INFO] --- %s ---\n", s)
}

// Stage returns the stage the orchestrator last entered.
func (o *Orchestrator) Stage() Stage {
	return o.stage
}

// Run executes the full provisioning sequence. The compiler target is
// resolved up front even though its install comes last: an unsupported macOS
// version must terminate the run before any network or privileged call is
// attempted.
func (o *Orchestrator) Run() error {
	minor, err := macos.CurrentMinorVersion(o.Runner)
	if err != nil {
		return err
	}
	logger.Info("[INFO] Detected macOS version 10.%d\n", minor)

	target, err := ResolveCompilerTarget(minor)
	if err != nil {
		return err
	}

	if err := o.baseToolchainStage(minor); err != nil {
		return err
	}

	// This runs exactly once per invocation, whichever branch the toolchain
	// check took above.
	if err := o.cleanupStage(); err != nil {
		return err
	}

	if err := o.compilerStage(target); err != nil {
		return err
	}

	o.enterStage(StageInstallTools)
	if err := installer.InstallTools(o.Config.Tools, o.Config.ScratchDir, o.State); err != nil {
		return err
	}

	o.enterStage(StageDone)
	logger.Info("[INFO] Toolchain provisioning complete.\n")
	return nil
}

// InstallBaseToolchain runs only the Command Line Tools stage.
func (o *Orchestrator) InstallBaseToolchain() error {
	minor, err := macos.CurrentMinorVersion(o.Runner)
	if err != nil {
		return err
	}
	return o.baseToolchainStage(minor)
}

// InstallCompiler runs only the gfortran stage.
func (o *Orchestrator) InstallCompiler() error {
	minor, err := macos.CurrentMinorVersion(o.Runner)
	if err != nil {
		return err
	}
	target, err := ResolveCompilerTarget(minor)
	if err != nil {
		return err
	}
	return o.compilerStage(target)
}

// InstallExtraTools runs only the configured extra-tools stage.
func (o *Orchestrator) InstallExtraTools() error {
	o.enterStage(StageInstallTools)
	return installer.InstallTools(o.Config.Tools, o.Config.ScratchDir, o.State)
}

// baseToolchainStage installs the Command Line Tools through the update
// catalog unless the toolchain directory already exists.
func (o *Orchestrator) baseToolchainStage(minor int) error {
	o.enterStage(StageCheckBaseToolchain)
	if Installed(o.Config.ToolchainDir) {
		logger.Info("[INFO] Command Line Tools already installed at %s. Skipping.\n", o.Config.ToolchainDir)
		o.State.Toolchain.Installed = true
		return nil
	}

	label, err := o.installBase(minor)
	if err != nil {
		return err
	}

	o.State.Toolchain = state.ToolchainState{UpdateLabel: label, Installed: true}
	return nil
}

// installBase drives the softwareupdate install of the Command Line Tools.
// The on-demand sentinel makes softwareupdate include the tools in its
// catalog listing; it is removed on every exit path so a failed install
// cannot leave it dangling.
func (o *Orchestrator) installBase(minor int) (string, error) {
	if err := os.WriteFile(o.Config.SentinelPath, nil, 0644); err != nil {
		return "", fmt.Errorf("failed to create sentinel %s: %w", o.Config.SentinelPath, err)
	}
	defer func() {
		if err := os.Remove(o.Config.SentinelPath); err != nil {
			logger.Warn("[WARN] Could not remove sentinel %s: %v\n", o.Config.SentinelPath, err)
		}
	}()

	if minor == mojaveMinor {
		o.enterStage(StageResetSelection)
		if output, err := o.Runner.Run("sudo", "xcode-select", "-r"); err != nil {
			logger.Error("[ERROR] Failed to reset tool selection.\nOutput: %s\n", output)
			return "", fmt.Errorf("failed to reset command-line tool selection: %w", err)
		}
	}

	o.enterStage(StageResolveUpdateLabel)
	listing, err := o.Runner.Run("softwareupdate", "-l")
	if err != nil {
		return "", fmt.Errorf("failed to query the update catalog: %w", err)
	}
	label, err := ResolveUpdateLabel(listing)
	if err != nil {
		return "", err
	}
	logger.Info("[INFO] Resolved update label %q\n", label)

	o.enterStage(StageInstallBase)
	if output, err := o.Runner.Run("sudo", "softwareupdate", "-i", label, "--verbose"); err != nil {
		logger.Error("[ERROR] softwareupdate install failed.\nOutput: %s\n", output)
		return "", fmt.Errorf("failed to install %q: %w", label, err)
	}

	return label, nil
}

// cleanupStage backs up and removes the user environment files so compiler
// settings from a previous toolchain cannot leak into new builds.
func (o *Orchestrator) cleanupStage() error {
	o.enterStage(StageCleanupEnvFiles)
	for _, path := range o.Config.EnvFiles {
		if err := installer.RemoveIfPresent(o.Runner, path); err != nil {
			return err
		}
	}
	return nil
}

// compilerStage fetches, verifies, and installs the pinned gfortran build.
func (o *Orchestrator) compilerStage(target CompilerTarget) error {
	o.enterStage(StageResolveCompilerTarget)
	logger.Info("[INFO] Pinned compiler: gfortran %s for %s (MD5 %s)\n", target.Version, target.OSName, target.Checksum)

	o.enterStage(StageFetchCompiler)
	image, err := installer.Fetch(o.Config.DownloadBase+"/"+target.Version, target.FileName(), o.Config.ScratchDir)
	if err != nil {
		return err
	}

	o.enterStage(StageVerifyCompiler)
	if err := installer.VerifyChecksum(image, target.Checksum); err != nil {
		logger.Error("[ERROR] %v\n", err)
		return err
	}
	logger.Info("[INFO] Checksum verified.\n")

	o.enterStage(StageInstallCompiler)
	if err := installer.InstallFromDiskImage(o.Runner, image, o.Config.MountPoint, target.PackagePath()); err != nil {
		return err
	}

	o.State.Compiler = state.CompilerState{Version: target.Version, Checksum: target.Checksum}
	logger.Info("[INFO] Installed gfortran %s\n", target.Version)
	return nil
}
