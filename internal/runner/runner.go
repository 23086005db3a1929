package runner

import (
	"fmt"
	"os/exec"
	"strings"

	"setup-toolchain/internal/logger"
)

// Runner executes external commands. Every privileged or system-querying
// operation in this tool (sw_vers, softwareupdate, hdiutil, installer, sudo rm)
// goes through this interface so the orchestration logic can be tested with a
// fake runner instead of a real macOS host.
type Runner interface {
	Run(name string, args ...string) (string, error)
}

// ExecRunner runs commands on the local host via os/exec.
type ExecRunner struct{}

// Run executes the command and returns its combined stdout/stderr output.
// The command line is logged at debug level before execution.
func (ExecRunner) Run(name string, args ...string) (string, error) {
	logger.Debug("[DEBUG] Running command: %s %s\n", name, strings.Join(args, " "))

	cmd := exec.Command(name, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("%s %s failed: %w", name, strings.Join(args, " "), err)
	}
	return string(output), nil
}
