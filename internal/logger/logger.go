package logger

import (
	"github.com/fatih/color"
)

// Colorized printf-style functions for the different log levels. These are
// package-level variables so callers can log without carrying a logger around;
// the tool is a single-invocation CLI and all output goes to the terminal.

// Info logs informational messages and stage announcements in green.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn logs warnings in bright magenta.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error logs errors in red.
var Error = color.New(color.FgRed).PrintfFunc()

// Debug logs debug messages in cyan when enabled, otherwise it's a no-op.
// It is assigned by Init based on the --debug flag; the default is the no-op
// so packages stay safe to use before Init runs (e.g. from tests).
var Debug = func(format string, a ...any) {}

// Init enables or disables debug logging. It must be called before any
// command runs; the root command does this in PersistentPreRun.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		Debug = func(format string, a ...any) {}
	}
}
