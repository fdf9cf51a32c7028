// Package mm2cli holds the plumbing shared by every mm2tool subcommand:
// leveled logging, terminal coloring, key parsing, and the error/panic
// translation that turns a returned error into the process's exit status.
package mm2cli

import (
	"os"

	"github.com/op/go-logging"
)

var log = logging.MustGetLogger("mm2tool")

var stderrFormat = logging.MustStringFormatter(
	`%{color}mm2tool ▶ %{message}%{color:reset}`,
)

// SetupLogging wires a stderr backend at defaultLevel, overridable by the
// MM2_LOG_LEVEL environment variable (adapted from the daemon's
// KR_LOG_LEVEL convention).
func SetupLogging(defaultLevel logging.Level) *logging.Logger {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	logging.SetFormatter(stderrFormat)

	leveled := logging.AddModuleLevel(backend)
	switch os.Getenv("MM2_LOG_LEVEL") {
	case "CRITICAL":
		leveled.SetLevel(logging.CRITICAL, "")
	case "ERROR":
		leveled.SetLevel(logging.ERROR, "")
	case "WARNING":
		leveled.SetLevel(logging.WARNING, "")
	case "NOTICE":
		leveled.SetLevel(logging.NOTICE, "")
	case "INFO":
		leveled.SetLevel(logging.INFO, "")
	case "DEBUG":
		leveled.SetLevel(logging.DEBUG, "")
	default:
		leveled.SetLevel(defaultLevel, "")
	}

	logging.SetBackend(leveled)
	return log
}

// Log returns the package logger, already configured by SetupLogging.
func Log() *logging.Logger { return log }
