package mm2cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/urfave/cli"
)

// Run executes app, translating a returned or panicking error into a single
// colored stderr line and a non-zero exit status (generalized from the
// daemon's RecoverToLog, which only logged and kept running — a one-shot
// CLI instead exits).
func Run(app *cli.App) {
	defer func() {
		if x := recover(); x != nil {
			log.Critical(fmt.Sprintf("panic: %v", x))
			log.Critical(string(debug.Stack()))
			fmt.Fprintln(os.Stderr, Red(fmt.Sprintf("mm2tool ▶ internal error: %v", x)))
			os.Exit(1)
		}
	}()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, Red(fmt.Sprintf("mm2tool ▶ %s", err)))
		os.Exit(1)
	}
}
