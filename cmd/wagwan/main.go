package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/lowhung/wagwan/internal/cli"
	"github.com/lowhung/wagwan/internal/config"
)

// main is the application entry point.
// It delegates execution to runMain to ensure that deferred function calls
// are executed before the process terminates. os.Exit() does not run defers,
// so we must return an integer code first.
func main() {
	os.Exit(runMain())
}

// runMain wires signal handling and command dispatch.
// Returns config.ExitCodeSuccess on success, config.ExitCodeError on failure.
func runMain() int {
	// Root context cancels on SIGINT (Ctrl+C) or SIGTERM. Long-running
	// commands (serve, the rm undo window) shut down through it.
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.RootCmd.ExecuteContext(ctx); err != nil {
		// Cobra already printed the error.
		return config.ExitCodeError
	}
	return config.ExitCodeSuccess
}
