package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalHandler returns a child of parent that is canceled on SIGINT
// or SIGTERM. Call stop once the command is done to restore default signal
// behavior, so a second interrupt kills the process.
func SetupSignalHandler(parent context.Context) (ctx context.Context, stop context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
