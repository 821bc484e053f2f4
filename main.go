// File: main.go
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/mkeller0x/layerforge-cli/cmd"
)

// main is the entry point for the layerforge CLI. Commands receive a context
// that is cancelled on SIGINT/SIGTERM.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Execute(ctx)
}
