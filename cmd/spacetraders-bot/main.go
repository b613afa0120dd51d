package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/andrescamacho/spacetraders-bot/internal/adapters/cli"
)

func main() {
	// Ctrl+C cancels the running command; in-flight waits return promptly
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}
