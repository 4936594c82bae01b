package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/rise-and-shine/decorators/cmd"
	"github.com/rise-and-shine/decorators/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := cmd.Execute(ctx)
	stop()

	if err != nil {
		// the global logger is the configured one once setup ran, and it is
		// silent under --quiet
		logger.Named("main").Errorx(err)
		_ = logger.Sync()

		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err) //nolint:errcheck // exiting anyway
		os.Exit(1)
	}
}
