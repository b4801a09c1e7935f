package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/skylinelab/watertower/internal/cli"
	"github.com/skylinelab/watertower/pkg/buildinfo"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cli.SetVersion(buildinfo.Version, buildinfo.Commit, buildinfo.Date)

	// The CLI prints its own errors; main only maps them to exit codes.
	if err := cli.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		os.Exit(1)
	}
}
