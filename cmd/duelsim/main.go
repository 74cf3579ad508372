// Package main provides a CLI for running batches of simulated duels.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/emberfall/crucible/internal/platform/config"

	duelsimcmd "github.com/emberfall/crucible/internal/cmd/duelsim"
)

func main() {
	cfg, err := duelsimcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := duelsimcmd.Run(ctx, cfg, os.Stdout); err != nil {
		config.Exitf("Error: %v", err)
	}
}
