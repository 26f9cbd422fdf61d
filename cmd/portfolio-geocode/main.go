package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/propdash/portfolio-service/internal/config"
	"github.com/propdash/portfolio-service/internal/utils"
)

func main() {
	// stdout carries the exported records
	utils.InitLogger(config.AppName+"-geocode", os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().Run(ctx, os.Args); err != nil {
		utils.Logger.WithError(err).Fatal("portfolio-geocode failed")
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "portfolio-geocode",
		Usage: "Bulk geocoding enrichment and listing feed transform",
		Commands: []*cli.Command{
			enrichCommand(),
			transformCommand(),
		},
	}
}
