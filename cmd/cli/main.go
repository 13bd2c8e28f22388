package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/authify/authify-cli/internal/buildinfo"
	"github.com/authify/authify-cli/internal/cli"
	"github.com/authify/authify-cli/internal/config"
	"github.com/authify/authify-cli/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("%v", err)
	}
}
