package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/annoti/annoti/internal/buildinfo"
	"github.com/annoti/annoti/internal/cli"
	"github.com/annoti/annoti/internal/config"
	"github.com/annoti/annoti/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.Load()

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(cfg.LogLevel),
	})
	logger := logging.NewSlogLogger(slog.New(handler))

	app, err := cli.NewApp(ctx, cfg, logger)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
