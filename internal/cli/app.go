// Package cli provides the interactive shell of the annotation store.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/annoti/annoti/internal/config"
	"github.com/annoti/annoti/internal/filex"
	"github.com/annoti/annoti/internal/logging"
	"github.com/annoti/annoti/internal/merge"
	"github.com/annoti/annoti/internal/services"
	"github.com/annoti/annoti/internal/sidecar"
	"github.com/annoti/annoti/internal/storage"
)

type App struct {
	config      *config.Config
	log         logging.Logger
	store       *storage.Store
	users       services.UserService
	documents   services.DocumentService
	annotations services.AnnotationService
	exchange    services.ExchangeService
	migrator    *sidecar.Migrator
	reader      *bufio.Reader
	out         io.Writer
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if _, err := filex.EnsureDir(c.DataDir); err != nil {
		return nil, fmt.Errorf("failed to prepare data directory: %w", err)
	}

	store, err := storage.Open(ctx, c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	return &App{
		config:      c,
		log:         log,
		store:       store,
		users:       services.NewUserService(store, c.UserName, c.DataDir),
		documents:   services.NewDocumentService(store),
		annotations: services.NewAnnotationService(store),
		exchange:    services.NewExchangeService(store, merge.NewEngine(store.DB, log)),
		migrator:    sidecar.NewMigrator(store.DB, log),
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer func() { _ = a.store.Close() }()
	runREPL(ctx, a, bufio.NewScanner(os.Stdin))
}
