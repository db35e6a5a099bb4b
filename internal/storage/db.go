// Package storage opens the SQLite database, applies schema migrations and
// bundles the per-entity repositories into an explicit store handle.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/annoti/annoti/internal/repositories/annotations"
	"github.com/annoti/annoti/internal/repositories/documents"
	"github.com/annoti/annoti/internal/repositories/users"
	"github.com/annoti/annoti/internal/storage/migrations"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Store is the handle every operation receives; it is constructed once and
// injected, never ambient. DB is exposed for transaction boundaries
// (dbx.WithTx); the repositories are bound to it for single-statement work.
type Store struct {
	DB          *sql.DB
	Users       users.Repository
	Documents   documents.Repository
	Annotations annotations.Repository
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if necessary) the SQLite database at dsn, applies
// migrations and returns a ready Store.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Store{
		DB:          db,
		Users:       users.NewSQLiteRepository(db),
		Documents:   documents.NewSQLiteRepository(db),
		Annotations: annotations.NewSQLiteRepository(db),
	}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.DB.Close()
}
