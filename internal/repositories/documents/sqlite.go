package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/annoti/annoti/internal/dbx"
	"github.com/annoti/annoti/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const documentColumns = `id, path, content, checksum, last_modified, created_at`

func (r *SQLiteRepository) GetByPath(ctx context.Context, path string) (*models.Document, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE path = ?`, path)
	return scanDocument(row)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
	return scanDocument(row)
}

func scanDocument(row *sql.Row) (*models.Document, error) {
	d := &models.Document{}
	err := row.Scan(&d.ID, &d.Path, &d.Content, &d.Checksum, &d.LastModified, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}
	return d, nil
}

// Upsert inserts or, on a path conflict, updates content/checksum/last_modified.
// id and created_at are never touched on conflict.
func (r *SQLiteRepository) Upsert(ctx context.Context, doc *models.Document) error {
	query := `INSERT INTO documents (id, path, content, checksum, last_modified, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(path) DO UPDATE SET content = excluded.content,
				checksum = excluded.checksum,
				last_modified = excluded.last_modified
	`
	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.Path, doc.Content, doc.Checksum, doc.LastModified, doc.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}
