package documents

import (
	"context"

	"github.com/annoti/annoti/internal/models"
)

// Repository describes persistence operations for Document rows. Path is the
// natural key; ID is assigned once and stable across content updates.
type Repository interface {
	// GetByPath returns the document registered under path, or nil if absent.
	GetByPath(ctx context.Context, path string) (*models.Document, error)

	// GetByID returns a document by its identifier, or nil if absent.
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// Upsert inserts the document or, when a row with the same path already
	// exists, updates content/checksum/last_modified in place, preserving
	// the existing id and created_at. The conflict handling is a single
	// atomic statement; concurrent saves of the same new path cannot create
	// duplicate rows.
	Upsert(ctx context.Context, doc *models.Document) error

	// DeleteByID removes a document row. Its annotations are the caller's
	// responsibility (delete them first, in the same transaction).
	DeleteByID(ctx context.Context, id string) error
}
