package annotations

import (
	"context"

	"github.com/annoti/annoti/internal/models"
)

// Repository describes persistence operations for Annotation rows.
//
// Inserts force updated_at to the current time; updates touch only the
// editable field subset (note text/visibility/position/size, highlight
// style, anchor_data) and never text, document_id, user_id or created_at.
type Repository interface {
	// GetByDocument returns all annotations of a document, in unspecified order.
	GetByDocument(ctx context.Context, documentID string) ([]models.Annotation, error)

	// GetByID returns an annotation by its identifier, or nil if absent.
	GetByID(ctx context.Context, id string) (*models.Annotation, error)

	// TextsByDocument returns the set of excerpt texts already present on a
	// document. Used as the merge dedup snapshot.
	TextsByDocument(ctx context.Context, documentID string) (map[string]struct{}, error)

	// Insert adds a fully-specified annotation, forcing updated_at = now.
	Insert(ctx context.Context, ann *models.Annotation) error

	// Update mutates the editable field subset plus updated_at = now.
	Update(ctx context.Context, ann *models.Annotation) error

	// DeleteByID removes an annotation. Deleting a missing id is a no-op.
	DeleteByID(ctx context.Context, id string) error

	// DeleteByDocument removes every annotation of a document.
	DeleteByDocument(ctx context.Context, documentID string) error
}
