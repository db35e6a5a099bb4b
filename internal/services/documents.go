package services

import (
	"context"
	"fmt"

	"github.com/annoti/annoti/internal/checksum"
	"github.com/annoti/annoti/internal/common"
	"github.com/annoti/annoti/internal/dbx"
	"github.com/annoti/annoti/internal/models"
	"github.com/annoti/annoti/internal/repositories/annotations"
	"github.com/annoti/annoti/internal/repositories/documents"
	"github.com/annoti/annoti/internal/storage"
	"github.com/annoti/annoti/internal/timex"
	"github.com/google/uuid"
)

type DocumentService interface {
	// Save registers the document content under path, computing its
	// checksum. Re-saving an existing path updates the row in place; the
	// returned record always carries the stable id and original created_at.
	Save(ctx context.Context, path, content string) (*models.Document, error)

	// Get returns the document registered under path.
	Get(ctx context.Context, path string) (*models.Document, error)

	// Delete removes a document and all of its annotations atomically.
	Delete(ctx context.Context, id string) error
}

type documentService struct {
	store *storage.Store
}

func NewDocumentService(store *storage.Store) DocumentService {
	return &documentService{store: store}
}

func (s *documentService) Save(ctx context.Context, path, content string) (*models.Document, error) {
	now := timex.NowMillis()
	doc := &models.Document{
		ID:           uuid.NewString(),
		Path:         path,
		Content:      content,
		Checksum:     checksum.Sum(content),
		LastModified: now,
		CreatedAt:    now,
	}
	if err := s.store.Documents.Upsert(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	// On a path conflict the fresh id above was discarded; re-read the row
	// to report the persisted identity.
	saved, err := s.store.Documents.GetByPath(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load saved document: %w", err)
	}
	return saved, nil
}

func (s *documentService) Get(ctx context.Context, path string) (*models.Document, error) {
	doc, err := s.store.Documents.GetByPath(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("document %q: %w", path, common.ErrNotFound)
	}
	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.store.DB, nil, func(ctx context.Context, tx dbx.DBTX) error {
		docRepo := documents.NewSQLiteRepository(tx)

		doc, err := docRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			return fmt.Errorf("document %s: %w", id, common.ErrNotFound)
		}

		if err := annotations.NewSQLiteRepository(tx).DeleteByDocument(ctx, id); err != nil {
			return err
		}
		return docRepo.DeleteByID(ctx, id)
	})
}
