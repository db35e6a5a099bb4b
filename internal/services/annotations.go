package services

import (
	"context"
	"fmt"

	"github.com/annoti/annoti/internal/common"
	"github.com/annoti/annoti/internal/models"
	"github.com/annoti/annoti/internal/storage"
	"github.com/annoti/annoti/internal/timex"
	"github.com/google/uuid"
)

type AnnotationService interface {
	// Add persists a new annotation for the given user. The id, timestamps
	// and missing highlight style are filled in.
	Add(ctx context.Context, ann *models.Annotation, user *models.User) error

	// Update mutates the editable fields of an existing annotation.
	Update(ctx context.Context, ann *models.Annotation) error

	// Delete removes an annotation; deleting a missing id succeeds.
	Delete(ctx context.Context, id string) error

	// Get returns an annotation by id.
	Get(ctx context.Context, id string) (*models.Annotation, error)

	// ListByDocument returns all annotations of a document.
	ListByDocument(ctx context.Context, documentID string) ([]models.Annotation, error)
}

type annotationService struct {
	store *storage.Store
}

func NewAnnotationService(store *storage.Store) AnnotationService {
	return &annotationService{store: store}
}

func (s *annotationService) Add(ctx context.Context, ann *models.Annotation, user *models.User) error {
	ann.ID = uuid.NewString()
	ann.UserID = user.ID
	ann.UserName = user.Name
	ann.CreatedAt = timex.NowMillis()
	if ann.HighlightColor == "" {
		ann.HighlightColor = models.DefaultHighlightColor
	}
	if ann.HighlightType == "" {
		ann.HighlightType = models.DefaultHighlightType
	}

	if err := s.store.Annotations.Insert(ctx, ann); err != nil {
		return fmt.Errorf("failed to add annotation: %w", err)
	}
	return nil
}

func (s *annotationService) Update(ctx context.Context, ann *models.Annotation) error {
	existing, err := s.store.Annotations.GetByID(ctx, ann.ID)
	if err != nil {
		return fmt.Errorf("failed to load annotation: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("annotation %s: %w", ann.ID, common.ErrNotFound)
	}

	if err := s.store.Annotations.Update(ctx, ann); err != nil {
		return fmt.Errorf("failed to update annotation: %w", err)
	}
	return nil
}

func (s *annotationService) Delete(ctx context.Context, id string) error {
	if err := s.store.Annotations.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete annotation: %w", err)
	}
	return nil
}

func (s *annotationService) Get(ctx context.Context, id string) (*models.Annotation, error) {
	ann, err := s.store.Annotations.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load annotation: %w", err)
	}
	if ann == nil {
		return nil, fmt.Errorf("annotation %s: %w", id, common.ErrNotFound)
	}
	return ann, nil
}

func (s *annotationService) ListByDocument(ctx context.Context, documentID string) ([]models.Annotation, error) {
	anns, err := s.store.Annotations.GetByDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list annotations: %w", err)
	}
	return anns, nil
}
