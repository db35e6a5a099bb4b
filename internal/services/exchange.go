package services

import (
	"context"
	"fmt"

	"github.com/annoti/annoti/internal/common"
	"github.com/annoti/annoti/internal/exchange"
	"github.com/annoti/annoti/internal/merge"
	"github.com/annoti/annoti/internal/storage"
	"github.com/annoti/annoti/internal/timex"
)

type ExchangeService interface {
	// Export serializes one annotation into a shareable package, stamped
	// with the source document's name and checksum.
	Export(ctx context.Context, annotationID, documentPath string) ([]byte, error)

	// Import decodes a package and merges its annotations into the document
	// registered under documentPath, deduplicating on excerpt text. Returns
	// the number of annotations actually inserted.
	Import(ctx context.Context, data []byte, documentPath string) (int, error)
}

type exchangeService struct {
	store  *storage.Store
	merger *merge.Engine
}

func NewExchangeService(store *storage.Store, merger *merge.Engine) ExchangeService {
	return &exchangeService{store: store, merger: merger}
}

func (s *exchangeService) Export(ctx context.Context, annotationID, documentPath string) ([]byte, error) {
	ann, err := s.store.Annotations.GetByID(ctx, annotationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load annotation: %w", err)
	}
	if ann == nil {
		return nil, fmt.Errorf("annotation %s: %w", annotationID, common.ErrNotFound)
	}

	doc, err := s.store.Documents.GetByPath(ctx, documentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	if doc == nil {
		return nil, fmt.Errorf("document %q: %w", documentPath, common.ErrNotFound)
	}

	return exchange.Encode(*ann, *doc, timex.NowMillis())
}

func (s *exchangeService) Import(ctx context.Context, data []byte, documentPath string) (int, error) {
	dec, err := exchange.Decode(data)
	if err != nil {
		return 0, err
	}

	doc, err := s.store.Documents.GetByPath(ctx, documentPath)
	if err != nil {
		return 0, fmt.Errorf("failed to load document: %w", err)
	}
	if doc == nil {
		return 0, fmt.Errorf("document %q: %w", documentPath, common.ErrNotFound)
	}

	// Legacy single packages predate dedup and merge directly.
	if dec.LegacySingle {
		if err := s.merger.MergeOne(ctx, dec.Annotations[0], doc.ID); err != nil {
			return 0, err
		}
		return 1, nil
	}

	return s.merger.MergeBatch(ctx, dec.Annotations, doc.ID)
}
