// Package merge reconciles decoded package annotations into a target
// document's annotation set.
package merge

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/annoti/annoti/internal/dbx"
	"github.com/annoti/annoti/internal/logging"
	"github.com/annoti/annoti/internal/models"
	"github.com/annoti/annoti/internal/repositories/annotations"
	"github.com/annoti/annoti/internal/timex"
	"github.com/google/uuid"
)

// Engine merges detached annotations into a target document. Batch merges
// run inside a single transaction so the dedup snapshot and the inserts
// cannot interleave with a concurrent merge.
type Engine struct {
	db  *sql.DB
	log logging.Logger
}

func NewEngine(db *sql.DB, log logging.Logger) *Engine {
	return &Engine{db: db, log: log}
}

// MergeOne rebinds a single detached annotation to the target document and
// inserts it directly, with no dedup check. Used by the single-annotation
// import path.
func (e *Engine) MergeOne(ctx context.Context, ann models.Annotation, documentID string) error {
	ann.DocumentID = documentID
	ann.CreatedAt = timex.NowMillis()

	repo := annotations.NewSQLiteRepository(e.db)
	if err := repo.Insert(ctx, &ann); err != nil {
		return fmt.Errorf("merge insert: %w", err)
	}
	return nil
}

// MergeBatch merges detached annotations into the target document,
// suppressing any whose excerpt text already appears among the document's
// existing annotations. The existing-text set is captured once up front;
// duplicates *within* the incoming batch are therefore not deduped against
// each other. Returns the number of annotations actually inserted.
func (e *Engine) MergeBatch(ctx context.Context, anns []models.Annotation, documentID string) (int, error) {
	now := timex.NowMillis()
	inserted := 0

	err := dbx.WithTx(ctx, e.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := annotations.NewSQLiteRepository(tx)

		existing, err := repo.TextsByDocument(ctx, documentID)
		if err != nil {
			return err
		}

		for _, ann := range anns {
			if _, dup := existing[ann.Text]; dup {
				e.log.Debug(ctx, "skipping duplicate annotation", "text", ann.Text)
				continue
			}

			ann.ID = uuid.NewString()
			ann.DocumentID = documentID
			ann.CreatedAt = now
			ann.UpdatedAt = now

			if err := repo.Insert(ctx, &ann); err != nil {
				return fmt.Errorf("merge insert: %w", err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	e.log.Info(ctx, "merged annotation batch", "document_id", documentID,
		"incoming", len(anns), "inserted", inserted)
	return inserted, nil
}
