package annotations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/annoti/annoti/internal/dbx"
	"github.com/annoti/annoti/internal/models"
	"github.com/annoti/annoti/internal/timex"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const annotationColumns = `id, document_id, user_id, user_name, text, note, note_visible,
		note_position_x, note_position_y, note_width, note_height,
		highlight_color, highlight_type, anchor_data, created_at, updated_at`

func (r *SQLiteRepository) GetByDocument(ctx context.Context, documentID string) ([]models.Annotation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+annotationColumns+` FROM annotations WHERE document_id = ?`, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to select annotations: %w", err)
	}
	defer rows.Close()

	var result []models.Annotation
	for rows.Next() {
		a, err := scanAnnotation(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Annotation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+annotationColumns+` FROM annotations WHERE id = ?`, id)

	a, err := scanAnnotation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *SQLiteRepository) TextsByDocument(ctx context.Context, documentID string) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT text FROM annotations WHERE document_id = ?`, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to select annotation texts: %w", err)
	}
	defer rows.Close()

	texts := make(map[string]struct{})
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		texts[text] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return texts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnnotation(row rowScanner) (*models.Annotation, error) {
	a := &models.Annotation{}
	var note sql.NullString
	err := row.Scan(&a.ID, &a.DocumentID, &a.UserID, &a.UserName, &a.Text, &note,
		&a.NoteVisible, &a.NotePositionX, &a.NotePositionY, &a.NoteWidth, &a.NoteHeight,
		&a.HighlightColor, &a.HighlightType, &a.AnchorData, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan annotation: %w", err)
	}
	if note.Valid {
		a.Note = &note.String
	}
	return a, nil
}

// Insert adds the annotation. updated_at is forced to the current time,
// whatever the caller supplied.
func (r *SQLiteRepository) Insert(ctx context.Context, ann *models.Annotation) error {
	query := `INSERT INTO annotations (` + annotationColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	now := timex.NowMillis()
	_, err := r.db.ExecContext(ctx, query,
		ann.ID, ann.DocumentID, ann.UserID, ann.UserName, ann.Text, ann.Note,
		ann.NoteVisible, ann.NotePositionX, ann.NotePositionY, ann.NoteWidth, ann.NoteHeight,
		ann.HighlightColor, ann.HighlightType, ann.AnchorData, ann.CreatedAt, now)
	if err != nil {
		return fmt.Errorf("failed to insert annotation: %w", err)
	}
	ann.UpdatedAt = now
	return nil
}

// Update mutates only the editable subset. text, document_id, user_id and
// created_at are deliberately absent from the statement.
func (r *SQLiteRepository) Update(ctx context.Context, ann *models.Annotation) error {
	query := `UPDATE annotations SET
			note = ?,
			note_visible = ?,
			note_position_x = ?,
			note_position_y = ?,
			note_width = ?,
			note_height = ?,
			highlight_color = ?,
			highlight_type = ?,
			anchor_data = ?,
			updated_at = ?
		WHERE id = ?`

	now := timex.NowMillis()
	_, err := r.db.ExecContext(ctx, query,
		ann.Note, ann.NoteVisible, ann.NotePositionX, ann.NotePositionY,
		ann.NoteWidth, ann.NoteHeight, ann.HighlightColor, ann.HighlightType,
		ann.AnchorData, now, ann.ID)
	if err != nil {
		return fmt.Errorf("failed to update annotation: %w", err)
	}
	ann.UpdatedAt = now
	return nil
}

func (r *SQLiteRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM annotations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete annotation: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByDocument(ctx context.Context, documentID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM annotations WHERE document_id = ?`, documentID)
	if err != nil {
		return fmt.Errorf("failed to delete document annotations: %w", err)
	}
	return nil
}
