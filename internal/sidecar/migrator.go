// Package sidecar migrates legacy per-document annotation files into the
// store. A sidecar is a JSON array of loosely-typed annotation objects kept
// beside the document it annotates (sidecar path minus the ".ann" suffix is
// the document path).
package sidecar

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/annoti/annoti/internal/checksum"
	"github.com/annoti/annoti/internal/common"
	"github.com/annoti/annoti/internal/dbx"
	"github.com/annoti/annoti/internal/logging"
	"github.com/annoti/annoti/internal/models"
	"github.com/annoti/annoti/internal/repositories/annotations"
	"github.com/annoti/annoti/internal/repositories/documents"
	"github.com/annoti/annoti/internal/repositories/users"
	"github.com/annoti/annoti/internal/timex"
	"github.com/google/uuid"
)

const (
	// Suffix identifies legacy sidecar files.
	Suffix = ".ann"
	// BackupSuffix is appended to a sidecar after its records were attempted.
	BackupSuffix = ".backup.migrated"

	// MigratedUserName owns every migrated annotation.
	MigratedUserName = "migrated"
)

// legacyAnnotation is the loosely-typed sidecar record. The legacy schema
// predates the current entity shape; only text and the presentation fields
// are guaranteed, everything else may be absent.
type legacyAnnotation struct {
	Text          string  `json:"text"`
	Note          *string `json:"note"`
	NoteVisible   bool    `json:"note_visible"`
	NotePositionX float64 `json:"note_position_x"`
	NotePositionY float64 `json:"note_position_y"`
	NoteWidth     float64 `json:"note_width"`
	NoteHeight    float64 `json:"note_height"`
	AnchorData    string  `json:"anchor_data"`
	CreatedAt     int64   `json:"created_at"`
	UpdatedAt     int64   `json:"updated_at"`
}

// Result aggregates migration counters. No per-file or per-record detail is
// reported; failures only bump Errors.
type Result struct {
	Migrated int
	Errors   int
}

// Migrator scans a directory for legacy sidecar files and imports their
// records into the store, attributing them to a synthetic "migrated" user.
type Migrator struct {
	db  *sql.DB
	log logging.Logger
}

func NewMigrator(db *sql.DB, log logging.Logger) *Migrator {
	return &Migrator{db: db, log: log}
}

// Run migrates every sidecar file directly inside dir (non-recursive). Each
// file is processed in isolation: a parse failure or an unreadable companion
// document skips the whole file; a failed record insert is counted and the
// remaining records of the file are still attempted, with no rollback of
// rows already inserted. Processed files are renamed with BackupSuffix so
// they are not migrated twice.
func (m *Migrator) Run(ctx context.Context, dir string) (Result, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read directory: %w", err)
	}

	var res Result
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Suffix) {
			continue
		}
		m.migrateFile(ctx, filepath.Join(dir, entry.Name()), &res)
	}

	m.log.Info(ctx, "sidecar migration complete", "dir", dir,
		"migrated", res.Migrated, "errors", res.Errors)
	return res, nil
}

func (m *Migrator) migrateFile(ctx context.Context, annPath string, res *Result) {
	docPath := strings.TrimSuffix(annPath, Suffix)
	log := m.log.With("sidecar", annPath)

	content, err := os.ReadFile(annPath)
	if err != nil {
		log.Warn(ctx, "failed to read sidecar file", "error", err)
		res.Errors++
		return
	}

	legacy, err := parseSidecar(content)
	if err != nil {
		log.Warn(ctx, "skipping sidecar file", "error", err)
		res.Errors++
		return
	}

	doc, err := m.ensureDocument(ctx, docPath)
	if err != nil {
		log.Warn(ctx, "companion document unavailable", "error", err)
		res.Errors++
		return
	}

	user, err := m.migrationUser(ctx)
	if err != nil {
		log.Warn(ctx, "failed to obtain migration user", "error", err)
		res.Errors++
		return
	}

	repo := annotations.NewSQLiteRepository(m.db)
	for _, rec := range legacy {
		ann := rec.toAnnotation(doc.ID, user)
		if err := repo.Insert(ctx, &ann); err != nil {
			log.Warn(ctx, "failed to insert migrated annotation", "error", err)
			res.Errors++
			continue
		}
		res.Migrated++
	}

	// Rows already migrated are never retracted, so the sidecar is renamed
	// even when some of its records failed.
	if err := os.Rename(annPath, annPath+BackupSuffix); err != nil {
		log.Warn(ctx, "failed to rename sidecar file", "error", err)
		res.Errors++
	}
}

func parseSidecar(content []byte) ([]legacyAnnotation, error) {
	var legacy []legacyAnnotation
	if err := json.Unmarshal(content, &legacy); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedSidecar, err)
	}
	return legacy, nil
}

// ensureDocument returns the registered document for path, registering it
// from disk on first sight.
func (m *Migrator) ensureDocument(ctx context.Context, path string) (*models.Document, error) {
	repo := documents.NewSQLiteRepository(m.db)

	doc, err := repo.GetByPath(ctx, path)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		return doc, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	now := timex.NowMillis()
	doc = &models.Document{
		ID:           uuid.NewString(),
		Path:         path,
		Content:      string(content),
		Checksum:     checksum.Sum(string(content)),
		LastModified: now,
		CreatedAt:    now,
	}
	if err := repo.Upsert(ctx, doc); err != nil {
		return nil, err
	}
	return repo.GetByPath(ctx, path)
}

// migrationUser lazily creates the synthetic owner of migrated annotations.
func (m *Migrator) migrationUser(ctx context.Context) (*models.User, error) {
	var user *models.User

	err := dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := users.NewSQLiteRepository(tx)

		existing, err := repo.GetByName(ctx, MigratedUserName)
		if err != nil {
			return err
		}
		if existing != nil {
			user = existing
			return nil
		}

		user = &models.User{
			ID:        uuid.NewString(),
			Name:      MigratedUserName,
			CreatedAt: timex.NowMillis(),
		}
		return repo.Insert(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (rec legacyAnnotation) toAnnotation(documentID string, user *models.User) models.Annotation {
	createdAt := rec.CreatedAt
	if createdAt == 0 {
		createdAt = timex.NowMillis()
	}
	return models.Annotation{
		ID:            uuid.NewString(),
		DocumentID:    documentID,
		UserID:        user.ID,
		UserName:      user.Name,
		Text:          rec.Text,
		Note:          rec.Note,
		NoteVisible:   rec.NoteVisible,
		NotePositionX: rec.NotePositionX,
		NotePositionY: rec.NotePositionY,
		NoteWidth:     rec.NoteWidth,
		NoteHeight:    rec.NoteHeight,
		// The legacy format predates styled highlights; force the defaults.
		HighlightColor: models.DefaultHighlightColor,
		HighlightType:  models.DefaultHighlightType,
		AnchorData:     rec.AnchorData,
		CreatedAt:      createdAt,
	}
}
