package documents

import (
	"context"
	"database/sql"
	"testing"

	"github.com/annoti/annoti/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE documents (
  id TEXT PRIMARY KEY,
  path TEXT UNIQUE NOT NULL,
  content TEXT NOT NULL,
  checksum TEXT NOT NULL,
  last_modified INTEGER,
  created_at INTEGER
);
`)
	require.NoError(t, err)

	return db
}

func TestGetByPath_Missing(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)

	d, err := r.GetByPath(context.Background(), "/tmp/nope.md")
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestUpsert_InsertThenUpdateInPlace(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	d1 := &models.Document{
		ID:           "d1",
		Path:         "/notes/doc.md",
		Content:      "v1",
		Checksum:     "c1",
		LastModified: 100,
		CreatedAt:    100,
	}
	require.NoError(t, r.Upsert(ctx, d1))

	// Same path, different id: must update in place, never duplicate.
	d2 := &models.Document{
		ID:           "d2",
		Path:         "/notes/doc.md",
		Content:      "v2",
		Checksum:     "c2",
		LastModified: 200,
		CreatedAt:    200,
	}
	require.NoError(t, r.Upsert(ctx, d2))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM documents`).Scan(&n))
	assert.Equal(t, 1, n)

	got, err := r.GetByPath(ctx, "/notes/doc.md")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "d1", got.ID, "id must survive the conflict update")
	assert.Equal(t, int64(100), got.CreatedAt, "created_at must survive the conflict update")
	assert.Equal(t, "v2", got.Content)
	assert.Equal(t, "c2", got.Checksum)
	assert.Equal(t, int64(200), got.LastModified)
}

func TestGetByID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	d := &models.Document{ID: "d1", Path: "/a.md", Content: "x", Checksum: "c", LastModified: 1, CreatedAt: 1}
	require.NoError(t, r.Upsert(ctx, d))

	got, err := r.GetByID(ctx, "d1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, d, got)

	missing, err := r.GetByID(ctx, "d9")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestDeleteByID(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Upsert(ctx, &models.Document{ID: "d1", Path: "/a.md", Content: "x", Checksum: "c"}))
	require.NoError(t, r.DeleteByID(ctx, "d1"))

	got, err := r.GetByID(ctx, "d1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// deleting again is a no-op
	require.NoError(t, r.DeleteByID(ctx, "d1"))
}
