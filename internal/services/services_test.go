package services

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/annoti/annoti/internal/common"
	"github.com/annoti/annoti/internal/filex"
	"github.com/annoti/annoti/internal/logging"
	"github.com/annoti/annoti/internal/merge"
	"github.com/annoti/annoti/internal/models"
	"github.com/annoti/annoti/internal/settings"
	"github.com/annoti/annoti/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestUserService_CurrentCreatesOnce(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	svc := NewUserService(store, "alice", t.TempDir())

	first, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", first.Name)
	assert.NotEmpty(t, first.ID)

	second, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestUserService_RenameMirrorsSettings(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	dataDir := t.TempDir()
	svc := NewUserService(store, "alice", dataDir)

	user, err := svc.Rename(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Name)

	row, err := store.Users.GetFirst(ctx)
	require.NoError(t, err)
	assert.Equal(t, "bob", row.Name)

	rec, err := settings.Load(filex.SettingsPath(dataDir))
	require.NoError(t, err)
	assert.Equal(t, user.ID, rec.User.ID)
	assert.Equal(t, "bob", rec.User.Name)
}

func TestUserService_RandomNameShape(t *testing.T) {
	svc := NewUserService(nil, "", "")
	name := svc.RandomName()
	assert.Regexp(t, `^[a-z]+-[a-z]+-[1-9][0-9]{3}$`, name)
}

func TestDocumentService_SaveTwiceKeepsIdentity(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	svc := NewDocumentService(store)

	first, err := svc.Save(ctx, "/tmp/a.md", "one")
	require.NoError(t, err)

	second, err := svc.Save(ctx, "/tmp/a.md", "two")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, "two", second.Content)
	assert.NotEqual(t, first.Checksum, second.Checksum)
}

func TestDocumentService_GetMissing(t *testing.T) {
	store := setupStore(t)
	svc := NewDocumentService(store)

	_, err := svc.Get(context.Background(), "/nowhere")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDocumentService_DeleteCascades(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	docs := NewDocumentService(store)
	users := NewUserService(store, "alice", t.TempDir())
	anns := NewAnnotationService(store)

	doc, err := docs.Save(ctx, "/tmp/b.md", "body text")
	require.NoError(t, err)
	user, err := users.Current(ctx)
	require.NoError(t, err)

	a := &models.Annotation{DocumentID: doc.ID, Text: "body", AnchorData: "{}"}
	require.NoError(t, anns.Add(ctx, a, user))

	require.NoError(t, docs.Delete(ctx, doc.ID))

	_, err = docs.Get(ctx, "/tmp/b.md")
	assert.ErrorIs(t, err, common.ErrNotFound)
	_, err = anns.Get(ctx, a.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDocumentService_DeleteMissing(t *testing.T) {
	store := setupStore(t)
	svc := NewDocumentService(store)
	err := svc.Delete(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestAnnotationService_AddFillsDefaults(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	docs := NewDocumentService(store)
	users := NewUserService(store, "alice", t.TempDir())
	svc := NewAnnotationService(store)

	doc, err := docs.Save(ctx, "/tmp/c.md", "hello world")
	require.NoError(t, err)
	user, err := users.Current(ctx)
	require.NoError(t, err)

	a := &models.Annotation{DocumentID: doc.ID, Text: "hello", AnchorData: "{}"}
	require.NoError(t, svc.Add(ctx, a, user))

	got, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)
	assert.Equal(t, "alice", got.UserName)
	assert.Equal(t, models.DefaultHighlightColor, got.HighlightColor)
	assert.Equal(t, models.DefaultHighlightType, got.HighlightType)
	assert.NotZero(t, got.CreatedAt)
	assert.NotZero(t, got.UpdatedAt)
}

func TestAnnotationService_UpdateMissing(t *testing.T) {
	store := setupStore(t)
	svc := NewAnnotationService(store)

	err := svc.Update(context.Background(), &models.Annotation{ID: "ghost"})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestAnnotationService_DeleteMissingIsNoop(t *testing.T) {
	store := setupStore(t)
	svc := NewAnnotationService(store)

	assert.NoError(t, svc.Delete(context.Background(), "ghost"))
}

func TestExchangeService_RoundTripWithDedup(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	docs := NewDocumentService(store)
	users := NewUserService(store, "alice", t.TempDir())
	anns := NewAnnotationService(store)
	exch := NewExchangeService(store, merge.NewEngine(store.DB, testLogger()))

	src, err := docs.Save(ctx, "/tmp/src.md", "shared passage here")
	require.NoError(t, err)
	user, err := users.Current(ctx)
	require.NoError(t, err)

	a := &models.Annotation{DocumentID: src.ID, Text: "shared passage", AnchorData: "{}"}
	require.NoError(t, anns.Add(ctx, a, user))

	pkg, err := exch.Export(ctx, a.ID, "/tmp/src.md")
	require.NoError(t, err)

	dst, err := docs.Save(ctx, "/tmp/dst.md", "shared passage elsewhere")
	require.NoError(t, err)

	n, err := exch.Import(ctx, pkg, "/tmp/dst.md")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// Importing the same package again is a no-op: the text already exists.
	n, err = exch.Import(ctx, pkg, "/tmp/dst.md")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	list, err := anns.ListByDocument(ctx, dst.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.NotEqual(t, a.ID, list[0].ID)
	assert.Equal(t, "alice", list[0].UserName)
}

func TestExchangeService_LegacySingleImportSkipsDedup(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	docs := NewDocumentService(store)
	anns := NewAnnotationService(store)
	exch := NewExchangeService(store, merge.NewEngine(store.DB, testLogger()))

	doc, err := docs.Save(ctx, "/tmp/legacy.md", "old passage")
	require.NoError(t, err)

	pkg := []byte(`{
		"version": "1.0",
		"exported_at": 1700000001000,
		"annotation": {"text": "old passage", "anchor_data": "{}", "user_name": "carol"}
	}`)

	n, err := exch.Import(ctx, pkg, "/tmp/legacy.md")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// The single shape merges without a dedup check, so a re-import lands again.
	n, err = exch.Import(ctx, pkg, "/tmp/legacy.md")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	list, err := anns.ListByDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestExchangeService_ExportMissingAnnotation(t *testing.T) {
	store := setupStore(t)
	exch := NewExchangeService(store, merge.NewEngine(store.DB, testLogger()))

	_, err := exch.Export(context.Background(), "ghost", "/tmp/src.md")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
