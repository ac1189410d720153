package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "orderform-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

var created = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func testRecord(id string, offset time.Duration) domain.FormRecord {
	end := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	return domain.FormRecord{
		ID:          id,
		SessionID:   "session-" + id,
		Customer:    "Globex Corp",
		CompanyName: "Acme Analytics",
		Format:      domain.OutputFormatPDF,
		Path:        "/tmp/forms/" + id + ".pdf",
		Services:    3,
		Total:       decimal.RequireFromString("34000.50"),
		EndDate:     &end,
		CreatedAt:   created.Add(offset),
	}
}

func TestNewStore(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	assert.Equal(t, dbName, filepath.Base(store.Path()))
	_, err := os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestNewStore_RecordsMigrations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	version, err := store.schemaVersion()

	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestNewStore_ReopenKeepsData(t *testing.T) {
	tempDir := t.TempDir()
	ctx := context.Background()

	first, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NoError(t, first.HistoryStore().Save(ctx, testRecord("a", 0)))
	require.NoError(t, first.Close())

	second, err := NewStore(tempDir)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.HistoryStore().Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Globex Corp", got.Customer)

	version, err := second.schemaVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}

func TestNewStore_InvalidDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	_, err := NewStore(filepath.Join(file, "data"))

	assert.Error(t, err)
}

func TestHistoryStore_SaveAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	history := store.HistoryStore()

	want := testRecord("a", 0)
	require.NoError(t, history.Save(ctx, want))

	got, err := history.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, want.SessionID, got.SessionID)
	assert.Equal(t, want.Customer, got.Customer)
	assert.Equal(t, want.CompanyName, got.CompanyName)
	assert.Equal(t, want.Format, got.Format)
	assert.Equal(t, want.Path, got.Path)
	assert.Equal(t, want.Services, got.Services)
	assert.True(t, want.Total.Equal(got.Total), "total %s", got.Total)
	require.NotNil(t, got.EndDate)
	assert.True(t, want.EndDate.Equal(*got.EndDate))
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
}

func TestHistoryStore_Save_WithoutEndDate(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	history := store.HistoryStore()

	rec := testRecord("a", 0)
	rec.EndDate = nil
	require.NoError(t, history.Save(ctx, rec))

	got, err := history.Get(ctx, "a")
	require.NoError(t, err)
	assert.Nil(t, got.EndDate)
}

func TestHistoryStore_Save_EmptyID(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.HistoryStore().Save(context.Background(), testRecord("", 0))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryStore_Save_Upsert(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	history := store.HistoryStore()
	require.NoError(t, history.Save(ctx, testRecord("a", 0)))

	rec := testRecord("a", 0)
	rec.Path = "/tmp/forms/renamed.pdf"
	require.NoError(t, history.Save(ctx, rec))

	all, err := history.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "/tmp/forms/renamed.pdf", all[0].Path)
}

func TestHistoryStore_Get_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	_, err := store.HistoryStore().Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryStore_List(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	history := store.HistoryStore()

	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, history.Save(ctx, testRecord(id, time.Duration(i)*time.Hour)))
	}

	all, err := history.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"new", "mid", "old"}, []string{all[0].ID, all[1].ID, all[2].ID})

	limited, err := history.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "new", limited[0].ID)
}

func TestHistoryStore_List_Empty(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	all, err := store.HistoryStore().List(context.Background(), 0)

	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestHistoryStore_Delete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	history := store.HistoryStore()
	require.NoError(t, history.Save(ctx, testRecord("a", 0)))

	require.NoError(t, history.Delete(ctx, "a"))
	require.NoError(t, history.Delete(ctx, "a"))

	_, err := history.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryStore_ManyRecords(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()
	ctx := context.Background()
	history := store.HistoryStore()

	for i := 0; i < 25; i++ {
		require.NoError(t, history.Save(ctx, testRecord(fmt.Sprintf("rec-%02d", i), time.Duration(i)*time.Minute)))
	}

	page, err := history.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, page, 10)
	assert.Equal(t, "rec-24", page[0].ID)
	assert.Equal(t, "rec-15", page[9].ID)
}
