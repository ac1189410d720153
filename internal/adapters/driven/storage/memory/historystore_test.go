package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/orderform-cli/internal/core/domain"
)

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func record(id string, offset time.Duration) domain.FormRecord {
	return domain.FormRecord{
		ID:        id,
		Customer:  "Customer " + id,
		Format:    domain.OutputFormatPDF,
		Path:      "/tmp/" + id + ".pdf",
		Services:  2,
		Total:     decimal.NewFromInt(1500),
		CreatedAt: baseTime.Add(offset),
	}
}

func TestNewHistoryStore(t *testing.T) {
	store := NewHistoryStore()
	require.NotNil(t, store)
	assert.NotNil(t, store.records)
}

func TestHistoryStore_SaveAndGet(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, record("a", 0)))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Customer a", got.Customer)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(1500)))
}

func TestHistoryStore_Save_EmptyID(t *testing.T) {
	store := NewHistoryStore()

	err := store.Save(context.Background(), record("", 0))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistoryStore_Save_Replaces(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, record("a", 0)))

	updated := record("a", 0)
	updated.Customer = "Renamed"
	require.NoError(t, store.Save(ctx, updated))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Customer)
}

func TestHistoryStore_Get_NotFound(t *testing.T) {
	store := NewHistoryStore()

	_, err := store.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryStore_List_NewestFirst(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, record("old", 0)))
	require.NoError(t, store.Save(ctx, record("new", 2*time.Hour)))
	require.NoError(t, store.Save(ctx, record("mid", time.Hour)))

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "new", all[0].ID)
	assert.Equal(t, "mid", all[1].ID)
	assert.Equal(t, "old", all[2].ID)

	limited, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "new", limited[0].ID)
}

func TestHistoryStore_List_Empty(t *testing.T) {
	store := NewHistoryStore()

	all, err := store.List(context.Background(), 10)

	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestHistoryStore_Delete(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, record("a", 0)))

	require.NoError(t, store.Delete(ctx, "a"))
	require.NoError(t, store.Delete(ctx, "a"))

	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryStore_ConcurrentAccess(t *testing.T) {
	store := NewHistoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("rec-%d", n)
			_ = store.Save(ctx, record(id, time.Duration(n)*time.Minute))
			_, _ = store.Get(ctx, id)
			_, _ = store.List(ctx, 5)
		}(i)
	}
	wg.Wait()

	all, err := store.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 50)
}
