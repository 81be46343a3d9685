package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mossfell/cashfall/internal/common"
	"github.com/mossfell/cashfall/internal/model"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewSQLiteStorage_Validation(t *testing.T) {
	_, err := NewSQLiteStorage("")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestMigrate_Idempotent(t *testing.T) {
	store := newTestStorage(t)
	require.NoError(t, store.Migrate(context.Background()))

	version, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
}

func TestDocuments_GetMissing(t *testing.T) {
	store := newTestStorage(t)

	_, err := store.Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDocuments_UpsertAndGet(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	doc := []byte(`{"month":"2026-08"}`)
	require.NoError(t, store.Upsert(ctx, "user-1", doc, time.Now()))

	got, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.JSONEq(t, string(doc), string(got))

	t.Run("last write wins", func(t *testing.T) {
		updated := []byte(`{"month":"2026-09"}`)
		require.NoError(t, store.Upsert(ctx, "user-1", updated, time.Now()))

		got, err := store.Get(ctx, "user-1")
		require.NoError(t, err)
		assert.JSONEq(t, string(updated), string(got))
	})

	t.Run("documents are per user", func(t *testing.T) {
		_, err := store.Get(ctx, "user-2")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestDocuments_RejectsInvalidBody(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.Upsert(ctx, "user-1", nil, time.Now()), ErrInvalidDocument)
	assert.ErrorIs(t, store.Upsert(ctx, "user-1", []byte("{broken"), time.Now()), ErrInvalidDocument)
}

func TestDocuments_StateRoundTrip(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()
	now := model.ParseMonth("2026-08")

	state := model.DefaultState(now)
	state.WorkingCapital.OperatingExpenses = "55,000"
	need := state.CashFlow.AddNeed(now)
	need.Name = "New transmission"
	need.TargetAmount = 6000
	state.TransferDone.Set(now, model.ToolCapital, "move-to-reserve", true)

	doc, err := state.Encode()
	require.NoError(t, err)
	require.NoError(t, store.Upsert(ctx, "user-1", doc, time.Now()))

	raw, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	loaded := model.LoadState(raw, model.ParseMonth("2031-01"))

	assert.Equal(t, state.Month, loaded.Month)
	assert.Equal(t, state.WorkingCapital, loaded.WorkingCapital)
	assert.Equal(t, state.CashFlow, loaded.CashFlow)
	assert.True(t, loaded.TransferDone.Done(now, model.ToolCapital, "move-to-reserve"))
}

func TestDocuments_OnDiskPersistence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "cashfall.db")
	ctx := context.Background()

	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Upsert(ctx, "user-1", []byte(`{"month":"2026-08"}`), time.Now()))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()
	require.NoError(t, reopened.Migrate(ctx))

	got, err := reopened.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"month":"2026-08"}`, string(got))

	_, err = reopened.Get(ctx, "ghost")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
