package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kassenbuch/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "data", "ledger.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestInsertAndSelectAllOrdered(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	inputs := []core.Entry{
		{VoucherRef: "1", Date: core.NewDate(2024, 1, 5), Category: "Einnahmen", Description: "Honorar", Amount: core.Money{Cents: 1000}},
		{VoucherRef: "2", Date: core.NewDate(2024, 1, 3), Category: "Ausgaben", Amount: core.Money{Cents: -500}},
		{VoucherRef: "3", Date: core.NewDate(2024, 1, 3), Category: "Ausgaben", Amount: core.Money{Cents: -1}},
	}
	var stored []core.Entry
	for _, e := range inputs {
		got, err := repo.Insert(ctx, e)
		require.NoError(t, err)
		assert.NotZero(t, got.ID)
		stored = append(stored, got)
	}

	all, err := repo.SelectAllOrdered(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{stored[1].ID, stored[2].ID, stored[0].ID}, []int64{all[0].ID, all[1].ID, all[2].ID})
	assert.Equal(t, "Honorar", all[2].Description)
	assert.Equal(t, "2024-01-05", all[2].RawDate)
	assert.Equal(t, core.NewDate(2024, 1, 5), all[2].Date)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestInitSchemaIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	require.NoError(t, repo.InitSchema())
	require.NoError(t, repo.InitSchema())

	version, dirty, err := SchemaVersion(repo.path)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
}

func TestInvalidStoredDateIsKeptRaw(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	got, err := repo.Insert(ctx, core.Entry{RawDate: "2024-02-31", Category: "x", Amount: core.Money{Cents: 1}})
	require.NoError(t, err)

	e, err := repo.GetEntry(ctx, got.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-31", e.RawDate)
	assert.False(t, e.HasValidDate())
}

func TestGetEntryNotFound(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.GetEntry(context.Background(), 4711)

	var se *StoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "get entry", se.Op)
	assert.ErrorIs(t, err, ErrNotFound)
}
