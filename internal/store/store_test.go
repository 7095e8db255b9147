package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/core"
)

func open(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "tally.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSetGet(t *testing.T) {
	s := open(t)
	ctx := context.Background()

	_, err := s.Get(ctx, KeyRules)
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, s.Set(ctx, KeyRules, "shell => PETROL\n"))
	got, err := s.Get(ctx, KeyRules)
	require.NoError(t, err)
	assert.Equal(t, "shell => PETROL\n", got)

	// Upsert replaces.
	require.NoError(t, s.Set(ctx, KeyRules, "coles => GROCERIES\n"))
	got, err = s.Get(ctx, KeyRules)
	require.NoError(t, err)
	assert.Equal(t, "coles => GROCERIES\n", got)
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := open(t)
	ctx := context.Background()

	_, err := s.LoadLastSnapshot(ctx)
	assert.True(t, errors.Is(err, ErrNotFound))

	txs := []core.Transaction{
		{RawDate: "2025-03-15", Amount: 12.5, Description: "COFFEE SHOP", Category: "COFFEE"},
		{RawDate: "15/03/2025", Amount: -200, Description: "SALARY", Category: "INCOME"},
	}
	id, err := s.SaveSnapshot(ctx, txs)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	got, err := s.LoadLastSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, txs, got)
}

func TestLoadLatestOfSeveral(t *testing.T) {
	s := open(t)
	ctx := context.Background()

	_, err := s.SaveSnapshot(ctx, []core.Transaction{{RawDate: "2025-01-01", Amount: 1, Description: "old"}})
	require.NoError(t, err)
	_, err = s.SaveSnapshot(ctx, []core.Transaction{{RawDate: "2025-01-02", Amount: 2, Description: "new"}})
	require.NoError(t, err)

	got, err := s.LoadLastSnapshot(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "new", got[0].Description)
}

func TestPruneSnapshots(t *testing.T) {
	s := open(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := s.SaveSnapshot(ctx, []core.Transaction{{RawDate: "2025-01-01", Amount: float64(i + 1), Description: "x"}})
		require.NoError(t, err)
	}
	require.NoError(t, s.PruneSnapshots(ctx, 2))

	// The latest snapshot must survive pruning.
	got, err := s.LoadLastSnapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got[0].Amount)
}
