package economy

import (
	"context"
	"testing"

	"theagency-bot/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopOrdersByBalanceDescending(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	ledger := NewLedger(st)
	board := NewLeaderboard(st)

	seed := map[string]int64{"100": 500, "200": 900, "300": 100}
	for userID, balance := range seed {
		require.NoError(t, ledger.SetBalance(ctx, userID, balance))
	}

	top, err := board.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "200", top[0].UserID)
	assert.Equal(t, int64(900), top[0].Balance)
	assert.Equal(t, "100", top[1].UserID)
	assert.Equal(t, int64(500), top[1].Balance)
}

func TestTopTiesBrokenByUserID(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	ledger := NewLedger(st)
	board := NewLeaderboard(st)

	require.NoError(t, ledger.SetBalance(ctx, "222", 500))
	require.NoError(t, ledger.SetBalance(ctx, "111", 500))

	top, err := board.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "111", top[0].UserID)
	assert.Equal(t, "222", top[1].UserID)
}

func TestTopUsesFallbackUsername(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	ledger := NewLedger(st)
	board := NewLeaderboard(st)

	require.NoError(t, ledger.SetBalance(ctx, "123456789012345678", 100))
	require.NoError(t, ledger.SetBalance(ctx, "999888777666555444", 200))
	require.NoError(t, ledger.StoreUsername(ctx, "999888777666555444", "GoldKing"))

	top, err := board.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "GoldKing", top[0].Username)
	assert.Equal(t, "User#5678", top[1].Username)
}

func TestTopIncludesZeroBalanceAccounts(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	ledger := NewLedger(st)
	board := NewLeaderboard(st)

	require.NoError(t, ledger.SetBalance(ctx, "100", 50))
	require.NoError(t, ledger.StoreUsername(ctx, "200", "Broke"))

	top, err := board.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, int64(0), top[1].Balance)
	assert.Equal(t, "Broke", top[1].Username)
}

func TestTopEmptyStore(t *testing.T) {
	board := NewLeaderboard(store.NewMemoryStore())

	top, err := board.Top(context.Background(), 5)
	require.NoError(t, err)
	assert.Empty(t, top)
}
