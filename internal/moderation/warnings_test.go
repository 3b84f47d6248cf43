package moderation

import (
	"context"
	"testing"

	"theagency-bot/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testGuild = "guild-1"
	testUser  = "user-1"
	testMod   = "mod-1"
)

func TestWarningIDsAreSequential(t *testing.T) {
	ctx := context.Background()
	warnings := NewWarnings(store.NewMemoryStore())

	for i, reason := range []string{"spam", "flood", "links"} {
		warning, err := warnings.Add(ctx, testGuild, testUser, testMod, reason)
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), warning.ID)
		assert.Equal(t, reason, warning.Reason)
		assert.Equal(t, testMod, warning.ModeratorID)
	}

	list, err := warnings.List(ctx, testGuild, testUser)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestRemovedIDIsNotReused(t *testing.T) {
	ctx := context.Background()
	warnings := NewWarnings(store.NewMemoryStore())

	for _, reason := range []string{"one", "two", "three"} {
		_, err := warnings.Add(ctx, testGuild, testUser, testMod, reason)
		require.NoError(t, err)
	}

	removed, err := warnings.Remove(ctx, testGuild, testUser, 2)
	require.NoError(t, err)
	assert.True(t, removed)

	// Max surviving ID is 3, so the next warning gets 4, not 2.
	warning, err := warnings.Add(ctx, testGuild, testUser, testMod, "four")
	require.NoError(t, err)
	assert.Equal(t, int64(4), warning.ID)
}

func TestRemoveUnknownID(t *testing.T) {
	ctx := context.Background()
	warnings := NewWarnings(store.NewMemoryStore())

	removed, err := warnings.Remove(ctx, testGuild, testUser, 99)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestClearRestartsNumbering(t *testing.T) {
	ctx := context.Background()
	warnings := NewWarnings(store.NewMemoryStore())

	_, err := warnings.Add(ctx, testGuild, testUser, testMod, "one")
	require.NoError(t, err)
	_, err = warnings.Add(ctx, testGuild, testUser, testMod, "two")
	require.NoError(t, err)

	count, err := warnings.Clear(ctx, testGuild, testUser)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	list, err := warnings.List(ctx, testGuild, testUser)
	require.NoError(t, err)
	assert.Empty(t, list)

	warning, err := warnings.Add(ctx, testGuild, testUser, testMod, "fresh")
	require.NoError(t, err)
	assert.Equal(t, int64(1), warning.ID)
}

func TestScopesAreIndependent(t *testing.T) {
	ctx := context.Background()
	warnings := NewWarnings(store.NewMemoryStore())

	_, err := warnings.Add(ctx, testGuild, "alice", testMod, "spam")
	require.NoError(t, err)
	_, err = warnings.Add(ctx, testGuild, "alice", testMod, "flood")
	require.NoError(t, err)

	// Same user ID in another guild starts at 1.
	warning, err := warnings.Add(ctx, "guild-2", "alice", testMod, "spam")
	require.NoError(t, err)
	assert.Equal(t, int64(1), warning.ID)

	warning, err = warnings.Add(ctx, testGuild, "bob", testMod, "spam")
	require.NoError(t, err)
	assert.Equal(t, int64(1), warning.ID)
}
