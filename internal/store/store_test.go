package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetSetDelete(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	defer st.Close()

	_, err := st.Get(ctx, TableUsers, "123")
	assert.Equal(t, ErrNotFound, err)

	require.NoError(t, st.Set(ctx, TableUsers, "123", []byte(`{"balance":42}`)))

	value, err := st.Get(ctx, TableUsers, "123")
	require.NoError(t, err)
	assert.JSONEq(t, `{"balance":42}`, string(value))

	// Full-replace upsert
	require.NoError(t, st.Set(ctx, TableUsers, "123", []byte(`{"balance":7}`)))
	value, err = st.Get(ctx, TableUsers, "123")
	require.NoError(t, err)
	assert.JSONEq(t, `{"balance":7}`, string(value))

	require.NoError(t, st.Delete(ctx, TableUsers, "123"))
	_, err = st.Get(ctx, TableUsers, "123")
	assert.Equal(t, ErrNotFound, err)

	// Deleting an absent key is not an error
	assert.NoError(t, st.Delete(ctx, TableUsers, "123"))
}

func TestMemoryStoreTablesAreIsolated(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	defer st.Close()

	require.NoError(t, st.Set(ctx, TableUsers, "k", []byte(`1`)))
	require.NoError(t, st.Set(ctx, TableShop, "k", []byte(`2`)))

	value, err := st.Get(ctx, TableUsers, "k")
	require.NoError(t, err)
	assert.Equal(t, "1", string(value))

	value, err = st.Get(ctx, TableShop, "k")
	require.NoError(t, err)
	assert.Equal(t, "2", string(value))
}

func TestMemoryStoreListReturnsKeyOrder(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	defer st.Close()

	require.NoError(t, st.Set(ctx, TableUsers, "charlie", []byte(`3`)))
	require.NoError(t, st.Set(ctx, TableUsers, "alice", []byte(`1`)))
	require.NoError(t, st.Set(ctx, TableUsers, "bob", []byte(`2`)))

	entries, err := st.List(ctx, TableUsers)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "alice", entries[0].Key)
	assert.Equal(t, "bob", entries[1].Key)
	assert.Equal(t, "charlie", entries[2].Key)
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	defer st.Close()

	original := []byte(`{"balance":1}`)
	require.NoError(t, st.Set(ctx, TableUsers, "123", original))

	// Mutating the caller's slice must not affect the stored document.
	original[0] = 'X'

	value, err := st.Get(ctx, TableUsers, "123")
	require.NoError(t, err)
	assert.JSONEq(t, `{"balance":1}`, string(value))
}

func TestMemoryStoreListEmptyTable(t *testing.T) {
	st := NewMemoryStore()
	defer st.Close()

	entries, err := st.List(context.Background(), TableWarnings)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
