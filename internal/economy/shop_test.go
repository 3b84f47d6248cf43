package economy

import (
	"context"
	"testing"
	"time"

	"theagency-bot/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShop(t *testing.T) (*Shop, *Ledger) {
	t.Helper()
	ledger := NewLedger(store.NewMemoryStore())
	return NewShop(ledger.store, ledger), ledger
}

func TestAddAndListItems(t *testing.T) {
	ctx := context.Background()
	shop, _ := newTestShop(t)

	sword, err := shop.AddItem(ctx, "Sword", 1000, "A sharp blade")
	require.NoError(t, err)
	assert.NotEmpty(t, sword.ID)

	shield, err := shop.AddItem(ctx, "Shield", 500, "Sturdy protection")
	require.NoError(t, err)

	items, err := shop.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Insertion order
	assert.Equal(t, "Sword", items[0].Name)
	assert.Equal(t, "Shield", items[1].Name)
	assert.NotEqual(t, sword.ID, shield.ID)
}

func TestAddItemRejectsNonPositivePrice(t *testing.T) {
	shop, _ := newTestShop(t)

	_, err := shop.AddItem(context.Background(), "Free", 0, "nope")
	assert.Equal(t, ErrInvalidAmount, err)
}

func TestItemIDsUniqueWithinSameMillisecond(t *testing.T) {
	ctx := context.Background()
	shop, _ := newTestShop(t)

	frozen := time.Now()
	shop.now = func() time.Time { return frozen }

	first, err := shop.AddItem(ctx, "One", 10, "")
	require.NoError(t, err)
	second, err := shop.AddItem(ctx, "Two", 10, "")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	shop, _ := newTestShop(t)

	item, err := shop.AddItem(ctx, "Sword", 1000, "")
	require.NoError(t, err)

	removed, got, err := shop.RemoveItem(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, "Sword", got.Name)

	// Not-found is a negative result, not an error.
	removed, got, err = shop.RemoveItem(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Nil(t, got)
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	shop, _ := newTestShop(t)

	_, err := shop.AddItem(ctx, "A", 1, "")
	require.NoError(t, err)
	_, err = shop.AddItem(ctx, "B", 2, "")
	require.NoError(t, err)

	count, err := shop.ClearAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	items, err := shop.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestResolveItemCaseInsensitiveByNameOrID(t *testing.T) {
	ctx := context.Background()
	shop, _ := newTestShop(t)

	item, err := shop.AddItem(ctx, "Sword", 1000, "")
	require.NoError(t, err)

	byName, err := shop.ResolveItem(ctx, "sWoRd")
	require.NoError(t, err)
	assert.Equal(t, item.ID, byName.ID)

	byID, err := shop.ResolveItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sword", byID.Name)

	_, err = shop.ResolveItem(ctx, "Axe")
	assert.Equal(t, ErrItemNotFound, err)
}

func TestBuyDebitsAndDelivers(t *testing.T) {
	ctx := context.Background()
	shop, ledger := newTestShop(t)

	sword, err := shop.AddItem(ctx, "Sword", 1000, "A sharp blade")
	require.NoError(t, err)
	_, err = ledger.AddBalance(ctx, "123", 1000)
	require.NoError(t, err)

	item, newBalance, err := shop.Buy(ctx, "123", "Sword")
	require.NoError(t, err)
	assert.Equal(t, sword.ID, item.ID)
	assert.Equal(t, int64(0), newBalance)

	inventory, err := shop.GetInventory(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, []string{sword.ID}, inventory)

	// Second purchase fails and the inventory stays unchanged.
	_, _, err = shop.Buy(ctx, "123", "Sword")
	assert.Equal(t, ErrInsufficientFunds, err)

	inventory, err = shop.GetInventory(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, []string{sword.ID}, inventory)

	balance, err := ledger.GetBalance(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}

func TestBuyUnknownItem(t *testing.T) {
	shop, _ := newTestShop(t)

	_, _, err := shop.Buy(context.Background(), "123", "Ghost")
	assert.Equal(t, ErrItemNotFound, err)
}

func TestInventoryKeepsDuplicatesInAcquisitionOrder(t *testing.T) {
	ctx := context.Background()
	shop, ledger := newTestShop(t)

	apple, err := shop.AddItem(ctx, "Apple", 10, "")
	require.NoError(t, err)
	bread, err := shop.AddItem(ctx, "Bread", 10, "")
	require.NoError(t, err)
	_, err = ledger.AddBalance(ctx, "123", 100)
	require.NoError(t, err)

	for _, ref := range []string{"Apple", "Bread", "Apple"} {
		_, _, err := shop.Buy(ctx, "123", ref)
		require.NoError(t, err)
	}

	inventory, err := shop.GetInventory(ctx, "123")
	require.NoError(t, err)
	assert.Equal(t, []string{apple.ID, bread.ID, apple.ID}, inventory)
}
