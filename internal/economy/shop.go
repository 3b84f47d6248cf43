package economy

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"theagency-bot/internal/model"
	"theagency-bot/internal/store"
)

// shopDocKey is the single catalog document inside the shop table.
const shopDocKey = "items"

type shopDoc struct {
	Items []model.ShopItem `json:"items"`
}

// Shop manages the global item catalog and purchases. The catalog is one
// document; mutations are serialized by a mutex so concurrent admin edits
// cannot drop each other's writes.
type Shop struct {
	store  store.Store
	ledger *Ledger
	mu     sync.Mutex
	now    func() time.Time
}

// NewShop creates a shop over the given store and ledger.
func NewShop(st store.Store, ledger *Ledger) *Shop {
	return &Shop{
		store:  st,
		ledger: ledger,
		now:    time.Now,
	}
}

func (s *Shop) loadCatalog(ctx context.Context) ([]model.ShopItem, error) {
	data, err := s.store.Get(ctx, store.TableShop, shopDocKey)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load shop catalog: %w", err)
	}

	var doc shopDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse shop catalog: %w", err)
	}
	return doc.Items, nil
}

func (s *Shop) saveCatalog(ctx context.Context, items []model.ShopItem) error {
	if items == nil {
		items = []model.ShopItem{}
	}
	data, err := json.Marshal(shopDoc{Items: items})
	if err != nil {
		return fmt.Errorf("failed to serialize shop catalog: %w", err)
	}
	if err := s.store.Set(ctx, store.TableShop, shopDocKey, data); err != nil {
		return fmt.Errorf("failed to save shop catalog: %w", err)
	}
	return nil
}

// AddItem appends a new item to the catalog with a freshly generated ID.
// IDs are millisecond timestamps, bumped on collision so two items added in
// the same millisecond stay distinct.
func (s *Shop) AddItem(ctx context.Context, name string, price int64, description string) (*model.ShopItem, error) {
	if price <= 0 {
		return nil, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	id := s.now().UnixMilli()
	for itemIDExists(items, strconv.FormatInt(id, 10)) {
		id++
	}

	item := model.ShopItem{
		ID:          strconv.FormatInt(id, 10),
		Name:        name,
		Price:       price,
		Description: description,
	}
	items = append(items, item)

	if err := s.saveCatalog(ctx, items); err != nil {
		return nil, err
	}
	return &item, nil
}

func itemIDExists(items []model.ShopItem, id string) bool {
	for _, item := range items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// ListItems returns the catalog in insertion order.
func (s *Shop) ListItems(ctx context.Context) ([]model.ShopItem, error) {
	return s.loadCatalog(ctx)
}

// RemoveItem removes the item with the given ID. Not-found is a negative
// result, not an error; the removed item is returned when found.
func (s *Shop) RemoveItem(ctx context.Context, itemID string) (bool, *model.ShopItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadCatalog(ctx)
	if err != nil {
		return false, nil, err
	}

	for i, item := range items {
		if item.ID == itemID {
			removed := item
			items = append(items[:i], items[i+1:]...)
			if err := s.saveCatalog(ctx, items); err != nil {
				return false, nil, err
			}
			return true, &removed, nil
		}
	}
	return false, nil, nil
}

// ClearAll empties the catalog and returns how many items were removed.
func (s *Shop) ClearAll(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.loadCatalog(ctx)
	if err != nil {
		return 0, err
	}
	count := len(items)
	if err := s.saveCatalog(ctx, nil); err != nil {
		return 0, err
	}
	return count, nil
}

// ResolveItem finds an item by exact case-insensitive match on name or ID.
func (s *Shop) ResolveItem(ctx context.Context, ref string) (*model.ShopItem, error) {
	items, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if strings.EqualFold(item.Name, ref) || strings.EqualFold(item.ID, ref) {
			found := item
			return &found, nil
		}
	}
	return nil, ErrItemNotFound
}

// Buy purchases the item referenced by name or ID for the user. Fails with
// ErrItemNotFound or ErrInsufficientFunds before any mutation. The debit and
// the inventory append are one account-document write under the buyer's
// lock, so a paid-but-not-delivered state cannot be observed.
func (s *Shop) Buy(ctx context.Context, userID, itemRef string) (*model.ShopItem, int64, error) {
	item, err := s.ResolveItem(ctx, itemRef)
	if err != nil {
		return nil, 0, err
	}

	var newBalance int64
	err = s.ledger.Update(ctx, userID, func(acct *model.Account) error {
		if acct.Balance < item.Price {
			return ErrInsufficientFunds
		}
		acct.Balance -= item.Price
		acct.Inventory = append(acct.Inventory, item.ID)
		newBalance = acct.Balance
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return item, newBalance, nil
}

// GetInventory returns the user's item IDs in acquisition order, duplicates
// included. Grouping and counting is the caller's presentation concern.
func (s *Shop) GetInventory(ctx context.Context, userID string) ([]string, error) {
	var inventory []string
	err := s.ledger.View(ctx, userID, func(acct *model.Account) {
		inventory = acct.Inventory
	})
	return inventory, err
}
