package model

// ShopItem is a purchasable catalog entry. Items are immutable once created;
// there is no edit operation, only add and remove.
type ShopItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}
