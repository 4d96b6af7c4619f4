package wishlist

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// StorageKey is the kvstore key the whole collection is persisted under.
const StorageKey = "eversol-wishlist"

// Item is one saved product/variant reference. Identity is ProductID; the
// collection holds at most one entry per ProductID.
type Item struct {
	ID          string           `json:"id"` // defaults to ProductID
	ProductID   string           `json:"productId"`
	Title       string           `json:"title"`
	ImageURL    string           `json:"imageUrl"`
	VariantID   string           `json:"variantId,omitempty"`
	VariantName string           `json:"variantName,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	CoopPrice   *decimal.Decimal `json:"coopPrice,omitempty"`
}

// normalize fills the defaults a caller may omit.
func (i Item) normalize() Item {
	if i.ID == "" {
		i.ID = i.ProductID
	}
	if i.Title == "" {
		i.Title = "Wishlist Item"
	}
	return i
}

// decodeStored upgrades whatever is on disk to the current shape. The
// structured form is tried first, then the legacy form (a plain array of
// product-id strings). Returns ok=false for data in neither form.
func decodeStored(raw string) ([]Item, bool) {
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err == nil {
		return items, true
	}

	var legacy []string
	if err := json.Unmarshal([]byte(raw), &legacy); err != nil {
		return nil, false
	}

	items = make([]Item, 0, len(legacy))
	for _, productID := range legacy {
		items = append(items, Item{
			ID:        productID,
			ProductID: productID,
			Title:     "Wishlist Item",
			ImageURL:  "",
		})
	}
	return items, true
}
