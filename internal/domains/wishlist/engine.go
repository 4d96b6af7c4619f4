package wishlist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"eversol-backend/internal/kvstore"
	"eversol-backend/pkg/events"
	"eversol-backend/pkg/logger"
)

// Engine maintains the deduplicated collection of saved products. Every
// mutation that changes state rewrites the whole collection as one store
// write, then publishes the wishlist-updated event.
type Engine struct {
	store kvstore.Store
	bus   *events.Bus
}

func NewEngine(store kvstore.Store, bus *events.Bus) *Engine {
	return &Engine{store: store, bus: bus}
}

// UpdateEventName returns the change event published after every mutation.
func (e *Engine) UpdateEventName() string {
	return events.WishlistUpdated
}

// Items returns the current collection, upgrading any legacy stored form on
// read. Corrupted data is purged and reads as empty.
func (e *Engine) Items(ctx context.Context) []Item {
	raw, ok := e.store.Get(ctx, StorageKey)
	if !ok {
		return []Item{}
	}

	items, ok := decodeStored(raw)
	if !ok {
		logger.Warn("wishlist: purging unreadable stored data", map[string]interface{}{
			"key": StorageKey,
		})
		e.store.Remove(ctx, StorageKey)
		return []Item{}
	}
	return items
}

// Count returns the number of saved items.
func (e *Engine) Count(ctx context.Context) int {
	return len(e.Items(ctx))
}

// Contains reports whether the product is saved.
func (e *Engine) Contains(ctx context.Context, productID string) bool {
	for _, item := range e.Items(ctx) {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}

// Add appends the item unless its ProductID is already present. Returns
// whether the collection changed.
func (e *Engine) Add(ctx context.Context, item Item) bool {
	if item.ProductID == "" {
		return false
	}

	current := e.Items(ctx)
	for _, existing := range current {
		if existing.ProductID == item.ProductID {
			return false
		}
	}

	e.persist(ctx, append(current, item.normalize()))
	e.bus.Notify(events.Notification{
		Message: "Item(s) successfully added to the wishlist",
		Type:    events.NotifySuccess,
	})
	return true
}

// Remove deletes the entry for productID. When nothing matches, no write
// happens and no event fires.
func (e *Engine) Remove(ctx context.Context, productID string) bool {
	if productID == "" {
		return false
	}

	current := e.Items(ctx)
	kept := make([]Item, 0, len(current))
	for _, item := range current {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(current) {
		return false
	}

	e.persist(ctx, kept)
	e.bus.Notify(events.Notification{
		Message: "Product removed from wishlist.",
		Type:    events.NotifyInfo,
	})
	return true
}

// Toggle removes the item when present, adds it otherwise. Returns whether
// the item is present afterwards.
func (e *Engine) Toggle(ctx context.Context, item Item) bool {
	if item.ProductID == "" {
		return false
	}
	if e.Contains(ctx, item.ProductID) {
		e.Remove(ctx, item.ProductID)
		return false
	}
	e.Add(ctx, item)
	return true
}

// Clear empties the collection unconditionally.
func (e *Engine) Clear(ctx context.Context) {
	e.persist(ctx, []Item{})
	e.bus.Notify(events.Notification{
		Message: "Wishlist cleared.",
		Type:    events.NotifyInfo,
	})
}

// MoveToCart adds the product to the cart through addFn and, only when that
// succeeds, removes it from the wishlist.
func (e *Engine) MoveToCart(ctx context.Context, productID string, addFn func(productID string, quantity int) error) error {
	if !e.Contains(ctx, productID) {
		return nil
	}

	if err := addFn(productID, 1); err != nil {
		e.bus.Notify(events.Notification{
			Message: "Could not move item to cart.",
			Type:    events.NotifyError,
		})
		return fmt.Errorf("move wishlist item to cart: %w", err)
	}

	e.Remove(ctx, productID)
	e.bus.Notify(events.Notification{
		Message: "Product moved to cart.",
		Type:    events.NotifySuccess,
	})
	return nil
}

// ShareableLink encodes the saved product ids into a wishlist URL.
func (e *Engine) ShareableLink(ctx context.Context, baseURL string) string {
	items := e.Items(ctx)
	if len(items) == 0 {
		return baseURL + "/wishlist"
	}

	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ProductID
	}

	params := url.Values{}
	params.Set("shared_wishlist", strings.Join(ids, ","))
	return baseURL + "/wishlist?" + params.Encode()
}

// persist writes the full collection as one value, then signals observers.
// The event fires only after the write.
func (e *Engine) persist(ctx context.Context, items []Item) {
	data, err := json.Marshal(items)
	if err != nil {
		logger.Error("wishlist: failed to encode collection", err)
		return
	}
	e.store.Set(ctx, StorageKey, string(data))
	e.bus.Publish(events.WishlistUpdated)
}
