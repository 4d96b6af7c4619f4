package wishlist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eversol-backend/internal/kvstore"
	"eversol-backend/pkg/events"
)

func newTestEngine() (*Engine, *kvstore.Memory, *events.Bus) {
	store := kvstore.NewMemory()
	bus := events.NewBus()
	return NewEngine(store, bus), store, bus
}

func TestAddIsIdempotentPerProduct(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine()

	item := Item{ProductID: "prod-1", Title: "Organic Jaggery", ImageURL: "/jaggery.jpg"}

	assert.True(t, engine.Add(ctx, item))
	assert.False(t, engine.Add(ctx, item), "second add of same productId is a no-op")

	items := engine.Items(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, "prod-1", items[0].ProductID)
	assert.Equal(t, "prod-1", items[0].ID, "id defaults to productId")
}

func TestAddNormalizesMissingFields(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine()

	engine.Add(ctx, Item{ProductID: "prod-2"})

	items := engine.Items(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, "Wishlist Item", items[0].Title)
	assert.Equal(t, "", items[0].ImageURL)
}

func TestRemoveAbsentProductEmitsNothing(t *testing.T) {
	ctx := context.Background()
	engine, _, bus := newTestEngine()

	updates := 0
	unsub := bus.Subscribe(events.WishlistUpdated, func() { updates++ })
	defer unsub()

	assert.False(t, engine.Remove(ctx, "missing"))
	assert.Equal(t, 0, updates)

	engine.Add(ctx, Item{ProductID: "prod-1"})
	assert.Equal(t, 1, updates)

	assert.True(t, engine.Remove(ctx, "prod-1"))
	assert.Equal(t, 2, updates)
}

func TestToggle(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine()

	item := Item{ProductID: "prod-1", Title: "Cold Pressed Oil"}

	assert.True(t, engine.Toggle(ctx, item))
	assert.True(t, engine.Contains(ctx, "prod-1"))

	assert.False(t, engine.Toggle(ctx, item))
	assert.False(t, engine.Contains(ctx, "prod-1"))
	assert.Equal(t, 0, engine.Count(ctx))
}

func TestLegacyStringArrayUpgradesOnRead(t *testing.T) {
	ctx := context.Background()
	engine, store, _ := newTestEngine()

	store.Set(ctx, StorageKey, `["prod-1","prod-2"]`)

	items := engine.Items(ctx)
	require.Len(t, items, 2)
	assert.Equal(t, "prod-1", items[0].ProductID)
	assert.Equal(t, "Wishlist Item", items[0].Title)

	// Uniqueness still enforced against upgraded entries.
	assert.False(t, engine.Add(ctx, Item{ProductID: "prod-2"}))
}

func TestCorruptedDataIsPurged(t *testing.T) {
	ctx := context.Background()
	engine, store, _ := newTestEngine()

	store.Set(ctx, StorageKey, `{"not":"a list"`)

	assert.Empty(t, engine.Items(ctx))
	_, ok := store.Get(ctx, StorageKey)
	assert.False(t, ok, "corrupt value must be removed")
}

func TestContainsWithoutStorage(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine(kvstore.Unavailable{}, events.NewBus())

	assert.False(t, engine.Contains(ctx, "prod-1"))
	assert.Empty(t, engine.Items(ctx))
	assert.Equal(t, 0, engine.Count(ctx))
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine()

	engine.Add(ctx, Item{ProductID: "prod-1"})
	engine.Add(ctx, Item{ProductID: "prod-2"})
	engine.Clear(ctx)

	assert.Equal(t, 0, engine.Count(ctx))
}

func TestMoveToCart(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine()

	engine.Add(ctx, Item{ProductID: "prod-1"})

	var added string
	err := engine.MoveToCart(ctx, "prod-1", func(productID string, quantity int) error {
		added = productID
		assert.Equal(t, 1, quantity)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "prod-1", added)
	assert.False(t, engine.Contains(ctx, "prod-1"))
}

func TestMoveToCartKeepsItemOnFailure(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine()

	engine.Add(ctx, Item{ProductID: "prod-1"})

	err := engine.MoveToCart(ctx, "prod-1", func(string, int) error {
		return errors.New("out of stock")
	})
	require.Error(t, err)
	assert.True(t, engine.Contains(ctx, "prod-1"), "item stays when cart add fails")
}

func TestShareableLink(t *testing.T) {
	ctx := context.Background()
	engine, _, _ := newTestEngine()

	assert.Equal(t, "https://shop.example/wishlist", engine.ShareableLink(ctx, "https://shop.example"))

	engine.Add(ctx, Item{ProductID: "prod-1"})
	engine.Add(ctx, Item{ProductID: "prod-2"})

	link := engine.ShareableLink(ctx, "https://shop.example")
	assert.Contains(t, link, "shared_wishlist=prod-1%2Cprod-2")
}
