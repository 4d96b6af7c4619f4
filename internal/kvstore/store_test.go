package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_, ok := store.Get(ctx, "eversol-wishlist")
	assert.False(t, ok)

	store.Set(ctx, "eversol-wishlist", `["p1"]`)
	v, ok := store.Get(ctx, "eversol-wishlist")
	assert.True(t, ok)
	assert.Equal(t, `["p1"]`, v)

	store.Set(ctx, "eversol-wishlist", `[]`)
	v, _ = store.Get(ctx, "eversol-wishlist")
	assert.Equal(t, `[]`, v, "set replaces, not appends")

	store.Remove(ctx, "eversol-wishlist")
	_, ok = store.Get(ctx, "eversol-wishlist")
	assert.False(t, ok)

	// Removing an absent key must not panic.
	store.Remove(ctx, "missing")
}

func TestUnavailableDropsEverything(t *testing.T) {
	ctx := context.Background()
	store := Unavailable{}

	store.Set(ctx, "k", "v")
	_, ok := store.Get(ctx, "k")
	assert.False(t, ok)
	store.Remove(ctx, "k")
}
