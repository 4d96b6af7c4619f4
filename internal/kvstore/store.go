// Package kvstore is the durable key-value storage every customer state
// engine persists into. Values are JSON-serialized strings; a whole
// collection is always written as one value under one key.
package kvstore

import "context"

// Store is the persistence contract for customer state. Implementations
// never return errors to callers: a missing or unreachable backend reads as
// a miss and drops writes, and engines degrade to empty collections or
// failure results on top of that.
type Store interface {
	// Get returns the stored value and whether the key was present.
	Get(ctx context.Context, key string) (string, bool)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string)

	// Remove deletes key. Removing an absent key is a no-op.
	Remove(ctx context.Context, key string)
}

// Scoper hands out prefixed views of a shared backend, one per customer.
type Scoper interface {
	Scoped(prefix string) Store
}

// Unavailable is the "no durable storage in this execution context" guard:
// every read misses and every write is silently dropped.
type Unavailable struct{}

func (Unavailable) Get(ctx context.Context, key string) (string, bool) { return "", false }
func (Unavailable) Set(ctx context.Context, key, value string)        {}
func (Unavailable) Remove(ctx context.Context, key string)            {}
func (Unavailable) Available() bool                                   { return false }
func (u Unavailable) Scoped(prefix string) Store                       { return u }

type availability interface {
	Available() bool
}

// Available reports whether writes to s actually persist. Stores that do not
// implement the capability are assumed durable.
func Available(s Store) bool {
	if a, ok := s.(availability); ok {
		return a.Available()
	}
	return true
}
