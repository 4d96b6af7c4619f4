package kvstore

import (
	"context"
	"sync"
)

// Memory is an in-process Store. It backs tests and the session-scoped
// storage tier, which lives only as long as the process.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

// Scoped returns a prefixed view sharing this store's backing map.
func (m *Memory) Scoped(prefix string) Store {
	return scopedMemory{backing: m, prefix: prefix}
}

type scopedMemory struct {
	backing *Memory
	prefix  string
}

func (s scopedMemory) Get(ctx context.Context, key string) (string, bool) {
	return s.backing.Get(ctx, s.prefix+":"+key)
}

func (s scopedMemory) Set(ctx context.Context, key, value string) {
	s.backing.Set(ctx, s.prefix+":"+key, value)
}

func (s scopedMemory) Remove(ctx context.Context, key string) {
	s.backing.Remove(ctx, s.prefix+":"+key)
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *Memory) Set(ctx context.Context, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

func (m *Memory) Remove(ctx context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
}
