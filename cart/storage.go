package cart

import (
	"context"
	"sync"
)

// Storage persists cart state between requests. Load returns (nil, nil) when
// no cart exists under the key.
type Storage interface {
	Load(ctx context.Context, key string) (*State, error)
	Save(ctx context.Context, key string, state State) error
	Delete(ctx context.Context, key string) error
}

// MemoryStorage is an in-process Storage, used in tests and as a fallback
// when no Redis address is configured.
type MemoryStorage struct {
	mu    sync.RWMutex
	carts map[string]State
}

// NewMemoryStorage returns an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{carts: make(map[string]State)}
}

func (m *MemoryStorage) Load(ctx context.Context, key string) (*State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.carts[key]
	if !ok {
		return nil, nil
	}
	copied := State{Items: make([]LineItem, len(state.Items))}
	copy(copied.Items, state.Items)
	if state.Coupon != nil {
		ref := *state.Coupon
		copied.Coupon = &ref
	}
	return &copied, nil
}

func (m *MemoryStorage) Save(ctx context.Context, key string, state State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[key] = state
	return nil
}

func (m *MemoryStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, key)
	return nil
}
