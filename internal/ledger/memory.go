package ledger

import "sync"

// MemoryStore is a process-local Store. It backs tests and runs without a
// database.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]float64
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]float64)}
}

// Best implements Store.
func (m *MemoryStore) Best(key string) (float64, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

// SetBest implements Store.
func (m *MemoryStore) SetBest(key string, value float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

var _ Store = (*MemoryStore)(nil)
