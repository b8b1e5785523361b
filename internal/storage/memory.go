package storage

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore keeps values as serialized JSON so reads exercise the same
// encode/decode path as the disk store.
type MemoryStore struct {
	values map[string]json.RawMessage
	mu     sync.RWMutex
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]json.RawMessage)}
}

func (m *MemoryStore) Init() error {
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}

func (m *MemoryStore) Get(key string, out any) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	raw, exists := m.values[key]
	if !exists {
		return ErrKeyNotFound
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}
	return nil
}

func (m *MemoryStore) Set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = data
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
