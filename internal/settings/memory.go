package settings

import (
	"context"
	"sync"

	"github.com/BradenHooton/gridboard/internal/models"
)

// MemoryStore keeps encoded documents in process memory
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string][]byte)}
}

func (m *MemoryStore) Load(ctx context.Context, key string) (*ViewSettings, error) {
	m.mu.RLock()
	data, ok := m.docs[key]
	m.mu.RUnlock()

	if !ok {
		return nil, models.ErrNotFound
	}
	return decode(data)
}

func (m *MemoryStore) Save(ctx context.Context, key string, vs ViewSettings) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	data, err := encode(vs)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.docs[key] = data
	m.mu.Unlock()
	return nil
}

// put stores raw bytes, bypassing encoding
func (m *MemoryStore) put(key string, data []byte) {
	m.mu.Lock()
	m.docs[key] = data
	m.mu.Unlock()
}
