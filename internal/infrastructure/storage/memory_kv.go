package storage

import (
	"context"
	"sync"

	"github.com/yourusername/rc-shop-bot/internal/domain/repository"
)

type memoryKVStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryKVStore xotiradagi kalit-qiymat ombori (testlar va vaqtinchalik ishga tushirish uchun)
func NewMemoryKVStore() repository.KeyValueStore {
	return &memoryKVStore{data: make(map[string]string)}
}

func (m *memoryKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	return value, ok, nil
}

func (m *memoryKVStore) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = value
	return nil
}

func (m *memoryKVStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}
