package storage

import (
	"context"
	"sync"

	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
	"github.com/yourusername/rc-shop-bot/internal/domain/repository"
)

type memoryChatRepository struct {
	mu      sync.RWMutex
	history map[int64][]entity.ChatExchange
	maxSize int
}

// NewMemoryChatRepository in-memory chat repository yaratish
func NewMemoryChatRepository(maxContextSize int) repository.ChatRepository {
	return &memoryChatRepository{
		history: make(map[int64][]entity.ChatExchange),
		maxSize: maxContextSize,
	}
}

// Save savol-javobni saqlash
func (m *memoryChatRepository) Save(ctx context.Context, exchange entity.ChatExchange) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := append(m.history[exchange.UserID], exchange)

	// Maksimal hajmni nazorat qilish
	if m.maxSize > 0 && len(list) > m.maxSize {
		list = list[len(list)-m.maxSize:]
	}
	m.history[exchange.UserID] = list
	return nil
}

// History foydalanuvchi tarixini olish
func (m *memoryChatRepository) History(ctx context.Context, userID int64, limit int) ([]entity.ChatExchange, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := m.history[userID]
	if limit > 0 && len(list) > limit {
		list = list[len(list)-limit:]
	}

	out := make([]entity.ChatExchange, len(list))
	copy(out, list)
	return out, nil
}

// ClearHistory foydalanuvchi tarixini tozalash
func (m *memoryChatRepository) ClearHistory(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.history, userID)
	return nil
}

// ClearAll barcha chat tarixlarini tozalash
func (m *memoryChatRepository) ClearAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.history = make(map[int64][]entity.ChatExchange)
	return nil
}
