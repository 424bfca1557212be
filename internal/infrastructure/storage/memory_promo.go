package storage

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
	"github.com/yourusername/rc-shop-bot/internal/domain/repository"
)

type memoryPromoRepository struct {
	mu     sync.RWMutex
	promos map[string]entity.Promo // key: normallashtirilgan kod
}

// DefaultPromos standart promokodlar jadvali
func DefaultPromos() []entity.Promo {
	return []entity.Promo{
		{Code: "SAVE10", Kind: entity.Percent{Value: decimal.NewFromInt(10)}, Note: "−10% на весь заказ"},
		{Code: "RC500", Kind: entity.Fixed{Amount: 500}, Note: "−500 ₽ на заказ"},
		{Code: "MINUS3000", Kind: entity.Fixed{Amount: 3000}, Note: "−3000 ₽ на крупный заказ"},
	}
}

// NewMemoryPromoRepository promokodlar jadvali. promos bo'sh bo'lsa standart jadval olinadi.
func NewMemoryPromoRepository(promos []entity.Promo) repository.PromoRepository {
	if len(promos) == 0 {
		promos = DefaultPromos()
	}
	table := make(map[string]entity.Promo, len(promos))
	for _, p := range promos {
		code := entity.NormalizePromoCode(p.Code)
		if code == "" || p.Kind == nil {
			continue
		}
		p.Code = code
		table[code] = p
	}
	return &memoryPromoRepository{promos: table}
}

// Lookup kod bo'yicha qidirish
func (m *memoryPromoRepository) Lookup(ctx context.Context, code string) (*entity.Promo, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, ok := m.promos[entity.NormalizePromoCode(code)]
	if !ok {
		return nil, false
	}
	return &p, true
}
