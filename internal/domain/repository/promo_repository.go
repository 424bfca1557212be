package repository

import (
	"context"

	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
)

// PromoRepository statik promokodlar jadvali
type PromoRepository interface {
	// Lookup normallashtirilgan kod bo'yicha qidirish
	Lookup(ctx context.Context, code string) (*entity.Promo, bool)
}
