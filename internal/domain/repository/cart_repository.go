package repository

import (
	"context"

	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
)

// CartRepository savat va promokod holatini saqlash.
// Xatolar tashqariga chiqmaydi: buzilgan yoki yo'q ma'lumot bo'sh holat sifatida o'qiladi,
// yozishdagi xatolar esa yutib yuboriladi.
type CartRepository interface {
	LoadCart(ctx context.Context, userID int64) entity.Cart
	SaveCart(ctx context.Context, userID int64, cart entity.Cart)
	LoadPromo(ctx context.Context, userID int64) *entity.Promo
	// SavePromo nil bo'lsa kalit o'chiriladi
	SavePromo(ctx context.Context, userID int64, promo *entity.Promo)
}

// KeyValueStore satr qiymatli doimiy kalit-qiymat ombori
type KeyValueStore interface {
	// Get qiymat va topilganligini qaytaradi
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
