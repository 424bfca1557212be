package repository

import (
	"context"

	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
)

// AdminRepository admin bilan ishlash uchun interface
type AdminRepository interface {
	// CreateSession admin sessiyasini yaratish
	CreateSession(ctx context.Context, session entity.AdminSession) error

	// DeleteSession sessiyani o'chirish (logout)
	DeleteSession(ctx context.Context, userID int64) error

	// IsAdmin foydalanuvchi admin ekanligini tekshirish
	IsAdmin(ctx context.Context, userID int64) (bool, error)

	// LogAction admin harakatini loglash
	LogAction(ctx context.Context, action entity.AdminAction) error

	// Actions oxirgi harakatlar
	Actions(ctx context.Context, limit int) ([]entity.AdminAction, error)
}
