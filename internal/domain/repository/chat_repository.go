package repository

import (
	"context"

	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
)

// ChatRepository konsultant suhbatlari tarixi
type ChatRepository interface {
	// Save savol-javobni saqlash
	Save(ctx context.Context, exchange entity.ChatExchange) error

	// History foydalanuvchi tarixi (eski -> yangi)
	History(ctx context.Context, userID int64, limit int) ([]entity.ChatExchange, error)

	// ClearHistory foydalanuvchi tarixini tozalash
	ClearHistory(ctx context.Context, userID int64) error

	// ClearAll barcha tarixni o'chirish
	ClearAll(ctx context.Context) error
}

// AIRepository AI bilan ishlash uchun interface
type AIRepository interface {
	// Answer tarix va katalog konteksti bilan javob yaratish
	Answer(ctx context.Context, prompt string, history []entity.ChatExchange) (string, error)
}
