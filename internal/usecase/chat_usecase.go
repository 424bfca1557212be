package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
	"github.com/yourusername/rc-shop-bot/internal/domain/pricing"
	"github.com/yourusername/rc-shop-bot/internal/domain/repository"
)

const (
	chatHistoryLimit = 10
	chatTimeout      = 20 * time.Second
)

// ErrEmptyQuestion bo'sh savol
var ErrEmptyQuestion = errors.New("question is empty")

// ChatUseCase konsultant bilan suhbat
type ChatUseCase interface {
	ProcessMessage(ctx context.Context, userID int64, username, text string) (string, error)
	ClearHistory(ctx context.Context, userID int64) error
	History(ctx context.Context, userID int64) ([]entity.ChatExchange, error)
}

type chatUseCase struct {
	aiRepo      repository.AIRepository
	chatRepo    repository.ChatRepository
	productRepo repository.ProductRepository
	log         zerolog.Logger
	now         func() time.Time
}

// NewChatUseCase yangi ChatUseCase yaratish
func NewChatUseCase(
	aiRepo repository.AIRepository,
	chatRepo repository.ChatRepository,
	productRepo repository.ProductRepository,
	log zerolog.Logger,
) ChatUseCase {
	return &chatUseCase{
		aiRepo:      aiRepo,
		chatRepo:    chatRepo,
		productRepo: productRepo,
		log:         log.With().Str("component", "chat").Logger(),
		now:         time.Now,
	}
}

// ProcessMessage savolni katalog konteksti bilan AI ga yuborish
func (u *chatUseCase) ProcessMessage(ctx context.Context, userID int64, username, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyQuestion
	}

	// AI so'rovlari osilib qolmasin
	ctx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()

	history, err := u.chatRepo.History(ctx, userID, chatHistoryLimit)
	if err != nil {
		return "", fmt.Errorf("failed to get history: %w", err)
	}

	prompt := text
	if products, err := u.productRepo.GetAll(ctx); err == nil && len(products) > 0 {
		prompt = buildPrompt(text, products)
	}
	u.log.Debug().Int64("user_id", userID).Int("prompt_len", len(prompt)).Msg("AI ga so'rov")

	answer, err := u.aiRepo.Answer(ctx, prompt, history)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}

	// Asl savol saqlanadi, kontekstli prompt emas
	exchange := entity.ChatExchange{
		ID:        uuid.New().String(),
		UserID:    userID,
		Username:  username,
		Question:  text,
		Answer:    answer,
		Timestamp: u.now(),
	}
	if err := u.chatRepo.Save(ctx, exchange); err != nil {
		return "", fmt.Errorf("failed to save message: %w", err)
	}

	return answer, nil
}

// buildPrompt savol va ixcham katalog ro'yxati
func buildPrompt(question string, products []entity.Product) string {
	var sb strings.Builder
	sb.WriteString("Каталог магазина:\n")
	sb.WriteString(catalogContext(products))
	sb.WriteString("\nОтвечай, опираясь только на этот каталог. Называй модели точно как в списке.\n\n")
	sb.WriteString("Вопрос покупателя: ")
	sb.WriteString(question)
	return sb.String()
}

// catalogContext har bir mahsulot bitta qatorda, tur bo'yicha guruhlangan
func catalogContext(products []entity.Product) string {
	groups := make(map[string][]entity.Product)
	var order []string
	for _, p := range products {
		t := p.Type
		if t == "" {
			t = "Другое"
		}
		if _, ok := groups[t]; !ok {
			order = append(order, t)
		}
		groups[t] = append(groups[t], p)
	}

	var sb strings.Builder
	for _, t := range order {
		fmt.Fprintf(&sb, "\n[%s]\n", t)
		for _, p := range groups[t] {
			fmt.Fprintf(&sb, "- %s (id %s): %d ₽", p.Name, p.ID, p.Price)
			if pct := pricing.DiscountPercent(p); pct > 0 {
				fmt.Fprintf(&sb, ", скидка %d%%", pct)
			}
			if p.Speed > 0 {
				fmt.Fprintf(&sb, ", %d км/ч", p.Speed)
			}
			if p.Scale != "" {
				fmt.Fprintf(&sb, ", масштаб %s", p.Scale)
			}
			if p.Rating > 0 {
				fmt.Fprintf(&sb, ", рейтинг %.1f", p.Rating)
			}
			if len(p.Features) > 0 {
				fmt.Fprintf(&sb, "; %s", strings.Join(p.Features, ", "))
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// ClearHistory foydalanuvchi tarixini tozalash
func (u *chatUseCase) ClearHistory(ctx context.Context, userID int64) error {
	return u.chatRepo.ClearHistory(ctx, userID)
}

// History foydalanuvchi tarixini olish
func (u *chatUseCase) History(ctx context.Context, userID int64) ([]entity.ChatExchange, error) {
	return u.chatRepo.History(ctx, userID, 0)
}
