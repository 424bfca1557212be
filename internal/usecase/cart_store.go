package usecase

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
	"github.com/yourusername/rc-shop-bot/internal/domain/repository"
)

// RemoveAllDelta yozuvni o'chirish uchun katta manfiy qadam
const RemoveAllDelta = -999

// CartStore bitta foydalanuvchining savati va promokodi.
// Har bir o'zgarish darhol saqlanadi. Goroutine-safe emas, chaqiruvchi qulflaydi.
type CartStore struct {
	userID   int64
	repo     repository.CartRepository
	products repository.ProductRepository
	log      zerolog.Logger

	cart  entity.Cart
	promo *entity.Promo
}

// NewCartStore saqlangan holatdan store yaratish
func NewCartStore(ctx context.Context, userID int64, repo repository.CartRepository, products repository.ProductRepository, log zerolog.Logger) *CartStore {
	return &CartStore{
		userID:   userID,
		repo:     repo,
		products: products,
		log:      log,
		cart:     repo.LoadCart(ctx, userID),
		promo:    repo.LoadPromo(ctx, userID),
	}
}

// Add miqdorni delta ga o'zgartirish. Natija 0 bo'lsa yozuv o'chadi.
func (s *CartStore) Add(ctx context.Context, productID string, delta int) int {
	next := s.cart[productID] + delta
	if next <= 0 {
		delete(s.cart, productID)
		next = 0
	} else {
		s.cart[productID] = next
	}
	s.repo.SaveCart(ctx, s.userID, s.cart)
	return next
}

// RemoveAll mahsulotni savatdan butunlay olib tashlash
func (s *CartStore) RemoveAll(ctx context.Context, productID string) {
	s.Add(ctx, productID, RemoveAllDelta)
}

// QuantityOf mahsulot miqdori, yo'q bo'lsa 0
func (s *CartStore) QuantityOf(productID string) int {
	return s.cart[productID]
}

// Cart joriy savat nusxasi
func (s *CartStore) Cart() entity.Cart {
	return s.cart.Clone()
}

// Items savatni katalog bilan birlashtirish (katalog tartibida).
// Katalogda yo'q ID lar tashlab yuboriladi.
func (s *CartStore) Items(ctx context.Context) []entity.CartItem {
	if len(s.cart) == 0 {
		return nil
	}
	products, err := s.products.GetAll(ctx)
	if err != nil {
		s.log.Warn().Err(err).Int64("user_id", s.userID).Msg("katalogni o'qib bo'lmadi")
		return nil
	}

	items := make([]entity.CartItem, 0, len(s.cart))
	for _, p := range products {
		if qty, ok := s.cart[p.ID]; ok && qty > 0 {
			items = append(items, entity.CartItem{Product: p, Quantity: qty})
		}
	}
	return items
}

// Reset savatni bo'shatish va promokodni bekor qilish
func (s *CartStore) Reset(ctx context.Context) {
	s.cart = entity.Cart{}
	s.promo = nil
	s.repo.SaveCart(ctx, s.userID, s.cart)
	s.repo.SavePromo(ctx, s.userID, nil)
}

// Promo faol promokod (nil bo'lishi mumkin)
func (s *CartStore) Promo() *entity.Promo {
	if s.promo == nil {
		return nil
	}
	p := *s.promo
	return &p
}

// SetPromo promokodni o'rnatish, nil bo'lsa tozalash
func (s *CartStore) SetPromo(ctx context.Context, promo *entity.Promo) {
	if promo != nil {
		p := *promo
		promo = &p
	}
	s.promo = promo
	s.repo.SavePromo(ctx, s.userID, promo)
}
