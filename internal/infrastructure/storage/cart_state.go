package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
	"github.com/yourusername/rc-shop-bot/internal/domain/repository"
)

const (
	cartKeyPrefix  = "rc_cart"
	promoKeyPrefix = "rc_promo"
)

type cartStateRepository struct {
	kv  repository.KeyValueStore
	log zerolog.Logger
}

// promoRecord promokodning saqlash formati
type promoRecord struct {
	Code  string          `json:"code"`
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
	Note  string          `json:"note,omitempty"`
}

// NewCartStateRepository kalit-qiymat ombori ustidagi savat/promokod adapteri
func NewCartStateRepository(kv repository.KeyValueStore, log zerolog.Logger) repository.CartRepository {
	return &cartStateRepository{
		kv:  kv,
		log: log.With().Str("component", "cart_state").Logger(),
	}
}

func cartKey(userID int64) string {
	return fmt.Sprintf("%s:%d", cartKeyPrefix, userID)
}

func promoKey(userID int64) string {
	return fmt.Sprintf("%s:%d", promoKeyPrefix, userID)
}

// LoadCart savatni o'qish. Yo'q yoki buzilgan bo'lsa bo'sh savat.
func (r *cartStateRepository) LoadCart(ctx context.Context, userID int64) entity.Cart {
	raw, ok, err := r.kv.Get(ctx, cartKey(userID))
	if err != nil {
		r.log.Warn().Err(err).Int64("user_id", userID).Msg("savatni o'qib bo'lmadi")
		return entity.Cart{}
	}
	if !ok || raw == "" {
		return entity.Cart{}
	}

	var decoded map[string]int
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		r.log.Debug().Err(err).Int64("user_id", userID).Msg("buzilgan savat, bo'sh holatga qaytarildi")
		return entity.Cart{}
	}

	cart := make(entity.Cart, len(decoded))
	for id, qty := range decoded {
		if id == "" || qty <= 0 {
			continue
		}
		cart[id] = qty
	}
	return cart
}

// SaveCart savatni yozish (xatolar yutiladi)
func (r *cartStateRepository) SaveCart(ctx context.Context, userID int64, cart entity.Cart) {
	if cart == nil {
		cart = entity.Cart{}
	}
	data, err := json.Marshal(cart)
	if err != nil {
		r.log.Warn().Err(err).Int64("user_id", userID).Msg("savatni kodlab bo'lmadi")
		return
	}
	if err := r.kv.Set(ctx, cartKey(userID), string(data)); err != nil {
		r.log.Warn().Err(err).Int64("user_id", userID).Msg("savatni saqlab bo'lmadi")
	}
}

// LoadPromo faol promokodni o'qish
func (r *cartStateRepository) LoadPromo(ctx context.Context, userID int64) *entity.Promo {
	raw, ok, err := r.kv.Get(ctx, promoKey(userID))
	if err != nil {
		r.log.Warn().Err(err).Int64("user_id", userID).Msg("promokodni o'qib bo'lmadi")
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var rec promoRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		r.log.Debug().Err(err).Int64("user_id", userID).Msg("buzilgan promokod e'tiborsiz qoldirildi")
		return nil
	}

	code := entity.NormalizePromoCode(rec.Code)
	if code == "" {
		return nil
	}
	kind, err := entity.ParsePromoKind(rec.Type, rec.Value)
	if err != nil {
		r.log.Debug().Err(err).Int64("user_id", userID).Msg("noma'lum promokod turi e'tiborsiz qoldirildi")
		return nil
	}

	return &entity.Promo{Code: code, Kind: kind, Note: rec.Note}
}

// SavePromo promokodni yozish, nil bo'lsa o'chirish
func (r *cartStateRepository) SavePromo(ctx context.Context, userID int64, promo *entity.Promo) {
	if promo == nil || promo.Kind == nil {
		if err := r.kv.Delete(ctx, promoKey(userID)); err != nil {
			r.log.Warn().Err(err).Int64("user_id", userID).Msg("promokodni o'chirib bo'lmadi")
		}
		return
	}

	data, err := json.Marshal(promoRecord{
		Code:  promo.Code,
		Type:  promo.Kind.Name(),
		Value: entity.PromoValue(promo.Kind),
		Note:  promo.Note,
	})
	if err != nil {
		r.log.Warn().Err(err).Int64("user_id", userID).Msg("promokodni kodlab bo'lmadi")
		return
	}
	if err := r.kv.Set(ctx, promoKey(userID), string(data)); err != nil {
		r.log.Warn().Err(err).Int64("user_id", userID).Msg("promokodni saqlab bo'lmadi")
	}
}
