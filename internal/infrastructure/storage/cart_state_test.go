package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
)

type failingKVStore struct{}

func (failingKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, errors.New("storage unavailable")
}
func (failingKVStore) Set(ctx context.Context, key, value string) error {
	return errors.New("quota exceeded")
}
func (failingKVStore) Delete(ctx context.Context, key string) error {
	return errors.New("quota exceeded")
}

func TestCartStateRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewCartStateRepository(NewMemoryKVStore(), zerolog.Nop())

	cart := entity.Cart{"buggy-1": 2, "suv-1": 1}
	repo.SaveCart(ctx, 7, cart)

	assert.Equal(t, cart, repo.LoadCart(ctx, 7))
	assert.Empty(t, repo.LoadCart(ctx, 8), "boshqa foydalanuvchi savati ajratilgan")
}

func TestCartStateMissingOrCorrupt(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKVStore()
	repo := NewCartStateRepository(kv, zerolog.Nop())

	assert.NotNil(t, repo.LoadCart(ctx, 1))
	assert.Empty(t, repo.LoadCart(ctx, 1))

	for _, raw := range []string{"{not json", `["a"]`, `{"a":"two"}`, `{"a":1.5}`} {
		require.NoError(t, kv.Set(ctx, cartKey(1), raw))
		assert.Empty(t, repo.LoadCart(ctx, 1), raw)
	}
}

func TestCartStateDropsNonPositiveEntries(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKVStore()
	repo := NewCartStateRepository(kv, zerolog.Nop())

	require.NoError(t, kv.Set(ctx, cartKey(1), `{"a":2,"b":0,"c":-3,"":4}`))
	assert.Equal(t, entity.Cart{"a": 2}, repo.LoadCart(ctx, 1))
}

func TestPromoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewCartStateRepository(NewMemoryKVStore(), zerolog.Nop())

	percent := &entity.Promo{Code: "SAVE10", Kind: entity.Percent{Value: decimal.NewFromInt(10)}, Note: "−10%"}
	repo.SavePromo(ctx, 3, percent)
	got := repo.LoadPromo(ctx, 3)
	require.NotNil(t, got)
	assert.Equal(t, "SAVE10", got.Code)
	assert.Equal(t, "−10%", got.Note)
	require.IsType(t, entity.Percent{}, got.Kind)
	assert.True(t, got.Kind.(entity.Percent).Value.Equal(decimal.NewFromInt(10)))

	fixed := &entity.Promo{Code: "RC500", Kind: entity.Fixed{Amount: 500}}
	repo.SavePromo(ctx, 3, fixed)
	assert.Equal(t, fixed, repo.LoadPromo(ctx, 3))

	repo.SavePromo(ctx, 3, nil)
	assert.Nil(t, repo.LoadPromo(ctx, 3))
}

func TestPromoMalformedIsAbsent(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKVStore()
	repo := NewCartStateRepository(kv, zerolog.Nop())

	for _, raw := range []string{
		"garbage",
		`{"code":"","type":"percent","value":10}`,
		`{"code":"X","type":"bogo","value":10}`,
		`{"code":"X","type":"fixed","value":"abc"}`,
	} {
		require.NoError(t, kv.Set(ctx, promoKey(1), raw))
		assert.Nil(t, repo.LoadPromo(ctx, 1), raw)
	}

	// raqamli qiymat ham qabul qilinadi
	require.NoError(t, kv.Set(ctx, promoKey(1), `{"code":"save10","type":"percent","value":10,"note":"n"}`))
	got := repo.LoadPromo(ctx, 1)
	require.NotNil(t, got)
	assert.Equal(t, "SAVE10", got.Code)
}

func TestCartStateSwallowsStorageFailures(t *testing.T) {
	ctx := context.Background()
	repo := NewCartStateRepository(failingKVStore{}, zerolog.Nop())

	assert.NotPanics(t, func() {
		repo.SaveCart(ctx, 1, entity.Cart{"a": 1})
		repo.SavePromo(ctx, 1, &entity.Promo{Code: "RC500", Kind: entity.Fixed{Amount: 500}})
		repo.SavePromo(ctx, 1, nil)
	})
	assert.Empty(t, repo.LoadCart(ctx, 1))
	assert.Nil(t, repo.LoadPromo(ctx, 1))
}
