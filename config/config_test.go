package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/rc-shop-bot/internal/domain/pricing"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, "data/rcshop.db", cfg.DBPath)
	assert.Equal(t, 20, cfg.MaxContextSize)
	assert.Equal(t, pricing.DefaultPolicy, cfg.ShippingPolicy())
	assert.False(t, cfg.AIEnabled())
}

func TestFromEnvRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, err := FromEnv()
	assert.Error(t, err)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("STORE_BACKEND", " Redis ")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("FREE_SHIPPING_FROM", "15000")
	t.Setenv("SHIPPING_FEE", "500")
	t.Setenv("ORDERS_CHAT_ID", "-1001234")
	t.Setenv("GEMINI_API_KEY", "key")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, BackendRedis, cfg.StoreBackend)
	assert.Equal(t, int64(-1001234), cfg.OrdersChatID)
	assert.Equal(t, pricing.Policy{FreeShippingFrom: 15000, ShippingFee: 500}, cfg.ShippingPolicy())
	assert.True(t, cfg.AIEnabled())
}

func TestFromEnvValidation(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")

	t.Setenv("STORE_BACKEND", "redis")
	_, err := FromEnv()
	assert.ErrorContains(t, err, "REDIS_ADDR")

	t.Setenv("STORE_BACKEND", "postgres")
	_, err = FromEnv()
	assert.Error(t, err)

	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("SHIPPING_FEE", "-1")
	_, err = FromEnv()
	assert.Error(t, err)

	t.Setenv("SHIPPING_FEE", "abc")
	_, err = FromEnv()
	assert.Error(t, err)
}
