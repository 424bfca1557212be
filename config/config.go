package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/yourusername/rc-shop-bot/internal/domain/pricing"
)

// Ombor turlari
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config ilovaning konfiguratsiyasi
type Config struct {
	TelegramToken string `envconfig:"TELEGRAM_BOT_TOKEN" required:"true"`
	GeminiAPIKey  string `envconfig:"GEMINI_API_KEY"`
	GeminiModel   string `envconfig:"GEMINI_MODEL" default:"gemini-2.0-flash"`

	StoreBackend  string `envconfig:"STORE_BACKEND" default:"sqlite"`
	DBPath        string `envconfig:"DB_PATH" default:"data/rcshop.db"`
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	CatalogPath string `envconfig:"CATALOG_PATH" default:"data/catalog.yaml"`
	PromoPath   string `envconfig:"PROMO_PATH"`

	OrdersChatID  int64  `envconfig:"ORDERS_CHAT_ID"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`

	FreeShippingFrom int64 `envconfig:"FREE_SHIPPING_FROM" default:"9000"`
	ShippingFee      int64 `envconfig:"SHIPPING_FEE" default:"390"`

	MaxContextSize int `envconfig:"MAX_CONTEXT_SIZE" default:"20"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"json"`
	MetricsAddr string `envconfig:"METRICS_ADDR"`
}

// Load .env (mavjud bo'lsa) va muhit o'zgaruvchilaridan yuklash
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv faqat muhit o'zgaruvchilaridan o'qish
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.TelegramToken) == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable bo'sh")
	}
	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))
	switch c.StoreBackend {
	case BackendMemory, BackendSQLite:
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required when STORE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("STORE_BACKEND noto'g'ri: %q", c.StoreBackend)
	}
	if c.FreeShippingFrom < 0 || c.ShippingFee < 0 {
		return fmt.Errorf("shipping qiymatlari manfiy bo'lmasligi kerak")
	}
	return nil
}

// ShippingPolicy yetkazib berish qoidalari
func (c *Config) ShippingPolicy() pricing.Policy {
	return pricing.Policy{FreeShippingFrom: c.FreeShippingFrom, ShippingFee: c.ShippingFee}
}

// AIEnabled konsultant yoqilganmi
func (c *Config) AIEnabled() bool {
	return c.GeminiAPIKey != ""
}
