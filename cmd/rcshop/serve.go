package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/yourusername/rc-shop-bot/config"
	"github.com/yourusername/rc-shop-bot/internal/delivery/telegram"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
	"github.com/yourusername/rc-shop-bot/internal/domain/repository"
	"github.com/yourusername/rc-shop-bot/internal/infrastructure/gemini"
	"github.com/yourusername/rc-shop-bot/internal/infrastructure/logger"
	"github.com/yourusername/rc-shop-bot/internal/infrastructure/metrics"
	"github.com/yourusername/rc-shop-bot/internal/infrastructure/parser"
	"github.com/yourusername/rc-shop-bot/internal/infrastructure/storage"
	"github.com/yourusername/rc-shop-bot/internal/usecase"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запустить бота",
		RunE:  runServe,
	}
}

// stores tanlangan backend bo'yicha omborlar
type stores struct {
	kv    repository.KeyValueStore
	chat  repository.ChatRepository
	db    *sql.DB
	redis *redis.Client
}

func (s *stores) ping(ctx context.Context) error {
	if s.db != nil {
		if err := s.db.PingContext(ctx); err != nil {
			return fmt.Errorf("sqlite: %w", err)
		}
	}
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

func (s *stores) close() {
	if s.redis != nil {
		s.redis.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
}

// openStores STORE_BACKEND bo'yicha KV ombor va chat tarixi
func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	s := &stores{}

	switch cfg.StoreBackend {
	case config.BackendMemory:
		s.kv = storage.NewMemoryKVStore()
		s.chat = storage.NewMemoryChatRepository(cfg.MaxContextSize)
		return s, nil

	case config.BackendRedis:
		kv, client, err := storage.NewRedisKVStore(ctx, storage.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		s.kv = kv
		s.redis = client
	}

	// Chat tarixi redis rejimida ham SQLite da
	db, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		s.close()
		return nil, err
	}
	s.db = db
	if s.kv == nil {
		s.kv = storage.NewSQLiteKVStore(db)
	}
	s.chat = storage.NewSQLiteChatRepository(db, cfg.MaxContextSize)
	return s, nil
}

// seedCatalog CATALOG_PATH dagi katalogni yuklash. Fayl bo'lmasa katalog bo'sh qoladi.
func seedCatalog(ctx context.Context, path string, p repository.CatalogParser, repo repository.ProductRepository, log zerolog.Logger) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Warn().Str("path", path).Msg("katalog fayli topilmadi, katalog bo'sh")
		return nil
	}

	c, err := p.ParseCatalog(ctx, path)
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	if err := repo.UpdateCatalog(ctx, *c); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	log.Info().Str("path", path).Int("products", len(c.Products)).Msg("katalog yuklandi")
	return nil
}

// loadPromos PROMO_PATH yoki standart jadval
func loadPromos(path string, log zerolog.Logger) ([]entity.Promo, error) {
	if path == "" {
		return storage.DefaultPromos(), nil
	}
	promos, err := parser.LoadPromos(path)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", path).Int("promos", len(promos)).Msg("promokodlar yuklandi")
	return promos, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Service: "rcshop",
		Level:   logger.ParseLevel(cfg.LogLevel),
		Format:  cfg.LogFormat,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	catalogParser := parser.NewCatalogParser(log)
	productRepo := storage.NewMemoryProductRepository()
	if err := seedCatalog(ctx, cfg.CatalogPath, catalogParser, productRepo, log); err != nil {
		return err
	}

	promos, err := loadPromos(cfg.PromoPath, log)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	shopMetrics := metrics.NewShopMetrics(reg)

	if cfg.MetricsAddr != "" {
		go runOpsServer(ctx, cfg.MetricsAddr, newOpsRouter(reg, st.ping), log)
	}

	var chatUC usecase.ChatUseCase
	if cfg.AIEnabled() {
		ai, closeAI, err := gemini.NewGeminiClient(ctx, cfg.GeminiAPIKey, gemini.Options{
			Model:    cfg.GeminiModel,
			Interval: time.Second,
		})
		if err != nil {
			log.Warn().Err(err).Msg("konsultant o'chirildi")
		} else {
			defer closeAI()
			chatUC = usecase.NewChatUseCase(ai, st.chat, productRepo, log)
		}
	}

	shopUC := usecase.NewShopUseCase(
		storage.NewCartStateRepository(st.kv, log),
		productRepo,
		storage.NewMemoryPromoRepository(promos),
		cfg.ShippingPolicy(),
		shopMetrics,
		log,
	)
	adminUC := usecase.NewAdminUseCase(
		storage.NewMemoryAdminRepository(),
		productRepo,
		catalogParser,
		st.chat,
		cfg.AdminPassword,
		log,
	)

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}
	log.Info().
		Str("bot", bot.Self.UserName).
		Str("store", cfg.StoreBackend).
		Bool("ai", chatUC != nil).
		Msg("bot tayyor")

	handler := telegram.NewBotHandler(bot, telegram.Options{
		Token:        cfg.TelegramToken,
		OrdersChatID: cfg.OrdersChatID,
		Policy:       cfg.ShippingPolicy(),
		Shop:         shopUC,
		Admin:        adminUC,
		Chat:         chatUC,
		Log:          log,
	})

	if err := handler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Msg("bot to'xtadi")
	return nil
}
