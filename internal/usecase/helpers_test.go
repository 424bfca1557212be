package usecase

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
	"github.com/yourusername/rc-shop-bot/internal/domain/repository"
	"github.com/yourusername/rc-shop-bot/internal/infrastructure/storage"
)

func testCatalog() entity.ProductCatalog {
	return entity.ProductCatalog{
		Products: []entity.Product{
			{ID: "buggy-1", Name: "Storm Buggy", Type: "Багги", Price: 5000, Rating: 4.6, Speed: 60},
			{ID: "suv-1", Name: "Rock Crawler", Type: "SUV-class", Price: 10000, OldPrice: 12000, Rating: 4.8, Speed: 35},
			{ID: "drift-1", Name: "Drift King", Type: "Дрифт", Price: 3000, Rating: 4.1, Speed: 45},
		},
		Source: "test",
	}
}

type testDeps struct {
	kv       repository.KeyValueStore
	carts    repository.CartRepository
	products repository.ProductRepository
	promos   repository.PromoRepository
}

func newTestDeps(t *testing.T) testDeps {
	t.Helper()
	products := storage.NewMemoryProductRepository()
	require.NoError(t, products.UpdateCatalog(context.Background(), testCatalog()))

	kv := storage.NewMemoryKVStore()
	return testDeps{
		kv:       kv,
		carts:    storage.NewCartStateRepository(kv, zerolog.Nop()),
		products: products,
		promos:   storage.NewMemoryPromoRepository(nil),
	}
}
