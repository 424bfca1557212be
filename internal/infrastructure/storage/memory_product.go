package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/yourusername/rc-shop-bot/internal/domain/catalog"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
	"github.com/yourusername/rc-shop-bot/internal/domain/repository"
)

type memoryProductRepository struct {
	mu       sync.RWMutex
	products []entity.Product // katalog tartibida
	index    map[string]int   // key: product ID -> products indeksi
	catalog  *entity.ProductCatalog
}

// NewMemoryProductRepository in-memory product repository yaratish
func NewMemoryProductRepository() repository.ProductRepository {
	return &memoryProductRepository{
		index: make(map[string]int),
	}
}

// GetByID ID bo'yicha mahsulotni olish
func (m *memoryProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, exists := m.index[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", entity.ErrProductNotFound, id)
	}
	product := m.products[i]
	return &product, nil
}

// GetAll barcha mahsulotlarni olish
func (m *memoryProductRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	products := make([]entity.Product, len(m.products))
	copy(products, m.products)
	return products, nil
}

// Types kategoriyalar
func (m *memoryProductRepository) Types(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.catalog != nil && len(m.catalog.Types) > 0 {
		types := make([]string, len(m.catalog.Types))
		copy(types, m.catalog.Types)
		return types, nil
	}
	return catalog.Types(m.products), nil
}

// UpdateCatalog butun katalogni yangilash
func (m *memoryProductRepository) UpdateCatalog(ctx context.Context, c entity.ProductCatalog) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Takroriy ID bo'lsa birinchisi qoladi
	products := make([]entity.Product, 0, len(c.Products))
	index := make(map[string]int, len(c.Products))
	for _, product := range c.Products {
		if _, dup := index[product.ID]; dup || product.ID == "" {
			continue
		}
		index[product.ID] = len(products)
		products = append(products, product)
	}

	c.Products = products
	if len(c.Types) == 0 {
		c.Types = catalog.Types(products)
	}

	m.products = products
	m.index = index
	m.catalog = &c
	return nil
}

// GetCatalog katalogni olish
func (m *memoryProductRepository) GetCatalog(ctx context.Context) (*entity.ProductCatalog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.catalog == nil {
		return nil, entity.ErrCatalogNotFound
	}

	c := *m.catalog
	return &c, nil
}

// Clear barcha mahsulotlarni o'chirish
func (m *memoryProductRepository) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.products = nil
	m.index = make(map[string]int)
	m.catalog = nil
	return nil
}
