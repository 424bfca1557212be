package repository

import (
	"context"

	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
)

// CatalogParser fayldan katalogni o'qish (xlsx yoki yaml)
type CatalogParser interface {
	// ParseCatalog fayl yo'lidan o'qish
	ParseCatalog(ctx context.Context, filePath string) (*entity.ProductCatalog, error)

	// ParseCatalogFromBytes byte array dan parse qilish
	ParseCatalogFromBytes(ctx context.Context, data []byte, filename string) (*entity.ProductCatalog, error)
}
