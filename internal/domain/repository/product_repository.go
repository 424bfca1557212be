package repository

import (
	"context"

	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
)

// ProductRepository katalog manbai (faqat o'qish uchun, admin yuklashi bundan mustasno)
type ProductRepository interface {
	// GetByID ID bo'yicha mahsulotni olish
	GetByID(ctx context.Context, id string) (*entity.Product, error)

	// GetAll katalog tartibida barcha mahsulotlar
	GetAll(ctx context.Context) ([]entity.Product, error)

	// Types kategoriyalar ro'yxati ("Все" birinchi)
	Types(ctx context.Context) ([]string, error)

	// UpdateCatalog butun katalogni almashtirish
	UpdateCatalog(ctx context.Context, catalog entity.ProductCatalog) error

	// GetCatalog katalogni olish
	GetCatalog(ctx context.Context) (*entity.ProductCatalog, error)

	// Clear barcha mahsulotlarni o'chirish
	Clear(ctx context.Context) error
}
