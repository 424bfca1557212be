package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
	"github.com/yourusername/rc-shop-bot/internal/infrastructure/storage"
)

type stubParser struct {
	catalog *entity.ProductCatalog
	err     error
}

func (s stubParser) ParseCatalog(ctx context.Context, path string) (*entity.ProductCatalog, error) {
	return s.catalog, s.err
}

func (s stubParser) ParseCatalogFromBytes(ctx context.Context, data []byte, filename string) (*entity.ProductCatalog, error) {
	return s.catalog, s.err
}

func newTestAdmin(t *testing.T, parser stubParser) (AdminUseCase, testDeps) {
	t.Helper()
	deps := newTestDeps(t)
	admin := NewAdminUseCase(
		storage.NewMemoryAdminRepository(),
		deps.products,
		parser,
		storage.NewMemoryChatRepository(20),
		"secret",
		zerolog.Nop(),
	)
	admin.(*adminUseCase).now = func() time.Time { return time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC) }
	return admin, deps
}

func TestAdminLogin(t *testing.T) {
	ctx := context.Background()
	admin, _ := newTestAdmin(t, stubParser{})

	ok, err := admin.Login(ctx, 1, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = admin.Login(ctx, 1, "secret")
	require.NoError(t, err)
	assert.True(t, ok)

	isAdmin, err := admin.IsAdmin(ctx, 1)
	require.NoError(t, err)
	assert.True(t, isAdmin)

	require.NoError(t, admin.Logout(ctx, 1))
	isAdmin, err = admin.IsAdmin(ctx, 1)
	require.NoError(t, err)
	assert.False(t, isAdmin)
}

func TestAdminLoginDisabledWithoutPassword(t *testing.T) {
	admin := NewAdminUseCase(storage.NewMemoryAdminRepository(), storage.NewMemoryProductRepository(),
		stubParser{}, storage.NewMemoryChatRepository(0), "", zerolog.Nop())

	ok, err := admin.Login(context.Background(), 1, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdminUploadCatalog(t *testing.T) {
	ctx := context.Background()
	uploaded := &entity.ProductCatalog{Products: []entity.Product{
		{ID: "x1", Name: "X", Type: "Дрифт", Price: 100},
		{ID: "x2", Name: "Y", Type: "Багги", Price: 200},
		{ID: "x3", Name: "Z", Type: "Дрифт", Price: 300},
	}}
	admin, deps := newTestAdmin(t, stubParser{catalog: uploaded})

	_, err := admin.UploadCatalog(ctx, 1, []byte("x"), "new.xlsx")
	assert.ErrorIs(t, err, entity.ErrNotAdmin)

	_, err = admin.Login(ctx, 1, "secret")
	require.NoError(t, err)

	n, err := admin.UploadCatalog(ctx, 1, []byte("x"), "new.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	all, err := deps.products.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	info, err := admin.GetCatalogInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new.xlsx", info.Source)
	assert.Equal(t, 3, info.Total)
	assert.Equal(t, []TypeCount{{Type: "Дрифт", Count: 2}, {Type: "Багги", Count: 1}}, info.ByType)
}

func TestAdminUploadCatalogErrors(t *testing.T) {
	ctx := context.Background()

	admin, _ := newTestAdmin(t, stubParser{err: errors.New("bad sheet")})
	_, err := admin.Login(ctx, 1, "secret")
	require.NoError(t, err)
	_, err = admin.UploadCatalog(ctx, 1, nil, "broken.xlsx")
	assert.ErrorContains(t, err, "bad sheet")

	empty, _ := newTestAdmin(t, stubParser{catalog: &entity.ProductCatalog{}})
	_, err = empty.Login(ctx, 1, "secret")
	require.NoError(t, err)
	_, err = empty.UploadCatalog(ctx, 1, nil, "empty.xlsx")
	assert.ErrorContains(t, err, "no products")
}

func TestAdminCleanAll(t *testing.T) {
	ctx := context.Background()
	admin, deps := newTestAdmin(t, stubParser{})

	assert.ErrorIs(t, admin.CleanAll(ctx, 2), entity.ErrNotAdmin)

	_, err := admin.Login(ctx, 2, "secret")
	require.NoError(t, err)
	require.NoError(t, admin.CleanAll(ctx, 2))

	all, err := deps.products.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = admin.GetCatalogInfo(ctx)
	assert.ErrorIs(t, err, entity.ErrCatalogNotFound)
}
