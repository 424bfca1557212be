package usecase

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yourusername/rc-shop-bot/internal/domain/catalog"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
	"github.com/yourusername/rc-shop-bot/internal/domain/repository"
)

// AdminUseCase admin bilan bog'liq business logic
type AdminUseCase interface {
	// Login admin login qilish
	Login(ctx context.Context, userID int64, password string) (bool, error)

	// Logout admin logout qilish
	Logout(ctx context.Context, userID int64) error

	// IsAdmin admin ekanligini tekshirish
	IsAdmin(ctx context.Context, userID int64) (bool, error)

	// UploadCatalog fayldan katalogni yuklash
	UploadCatalog(ctx context.Context, userID int64, fileData []byte, filename string) (int, error)

	// GetCatalogInfo katalog haqida ma'lumot
	GetCatalogInfo(ctx context.Context) (*CatalogInfo, error)

	// CleanAll katalog va chat tarixlarini tozalash
	CleanAll(ctx context.Context, userID int64) error
}

// TypeCount kategoriya va undagi mahsulotlar soni
type TypeCount struct {
	Type  string
	Count int
}

// CatalogInfo katalog statistikasi
type CatalogInfo struct {
	Source    string
	UpdatedAt time.Time
	Total     int
	ByType    []TypeCount // katalog tartibida
}

type adminUseCase struct {
	adminRepo   repository.AdminRepository
	productRepo repository.ProductRepository
	parser      repository.CatalogParser
	chatRepo    repository.ChatRepository
	password    string
	log         zerolog.Logger
	now         func() time.Time
}

// NewAdminUseCase yangi AdminUseCase yaratish. Parol bo'sh bo'lsa login o'chiq.
func NewAdminUseCase(
	adminRepo repository.AdminRepository,
	productRepo repository.ProductRepository,
	parser repository.CatalogParser,
	chatRepo repository.ChatRepository,
	password string,
	log zerolog.Logger,
) AdminUseCase {
	return &adminUseCase{
		adminRepo:   adminRepo,
		productRepo: productRepo,
		parser:      parser,
		chatRepo:    chatRepo,
		password:    password,
		log:         log.With().Str("component", "admin").Logger(),
		now:         time.Now,
	}
}

// Login admin login qilish
func (u *adminUseCase) Login(ctx context.Context, userID int64, password string) (bool, error) {
	if u.password == "" || subtle.ConstantTimeCompare([]byte(password), []byte(u.password)) != 1 {
		u.log.Warn().Int64("user_id", userID).Msg("noto'g'ri admin paroli")
		return false, nil
	}

	now := u.now()
	session := entity.AdminSession{
		UserID:       userID,
		LoginTime:    now,
		LastActivity: now,
	}
	if err := u.adminRepo.CreateSession(ctx, session); err != nil {
		return false, fmt.Errorf("failed to create session: %w", err)
	}

	u.logAction(ctx, userID, entity.AdminLogin, "Admin successfully logged in")
	return true, nil
}

// Logout admin logout qilish
func (u *adminUseCase) Logout(ctx context.Context, userID int64) error {
	return u.adminRepo.DeleteSession(ctx, userID)
}

// IsAdmin admin ekanligini tekshirish
func (u *adminUseCase) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return u.adminRepo.IsAdmin(ctx, userID)
}

func (u *adminUseCase) requireAdmin(ctx context.Context, userID int64) error {
	isAdmin, err := u.adminRepo.IsAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !isAdmin {
		return entity.ErrNotAdmin
	}
	return nil
}

// UploadCatalog katalogni fayldan almashtirish
func (u *adminUseCase) UploadCatalog(ctx context.Context, userID int64, fileData []byte, filename string) (int, error) {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return 0, err
	}

	parsed, err := u.parser.ParseCatalogFromBytes(ctx, fileData, filename)
	if err != nil {
		return 0, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if len(parsed.Products) == 0 {
		return 0, fmt.Errorf("no products found in %s", filename)
	}

	parsed.Source = filename
	parsed.UpdatedAt = u.now()
	if err := u.productRepo.UpdateCatalog(ctx, *parsed); err != nil {
		return 0, fmt.Errorf("failed to update catalog: %w", err)
	}

	u.logAction(ctx, userID, entity.AdminUploadCatalog,
		fmt.Sprintf("Uploaded %d products from %s", len(parsed.Products), filename))
	return len(parsed.Products), nil
}

// GetCatalogInfo kategoriyalar bo'yicha sonlar
func (u *adminUseCase) GetCatalogInfo(ctx context.Context) (*CatalogInfo, error) {
	c, err := u.productRepo.GetCatalog(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, p := range c.Products {
		counts[p.Type]++
	}

	info := &CatalogInfo{
		Source:    c.Source,
		UpdatedAt: c.UpdatedAt,
		Total:     len(c.Products),
	}
	for _, t := range catalog.Types(c.Products) {
		if t == entity.AllTypes {
			continue
		}
		info.ByType = append(info.ByType, TypeCount{Type: t, Count: counts[t]})
	}
	if n := counts[""]; n > 0 {
		info.ByType = append(info.ByType, TypeCount{Type: "", Count: n})
	}
	return info, nil
}

// CleanAll katalog va chat tarixlarini tozalash
func (u *adminUseCase) CleanAll(ctx context.Context, userID int64) error {
	if err := u.requireAdmin(ctx, userID); err != nil {
		return err
	}

	if err := u.productRepo.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}
	if err := u.chatRepo.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear chats: %w", err)
	}

	u.logAction(ctx, userID, entity.AdminCleanAll, "Cleared catalog and chat histories")
	return nil
}

func (u *adminUseCase) logAction(ctx context.Context, userID int64, kind entity.AdminActionKind, details string) {
	action := entity.AdminAction{
		ID:        uuid.New().String(),
		UserID:    userID,
		Kind:      kind,
		Details:   details,
		Timestamp: u.now(),
	}
	if err := u.adminRepo.LogAction(ctx, action); err != nil {
		u.log.Warn().Err(err).Str("kind", string(kind)).Msg("admin harakatini yozib bo'lmadi")
	}
}
