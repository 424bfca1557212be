package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yourusername/rc-shop-bot/internal/domain/catalog"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
	"github.com/yourusername/rc-shop-bot/internal/domain/pricing"
	"github.com/yourusername/rc-shop-bot/internal/domain/repository"
	"github.com/yourusername/rc-shop-bot/internal/infrastructure/metrics"
)

// ShopUseCase katalog, savat va buyurtma bilan bog'liq business logic
type ShopUseCase interface {
	// Catalog filtrlangan va saralangan katalog
	Catalog(ctx context.Context, filter entity.FilterState) ([]entity.Product, error)

	// Product bitta mahsulot
	Product(ctx context.Context, id string) (*entity.Product, error)

	// Types kategoriyalar
	Types(ctx context.Context) ([]string, error)

	// AddToCart miqdorni delta ga o'zgartirish va yangi hisobni qaytarish
	AddToCart(ctx context.Context, userID int64, productID string, delta int) (entity.CartSummary, error)

	// RemoveFromCart mahsulotni savatdan olib tashlash
	RemoveFromCart(ctx context.Context, userID int64, productID string) entity.CartSummary

	// QuantityOf savatdagi miqdor
	QuantityOf(ctx context.Context, userID int64, productID string) int

	// CartSummary savat hisobi
	CartSummary(ctx context.Context, userID int64) entity.CartSummary

	// CartView savat qatorlari, hisob va promokod
	CartView(ctx context.Context, userID int64) entity.CartView

	// ApplyPromo promokodni qo'llash. Bo'sh kod promoni bekor qiladi.
	ApplyPromo(ctx context.Context, userID int64, code string) (*entity.Promo, error)

	// ClearCart savat va promokodni tozalash
	ClearCart(ctx context.Context, userID int64)

	// PlaceOrder buyurtmani rasmiylashtirish
	PlaceOrder(ctx context.Context, userID int64, recipient entity.Recipient) (*entity.OrderSnapshot, error)
}

// userCart foydalanuvchi store'i va uning qulfi
type userCart struct {
	mu    sync.Mutex
	store *CartStore
}

type shopUseCase struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	promoRepo   repository.PromoRepository
	policy      pricing.Policy
	metrics     *metrics.ShopMetrics
	log         zerolog.Logger
	validate    *validator.Validate
	now         func() time.Time

	mu    sync.Mutex
	carts map[int64]*userCart
}

// NewShopUseCase yangi ShopUseCase yaratish
func NewShopUseCase(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	promoRepo repository.PromoRepository,
	policy pricing.Policy,
	m *metrics.ShopMetrics,
	log zerolog.Logger,
) ShopUseCase {
	return &shopUseCase{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		promoRepo:   promoRepo,
		policy:      policy,
		metrics:     m,
		log:         log.With().Str("component", "shop").Logger(),
		validate:    validator.New(),
		now:         time.Now,
		carts:       make(map[int64]*userCart),
	}
}

// withCart foydalanuvchi store'ini qulflab fn ni bajarish
func (u *shopUseCase) withCart(ctx context.Context, userID int64, fn func(s *CartStore)) {
	u.mu.Lock()
	uc, ok := u.carts[userID]
	if !ok {
		uc = &userCart{}
		u.carts[userID] = uc
	}
	u.mu.Unlock()

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.store == nil {
		uc.store = NewCartStore(ctx, userID, u.cartRepo, u.productRepo, u.log)
	}
	fn(uc.store)
}

func (u *shopUseCase) summarize(ctx context.Context, s *CartStore) entity.CartSummary {
	return u.policy.Summarize(s.Items(ctx), s.Promo())
}

// Catalog filtrlangan katalog
func (u *shopUseCase) Catalog(ctx context.Context, filter entity.FilterState) ([]entity.Product, error) {
	products, err := u.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return catalog.Filter(products, filter), nil
}

// Product bitta mahsulot
func (u *shopUseCase) Product(ctx context.Context, id string) (*entity.Product, error) {
	return u.productRepo.GetByID(ctx, id)
}

// Types kategoriyalar
func (u *shopUseCase) Types(ctx context.Context) ([]string, error) {
	return u.productRepo.Types(ctx)
}

// AddToCart miqdorni o'zgartirish. Yangi mahsulot katalogda bo'lishi shart.
func (u *shopUseCase) AddToCart(ctx context.Context, userID int64, productID string, delta int) (entity.CartSummary, error) {
	if delta > 0 {
		if _, err := u.productRepo.GetByID(ctx, productID); err != nil {
			return u.CartSummary(ctx, userID), err
		}
	}

	var summary entity.CartSummary
	u.withCart(ctx, userID, func(s *CartStore) {
		s.Add(ctx, productID, delta)
		summary = u.summarize(ctx, s)
	})

	if delta < 0 {
		u.metrics.IncCartMutation(metrics.OpRemove)
	} else {
		u.metrics.IncCartMutation(metrics.OpAdd)
	}
	return summary, nil
}

// RemoveFromCart mahsulotni butunlay olib tashlash
func (u *shopUseCase) RemoveFromCart(ctx context.Context, userID int64, productID string) entity.CartSummary {
	var summary entity.CartSummary
	u.withCart(ctx, userID, func(s *CartStore) {
		s.RemoveAll(ctx, productID)
		summary = u.summarize(ctx, s)
	})
	u.metrics.IncCartMutation(metrics.OpRemove)
	return summary
}

// QuantityOf savatdagi miqdor
func (u *shopUseCase) QuantityOf(ctx context.Context, userID int64, productID string) int {
	var qty int
	u.withCart(ctx, userID, func(s *CartStore) {
		qty = s.QuantityOf(productID)
	})
	return qty
}

// CartSummary har chaqiruvda qaytadan hisoblanadi
func (u *shopUseCase) CartSummary(ctx context.Context, userID int64) entity.CartSummary {
	var summary entity.CartSummary
	u.withCart(ctx, userID, func(s *CartStore) {
		summary = u.summarize(ctx, s)
	})
	return summary
}

// CartView savat ko'rinishi
func (u *shopUseCase) CartView(ctx context.Context, userID int64) entity.CartView {
	var view entity.CartView
	u.withCart(ctx, userID, func(s *CartStore) {
		items := s.Items(ctx)
		promo := s.Promo()
		view = entity.CartView{
			Items:   items,
			Summary: u.policy.Summarize(items, promo),
			Promo:   promo,
		}
	})
	return view
}

// ApplyPromo promokodni qo'llash
func (u *shopUseCase) ApplyPromo(ctx context.Context, userID int64, code string) (*entity.Promo, error) {
	normalized := entity.NormalizePromoCode(code)
	if normalized == "" {
		u.withCart(ctx, userID, func(s *CartStore) {
			s.SetPromo(ctx, nil)
		})
		u.metrics.IncPromoLookup(metrics.ResultCleared)
		return nil, nil
	}

	promo, ok := u.promoRepo.Lookup(ctx, normalized)
	if !ok {
		u.metrics.IncPromoLookup(metrics.ResultNotFound)
		return nil, fmt.Errorf("%w: %s", entity.ErrPromoNotFound, normalized)
	}

	u.withCart(ctx, userID, func(s *CartStore) {
		s.SetPromo(ctx, promo)
	})
	u.metrics.IncPromoLookup(metrics.ResultApplied)
	u.log.Debug().Int64("user_id", userID).Str("code", promo.Code).Msg("promokod qo'llandi")
	return promo, nil
}

// ClearCart savat va promokodni tozalash
func (u *shopUseCase) ClearCart(ctx context.Context, userID int64) {
	u.withCart(ctx, userID, func(s *CartStore) {
		s.Reset(ctx)
	})
	u.metrics.IncCartMutation(metrics.OpClear)
}

// PlaceOrder buyurtma. Muvaffaqiyatda savat va promokod tozalanadi.
func (u *shopUseCase) PlaceOrder(ctx context.Context, userID int64, recipient entity.Recipient) (*entity.OrderSnapshot, error) {
	recipient = entity.Recipient{
		Name:    strings.TrimSpace(recipient.Name),
		Phone:   strings.TrimSpace(recipient.Phone),
		Address: strings.TrimSpace(recipient.Address),
	}

	var (
		order *entity.OrderSnapshot
		err   error
	)
	u.withCart(ctx, userID, func(s *CartStore) {
		items := s.Items(ctx)
		if len(items) == 0 {
			err = entity.ErrCartEmpty
			u.metrics.IncOrder(metrics.ResultEmpty)
			return
		}
		if verr := u.validateRecipient(recipient); verr != nil {
			err = verr
			u.metrics.IncOrder(metrics.ResultInvalid)
			return
		}

		promo := s.Promo()
		now := u.now()
		order = &entity.OrderSnapshot{
			ID:        newOrderID(now),
			Recipient: recipient,
			Items:     items,
			Summary:   u.policy.Summarize(items, promo),
			Promo:     promo,
			CreatedAt: now,
		}
		s.Reset(ctx)
	})
	if err != nil {
		return nil, err
	}

	u.metrics.IncOrder(metrics.ResultPlaced)
	u.metrics.ObserveOrderTotal(order.Summary.Total)
	u.log.Info().
		Int64("user_id", userID).
		Str("order_id", order.ID).
		Int64("total", order.Summary.Total).
		Msg("buyurtma qabul qilindi")
	return order, nil
}

// validateRecipient bo'sh maydonlar nomini xatoga qo'shish
func (u *shopUseCase) validateRecipient(r entity.Recipient) error {
	err := u.validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", entity.ErrRecipientIncomplete, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return fmt.Errorf("%w: missing %s", entity.ErrRecipientIncomplete, strings.Join(fields, ", "))
}

// newOrderID RC-XXXX-NNNN ko'rinishidagi ID
func newOrderID(now time.Time) string {
	random := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:4]
	return fmt.Sprintf("RC-%s-%04d", random, now.UnixMilli()%10000)
}
