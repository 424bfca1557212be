package telegram

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0 ₽"},
		{390, "390 ₽"},
		{9000, "9 000 ₽"},
		{1234567, "1 234 567 ₽"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeSpaces(formatMoney(tt.amount)), "amount %d", tt.amount)
	}
}

func TestCatalogText_Limit(t *testing.T) {
	products := make([]entity.Product, 0, 12)
	for i := 0; i < 12; i++ {
		products = append(products, entity.Product{ID: "p", Name: "Model", Price: 1000})
	}

	text := catalogText(products, entity.FilterState{Sort: entity.SortCheap}, 10)

	assert.Contains(t, text, "Каталог: Все")
	assert.Contains(t, text, "10. Model")
	assert.NotContains(t, text, "11. Model")
	assert.Contains(t, text, "…и ещё 2.")
}

func TestProductCard(t *testing.T) {
	p := entity.Product{
		Name: "Rock Crawler", Type: "SUV-class", Price: 10000, OldPrice: 12000,
		Rating: 4.8, Speed: 35, Scale: "1:10", Battery: "NiMH",
	}

	text := normalizeSpaces(productCard(p, 0))
	assert.True(t, strings.HasPrefix(text, "Rock Crawler\nSUV-class"))
	assert.Contains(t, text, "Цена: 10 000 ₽ (было 12 000 ₽, −17%)")
	assert.Contains(t, text, "Скорость: до 35 км/ч")
	assert.Contains(t, text, "Масштаб: 1:10")
	assert.NotContains(t, text, "Дальность")
	assert.NotContains(t, text, "В корзине")

	assert.Contains(t, productCard(p, 3), "В корзине: 3 шт.")
}

func TestProductSpecs_Empty(t *testing.T) {
	assert.Contains(t, productSpecs(entity.Product{Name: "X"}), "Подробное описание пока не добавлено.")
}

func TestCartText_EmptyWithPromo(t *testing.T) {
	view := entity.CartView{Promo: &entity.Promo{Code: "RC500", Kind: entity.Fixed{Amount: 500}}}

	text := cartText(view, testPolicy)

	assert.Contains(t, text, "Корзина пуста")
	assert.Contains(t, text, "Промокод RC500 сохранён")
}

func TestSummaryText(t *testing.T) {
	s := entity.CartSummary{Count: 2, Subtotal: 8000, Discount: 500, AfterDiscount: 7500, Shipping: 390, Total: 7890}
	promo := &entity.Promo{Code: "RC500", Kind: entity.Fixed{Amount: 500}, Note: "−500 ₽ на заказ"}

	text := normalizeSpaces(summaryText(s, promo, testPolicy))

	assert.Equal(t, strings.Join([]string{
		"Товаров: 2",
		"Сумма: 8 000 ₽",
		"Промокод RC500: −500 ₽ (−500 ₽ на заказ)",
		"Доставка: 390 ₽",
		"До бесплатной доставки: 1 500 ₽",
		"Итого: 7 890 ₽",
	}, "\n"), text)
}

func TestOrderGroupText_NoUsername(t *testing.T) {
	order := &entity.OrderSnapshot{
		ID:        "RC-ABCD-0001",
		Recipient: entity.Recipient{Name: "Анна", Phone: "+7900", Address: "Казань"},
		Items:     []entity.CartItem{{Product: entity.Product{ID: "d1", Name: "Drift King", Price: 3000}, Quantity: 3}},
		Summary:   entity.CartSummary{Count: 3, Subtotal: 9000, AfterDiscount: 9000, Total: 9000},
		CreatedAt: time.Date(2026, 3, 8, 14, 30, 0, 0, time.UTC),
	}

	text := normalizeSpaces(orderGroupText(order, 42, ""))

	assert.Contains(t, text, "Покупатель: Анна (@неизвестно, 42)")
	assert.Contains(t, text, "• Drift King (d1) × 3")
	assert.Contains(t, text, "Доставка: 0 ₽")
	assert.Contains(t, text, "Время: 08.03.2026 14:30")
	assert.NotContains(t, text, "Промокод")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "Багги", truncateString("Багги", 10))
	assert.Equal(t, "Баг…", truncateString("Багги Storm", 4))
	assert.Equal(t, "Б", truncateString("Багги", 1))
}
