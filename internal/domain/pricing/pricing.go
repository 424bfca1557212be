// Package pricing savat summasini hisoblaydigan sof funksiyalar.
// Barcha pul qiymatlari butun valyuta birligida (rubl).
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
)

// Policy yetkazib berish qoidalari
type Policy struct {
	FreeShippingFrom int64 // shu summadan boshlab yetkazish bepul
	ShippingFee      int64
}

// DefaultPolicy 9000 dan bepul, aks holda 390
var DefaultPolicy = Policy{FreeShippingFrom: 9000, ShippingFee: 390}

var hundred = decimal.NewFromInt(100)

// Subtotal Σ narx × miqdor
func Subtotal(items []entity.CartItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.Product.Price * int64(it.Quantity)
	}
	return sum
}

// Discount promokod bo'yicha chegirma. Natija har doim [0, subtotal] oralig'ida.
func Discount(subtotal int64, promo *entity.Promo) int64 {
	if promo == nil || promo.Code == "" || promo.Kind == nil || subtotal <= 0 {
		return 0
	}

	var amount int64
	switch kind := promo.Kind.(type) {
	case entity.Percent:
		amount = decimal.NewFromInt(subtotal).Mul(kind.Value).Div(hundred).Round(0).IntPart()
	case entity.Fixed:
		amount = kind.Amount
	default:
		// PromoKind yopiq interface, bu yerga kelish mumkin emas
		panic(fmt.Sprintf("pricing: unhandled promo kind %T", promo.Kind))
	}

	if amount < 0 {
		return 0
	}
	if amount > subtotal {
		return subtotal
	}
	return amount
}

// AfterDiscount max(0, subtotal - discount)
func AfterDiscount(subtotal, discount int64) int64 {
	if after := subtotal - discount; after > 0 {
		return after
	}
	return 0
}

// Shipping pog'onali funksiya: bo'sh savat va chegaradan yuqori summa uchun 0
func (p Policy) Shipping(afterDiscount int64) int64 {
	if afterDiscount <= 0 {
		return 0
	}
	if afterDiscount >= p.FreeShippingFrom {
		return 0
	}
	return p.ShippingFee
}

// Summarize savatning to'liq hisob-kitobi
func (p Policy) Summarize(items []entity.CartItem, promo *entity.Promo) entity.CartSummary {
	count := 0
	for _, it := range items {
		count += it.Quantity
	}

	subtotal := Subtotal(items)
	discount := Discount(subtotal, promo)
	after := AfterDiscount(subtotal, discount)
	shipping := p.Shipping(after)

	return entity.CartSummary{
		Count:         count,
		Subtotal:      subtotal,
		Discount:      discount,
		AfterDiscount: after,
		Shipping:      shipping,
		Total:         after + shipping,
	}
}

// DiscountPercent mahsulot nishoni uchun chegirma foizi
func DiscountPercent(p entity.Product) int {
	if !p.HasOldPrice() {
		return 0
	}
	ratio := decimal.NewFromInt(p.Price).Div(decimal.NewFromInt(p.OldPrice))
	return int(decimal.NewFromInt(1).Sub(ratio).Mul(hundred).Round(0).IntPart())
}
