package entity

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PromoKind promo turi. Faqat shu paketdagi Percent va Fixed uni amalga oshiradi.
type PromoKind interface {
	promoKind()
	// Name saqlash formatidagi nomi ("percent" | "fixed")
	Name() string
}

// Percent foizli chegirma
type Percent struct {
	Value decimal.Decimal
}

func (Percent) promoKind() {}

// Name turi nomi
func (Percent) Name() string { return "percent" }

// Fixed qat'iy summali chegirma
type Fixed struct {
	Amount int64
}

func (Fixed) promoKind() {}

// Name turi nomi
func (Fixed) Name() string { return "fixed" }

// Promo faol promokod
type Promo struct {
	Code string
	Kind PromoKind
	Note string
}

// NormalizePromoCode kodni katta harflarga o'tkazish
func NormalizePromoCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ParsePromoKind saqlash/jadval formatidan turini tiklash
func ParsePromoKind(name string, value decimal.Decimal) (PromoKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "percent":
		return Percent{Value: value}, nil
	case "fixed":
		return Fixed{Amount: value.Round(0).IntPart()}, nil
	default:
		return nil, fmt.Errorf("unknown promo type %q", name)
	}
}

// PromoValue turining son qiymati
func PromoValue(kind PromoKind) decimal.Decimal {
	switch k := kind.(type) {
	case Percent:
		return k.Value
	case Fixed:
		return decimal.NewFromInt(k.Amount)
	default:
		return decimal.Zero
	}
}
