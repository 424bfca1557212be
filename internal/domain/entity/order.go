package entity

import "time"

// Recipient buyurtma oluvchi
type Recipient struct {
	Name    string `validate:"required"`
	Phone   string `validate:"required"`
	Address string `validate:"required"`
}

// OrderSnapshot tasdiqlangan buyurtma. Saqlanmaydi.
type OrderSnapshot struct {
	ID        string
	Recipient Recipient
	Items     []CartItem
	Summary   CartSummary
	Promo     *Promo
	CreatedAt time.Time
}
