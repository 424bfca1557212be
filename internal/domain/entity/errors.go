package entity

import "errors"

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrPromoNotFound       = errors.New("promo code not found")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrRecipientIncomplete = errors.New("recipient name, phone and address are required")
	ErrCatalogNotFound     = errors.New("catalog not found")
	ErrNotAdmin            = errors.New("user is not admin")
)
