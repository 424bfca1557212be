package entity

// Cart mahsulot ID -> miqdor. Miqdori <= 0 bo'lgan yozuv saqlanmaydi.
type Cart map[string]int

// Clone savatning nusxasi
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for id, qty := range c {
		out[id] = qty
	}
	return out
}

// Count barcha miqdorlar yig'indisi
func (c Cart) Count() int {
	total := 0
	for _, qty := range c {
		total += qty
	}
	return total
}

// CartItem katalog bilan birlashtirilgan savat qatori
type CartItem struct {
	Product  Product
	Quantity int
}

// CartSummary savat hisob-kitobi
type CartSummary struct {
	Count         int
	Subtotal      int64
	Discount      int64
	AfterDiscount int64
	Shipping      int64
	Total         int64
}

// CartView savatni ko'rsatish uchun model
type CartView struct {
	Items   []CartItem
	Summary CartSummary
	Promo   *Promo
}

// IsEmpty savat bo'shmi
func (v CartView) IsEmpty() bool {
	return v.Summary.Count == 0
}
