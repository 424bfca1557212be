package entity

import "time"

// AllTypes "barcha turlar" filtri
const AllTypes = "Все"

// Product mahsulot entity (RC model)
type Product struct {
	ID          string
	Name        string
	Type        string
	Price       int64
	OldPrice    int64 // 0 bo'lsa eski narx yo'q
	Rating      float64
	Speed       int // km/soat
	Scale       string
	Range       string
	Battery     string
	Features    []string
	Description string
}

// HasOldPrice chegirma belgisi ko'rsatilishi kerakmi
func (p Product) HasOldPrice() bool {
	return p.OldPrice > 0 && p.OldPrice > p.Price
}

// ProductCatalog mahsulotlar katalogi
type ProductCatalog struct {
	Products  []Product
	Types     []string // tartiblangan kategoriyalar, "Все" birinchi
	UpdatedAt time.Time
	Source    string // fayl nomi
}
