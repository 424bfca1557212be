package entity

// SortMode katalog saralash rejimi
type SortMode string

const (
	SortPopular SortMode = "popular"
	SortCheap   SortMode = "cheap"
	SortFast    SortMode = "fast"
)

// FilterState foydalanuvchining katalog filtri (faqat xotirada)
type FilterState struct {
	Type  string
	Query string
	Sort  SortMode
}
