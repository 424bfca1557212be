// Package catalog katalogdan filtrlangan va saralangan ko'rinish yasaydi.
package catalog

import (
	"sort"
	"strings"

	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
	"github.com/yourusername/rc-shop-bot/internal/domain/pricing"
	"golang.org/x/text/cases"
)

// DefaultFilter boshlang'ich filtr: barcha turlar, so'rovsiz, ommabop
func DefaultFilter() entity.FilterState {
	return entity.FilterState{Type: entity.AllTypes, Sort: entity.SortPopular}
}

// ParseSort noma'lum rejim "popular" hisoblanadi
func ParseSort(raw string) entity.SortMode {
	switch entity.SortMode(strings.ToLower(strings.TrimSpace(raw))) {
	case entity.SortCheap:
		return entity.SortCheap
	case entity.SortFast:
		return entity.SortFast
	default:
		return entity.SortPopular
	}
}

// Filter manba katalogni o'zgartirmasdan yangi tartiblangan ro'yxat qaytaradi
func Filter(products []entity.Product, state entity.FilterState) []entity.Product {
	items := make([]entity.Product, 0, len(products))

	folder := cases.Fold()
	query := folder.String(strings.TrimSpace(state.Query))

	for _, p := range products {
		if state.Type != "" && state.Type != entity.AllTypes && p.Type != state.Type {
			continue
		}
		if query != "" && !strings.Contains(folder.String(haystack(p)), query) {
			continue
		}
		items = append(items, p)
	}

	switch ParseSort(string(state.Sort)) {
	case entity.SortCheap:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price < items[j].Price
		})
	case entity.SortFast:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Speed > items[j].Speed
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Rating != items[j].Rating {
				return items[i].Rating > items[j].Rating
			}
			return pricing.DiscountPercent(items[i]) > pricing.DiscountPercent(items[j])
		})
	}

	return items
}

// haystack qidiruv matni: nom, tur, xususiyatlar, tavsif
func haystack(p entity.Product) string {
	return p.Name + " " + p.Type + " " + strings.Join(p.Features, " ") + " " + p.Description
}

// Types katalog tartibida takrorlanmas turlar, "Все" birinchi
func Types(products []entity.Product) []string {
	types := []string{entity.AllTypes}
	seen := make(map[string]struct{})
	for _, p := range products {
		if p.Type == "" {
			continue
		}
		if _, ok := seen[p.Type]; ok {
			continue
		}
		seen[p.Type] = struct{}{}
		types = append(types, p.Type)
	}
	return types
}
