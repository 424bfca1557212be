package telegram

import (
	"fmt"
	"strings"

	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
	"github.com/yourusername/rc-shop-bot/internal/domain/pricing"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ruPrinter = message.NewPrinter(language.Russian)

// formatMoney ru-RU ko'rinishi: "9 000 ₽"
func formatMoney(amount int64) string {
	return ruPrinter.Sprintf("%d", amount) + " ₽"
}

// sortLabel saralash rejimi nomi
func sortLabel(mode entity.SortMode) string {
	switch mode {
	case entity.SortCheap:
		return "сначала дешёвые"
	case entity.SortFast:
		return "сначала быстрые"
	default:
		return "популярные"
	}
}

// productLine katalog ro'yxatidagi bitta qator
func productLine(i int, p entity.Product) string {
	line := fmt.Sprintf("%d. %s — %s", i, p.Name, formatMoney(p.Price))
	if pct := pricing.DiscountPercent(p); pct > 0 {
		line += fmt.Sprintf(" (−%d%%)", pct)
	}
	if p.Rating > 0 {
		line += fmt.Sprintf(" ★%.1f", p.Rating)
	}
	return line
}

// catalogText filtrlangan katalog matni
func catalogText(products []entity.Product, filter entity.FilterState, limit int) string {
	var sb strings.Builder

	category := filter.Type
	if category == "" {
		category = entity.AllTypes
	}
	fmt.Fprintf(&sb, "🏁 Каталог: %s\nСортировка: %s\n", category, sortLabel(filter.Sort))
	if q := strings.TrimSpace(filter.Query); q != "" {
		fmt.Fprintf(&sb, "Поиск: «%s»\n", q)
	}
	sb.WriteString("\n")

	if len(products) == 0 {
		sb.WriteString("Ничего не найдено. Попробуйте другой запрос или /reset.")
		return sb.String()
	}

	shown := products
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}
	for i, p := range shown {
		sb.WriteString(productLine(i+1, p))
		sb.WriteString("\n")
	}
	if len(products) > len(shown) {
		fmt.Fprintf(&sb, "\n…и ещё %d. Уточните поиск.", len(products)-len(shown))
	}
	return strings.TrimRight(sb.String(), "\n")
}

// productCard mahsulot kartochkasi
func productCard(p entity.Product, qty int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n%s\n\n", p.Name, p.Type)

	fmt.Fprintf(&sb, "Цена: %s", formatMoney(p.Price))
	if pct := pricing.DiscountPercent(p); pct > 0 {
		fmt.Fprintf(&sb, " (было %s, −%d%%)", formatMoney(p.OldPrice), pct)
	}
	sb.WriteString("\n")

	if p.Rating > 0 {
		fmt.Fprintf(&sb, "Рейтинг: ★%.1f\n", p.Rating)
	}
	if p.Speed > 0 {
		fmt.Fprintf(&sb, "Скорость: до %d км/ч\n", p.Speed)
	}
	if p.Scale != "" {
		fmt.Fprintf(&sb, "Масштаб: %s\n", p.Scale)
	}
	if p.Range != "" {
		fmt.Fprintf(&sb, "Дальность: %s\n", p.Range)
	}
	if p.Battery != "" {
		fmt.Fprintf(&sb, "Аккумулятор: %s\n", p.Battery)
	}
	if qty > 0 {
		fmt.Fprintf(&sb, "\nВ корзине: %d шт.", qty)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// productSpecs xususiyatlar va tavsif
func productSpecs(p entity.Product) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s — характеристики\n", p.Name)
	for _, f := range p.Features {
		fmt.Fprintf(&sb, "• %s\n", f)
	}
	if p.Description != "" {
		fmt.Fprintf(&sb, "\n%s", p.Description)
	}
	if len(p.Features) == 0 && p.Description == "" {
		sb.WriteString("Подробное описание пока не добавлено.")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// cartText savat matni va hisob
func cartText(view entity.CartView, policy pricing.Policy) string {
	if view.IsEmpty() {
		text := "🛒 Корзина пуста. Загляните в /catalog."
		if view.Promo != nil {
			text += fmt.Sprintf("\nПромокод %s сохранён и сработает при заказе.", view.Promo.Code)
		}
		return text
	}

	var sb strings.Builder
	sb.WriteString("🛒 Корзина\n\n")
	for _, it := range view.Items {
		fmt.Fprintf(&sb, "%s × %d = %s\n", it.Product.Name, it.Quantity,
			formatMoney(it.Product.Price*int64(it.Quantity)))
	}
	sb.WriteString("\n")
	sb.WriteString(summaryText(view.Summary, view.Promo, policy))
	return sb.String()
}

// summaryText hisob qatorlari
func summaryText(s entity.CartSummary, promo *entity.Promo, policy pricing.Policy) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Товаров: %d\n", s.Count)
	fmt.Fprintf(&sb, "Сумма: %s\n", formatMoney(s.Subtotal))
	if promo != nil {
		fmt.Fprintf(&sb, "Промокод %s: −%s", promo.Code, formatMoney(s.Discount))
		if promo.Note != "" {
			fmt.Fprintf(&sb, " (%s)", promo.Note)
		}
		sb.WriteString("\n")
	}
	if s.Shipping == 0 {
		sb.WriteString("Доставка: бесплатно\n")
	} else {
		fmt.Fprintf(&sb, "Доставка: %s\n", formatMoney(s.Shipping))
		if left := policy.FreeShippingFrom - s.AfterDiscount; left > 0 {
			fmt.Fprintf(&sb, "До бесплатной доставки: %s\n", formatMoney(left))
		}
	}
	fmt.Fprintf(&sb, "Итого: %s", formatMoney(s.Total))
	return sb.String()
}

// orderConfirmation xaridorga tasdiq
func orderConfirmation(order *entity.OrderSnapshot) string {
	return fmt.Sprintf("✅ Заказ %s оформлен!\n\n%s, мы позвоним на %s для подтверждения.\nАдрес: %s\nК оплате: %s",
		order.ID, order.Recipient.Name, order.Recipient.Phone, order.Recipient.Address,
		formatMoney(order.Summary.Total))
}

// orderGroupText buyurtmalar guruhi uchun
func orderGroupText(order *entity.OrderSnapshot, userID int64, username string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🧾 Новый заказ %s\n", order.ID)
	fmt.Fprintf(&sb, "Покупатель: %s (@%s, %d)\n", order.Recipient.Name, nonEmpty(username, "неизвестно"), userID)
	fmt.Fprintf(&sb, "Телефон: %s\n", order.Recipient.Phone)
	fmt.Fprintf(&sb, "Адрес: %s\n\n", order.Recipient.Address)
	for _, it := range order.Items {
		fmt.Fprintf(&sb, "• %s (%s) × %d\n", it.Product.Name, it.Product.ID, it.Quantity)
	}
	sb.WriteString("\n")
	if order.Promo != nil {
		fmt.Fprintf(&sb, "Промокод: %s (−%s)\n", order.Promo.Code, formatMoney(order.Summary.Discount))
	}
	fmt.Fprintf(&sb, "Доставка: %s\n", formatMoney(order.Summary.Shipping))
	fmt.Fprintf(&sb, "Итого: %s\n", formatMoney(order.Summary.Total))
	fmt.Fprintf(&sb, "Время: %s", order.CreatedAt.Format("02.01.2006 15:04"))
	return sb.String()
}

func nonEmpty(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}

func truncateString(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
