package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
)

// Callback prefikslari
const (
	cbType      = "type"
	cbSort      = "sort"
	cbProduct   = "prod"
	cbAdd       = "add"
	cbInc       = "inc"
	cbDec       = "dec"
	cbDel       = "del"
	cbSpecs     = "specs"
	cbCart      = "cart"
	cbCartClear = "cart_clear"
	cbOrder     = "order"
	cbCatalog   = "catalog"
	cbNoop      = "noop"
)

// Telegram callback_data chegarasi (bayt)
const maxCallbackData = 64

func callbackData(action, arg string) string {
	if arg == "" {
		return action
	}
	return action + ":" + arg
}

// parseCallback "action:arg" ni ajratish
func parseCallback(data string) (action, arg string) {
	action, arg, _ = strings.Cut(data, ":")
	return action, arg
}

func button(text, action, arg string) (tgbotapi.InlineKeyboardButton, bool) {
	data := callbackData(action, arg)
	if len(data) > maxCallbackData {
		return tgbotapi.InlineKeyboardButton{}, false
	}
	return tgbotapi.NewInlineKeyboardButtonData(text, data), true
}

func sortRow(current entity.SortMode) []tgbotapi.InlineKeyboardButton {
	modes := []struct {
		mode  entity.SortMode
		title string
	}{
		{entity.SortPopular, "⭐ Популярные"},
		{entity.SortCheap, "💸 Дешевле"},
		{entity.SortFast, "⚡ Быстрее"},
	}
	row := make([]tgbotapi.InlineKeyboardButton, 0, len(modes))
	for _, m := range modes {
		title := m.title
		if m.mode == current {
			title = "• " + title
		}
		btn, _ := button(title, cbSort, string(m.mode))
		row = append(row, btn)
	}
	return row
}

// catalogKeyboard mahsulot tugmalari, saralash va savat
func catalogKeyboard(products []entity.Product, current entity.SortMode, limit int) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, p := range products {
		if limit > 0 && i >= limit {
			break
		}
		title := fmt.Sprintf("%d. %s", i+1, truncateString(p.Name, 40))
		if btn, ok := button(title, cbProduct, p.ID); ok {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(btn))
		}
	}
	rows = append(rows, sortRow(current))

	types, _ := button("🗂 Категории", cbType, "")
	cart, _ := button("🛒 Корзина", cbCart, "")
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(types, cart))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// typesKeyboard kategoriyalar, ikki ustunda
func typesKeyboard(types []string, current string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, t := range types {
		title := t
		if t == current {
			title = "• " + t
		}
		btn, ok := button(title, cbType, t)
		if !ok {
			continue
		}
		row = append(row, btn)
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// productKeyboard kartochka tugmalari. Savatda bo'lsa -/+ ko'rinadi.
func productKeyboard(p entity.Product, qty int) tgbotapi.InlineKeyboardMarkup {
	var first []tgbotapi.InlineKeyboardButton
	if qty == 0 {
		add, _ := button("🛒 В корзину", cbAdd, p.ID)
		first = append(first, add)
	} else {
		dec, _ := button("➖", cbDec, p.ID)
		count, _ := button(fmt.Sprintf("%d шт.", qty), cbNoop, "")
		inc, _ := button("➕", cbInc, p.ID)
		first = append(first, dec, count, inc)
	}

	specs, _ := button("📋 Характеристики", cbSpecs, p.ID)
	cart, _ := button("🛒 Корзина", cbCart, "")
	return tgbotapi.NewInlineKeyboardMarkup(first, tgbotapi.NewInlineKeyboardRow(specs, cart))
}

// cartKeyboard savat qatorlari va amallar
func cartKeyboard(view entity.CartView) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, it := range view.Items {
		dec, ok := button("➖", cbDec, it.Product.ID)
		if !ok {
			continue
		}
		name, _ := button(fmt.Sprintf("%s × %d", truncateString(it.Product.Name, 20), it.Quantity), cbProduct, it.Product.ID)
		inc, _ := button("➕", cbInc, it.Product.ID)
		del, _ := button("✖", cbDel, it.Product.ID)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(dec, name, inc, del))
	}
	if len(view.Items) > 0 {
		order, _ := button("✅ Оформить заказ", cbOrder, "")
		clearBtn, _ := button("🗑 Очистить", cbCartClear, "")
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(order, clearBtn))
	} else {
		catalog, _ := button("🏁 Каталог", cbCatalog, "")
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(catalog))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
