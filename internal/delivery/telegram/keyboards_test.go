package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
)

func TestParseCallback(t *testing.T) {
	tests := []struct {
		data, action, arg string
	}{
		{"prod:suv-1", "prod", "suv-1"},
		{"cart", "cart", ""},
		{"cart_clear", "cart_clear", ""},
		{"type:Монстр-траки", "type", "Монстр-траки"},
		{"add:a:b", "add", "a:b"},
	}
	for _, tt := range tests {
		action, arg := parseCallback(tt.data)
		assert.Equal(t, tt.action, action, tt.data)
		assert.Equal(t, tt.arg, arg, tt.data)
	}
}

func TestButton_TooLong(t *testing.T) {
	_, ok := button("x", cbProduct, strings.Repeat("a", maxCallbackData))
	assert.False(t, ok)

	btn, ok := button("x", cbProduct, "short")
	assert.True(t, ok)
	assert.Equal(t, "prod:short", *btn.CallbackData)
}

func TestCatalogKeyboard_SkipsLongIDs(t *testing.T) {
	products := []entity.Product{
		{ID: "ok-1", Name: "A"},
		{ID: strings.Repeat("z", 70), Name: "B"},
		{ID: "ok-2", Name: "C"},
	}

	data := buttonData(catalogKeyboard(products, entity.SortCheap, 10))

	assert.Equal(t, []string{"prod:ok-1", "prod:ok-2", "sort:popular", "sort:cheap", "sort:fast", "type", "cart"}, data)
	assert.Contains(t, buttonTexts(catalogKeyboard(products, entity.SortCheap, 10)), "• 💸 Дешевле")
}

func TestTypesKeyboard_TwoColumns(t *testing.T) {
	kb := typesKeyboard([]string{"Все", "Багги", "Дрифт"}, "Дрифт")

	assert.Len(t, kb.InlineKeyboard, 2)
	assert.Len(t, kb.InlineKeyboard[0], 2)
	assert.Equal(t, "• Дрифт", kb.InlineKeyboard[1][0].Text)
}
