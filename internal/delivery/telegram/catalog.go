package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/rc-shop-bot/internal/domain/catalog"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
)

// catalogView joriy filtr bo'yicha katalog matni va klaviaturasi
func (h *BotHandler) catalogView(ctx context.Context, userID int64) (string, tgbotapi.InlineKeyboardMarkup, error) {
	filter := h.filterFor(userID)
	products, err := h.shop.Catalog(ctx, filter)
	if err != nil {
		return "", tgbotapi.InlineKeyboardMarkup{}, err
	}
	return catalogText(products, filter, catalogPageSize), catalogKeyboard(products, filter.Sort, catalogPageSize), nil
}

// sendCatalog katalogni yangi xabar sifatida yuborish
func (h *BotHandler) sendCatalog(ctx context.Context, chatID, userID int64) {
	text, markup, err := h.catalogView(ctx, userID)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", userID).Msg("katalogni olishda xatolik")
		h.sendMessage(chatID, "Каталог временно недоступен. Попробуйте позже.")
		return
	}
	h.sendWithMarkup(chatID, text, markup)
}

// editCatalog katalog xabarini joyida yangilash
func (h *BotHandler) editCatalog(ctx context.Context, chatID int64, messageID int, userID int64) {
	text, markup, err := h.catalogView(ctx, userID)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", userID).Msg("katalogni olishda xatolik")
		return
	}
	h.editWithMarkup(chatID, messageID, text, markup)
}

// sendTypes kategoriyalar ro'yxati
func (h *BotHandler) sendTypes(ctx context.Context, chatID, userID int64) {
	types, err := h.shop.Types(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("kategoriyalarni olishda xatolik")
		h.sendMessage(chatID, "Каталог временно недоступен. Попробуйте позже.")
		return
	}
	h.sendWithMarkup(chatID, "Выберите категорию:", typesKeyboard(types, h.filterFor(userID).Type))
}

// onType kategoriya tanlandi yoki ro'yxat so'raldi
func (h *BotHandler) onType(ctx context.Context, cq *tgbotapi.CallbackQuery, arg string) {
	chatID, messageID, userID := cq.Message.Chat.ID, cq.Message.MessageID, cq.From.ID
	if arg == "" {
		types, err := h.shop.Types(ctx)
		if err != nil {
			h.answerCallback(cq.ID, "Каталог недоступен")
			return
		}
		h.answerCallback(cq.ID, "")
		h.editWithMarkup(chatID, messageID, "Выберите категорию:", typesKeyboard(types, h.filterFor(userID).Type))
		return
	}

	h.updateFilter(userID, func(f *entity.FilterState) { f.Type = arg })
	h.answerCallback(cq.ID, arg)
	h.editCatalog(ctx, chatID, messageID, userID)
}

// onSort saralash rejimi
func (h *BotHandler) onSort(ctx context.Context, cq *tgbotapi.CallbackQuery, arg string) {
	mode := catalog.ParseSort(arg)
	h.updateFilter(cq.From.ID, func(f *entity.FilterState) { f.Sort = mode })
	h.answerCallback(cq.ID, "Сортировка: "+sortLabel(mode))
	h.editCatalog(ctx, cq.Message.Chat.ID, cq.Message.MessageID, cq.From.ID)
}

// onProduct mahsulot kartochkasini yangi xabarda ko'rsatish
func (h *BotHandler) onProduct(ctx context.Context, cq *tgbotapi.CallbackQuery, productID string) {
	p, ok := h.lookupProduct(ctx, cq, productID)
	if !ok {
		return
	}
	h.answerCallback(cq.ID, "")
	qty := h.shop.QuantityOf(ctx, cq.From.ID, p.ID)
	h.sendWithMarkup(cq.Message.Chat.ID, productCard(*p, qty), productKeyboard(*p, qty))
}

// onSpecs xususiyatlar
func (h *BotHandler) onSpecs(ctx context.Context, cq *tgbotapi.CallbackQuery, productID string) {
	p, ok := h.lookupProduct(ctx, cq, productID)
	if !ok {
		return
	}
	h.answerCallback(cq.ID, "")
	h.sendMessage(cq.Message.Chat.ID, productSpecs(*p))
}

func (h *BotHandler) lookupProduct(ctx context.Context, cq *tgbotapi.CallbackQuery, productID string) (*entity.Product, bool) {
	p, err := h.shop.Product(ctx, productID)
	if err != nil {
		if !errors.Is(err, entity.ErrProductNotFound) {
			h.log.Error().Err(err).Str("product_id", productID).Msg("mahsulotni olishda xatolik")
		}
		h.answerCallback(cq.ID, "Товар не найден")
		return nil, false
	}
	return p, true
}
