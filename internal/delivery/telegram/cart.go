package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
)

const cartHeader = "🛒 Корзина"

// isCartMessage callback savat xabaridanmi
func isCartMessage(msg *tgbotapi.Message) bool {
	return msg != nil && strings.HasPrefix(msg.Text, cartHeader)
}

// sendCart savatni yangi xabarda ko'rsatish
func (h *BotHandler) sendCart(ctx context.Context, chatID, userID int64) {
	view := h.shop.CartView(ctx, userID)
	h.sendWithMarkup(chatID, cartText(view, h.policy), cartKeyboard(view))
}

func (h *BotHandler) editCart(ctx context.Context, chatID int64, messageID int, userID int64) {
	view := h.shop.CartView(ctx, userID)
	h.editWithMarkup(chatID, messageID, cartText(view, h.policy), cartKeyboard(view))
}

// refreshProductCard kartochkadagi miqdor va tugmalarni yangilash
func (h *BotHandler) refreshProductCard(ctx context.Context, cq *tgbotapi.CallbackQuery, productID string) {
	p, err := h.shop.Product(ctx, productID)
	if err != nil {
		return
	}
	qty := h.shop.QuantityOf(ctx, cq.From.ID, p.ID)
	h.editWithMarkup(cq.Message.Chat.ID, cq.Message.MessageID, productCard(*p, qty), productKeyboard(*p, qty))
}

// onQuantity +1 / -1 tugmalari
func (h *BotHandler) onQuantity(ctx context.Context, cq *tgbotapi.CallbackQuery, productID string, delta int) {
	userID := cq.From.ID
	summary, err := h.shop.AddToCart(ctx, userID, productID, delta)
	if err != nil {
		if errors.Is(err, entity.ErrProductNotFound) {
			h.answerCallback(cq.ID, "Товар больше не продаётся")
			return
		}
		h.log.Error().Err(err).Int64("user_id", userID).Str("product_id", productID).Msg("savatni yangilashda xatolik")
		h.answerCallback(cq.ID, "Не удалось обновить корзину")
		return
	}

	h.answerCallback(cq.ID, quantityToast(delta, h.shop.QuantityOf(ctx, userID, productID), summary))

	if isCartMessage(cq.Message) {
		h.editCart(ctx, cq.Message.Chat.ID, cq.Message.MessageID, userID)
		return
	}
	h.refreshProductCard(ctx, cq, productID)
}

// onRemove mahsulotni savatdan butunlay olib tashlash
func (h *BotHandler) onRemove(ctx context.Context, cq *tgbotapi.CallbackQuery, productID string) {
	summary := h.shop.RemoveFromCart(ctx, cq.From.ID, productID)
	h.answerCallback(cq.ID, fmt.Sprintf("Удалено. Итого: %s", formatMoney(summary.Total)))

	if isCartMessage(cq.Message) {
		h.editCart(ctx, cq.Message.Chat.ID, cq.Message.MessageID, cq.From.ID)
		return
	}
	h.refreshProductCard(ctx, cq, productID)
}

func (h *BotHandler) onCartClear(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	h.shop.ClearCart(ctx, cq.From.ID)
	h.answerCallback(cq.ID, "Корзина очищена")
	h.editCart(ctx, cq.Message.Chat.ID, cq.Message.MessageID, cq.From.ID)
}

func quantityToast(delta, qty int, summary entity.CartSummary) string {
	if delta > 0 {
		return fmt.Sprintf("В корзине: %d шт. Итого: %s", qty, formatMoney(summary.Total))
	}
	if qty == 0 {
		return fmt.Sprintf("Убрано из корзины. Итого: %s", formatMoney(summary.Total))
	}
	return fmt.Sprintf("Осталось: %d шт. Итого: %s", qty, formatMoney(summary.Total))
}

// handlePromoCommand /promo KOD
func (h *BotHandler) handlePromoCommand(ctx context.Context, chatID, userID int64, code string) {
	promo, err := h.shop.ApplyPromo(ctx, userID, code)
	if err != nil {
		if errors.Is(err, entity.ErrPromoNotFound) {
			h.sendMessage(chatID, fmt.Sprintf("Промокод %s не найден.", entity.NormalizePromoCode(code)))
			return
		}
		h.log.Error().Err(err).Int64("user_id", userID).Msg("promokod xatosi")
		h.sendMessage(chatID, "Не удалось применить промокод.")
		return
	}
	if promo == nil {
		h.sendMessage(chatID, "Промокод убран.")
		return
	}

	view := h.shop.CartView(ctx, userID)
	text := fmt.Sprintf("🎟 Промокод %s применён.", promo.Code)
	if promo.Note != "" {
		text += " " + promo.Note
	}
	if !view.IsEmpty() {
		text += "\n\n" + summaryText(view.Summary, view.Promo, h.policy)
	}
	h.sendMessage(chatID, text)
}
