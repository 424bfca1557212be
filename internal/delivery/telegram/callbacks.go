package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleCallback inline tugmalar
func (h *BotHandler) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.From == nil || cq.Message == nil || cq.Message.Chat == nil {
		h.answerCallback(cq.ID, "")
		return
	}

	action, arg := parseCallback(cq.Data)
	h.log.Debug().Int64("user_id", cq.From.ID).Str("action", action).Str("arg", arg).Msg("callback")

	switch action {
	case cbType:
		h.onType(ctx, cq, arg)
	case cbSort:
		h.onSort(ctx, cq, arg)
	case cbProduct:
		h.onProduct(ctx, cq, arg)
	case cbSpecs:
		h.onSpecs(ctx, cq, arg)
	case cbAdd, cbInc:
		h.onQuantity(ctx, cq, arg, 1)
	case cbDec:
		h.onQuantity(ctx, cq, arg, -1)
	case cbDel:
		h.onRemove(ctx, cq, arg)
	case cbCart:
		h.answerCallback(cq.ID, "")
		h.sendCart(ctx, cq.Message.Chat.ID, cq.From.ID)
	case cbCartClear:
		h.onCartClear(ctx, cq)
	case cbOrder:
		h.answerCallback(cq.ID, "")
		h.startOrder(ctx, cq.Message.Chat.ID, cq.From)
	case cbCatalog:
		h.answerCallback(cq.ID, "")
		h.sendCatalog(ctx, cq.Message.Chat.ID, cq.From.ID)
	case cbNoop:
		h.answerCallback(cq.ID, "")
	default:
		h.answerCallback(cq.ID, "Кнопка устарела")
	}
}

// answerCallback tugma "soat"ini o'chirish, ixtiyoriy toast bilan
func (h *BotHandler) answerCallback(id, text string) {
	if id == "" {
		return
	}
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.log.Debug().Err(err).Msg("callback javobi")
	}
}
