package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
)

// orderStep buyurtma bosqichi
type orderStep int

const (
	stepName orderStep = iota
	stepPhone
	stepAddress
)

const cancelButtonText = "❌ Отмена"

// Telefon raqamida kamida shuncha raqam bo'lishi kerak
const minPhoneDigits = 7

// orderSession buyurtma rasmiylashtirish holati
type orderSession struct {
	step      orderStep
	recipient entity.Recipient
}

func (h *BotHandler) hasOrderSession(userID int64) bool {
	h.orderMu.Lock()
	defer h.orderMu.Unlock()
	_, ok := h.orderSessions[userID]
	return ok
}

func (h *BotHandler) endOrderSession(userID int64) bool {
	h.orderMu.Lock()
	defer h.orderMu.Unlock()
	_, ok := h.orderSessions[userID]
	delete(h.orderSessions, userID)
	return ok
}

// startOrder buyurtmani boshlash
func (h *BotHandler) startOrder(ctx context.Context, chatID int64, from *tgbotapi.User) {
	if from == nil {
		return
	}
	if h.shop.CartSummary(ctx, from.ID).Count == 0 {
		h.sendMessage(chatID, "🛒 Корзина пуста. Добавьте товары из /catalog.")
		return
	}

	h.orderMu.Lock()
	h.orderSessions[from.ID] = &orderSession{step: stepName}
	h.orderMu.Unlock()

	rows := [][]tgbotapi.KeyboardButton{}
	if name := strings.TrimSpace(from.FirstName + " " + from.LastName); name != "" {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(name)))
	}
	rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(cancelButtonText)))
	h.sendWithMarkup(chatID, "Оформление заказа (шаг 1 из 3).\nКак к вам обращаться?", replyKeyboard(rows...))
}

// cancelOrder /cancel
func (h *BotHandler) cancelOrder(chatID, userID int64) {
	if !h.endOrderSession(userID) {
		h.sendMessage(chatID, "Нечего отменять.")
		return
	}
	h.sendWithMarkup(chatID, "Оформление отменено. Корзина сохранена.", tgbotapi.NewRemoveKeyboard(true))
}

// handleOrderFlow sessiya ichidagi xabarlar: ism -> telefon -> manzil
func (h *BotHandler) handleOrderFlow(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	userID := message.From.ID
	text := strings.TrimSpace(message.Text)

	if text == cancelButtonText {
		h.cancelOrder(chatID, userID)
		return
	}

	h.orderMu.Lock()
	session, ok := h.orderSessions[userID]
	if !ok {
		h.orderMu.Unlock()
		return
	}

	switch session.step {
	case stepName:
		if text == "" {
			h.orderMu.Unlock()
			h.sendMessage(chatID, "Напишите, пожалуйста, имя получателя.")
			return
		}
		session.recipient.Name = text
		session.step = stepPhone
		h.orderMu.Unlock()

		h.sendWithMarkup(chatID, "Шаг 2 из 3. Номер телефона для связи:", replyKeyboard(
			tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonContact("📱 Отправить номер")),
			tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(cancelButtonText)),
		))

	case stepPhone:
		phone := text
		if message.Contact != nil {
			phone = message.Contact.PhoneNumber
		}
		if !validPhone(phone) {
			h.orderMu.Unlock()
			h.sendMessage(chatID, "Не похоже на номер телефона. Пример: +7 900 123-45-67")
			return
		}
		session.recipient.Phone = strings.TrimSpace(phone)
		session.step = stepAddress
		h.orderMu.Unlock()

		h.sendWithMarkup(chatID, "Шаг 3 из 3. Адрес доставки (город, улица, дом) или геопозиция:", replyKeyboard(
			tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonLocation("📍 Отправить геопозицию")),
			tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(cancelButtonText)),
		))

	case stepAddress:
		address := text
		if message.Location != nil {
			address = fmt.Sprintf("геопозиция %.6f, %.6f", message.Location.Latitude, message.Location.Longitude)
		}
		if address == "" {
			h.orderMu.Unlock()
			h.sendMessage(chatID, "Напишите адрес доставки или отправьте геопозицию.")
			return
		}
		session.recipient.Address = address
		recipient := session.recipient
		delete(h.orderSessions, userID)
		h.orderMu.Unlock()

		h.finishOrder(ctx, message, recipient)

	default:
		h.orderMu.Unlock()
	}
}

// finishOrder buyurtmani joylashtirish va guruhga yuborish
func (h *BotHandler) finishOrder(ctx context.Context, message *tgbotapi.Message, recipient entity.Recipient) {
	chatID := message.Chat.ID
	userID := message.From.ID

	order, err := h.shop.PlaceOrder(ctx, userID, recipient)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrCartEmpty):
			h.sendWithMarkup(chatID, "Корзина пуста, заказ не оформлен.", tgbotapi.NewRemoveKeyboard(true))
		case errors.Is(err, entity.ErrRecipientIncomplete):
			h.sendWithMarkup(chatID, "Не хватает данных получателя. Начните заново: /order", tgbotapi.NewRemoveKeyboard(true))
		default:
			h.log.Error().Err(err).Int64("user_id", userID).Msg("buyurtma xatosi")
			h.sendWithMarkup(chatID, "Не удалось оформить заказ. Попробуйте позже.", tgbotapi.NewRemoveKeyboard(true))
		}
		return
	}

	h.sendWithMarkup(chatID, orderConfirmation(order), tgbotapi.NewRemoveKeyboard(true))

	if h.ordersChatID != 0 {
		h.sendMessage(h.ordersChatID, orderGroupText(order, userID, message.From.UserName))
	}
}

func replyKeyboard(rows ...[]tgbotapi.KeyboardButton) tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.OneTimeKeyboard = true
	kb.ResizeKeyboard = true
	return kb
}

// validPhone raqamlar soni yetarlimi
func validPhone(phone string) bool {
	digits := 0
	for _, r := range phone {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' || r == '-' || r == ' ' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits >= minPhoneDigits
}
