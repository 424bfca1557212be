package telegram

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Yuklanadigan katalog fayli chegarasi
const maxUploadSize = 5 * 1024 * 1024

const adminWelcome = `✅ Вы вошли как администратор.

Чтобы обновить каталог, отправьте файл .xlsx или .yaml (до 5 МБ).
Колонки Excel: ID, Название, Тип, Цена, Старая цена, Рейтинг, Скорость, Масштаб, Дальность, Аккумулятор, Особенности, Описание.

/info — сведения о каталоге
/clean — очистить каталог и историю консультанта
/logout — выйти`

// handleAdminCommand /admin
func (h *BotHandler) handleAdminCommand(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID

	if h.isAdmin(ctx, userID) {
		h.sendMessage(message.Chat.ID, "Вы уже вошли как администратор. /logout — выйти.")
		return
	}

	h.setAwaitingPassword(userID, true)
	h.sendMessage(message.Chat.ID, "🔐 Введите пароль администратора:")
}

// handlePasswordInput parolni tekshirish, xabarni o'chirish
func (h *BotHandler) handlePasswordInput(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	h.setAwaitingPassword(userID, false)

	if _, err := h.bot.Request(tgbotapi.NewDeleteMessage(message.Chat.ID, message.MessageID)); err != nil {
		h.log.Debug().Err(err).Msg("parol xabarini o'chirib bo'lmadi")
	}

	ok, err := h.admin.Login(ctx, userID, message.Text)
	if err != nil {
		h.log.Error().Err(err).Int64("user_id", userID).Msg("login xatosi")
		h.sendMessage(message.Chat.ID, "❌ Ошибка входа. Попробуйте позже.")
		return
	}
	if !ok {
		h.log.Warn().Int64("user_id", userID).Msg("noto'g'ri admin paroli")
		h.sendMessage(message.Chat.ID, "❌ Неверный пароль.")
		return
	}

	h.sendMessage(message.Chat.ID, adminWelcome)
}

// handleLogoutCommand /logout
func (h *BotHandler) handleLogoutCommand(ctx context.Context, message *tgbotapi.Message) {
	if !h.isAdmin(ctx, message.From.ID) {
		h.sendMessage(message.Chat.ID, "Вы не администратор.")
		return
	}
	if err := h.admin.Logout(ctx, message.From.ID); err != nil {
		h.log.Error().Err(err).Msg("logout xatosi")
		h.sendMessage(message.Chat.ID, "Не удалось выйти.")
		return
	}
	h.sendMessage(message.Chat.ID, "✅ Вы вышли из режима администратора.")
}

// handleInfoCommand katalog statistikasi
func (h *BotHandler) handleInfoCommand(ctx context.Context, message *tgbotapi.Message) {
	if !h.requireAdmin(ctx, message) {
		return
	}

	info, err := h.admin.GetCatalogInfo(ctx)
	if err != nil {
		h.sendMessage(message.Chat.ID, "❌ Каталог не загружен. Отправьте файл .xlsx или .yaml.")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📦 Каталог: %s\n", nonEmpty(info.Source, "—"))
	if !info.UpdatedAt.IsZero() {
		fmt.Fprintf(&sb, "Обновлён: %s\n", info.UpdatedAt.Format("02.01.2006 15:04"))
	}
	fmt.Fprintf(&sb, "Товаров: %d\n", info.Total)
	for _, tc := range info.ByType {
		fmt.Fprintf(&sb, "• %s: %d\n", tc.Type, tc.Count)
	}
	h.sendMessage(message.Chat.ID, strings.TrimRight(sb.String(), "\n"))
}

// handleCleanCommand katalog va chat tarixini tozalash
func (h *BotHandler) handleCleanCommand(ctx context.Context, message *tgbotapi.Message) {
	if !h.requireAdmin(ctx, message) {
		return
	}
	if err := h.admin.CleanAll(ctx, message.From.ID); err != nil {
		h.log.Error().Err(err).Msg("tozalash xatosi")
		h.sendMessage(message.Chat.ID, "❌ Ошибка очистки.")
		return
	}
	h.sendMessage(message.Chat.ID, "🧹 Каталог и история консультанта очищены.")
}

// handleDocumentMessage katalog faylini yuklash
func (h *BotHandler) handleDocumentMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	userID := message.From.ID

	if !h.isAdmin(ctx, userID) {
		h.sendMessage(chatID, "❌ Загружать файлы могут только администраторы. Войдите через /admin.")
		return
	}

	doc := message.Document
	if doc.FileSize > maxUploadSize {
		h.sendMessage(chatID, "❌ Файл больше 5 МБ.")
		return
	}
	switch strings.ToLower(filepath.Ext(doc.FileName)) {
	case ".xlsx", ".yaml", ".yml":
	default:
		h.sendMessage(chatID, "❌ Поддерживаются только файлы .xlsx, .yaml и .yml.")
		return
	}

	h.sendMessage(chatID, "⏳ Загружаю и разбираю файл...")

	data, err := h.downloadFile(ctx, doc.FileID)
	if err != nil {
		h.log.Error().Err(err).Str("file", doc.FileName).Msg("faylni yuklab bo'lmadi")
		h.sendMessage(chatID, "❌ Не удалось скачать файл.")
		return
	}
	if len(data) > maxUploadSize {
		h.sendMessage(chatID, "❌ Файл больше 5 МБ.")
		return
	}

	count, err := h.admin.UploadCatalog(ctx, userID, data, doc.FileName)
	if err != nil {
		h.log.Error().Err(err).Str("file", doc.FileName).Msg("katalogni yangilab bo'lmadi")
		h.sendMessage(chatID, fmt.Sprintf("❌ Ошибка обновления каталога: %v", err))
		return
	}

	h.sendMessage(chatID, fmt.Sprintf("✅ Каталог обновлён.\n\nТоваров: %d\nФайл: %s\n\n/info — сведения о каталоге", count, doc.FileName))
}

func (h *BotHandler) isAdmin(ctx context.Context, userID int64) bool {
	ok, err := h.admin.IsAdmin(ctx, userID)
	if err != nil {
		h.log.Warn().Err(err).Int64("user_id", userID).Msg("admin tekshiruvi")
		return false
	}
	return ok
}

func (h *BotHandler) requireAdmin(ctx context.Context, message *tgbotapi.Message) bool {
	if h.isAdmin(ctx, message.From.ID) {
		return true
	}
	h.sendMessage(message.Chat.ID, "❌ Команда доступна только администраторам.")
	return false
}
