package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/yourusername/rc-shop-bot/internal/domain/catalog"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
	"github.com/yourusername/rc-shop-bot/internal/domain/pricing"
	"github.com/yourusername/rc-shop-bot/internal/usecase"
)

// Bir xabarda ko'rsatiladigan mahsulotlar soni
const catalogPageSize = 10

// botAPI handler ishlatadigan Telegram metodlari
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Options handler bog'liqliklari
type Options struct {
	Token        string // fayllarni yuklab olish uchun
	OrdersChatID int64
	Policy       pricing.Policy

	Shop  usecase.ShopUseCase
	Admin usecase.AdminUseCase
	Chat  usecase.ChatUseCase // nil bo'lsa konsultant o'chiq

	HTTPClient *http.Client
	Log        zerolog.Logger
}

// BotHandler Telegram bot handler
type BotHandler struct {
	bot          botAPI
	token        string
	ordersChatID int64
	policy       pricing.Policy
	shop         usecase.ShopUseCase
	admin        usecase.AdminUseCase
	chat         usecase.ChatUseCase
	httpClient   *http.Client
	log          zerolog.Logger

	filterMu sync.RWMutex
	filters  map[int64]entity.FilterState

	orderMu       sync.Mutex
	orderSessions map[int64]*orderSession

	// Admin login kutilayotgan userlar
	mu               sync.RWMutex
	awaitingPassword map[int64]bool
}

// NewBotHandler yangi bot handler yaratish
func NewBotHandler(bot botAPI, opts Options) *BotHandler {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &BotHandler{
		bot:              bot,
		token:            opts.Token,
		ordersChatID:     opts.OrdersChatID,
		policy:           opts.Policy,
		shop:             opts.Shop,
		admin:            opts.Admin,
		chat:             opts.Chat,
		httpClient:       httpClient,
		log:              opts.Log.With().Str("component", "telegram").Logger(),
		filters:          make(map[int64]entity.FilterState),
		orderSessions:    make(map[int64]*orderSession),
		awaitingPassword: make(map[int64]bool),
	}
}

// Start botni ishga tushirish
func (h *BotHandler) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	h.log.Info().Msg("bot ishga tushdi")

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			h.log.Info().Msg("bot to'xtatilmoqda")
			h.bot.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				h.HandleUpdate(ctx, update)
			}()
		}
	}
}

// HandleUpdate bitta update ni qayta ishlash
func (h *BotHandler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error().Interface("panic", r).Int("update_id", update.UpdateID).Msg("update panic")
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		h.handleMessage(ctx, update.Message)
	}
}

// handleMessage xabarni qayta ishlash
func (h *BotHandler) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil || message.Chat == nil {
		return
	}
	// Buyurtmalar guruhidagi xabarlarga javob bermaymiz
	if h.ordersChatID != 0 && message.Chat.ID == h.ordersChatID {
		return
	}

	userID := message.From.ID

	if message.Document != nil {
		h.handleDocumentMessage(ctx, message)
		return
	}

	if h.isAwaitingPassword(userID) && !message.IsCommand() {
		h.handlePasswordInput(ctx, message)
		return
	}

	if message.IsCommand() {
		h.handleCommand(ctx, message)
		return
	}

	if h.hasOrderSession(userID) {
		h.handleOrderFlow(ctx, message)
		return
	}

	if text := strings.TrimSpace(message.Text); text != "" {
		h.handleTextMessage(ctx, message, text)
	}
}

// handleCommand komandalarni qayta ishlash
func (h *BotHandler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	userID := message.From.ID
	args := strings.TrimSpace(message.CommandArguments())

	switch message.Command() {
	case "start":
		h.sendMessage(chatID, welcomeMessage)
	case "help":
		h.sendMessage(chatID, h.helpMessage())
	case "catalog":
		h.sendCatalog(ctx, chatID, userID)
	case "types":
		h.sendTypes(ctx, chatID, userID)
	case "sort":
		h.updateFilter(userID, func(f *entity.FilterState) { f.Sort = catalog.ParseSort(args) })
		h.sendCatalog(ctx, chatID, userID)
	case "search":
		h.updateFilter(userID, func(f *entity.FilterState) { f.Query = args })
		h.sendCatalog(ctx, chatID, userID)
	case "reset":
		h.setFilter(userID, catalog.DefaultFilter())
		if h.chat != nil {
			if err := h.chat.ClearHistory(ctx, userID); err != nil {
				h.log.Warn().Err(err).Int64("user_id", userID).Msg("chat tarixini tozalab bo'lmadi")
			}
		}
		h.sendCatalog(ctx, chatID, userID)
	case "cart":
		h.sendCart(ctx, chatID, userID)
	case "promo":
		h.handlePromoCommand(ctx, chatID, userID, args)
	case "clear":
		h.shop.ClearCart(ctx, userID)
		h.sendMessage(chatID, "🗑 Корзина очищена, промокод сброшен.")
	case "order":
		h.startOrder(ctx, chatID, message.From)
	case "cancel":
		h.cancelOrder(chatID, userID)
	case "ask":
		h.handleAsk(ctx, message, args)
	case "admin":
		h.handleAdminCommand(ctx, message)
	case "logout":
		h.handleLogoutCommand(ctx, message)
	case "info":
		h.handleInfoCommand(ctx, message)
	case "clean":
		h.handleCleanCommand(ctx, message)
	default:
		h.sendMessage(chatID, "Неизвестная команда. /help — список команд.")
	}
}

// handleTextMessage sessiyadan tashqaridagi matn: savol yoki qidiruv
func (h *BotHandler) handleTextMessage(ctx context.Context, message *tgbotapi.Message, text string) {
	if h.chat != nil && strings.HasSuffix(text, "?") {
		h.handleAsk(ctx, message, text)
		return
	}

	userID := message.From.ID
	h.updateFilter(userID, func(f *entity.FilterState) { f.Query = text })
	h.sendCatalog(ctx, message.Chat.ID, userID)
}

// handleAsk konsultantga savol
func (h *BotHandler) handleAsk(ctx context.Context, message *tgbotapi.Message, question string) {
	chatID := message.Chat.ID
	if h.chat == nil {
		h.sendMessage(chatID, "Консультант сейчас недоступен. Воспользуйтесь /catalog и /search.")
		return
	}
	if strings.TrimSpace(question) == "" {
		h.sendMessage(chatID, "Напишите вопрос после команды, например: /ask какой краулер выбрать до 15 000 ₽?")
		return
	}

	h.sendTyping(chatID)
	answer, err := h.chat.ProcessMessage(ctx, message.From.ID, displayName(message.From), question)
	if err != nil {
		h.log.Warn().Err(err).Int64("user_id", message.From.ID).Msg("konsultant xatosi")
		if isQuotaError(err) {
			h.sendMessage(chatID, "Консультант перегружен, попробуйте через минуту.")
			return
		}
		h.sendMessage(chatID, "Не удалось получить ответ консультанта. Попробуйте позже.")
		return
	}
	h.sendMessage(chatID, answer)
}

func (h *BotHandler) filterFor(userID int64) entity.FilterState {
	h.filterMu.RLock()
	defer h.filterMu.RUnlock()
	if f, ok := h.filters[userID]; ok {
		return f
	}
	return catalog.DefaultFilter()
}

func (h *BotHandler) setFilter(userID int64, f entity.FilterState) {
	h.filterMu.Lock()
	defer h.filterMu.Unlock()
	h.filters[userID] = f
}

func (h *BotHandler) updateFilter(userID int64, fn func(f *entity.FilterState)) entity.FilterState {
	h.filterMu.Lock()
	defer h.filterMu.Unlock()
	f, ok := h.filters[userID]
	if !ok {
		f = catalog.DefaultFilter()
	}
	fn(&f)
	h.filters[userID] = f
	return f
}

func (h *BotHandler) isAwaitingPassword(userID int64) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.awaitingPassword[userID]
}

func (h *BotHandler) setAwaitingPassword(userID int64, awaiting bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if awaiting {
		h.awaitingPassword[userID] = true
	} else {
		delete(h.awaitingPassword, userID)
	}
}

// sendMessage oddiy xabar yuborish
func (h *BotHandler) sendMessage(chatID int64, text string) {
	h.send(tgbotapi.NewMessage(chatID, text))
}

func (h *BotHandler) sendWithMarkup(chatID int64, text string, markup any) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	h.send(msg)
}

// editWithMarkup inline xabarni joyida yangilash
func (h *BotHandler) editWithMarkup(chatID int64, messageID int, text string, markup tgbotapi.InlineKeyboardMarkup) {
	h.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, markup))
}

func (h *BotHandler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.log.Warn().Err(err).Msg("xabar yuborishda xatolik")
	}
}

func (h *BotHandler) sendTyping(chatID int64) {
	if _, err := h.bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		h.log.Debug().Err(err).Msg("typing action")
	}
}

// downloadFile Telegram dan faylni yuklash
func (h *BotHandler) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	file, err := h.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, file.Link(h.token), nil)
	if err != nil {
		return nil, err
	}
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxUploadSize+1))
}

func displayName(u *tgbotapi.User) string {
	if u == nil {
		return ""
	}
	if u.UserName != "" {
		return u.UserName
	}
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") || strings.Contains(msg, "retry in") || strings.Contains(msg, "rate limit")
}

const welcomeMessage = `Привет! 👋

Это магазин радиоуправляемых моделей: багги, краулеры, дрифт-кары и монстр-траки.

• /catalog — каталог с фильтрами и сортировкой
• /cart — корзина
• /promo КОД — применить промокод

Просто напишите, что ищете, например «краулер 4WD», и я покажу подходящие модели.`

// helpMessage yordam xabari
func (h *BotHandler) helpMessage() string {
	var sb strings.Builder
	sb.WriteString(`Команды:

Каталог
/catalog — показать каталог
/types — выбрать категорию
/sort popular|cheap|fast — сортировка
/search запрос — поиск по названию и характеристикам
/reset — сбросить фильтры и историю консультанта

Корзина
/cart — корзина
/promo КОД — применить промокод (/promo без кода — убрать)
/clear — очистить корзину
/order — оформить заказ
/cancel — отменить оформление
`)
	if h.chat != nil {
		sb.WriteString("\nКонсультант\n/ask вопрос — спросить консультанта (или просто напишите вопрос со знаком «?»)\n")
	}
	fmt.Fprintf(&sb, "\nБесплатная доставка от %s, иначе %s.", formatMoney(h.policy.FreeShippingFrom), formatMoney(h.policy.ShippingFee))
	return sb.String()
}
