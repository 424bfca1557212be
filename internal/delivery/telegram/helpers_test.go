package telegram

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
	"github.com/yourusername/rc-shop-bot/internal/domain/pricing"
	"github.com/yourusername/rc-shop-bot/internal/domain/repository"
	"github.com/yourusername/rc-shop-bot/internal/infrastructure/parser"
	"github.com/yourusername/rc-shop-bot/internal/infrastructure/storage"
	"github.com/yourusername/rc-shop-bot/internal/usecase"
)

const (
	testUserID   int64 = 1001
	testOrdersID int64 = -500
	testPassword       = "s3cret"
)

var testPolicy = pricing.Policy{FreeShippingFrom: 9000, ShippingFee: 390}

// fakeBot yuborilgan so'rovlarni yozib boradi
type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	nextID   int
	updates  chan tgbotapi.Update
	stopped  bool
}

func newFakeBot() *fakeBot {
	return &fakeBot{updates: make(chan tgbotapi.Update, 8)}
}

func (f *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	f.nextID++
	return tgbotapi.Message{MessageID: f.nextID}, nil
}

func (f *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeBot) GetFile(config tgbotapi.FileConfig) (tgbotapi.File, error) {
	return tgbotapi.File{FileID: config.FileID, FilePath: "documents/" + config.FileID}, nil
}

func (f *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return f.updates
}

func (f *fakeBot) StopReceivingUpdates() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeBot) messages() []tgbotapi.MessageConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []tgbotapi.MessageConfig
	for _, c := range f.sent {
		if m, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeBot) lastMessage(t *testing.T) tgbotapi.MessageConfig {
	t.Helper()
	msgs := f.messages()
	require.NotEmpty(t, msgs)
	return msgs[len(msgs)-1]
}

func (f *fakeBot) edits() []tgbotapi.EditMessageTextConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []tgbotapi.EditMessageTextConfig
	for _, c := range f.sent {
		if m, ok := c.(tgbotapi.EditMessageTextConfig); ok {
			out = append(out, m)
		}
	}
	return out
}

func (f *fakeBot) lastEdit(t *testing.T) tgbotapi.EditMessageTextConfig {
	t.Helper()
	edits := f.edits()
	require.NotEmpty(t, edits)
	return edits[len(edits)-1]
}

func (f *fakeBot) callbackAnswers() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.requests {
		if cb, ok := c.(tgbotapi.CallbackConfig); ok {
			out = append(out, normalizeSpaces(cb.Text))
		}
	}
	return out
}

func (f *fakeBot) deletedMessages() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []int
	for _, c := range f.requests {
		if d, ok := c.(tgbotapi.DeleteMessageConfig); ok {
			out = append(out, d.MessageID)
		}
	}
	return out
}

func (f *fakeBot) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = nil
	f.requests = nil
}

// fakeChat konsultant o'rnida
type fakeChat struct {
	mu        sync.Mutex
	questions []string
	answer    string
	err       error
	cleared   int
}

func (c *fakeChat) ProcessMessage(_ context.Context, _ int64, _ string, text string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.questions = append(c.questions, text)
	return c.answer, c.err
}

func (c *fakeChat) ClearHistory(context.Context, int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleared++
	return nil
}

func (c *fakeChat) History(context.Context, int64) ([]entity.ChatExchange, error) { return nil, nil }

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// fileServer Telegram fayl serverini almashtiradi
func fileServer(files map[string][]byte) *http.Client {
	return &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
		for name, data := range files {
			if strings.HasSuffix(r.URL.Path, "/documents/"+name) {
				return &http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(bytes.NewReader(data)), Header: make(http.Header)}, nil
			}
		}
		return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(strings.NewReader("")), Header: make(http.Header)}, nil
	})}
}

func testProducts() entity.ProductCatalog {
	return entity.ProductCatalog{
		Products: []entity.Product{
			{ID: "buggy-1", Name: "Storm Buggy", Type: "Багги", Price: 5000, Rating: 4.6, Speed: 60, Features: []string{"4WD"}},
			{ID: "suv-1", Name: "Rock Crawler", Type: "SUV-class", Price: 10000, OldPrice: 12000, Rating: 4.8, Speed: 35},
			{ID: "drift-1", Name: "Drift King", Type: "Дрифт", Price: 3000, Rating: 4.1, Speed: 45},
		},
		Source: "test.yaml",
	}
}

type testEnv struct {
	bot      *fakeBot
	handler  *BotHandler
	shop     usecase.ShopUseCase
	products repository.ProductRepository
	chat     *fakeChat
}

type envOption func(*Options, *testEnv)

func withAI(answer string) envOption {
	return func(o *Options, env *testEnv) {
		env.chat = &fakeChat{answer: answer}
		o.Chat = env.chat
	}
}

func withFiles(files map[string][]byte) envOption {
	return func(o *Options, _ *testEnv) {
		o.HTTPClient = fileServer(files)
	}
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	ctx := context.Background()
	log := zerolog.Nop()

	products := storage.NewMemoryProductRepository()
	require.NoError(t, products.UpdateCatalog(ctx, testProducts()))

	shop := usecase.NewShopUseCase(
		storage.NewCartStateRepository(storage.NewMemoryKVStore(), log),
		products,
		storage.NewMemoryPromoRepository(nil),
		testPolicy,
		nil,
		log,
	)
	admin := usecase.NewAdminUseCase(
		storage.NewMemoryAdminRepository(),
		products,
		parser.NewCatalogParser(log),
		storage.NewMemoryChatRepository(10),
		testPassword,
		log,
	)

	env := &testEnv{bot: newFakeBot(), shop: shop, products: products}
	o := Options{
		Token:        "TOKEN",
		OrdersChatID: testOrdersID,
		Policy:       testPolicy,
		Shop:         shop,
		Admin:        admin,
		Log:          log,
	}
	for _, opt := range opts {
		opt(&o, env)
	}
	env.handler = NewBotHandler(env.bot, o)
	return env
}

func testUser() *tgbotapi.User {
	return &tgbotapi.User{ID: testUserID, FirstName: "Иван", LastName: "Петров", UserName: "ivan"}
}

func textMessage(text string) *tgbotapi.Message {
	msg := &tgbotapi.Message{
		MessageID: 77,
		From:      testUser(),
		Chat:      &tgbotapi.Chat{ID: testUserID},
		Text:      text,
	}
	if strings.HasPrefix(text, "/") {
		cmd, _, _ := strings.Cut(text, " ")
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}}
	}
	return msg
}

func (e *testEnv) send(text string) {
	e.handler.HandleUpdate(context.Background(), tgbotapi.Update{Message: textMessage(text)})
}

func (e *testEnv) sendMessage(msg *tgbotapi.Message) {
	e.handler.HandleUpdate(context.Background(), tgbotapi.Update{Message: msg})
}

// press callback tugmasi; source tugma turgan xabar
func (e *testEnv) press(data string, source *tgbotapi.Message) {
	if source == nil {
		source = &tgbotapi.Message{MessageID: 10, Chat: &tgbotapi.Chat{ID: testUserID}}
	}
	e.handler.HandleUpdate(context.Background(), tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    testUser(),
		Message: source,
		Data:    data,
	}})
}

func cartSource() *tgbotapi.Message {
	return &tgbotapi.Message{MessageID: 20, Chat: &tgbotapi.Chat{ID: testUserID}, Text: cartHeader + "\n\n..."}
}

func normalizeSpaces(s string) string {
	return strings.NewReplacer("\u00a0", " ", "\u202f", " ").Replace(s)
}

func buttonData(markup tgbotapi.InlineKeyboardMarkup) []string {
	var out []string
	for _, row := range markup.InlineKeyboard {
		for _, b := range row {
			if b.CallbackData != nil {
				out = append(out, *b.CallbackData)
			}
		}
	}
	return out
}

func buttonTexts(markup tgbotapi.InlineKeyboardMarkup) []string {
	var out []string
	for _, row := range markup.InlineKeyboard {
		for _, b := range row {
			out = append(out, b.Text)
		}
	}
	return out
}
