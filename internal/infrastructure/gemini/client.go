package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
	"github.com/yourusername/rc-shop-bot/internal/domain/repository"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

const (
	defaultModel       = "gemini-2.0-flash"
	defaultConcurrency = 3
	defaultInterval    = 350 * time.Millisecond
)

const systemPrompt = `Ты консультант магазина радиоуправляемых моделей. Отвечай по-русски, коротко и дружелюбно.

Правила:
1. Предлагай только модели из присланного каталога. Ничего не придумывай.
2. Называй модель точно как в каталоге и указывай цену из каталога.
3. Если подходящей модели нет, честно скажи об этом и предложи ближайшую альтернативу из каталога.
4. Если покупатель называет бюджет, не выходи за него больше чем на 10%.
5. На приветствия и благодарности отвечай без списка товаров.
6. Промокоды и условия доставки не выдумывай: бесплатная доставка считается в корзине.`

// generator testlarda modelni almashtirish uchun
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Options client sozlamalari
type Options struct {
	Model       string
	Concurrency int
	Interval    time.Duration // so'rovlar orasidagi minimal interval
}

type geminiClient struct {
	client  *genai.Client
	model   generator
	sem     chan struct{}
	limiter *rate.Limiter
}

// NewGeminiClient yangi Gemini AI client yaratish
func NewGeminiClient(ctx context.Context, apiKey string, opts Options) (repository.AIRepository, func() error, error) {
	if apiKey == "" {
		return nil, nil, errors.New("gemini api key bo'sh")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if opts.Model == "" {
		opts.Model = defaultModel
	}
	model := client.GenerativeModel(opts.Model)

	// Aniqroq javoblar uchun past harorat
	model.SetTemperature(0.3)
	model.SetTopK(20)
	model.SetTopP(0.9)
	model.SetMaxOutputTokens(1024)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemPrompt)},
	}

	g := newClient(model, opts)
	g.client = client
	return g, client.Close, nil
}

func newClient(model generator, opts Options) *geminiClient {
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	return &geminiClient{
		model:   model,
		sem:     make(chan struct{}, opts.Concurrency),
		limiter: rate.NewLimiter(rate.Every(opts.Interval), 1),
	}
}

// Answer tarix bilan javob yaratish
func (g *geminiClient) Answer(ctx context.Context, prompt string, history []entity.ChatExchange) (string, error) {
	release, err := g.acquire(ctx)
	if err != nil {
		return "", err
	}
	defer release()

	resp, err := g.model.GenerateContent(ctx, buildParts(prompt, history)...)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no response candidates")
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("empty response")
	}
	return text, nil
}

// buildParts oldingi savol-javoblar va joriy so'rov
func buildParts(prompt string, history []entity.ChatExchange) []genai.Part {
	parts := make([]genai.Part, 0, len(history)*2+1)
	for _, ex := range history {
		if ex.Question != "" {
			parts = append(parts, genai.Text("Покупатель: "+ex.Question))
		}
		if ex.Answer != "" {
			parts = append(parts, genai.Text("Консультант: "+ex.Answer))
		}
	}
	return append(parts, genai.Text(prompt))
}

// extractText javobdan textni ajratib olish
func extractText(resp *genai.GenerateContentResponse) string {
	var result strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				result.WriteString(string(text))
			}
		}
	}
	return strings.TrimSpace(result.String())
}

// acquire semafor va rate limiter, context bekor qilinsa xato
func (g *geminiClient) acquire(ctx context.Context) (func(), error) {
	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if err := g.limiter.Wait(ctx); err != nil {
		<-g.sem
		return nil, err
	}
	return func() { <-g.sem }, nil
}
