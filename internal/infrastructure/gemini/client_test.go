package gemini

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/rc-shop-bot/internal/domain/entity"
)

type fakeModel struct {
	resp     *genai.GenerateContentResponse
	err      error
	parts    []genai.Part
	mu       sync.Mutex
	inFlight int32
	peak     int32
	hold     time.Duration
}

func (f *fakeModel) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	n := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)

	f.mu.Lock()
	if n > f.peak {
		f.peak = n
	}
	f.parts = parts
	f.mu.Unlock()

	time.Sleep(f.hold)
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, genai.Text(p))
	}
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: content}}}
}

func TestAnswerBuildsHistoryParts(t *testing.T) {
	model := &fakeModel{resp: textResponse("Есть ", "Rock Crawler ")}
	g := newClient(model, Options{Interval: time.Millisecond})

	answer, err := g.Answer(context.Background(), "а дешевле?", []entity.ChatExchange{
		{Question: "что есть для грязи?", Answer: "Rock Crawler"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Есть Rock Crawler", answer)
	assert.Equal(t, []genai.Part{
		genai.Text("Покупатель: что есть для грязи?"),
		genai.Text("Консультант: Rock Crawler"),
		genai.Text("а дешевле?"),
	}, model.parts)
}

func TestAnswerErrors(t *testing.T) {
	ctx := context.Background()

	g := newClient(&fakeModel{err: errors.New("boom")}, Options{Interval: time.Millisecond})
	_, err := g.Answer(ctx, "q", nil)
	assert.ErrorContains(t, err, "boom")

	g = newClient(&fakeModel{resp: &genai.GenerateContentResponse{}}, Options{Interval: time.Millisecond})
	_, err = g.Answer(ctx, "q", nil)
	assert.ErrorContains(t, err, "no response candidates")

	g = newClient(&fakeModel{resp: textResponse("   ")}, Options{Interval: time.Millisecond})
	_, err = g.Answer(ctx, "q", nil)
	assert.ErrorContains(t, err, "empty response")
}

func TestAnswerRespectsConcurrencyLimit(t *testing.T) {
	model := &fakeModel{resp: textResponse("ok"), hold: 20 * time.Millisecond}
	g := newClient(model, Options{Concurrency: 2, Interval: time.Microsecond})

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := g.Answer(context.Background(), "q", nil)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, model.peak, int32(2))
}

func TestAnswerCancelledContext(t *testing.T) {
	g := newClient(&fakeModel{resp: textResponse("ok")}, Options{Concurrency: 1, Interval: time.Hour})
	// birinchi token sarflanadi
	_, err := g.Answer(context.Background(), "q", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = g.Answer(ctx, "q", nil)
	assert.Error(t, err)
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	_, _, err := NewGeminiClient(context.Background(), "", Options{})
	assert.Error(t, err)
}
