package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/flashlearn/internal/config"
	"github.com/phrazzld/flashlearn/internal/domain"
	"github.com/phrazzld/flashlearn/internal/generation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeModels struct {
	responses []*genai.GenerateContentResponse
	errs      []error
	calls     int
	lastModel string
	lastCfg   *genai.GenerateContentConfig
	lastText  string
	getErr    error
	gotModel  string
}

func (f *fakeModels) Get(_ context.Context, model string, _ *genai.GetModelConfig) (*genai.Model, error) {
	f.gotModel = model
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &genai.Model{Name: "models/" + model}, nil
}

func (f *fakeModels) GenerateContent(
	_ context.Context,
	model string,
	contents []*genai.Content,
	cfg *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	i := f.calls
	f.calls++
	f.lastModel = model
	f.lastCfg = cfg
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.lastText = contents[0].Parts[0].Text
	}
	var resp *genai.GenerateContentResponse
	var err error
	if i < len(f.responses) {
		resp = f.responses[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return resp, err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func testOptions() Options {
	return Options{
		APIKey:      "test-key",
		Model:       "gemini-test",
		Temperature: 0.7,
		Retry:       generation.RetryPolicy{MaxRetries: 2},
	}
}

func testRequest() generation.Request {
	return generation.Request{
		Text:       "The heart has four chambers.",
		Topic:      "Biology",
		NumCards:   2,
		Difficulty: domain.DifficultyEasy,
	}
}

func TestGenerateCards(t *testing.T) {
	t.Parallel()

	models := &fakeModels{responses: []*genai.GenerateContentResponse{
		textResponse(`[{"question":"How many chambers?","answer":"Four"},` +
			`{"question":"Which organ?","answer":"Heart"},{"question":"Extra","answer":"Dropped"}]`),
	}}
	g := newGenerator(nil, models, testOptions())

	cards, err := g.GenerateCards(context.Background(), testRequest())
	require.NoError(t, err)

	assert.Equal(t, []generation.Card{
		{Question: "How many chambers?", Answer: "Four"},
		{Question: "Which organ?", Answer: "Heart"},
	}, cards)
	assert.Equal(t, "gemini-test", models.lastModel)
	assert.Contains(t, models.lastText, "Generate exactly 2 flashcards")
	assert.Contains(t, models.lastText, generation.Guidance(domain.DifficultyEasy))
	require.NotNil(t, models.lastCfg)
	assert.Equal(t, "application/json", models.lastCfg.ResponseMIMEType)
	require.NotNil(t, models.lastCfg.Temperature)
	assert.InDelta(t, 0.7, *models.lastCfg.Temperature, 1e-6)
}

func TestGenerateCardsRetriesTransientErrors(t *testing.T) {
	t.Parallel()

	models := &fakeModels{
		errs: []error{&genai.APIError{Code: 503, Message: "unavailable"}, nil},
		responses: []*genai.GenerateContentResponse{
			nil,
			textResponse(`[{"question":"Q","answer":"A"}]`),
		},
	}
	g := newGenerator(nil, models, testOptions())

	cards, err := g.GenerateCards(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Len(t, cards, 1)
	assert.Equal(t, 2, models.calls)
}

func TestGenerateCardsErrors(t *testing.T) {
	t.Parallel()

	blocked := textResponse("")
	blocked.Candidates[0].FinishReason = genai.FinishReasonSafety

	tests := []struct {
		name      string
		models    *fakeModels
		wantErr   error
		wantCalls int
	}{
		{
			name:      "rate limit exhausts retries",
			models:    &fakeModels{errs: []error{&genai.APIError{Code: 429}, &genai.APIError{Code: 429}, &genai.APIError{Code: 429}}},
			wantErr:   generation.ErrTransientFailure,
			wantCalls: 3,
		},
		{
			name:      "bad request is permanent",
			models:    &fakeModels{errs: []error{&genai.APIError{Code: 400}}},
			wantErr:   generation.ErrGenerationFailed,
			wantCalls: 1,
		},
		{
			name:      "bad credentials",
			models:    &fakeModels{errs: []error{&genai.APIError{Code: 403}}},
			wantErr:   generation.ErrInvalidConfig,
			wantCalls: 1,
		},
		{
			name:      "safety block",
			models:    &fakeModels{responses: []*genai.GenerateContentResponse{blocked}},
			wantErr:   generation.ErrContentBlocked,
			wantCalls: 1,
		},
		{
			name:      "no candidates",
			models:    &fakeModels{responses: []*genai.GenerateContentResponse{{}}},
			wantErr:   generation.ErrInvalidResponse,
			wantCalls: 1,
		},
		{
			name:      "unparseable output",
			models:    &fakeModels{responses: []*genai.GenerateContentResponse{textResponse("I cannot help with that")}},
			wantErr:   generation.ErrInvalidResponse,
			wantCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := newGenerator(nil, tt.models, testOptions())

			cards, err := g.GenerateCards(context.Background(), testRequest())
			assert.Nil(t, cards)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.wantCalls, tt.models.calls)
		})
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, mapError(errors.New("connection refused")), generation.ErrTransientFailure)
	assert.ErrorIs(t, mapError(context.DeadlineExceeded), generation.ErrTransientFailure)

	err := mapError(context.Canceled)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, generation.ErrTransientFailure)
}

func TestNewGeneratorValidatesOptions(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator(context.Background(), nil, Options{Model: "gemini-test"})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)

	_, err = NewGenerator(context.Background(), nil, Options{APIKey: "key"})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestOptionsFromConfig(t *testing.T) {
	t.Parallel()

	opts := OptionsFromConfig(config.LLMConfig{
		GeminiAPIKey:          "key",
		GeminiModel:           "gemini-2.0-flash",
		MaxRetries:            4,
		RetryDelaySeconds:     2,
		RequestTimeoutSeconds: 30,
		Temperature:           0.3,
	})

	assert.Equal(t, "key", opts.APIKey)
	assert.Equal(t, "gemini-2.0-flash", opts.Model)
	assert.Equal(t, 4, opts.Retry.MaxRetries)
	assert.Equal(t, "2s", opts.Retry.BaseDelay.String())
	assert.Equal(t, "30s", opts.RequestTimeout.String())
}

func TestGenerator_Ping(t *testing.T) {
	t.Parallel()

	models := &fakeModels{}
	gen := newGenerator(nil, models, testOptions())
	require.NoError(t, gen.Ping(context.Background()))
	assert.Equal(t, "gemini-test", models.gotModel)

	denied := newGenerator(nil, &fakeModels{getErr: &genai.APIError{Code: 403}}, testOptions())
	assert.ErrorIs(t, denied.Ping(context.Background()), generation.ErrInvalidConfig)

	down := newGenerator(nil, &fakeModels{getErr: &genai.APIError{Code: 503}}, testOptions())
	assert.ErrorIs(t, down.Ping(context.Background()), generation.ErrTransientFailure)
}
