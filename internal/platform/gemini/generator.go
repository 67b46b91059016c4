package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/flashlearn/internal/generation"
	"github.com/phrazzld/flashlearn/internal/platform/logger"
	"google.golang.org/genai"
)

// contentGenerator is the part of *genai.Models the generator uses.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)

	Get(ctx context.Context, model string, config *genai.GetModelConfig) (*genai.Model, error)
}

// Generator implements the generation.Generator interface using
// Google's Gemini API.
type Generator struct {
	logger *slog.Logger
	models contentGenerator
	opts   Options
}

var (
	_ generation.Generator = (*Generator)(nil)
	_ generation.Pinger    = (*Generator)(nil)
)

// NewGenerator creates a Gemini client and wraps it in a Generator.
func NewGenerator(ctx context.Context, log *slog.Logger, opts Options) (*Generator, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	return newGenerator(log, client.Models, opts), nil
}

func newGenerator(log *slog.Logger, models contentGenerator, opts Options) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{
		logger: log.With(slog.String("component", "gemini_generator"), slog.String("model", opts.Model)),
		models: models,
		opts:   opts,
	}
}

// GenerateCards asks Gemini for req.NumCards flashcards.
func (g *Generator) GenerateCards(ctx context.Context, req generation.Request) ([]generation.Card, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	prompt, err := generation.BuildPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	contents := []*genai.Content{{
		Role:  "user",
		Parts: []*genai.Part{{Text: prompt}},
	}}
	cfg := g.contentConfig()

	var cards []generation.Card
	err = generation.CallWithRetry(ctx, g.opts.Retry, log, func(ctx context.Context) error {
		callCtx := ctx
		if g.opts.RequestTimeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, g.opts.RequestTimeout)
			defer cancel()
		}

		resp, err := g.models.GenerateContent(callCtx, g.opts.Model, contents, cfg)
		if err != nil {
			return mapError(err)
		}

		text, err := responseText(resp)
		if err != nil {
			return err
		}

		cards, err = generation.ParseCards(text, req.NumCards)
		return err
	})
	if err != nil {
		log.ErrorContext(ctx, "gemini card generation failed",
			slog.Int("requested", req.NumCards),
			slog.String("error", err.Error()))
		return nil, err
	}

	log.InfoContext(ctx, "gemini card generation succeeded",
		slog.Int("requested", req.NumCards),
		slog.Int("generated", len(cards)))
	return cards, nil
}

func (g *Generator) contentConfig() *genai.GenerateContentConfig {
	temperature := g.opts.Temperature
	return &genai.GenerateContentConfig{
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: generation.SystemInstruction}},
		},
	}
}

var responseSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"question": {Type: genai.TypeString},
			"answer":   {Type: genai.TypeString},
		},
		Required: []string{"question", "answer"},
	},
}

// responseText rejects empty and blocked responses before parsing.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: content blocked by safety filters", generation.ErrContentBlocked)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}
	return text, nil
}

// Ping looks up the configured model, which checks both the API key and the
// model name.
func (g *Generator) Ping(ctx context.Context) error {
	if g.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.RequestTimeout)
		defer cancel()
	}
	if _, err := g.models.Get(ctx, g.opts.Model, nil); err != nil {
		return mapError(err)
	}
	return nil
}

// mapError marks rate limits, server errors and network failures as
// transient. Client errors and cancellation are permanent.
func mapError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out: %v", generation.ErrTransientFailure, err)
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500:
			return fmt.Errorf("%w: gemini API status %d: %v", generation.ErrTransientFailure, apiErr.Code, err)
		case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
			return fmt.Errorf("%w: gemini rejected credentials: %v", generation.ErrInvalidConfig, err)
		default:
			return fmt.Errorf("%w: gemini API status %d: %v", generation.ErrGenerationFailed, apiErr.Code, err)
		}
	}

	return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
}
