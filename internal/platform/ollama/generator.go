package ollama

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/flashlearn/internal/config"
	"github.com/phrazzld/flashlearn/internal/generation"
	"github.com/phrazzld/flashlearn/internal/platform/logger"
	openai "github.com/sashabaranov/go-openai"
)

// Ollama ignores the key, but the client always sends one.
const placeholderAPIKey = "ollama"

// Options configure the generator.
type Options struct {
	BaseURL        string
	Model          string
	Temperature    float32
	Retry          generation.RetryPolicy
	RequestTimeout time.Duration
}

// OptionsFromConfig converts the application LLM configuration.
func OptionsFromConfig(cfg config.LLMConfig) Options {
	return Options{
		BaseURL:     cfg.OllamaBaseURL,
		Model:       cfg.OllamaModel,
		Temperature: cfg.Temperature,
		Retry: generation.RetryPolicy{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  time.Duration(cfg.RetryDelaySeconds) * time.Second,
		},
		RequestTimeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
	}
}

// Generator implements generation.Generator and generation.Pinger.
type Generator struct {
	logger *slog.Logger
	client *openai.Client
	opts   Options
}

var (
	_ generation.Generator = (*Generator)(nil)
	_ generation.Pinger    = (*Generator)(nil)
)

// NewGenerator builds a client for the Ollama server at opts.BaseURL.
// The OpenAI-compatible API lives under /v1 on that server.
func NewGenerator(log *slog.Logger, opts Options) (*Generator, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("%w: ollama base URL cannot be empty", generation.ErrInvalidConfig)
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("%w: ollama model cannot be empty", generation.ErrInvalidConfig)
	}
	if log == nil {
		log = slog.Default()
	}

	cfg := openai.DefaultConfig(placeholderAPIKey)
	cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/") + "/v1"

	return &Generator{
		logger: log.With(slog.String("component", "ollama_generator"), slog.String("model", opts.Model)),
		client: openai.NewClientWithConfig(cfg),
		opts:   opts,
	}, nil
}

// GenerateCards asks the model for req.NumCards flashcards.
func (g *Generator) GenerateCards(ctx context.Context, req generation.Request) ([]generation.Card, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	prompt, err := generation.BuildPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
	}

	chatReq := openai.ChatCompletionRequest{
		Model: g.opts.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: generation.SystemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: g.opts.Temperature,
	}

	var cards []generation.Card
	err = generation.CallWithRetry(ctx, g.opts.Retry, log, func(ctx context.Context) error {
		callCtx := ctx
		if g.opts.RequestTimeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, g.opts.RequestTimeout)
			defer cancel()
		}

		resp, err := g.client.CreateChatCompletion(callCtx, chatReq)
		if err != nil {
			return mapError(err)
		}
		if len(resp.Choices) == 0 {
			return fmt.Errorf("%w: no choices in response", generation.ErrInvalidResponse)
		}
		if resp.Choices[0].FinishReason == openai.FinishReasonContentFilter {
			return fmt.Errorf("%w: content filtered", generation.ErrContentBlocked)
		}

		cards, err = generation.ParseCards(resp.Choices[0].Message.Content, req.NumCards)
		return err
	})
	if err != nil {
		log.ErrorContext(ctx, "ollama card generation failed",
			slog.Int("requested", req.NumCards),
			slog.String("error", err.Error()))
		return nil, err
	}

	log.InfoContext(ctx, "ollama card generation succeeded",
		slog.Int("requested", req.NumCards),
		slog.Int("generated", len(cards)))
	return cards, nil
}

// Ping lists the server's models to check that it is reachable.
func (g *Generator) Ping(ctx context.Context) error {
	if _, err := g.client.ListModels(ctx); err != nil {
		return fmt.Errorf("ollama unreachable: %w", mapError(err))
	}
	return nil
}

func statusCode(err error) (int, bool) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode, true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode, true
	}
	return 0, false
}

// mapError treats 429, 5xx and network failures as transient. A 404
// usually means the model has not been pulled.
func mapError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out: %v", generation.ErrTransientFailure, err)
	}

	code, ok := statusCode(err)
	if !ok {
		return fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}

	switch {
	case code == http.StatusTooManyRequests || code >= 500:
		return fmt.Errorf("%w: ollama status %d: %v", generation.ErrTransientFailure, code, err)
	case code == http.StatusNotFound:
		return fmt.Errorf("%w: model not available: %v", generation.ErrInvalidConfig, err)
	default:
		return fmt.Errorf("%w: ollama status %d: %v", generation.ErrGenerationFailed, code, err)
	}
}
