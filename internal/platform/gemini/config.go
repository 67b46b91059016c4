package gemini

import (
	"fmt"
	"time"

	"github.com/phrazzld/flashlearn/internal/config"
	"github.com/phrazzld/flashlearn/internal/generation"
)

// Options are the settings the generator reads from config.LLMConfig.
type Options struct {
	APIKey         string
	Model          string
	Temperature    float32
	Retry          generation.RetryPolicy
	RequestTimeout time.Duration
}

// OptionsFromConfig converts the application LLM configuration.
func OptionsFromConfig(cfg config.LLMConfig) Options {
	return Options{
		APIKey:      cfg.GeminiAPIKey,
		Model:       cfg.GeminiModel,
		Temperature: cfg.Temperature,
		Retry: generation.RetryPolicy{
			MaxRetries: cfg.MaxRetries,
			BaseDelay:  time.Duration(cfg.RetryDelaySeconds) * time.Second,
		},
		RequestTimeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
	}
}

func (o Options) validate() error {
	if o.APIKey == "" {
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if o.Model == "" {
		return fmt.Errorf("%w: gemini model cannot be empty", generation.ErrInvalidConfig)
	}
	return nil
}
