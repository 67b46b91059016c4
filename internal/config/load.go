package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	envPrefix = "FLASHLEARN"

	// ConfigFileEnv names the environment variable holding an explicit config file path.
	ConfigFileEnv = "FLASHLEARN_CONFIG"
)

var defaults = map[string]any{
	"server.port":                          8080,
	"server.log_level":                     "info",
	"server.shutdown_timeout_seconds":      10,
	"auth.token_lifetime_minutes":          60,
	"auth.refresh_token_lifetime_minutes":  10080,
	"auth.bcrypt_cost":                     10,
	"llm.provider":                         "gemini",
	"llm.gemini_model":                     "gemini-2.0-flash",
	"llm.ollama_base_url":                  "http://localhost:11434",
	"llm.ollama_model":                     "llama3.2",
	"llm.max_retries":                      3,
	"llm.retry_delay_seconds":              2,
	"llm.request_timeout_seconds":          60,
	"llm.temperature":                      0.7,
	"srs.easiness_mode":                    "legacy",
	"srs.default_average_response_seconds": 30.0,
	"srs.default_card_limit":               10,
}

// Keys without a default are not seen by AutomaticEnv during Unmarshal, so
// they are bound explicitly.
var requiredKeys = []string{
	"database.url",
	"auth.jwt_secret",
	"llm.gemini_api_key",
}

// Load configuration from environment variables and optionally a config file.
// The file is config.yaml in the working directory, or the path in
// FLASHLEARN_CONFIG. Environment variables take precedence over values from
// the file. Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFromFile(os.Getenv(ConfigFileEnv))
}

// LoadFromFile is Load with an explicit config file path. An empty path
// looks for an optional config.yaml in the working directory.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range requiredKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("error binding environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
