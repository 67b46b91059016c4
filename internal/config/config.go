package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
	SRS      SRSConfig      `mapstructure:"srs"      validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret                   string `mapstructure:"jwt_secret"                     validate:"required,min=32"`
	TokenLifetimeMinutes        int    `mapstructure:"token_lifetime_minutes"         validate:"gt=0,lte=1440"`
	RefreshTokenLifetimeMinutes int    `mapstructure:"refresh_token_lifetime_minutes" validate:"gt=0,lte=43200"`
	BCryptCost                  int    `mapstructure:"bcrypt_cost"                    validate:"omitempty,min=4,max=31"`
}

// LLMConfig selects and configures the card generation backend.
type LLMConfig struct {
	Provider              string  `mapstructure:"provider"                validate:"required,oneof=gemini ollama"`
	GeminiAPIKey          string  `mapstructure:"gemini_api_key"          validate:"required_if=Provider gemini"`
	GeminiModel           string  `mapstructure:"gemini_model"            validate:"required_if=Provider gemini"`
	OllamaBaseURL         string  `mapstructure:"ollama_base_url"         validate:"required_if=Provider ollama"`
	OllamaModel           string  `mapstructure:"ollama_model"            validate:"required_if=Provider ollama"`
	MaxRetries            int     `mapstructure:"max_retries"             validate:"gte=0,lte=10"`
	RetryDelaySeconds     int     `mapstructure:"retry_delay_seconds"     validate:"gte=0,lte=60"`
	RequestTimeoutSeconds int     `mapstructure:"request_timeout_seconds" validate:"gt=0"`
	Temperature           float32 `mapstructure:"temperature"             validate:"gte=0,lte=2"`
}

// SRSConfig tunes the spaced-repetition engine.
type SRSConfig struct {
	EasinessMode                  string  `mapstructure:"easiness_mode"                    validate:"required,oneof=legacy persisted"`
	DefaultAverageResponseSeconds float64 `mapstructure:"default_average_response_seconds" validate:"gt=0"`
	DefaultCardLimit              int     `mapstructure:"default_card_limit"               validate:"gt=0,lte=100"`
}
