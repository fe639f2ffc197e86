// Package config loads runtime settings and service credentials from the
// environment. A .env file in the working directory is read first when
// present; variables already set in the environment take precedence.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/ZaguanLabs/catalogtl"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into Config.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrInvalidConfig is returned by Validate.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Backend names accepted in CATALOGTL_BACKEND and --backend.
const (
	BackendDeepL  = "deepl"
	BackendOpenAI = "openai"
)

// Config holds every setting read from the environment.
type Config struct {
	Backend string `env:"CATALOGTL_BACKEND" envDefault:"deepl"`

	DeepLAPIKey string `env:"DEEPL_API_KEY"`
	DeepLURL    string `env:"DEEPL_API_URL" envDefault:"https://api-free.deepl.com/v2/translate"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL"`
	OpenAIModel   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	MaxRetries      int           `env:"CATALOGTL_MAX_RETRIES" envDefault:"4"`
	RetryBaseDelay  time.Duration `env:"CATALOGTL_RETRY_BASE_DELAY" envDefault:"1500ms"`
	RetryMaxDelay   time.Duration `env:"CATALOGTL_RETRY_MAX_DELAY" envDefault:"30s"`
	RetryMultiplier float64       `env:"CATALOGTL_RETRY_MULTIPLIER" envDefault:"1.8"`

	BatchMaxUnits int `env:"CATALOGTL_BATCH_MAX_UNITS" envDefault:"50"`
	BatchMaxChars int `env:"CATALOGTL_BATCH_MAX_CHARS" envDefault:"30000"`

	RequestsPerMinute   int           `env:"CATALOGTL_REQUESTS_PER_MINUTE" envDefault:"60"`
	CharactersPerMinute int           `env:"CATALOGTL_CHARACTERS_PER_MINUTE" envDefault:"0"` // 0 = unlimited
	HTTPTimeout         time.Duration `env:"CATALOGTL_HTTP_TIMEOUT" envDefault:"60s"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load reads .env (if any) and then the process environment.
func Load() (*Config, error) {
	// Ignore errors - the .env file might not exist and that's ok
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	return &cfg, nil
}

// LoadFrom parses vars instead of the process environment.
func LoadFrom(vars map[string]string) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	return &cfg, nil
}

// Validate rejects settings no run could work with.
func (c *Config) Validate() error {
	switch {
	case c.Backend != BackendDeepL && c.Backend != BackendOpenAI:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Backend)
	case c.MaxRetries < 0:
		return fmt.Errorf("%w: max retries must not be negative", ErrInvalidConfig)
	case c.RetryBaseDelay <= 0 || c.RetryMaxDelay < c.RetryBaseDelay:
		return fmt.Errorf("%w: retry delays must satisfy 0 < base <= max", ErrInvalidConfig)
	case c.RetryMultiplier < 1:
		return fmt.Errorf("%w: retry multiplier must be at least 1", ErrInvalidConfig)
	case c.BatchMaxUnits <= 0 || c.BatchMaxChars <= 0:
		return fmt.Errorf("%w: batch limits must be positive", ErrInvalidConfig)
	case c.RequestsPerMinute <= 0:
		return fmt.Errorf("%w: requests per minute must be positive", ErrInvalidConfig)
	case c.CharactersPerMinute < 0:
		return fmt.Errorf("%w: characters per minute must not be negative", ErrInvalidConfig)
	}
	return nil
}

// APIKey returns the credential for the configured backend.
func (c *Config) APIKey() string {
	if c.Backend == BackendOpenAI {
		return c.OpenAIAPIKey
	}
	return c.DeepLAPIKey
}

// RetryConfig returns the backoff settings for the translator.
func (c *Config) RetryConfig() catalogtl.RetryConfig {
	return catalogtl.RetryConfig{
		MaxRetries: c.MaxRetries,
		BaseDelay:  c.RetryBaseDelay,
		MaxDelay:   c.RetryMaxDelay,
		Multiplier: c.RetryMultiplier,
	}
}

// BatchLimits returns the request size limits.
func (c *Config) BatchLimits() catalogtl.BatchLimits {
	return catalogtl.BatchLimits{
		MaxUnits: c.BatchMaxUnits,
		MaxChars: c.BatchMaxChars,
	}
}

// RateLimitConfig returns the client-side request pacing.
func (c *Config) RateLimitConfig() catalogtl.RateLimitConfig {
	return catalogtl.RateLimitConfig{
		RequestsPerMinute:   c.RequestsPerMinute,
		CharactersPerMinute: c.CharactersPerMinute,
	}
}
