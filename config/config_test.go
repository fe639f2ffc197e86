package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, BackendDeepL, cfg.Backend)
	assert.Equal(t, "https://api-free.deepl.com/v2/translate", cfg.DeepLURL)
	assert.Equal(t, 4, cfg.MaxRetries)
	assert.Equal(t, 1500*time.Millisecond, cfg.RetryBaseDelay)
	assert.Equal(t, 30*time.Second, cfg.RetryMaxDelay)
	assert.InDelta(t, 1.8, cfg.RetryMultiplier, 1e-9)
	assert.Equal(t, 50, cfg.BatchMaxUnits)
	assert.Equal(t, 30000, cfg.BatchMaxChars)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 0, cfg.RateLimitConfig().CharactersPerMinute)
	require.NoError(t, cfg.Validate())
}

func TestLoadFrom_Overrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"CATALOGTL_BACKEND":               "openai",
		"OPENAI_API_KEY":                  "sk-test",
		"OPENAI_MODEL":                    "gpt-4o",
		"DEEPL_API_KEY":                   "deepl-key",
		"CATALOGTL_MAX_RETRIES":           "2",
		"CATALOGTL_RETRY_BASE_DELAY":      "250ms",
		"CATALOGTL_BATCH_MAX_UNITS":       "10",
		"CATALOGTL_REQUESTS_PER_MINUTE":   "120",
		"CATALOGTL_CHARACTERS_PER_MINUTE": "50000",
		"LOG_FORMAT":                      "json",
	})
	require.NoError(t, err)

	assert.Equal(t, BackendOpenAI, cfg.Backend)
	assert.Equal(t, "sk-test", cfg.APIKey())
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, "json", cfg.LogFormat)

	retry := cfg.RetryConfig()
	assert.Equal(t, 2, retry.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, retry.BaseDelay)

	assert.Equal(t, 10, cfg.BatchLimits().MaxUnits)
	assert.Equal(t, 120, cfg.RateLimitConfig().RequestsPerMinute)
	assert.Equal(t, 50000, cfg.RateLimitConfig().CharactersPerMinute)
}

func TestLoadFrom_ParseError(t *testing.T) {
	_, err := LoadFrom(map[string]string{"CATALOGTL_MAX_RETRIES": "many"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParsingConfig)
}

func TestAPIKey_DeepL(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{"DEEPL_API_KEY": "abc:fx", "OPENAI_API_KEY": "sk"})
	require.NoError(t, err)
	assert.Equal(t, "abc:fx", cfg.APIKey())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"unknown backend", map[string]string{"CATALOGTL_BACKEND": "google"}},
		{"negative retries", map[string]string{"CATALOGTL_MAX_RETRIES": "-1"}},
		{"max below base", map[string]string{"CATALOGTL_RETRY_BASE_DELAY": "10s", "CATALOGTL_RETRY_MAX_DELAY": "1s"}},
		{"shrinking backoff", map[string]string{"CATALOGTL_RETRY_MULTIPLIER": "0.5"}},
		{"zero batch", map[string]string{"CATALOGTL_BATCH_MAX_CHARS": "0"}},
		{"zero rpm", map[string]string{"CATALOGTL_REQUESTS_PER_MINUTE": "0"}},
		{"negative cpm", map[string]string{"CATALOGTL_CHARACTERS_PER_MINUTE": "-5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFrom(tt.vars)
			require.NoError(t, err)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
