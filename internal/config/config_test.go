package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almasriprojects/QuranAnalyzer/internal/domain"
)

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "  sk-test-key  ")

	c, err := LoadFiles()
	require.NoError(t, err)

	assert.Equal(t, "sk-test-key", c.OpenAIAPIKey)
	assert.Equal(t, ":8088", c.HTTPAddr)
	assert.Equal(t, "gpt-4", c.OpenAIModel)
	assert.InDelta(t, 0.2, c.OpenAITemperature, 1e-9)
	assert.Equal(t, 200, c.OpenAIMaxTokens)
	assert.Equal(t, "https://api.openai.com/v1", c.OpenAIBaseURL)
	assert.Equal(t, 10*time.Second, c.LLMConnectTimeout)
	assert.Equal(t, 30*time.Second, c.LLMReadTimeout)
	assert.Equal(t, 30*time.Second, c.LLMWriteTimeout)
	assert.Equal(t, 10*time.Second, c.LLMPoolTimeout)
	assert.Equal(t, 30*time.Second, c.LLMRequestTimeout)
	assert.Equal(t, 8, c.BulkConcurrency)
	assert.Equal(t, []string{"*"}, c.CORSAllowedOrigins)
	assert.Equal(t, slog.LevelInfo, c.LogLevel)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-x")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("OPENAI_TEMPERATURE", "0.7")
	t.Setenv("OPENAI_MAX_TOKENS", "512")
	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LLM_READ_TIMEOUT", "45s")
	t.Setenv("BULK_CONCURRENCY", "0")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	c, err := LoadFiles()
	require.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", c.OpenAIModel)
	assert.InDelta(t, 0.7, c.OpenAITemperature, 1e-9)
	assert.Equal(t, 512, c.OpenAIMaxTokens)
	assert.Equal(t, "127.0.0.1:9000", c.HTTPAddr)
	assert.Equal(t, slog.LevelDebug, c.LogLevel)
	assert.Equal(t, 45*time.Second, c.LLMReadTimeout)
	assert.Equal(t, 0, c.BulkConcurrency)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORSAllowedOrigins)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	unsetEnv(t, "OPENAI_API_KEY")

	_, err := LoadFiles()
	require.Error(t, err)
}

func TestLoad_BadAPIKeyPrefix(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "pk-not-openai")

	_, err := LoadFiles()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidAPIKey)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"OPENAI_TEMPERATURE", "3"},
		{"OPENAI_TEMPERATURE", "warm"},
		{"OPENAI_MAX_TOKENS", "0"},
		{"BULK_CONCURRENCY", "-1"},
		{"LOG_LEVEL", "verbose"},
		{"LLM_CONNECT_TIMEOUT", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", "sk-x")
			t.Setenv(tt.key, tt.value)

			_, err := LoadFiles()
			assert.Error(t, err)
		})
	}
}

func TestLoad_DotenvFile(t *testing.T) {
	unsetEnv(t, "OPENAI_API_KEY")
	unsetEnv(t, "OPENAI_MAX_TOKENS")
	t.Setenv("OPENAI_MODEL", "from-env")

	path := filepath.Join(t.TempDir(), ".env")
	content := "OPENAI_API_KEY=sk-from-file\nOPENAI_MAX_TOKENS=300\nOPENAI_MODEL=from-file\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := LoadFiles(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "sk-from-file", c.OpenAIAPIKey)
	assert.Equal(t, 300, c.OpenAIMaxTokens)
	assert.Equal(t, "from-env", c.OpenAIModel, "real environment wins over the file")
}
