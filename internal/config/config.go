package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/almasriprojects/QuranAnalyzer/internal/domain"
)

// APIKeyPrefix is the prefix every OpenAI secret key carries.
const APIKeyPrefix = "sk-"

type Config struct {
	HTTPAddr           string        `env:"HTTP_ADDR"             env-default:":8088"`
	LogLevelRaw        string        `env:"LOG_LEVEL"             env-default:"info"`
	OpenAIAPIKey       string        `env:"OPENAI_API_KEY"        env-required:"true"`
	OpenAIBaseURL      string        `env:"OPENAI_BASE_URL"       env-default:"https://api.openai.com/v1"`
	OpenAIModel        string        `env:"OPENAI_MODEL"          env-default:"gpt-4"`
	OpenAITemperature  float64       `env:"OPENAI_TEMPERATURE"    env-default:"0.2"`
	OpenAIMaxTokens    int           `env:"OPENAI_MAX_TOKENS"     env-default:"200"`
	LLMConnectTimeout  time.Duration `env:"LLM_CONNECT_TIMEOUT"   env-default:"10s"`
	LLMReadTimeout     time.Duration `env:"LLM_READ_TIMEOUT"      env-default:"30s"`
	LLMWriteTimeout    time.Duration `env:"LLM_WRITE_TIMEOUT"     env-default:"30s"`
	LLMPoolTimeout     time.Duration `env:"LLM_POOL_TIMEOUT"      env-default:"10s"`
	LLMRequestTimeout  time.Duration `env:"LLM_REQUEST_TIMEOUT"   env-default:"30s"`
	BulkConcurrency    int           `env:"BULK_CONCURRENCY"      env-default:"8"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS"  env-default:"*" env-separator:","`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT"      env-default:"10s"`

	// LogLevel is parsed from LogLevelRaw by Load.
	LogLevel slog.Level `env:"-"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first; variables already set in the environment win.
func Load() (Config, error) {
	return LoadFiles(".env")
}

// LoadFiles is Load with explicit dotenv files. Missing files are ignored.
func LoadFiles(dotenv ...string) (Config, error) {
	for _, f := range dotenv {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var c Config
	if err := cleanenv.ReadEnv(&c); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate normalizes and checks the loaded values.
func (c *Config) Validate() error {
	c.OpenAIAPIKey = strings.TrimSpace(c.OpenAIAPIKey)
	if !strings.HasPrefix(c.OpenAIAPIKey, APIKeyPrefix) {
		return fmt.Errorf("OPENAI_API_KEY: %w", domain.ErrInvalidAPIKey)
	}

	if c.OpenAITemperature < 0 || c.OpenAITemperature > 2 {
		return fmt.Errorf("invalid OPENAI_TEMPERATURE %v: must be between 0 and 2", c.OpenAITemperature)
	}
	if c.OpenAIMaxTokens <= 0 {
		return fmt.Errorf("invalid OPENAI_MAX_TOKENS %d: must be positive", c.OpenAIMaxTokens)
	}
	if c.BulkConcurrency < 0 {
		return fmt.Errorf("invalid BULK_CONCURRENCY %d: must not be negative", c.BulkConcurrency)
	}

	level, err := parseLogLevel(c.LogLevelRaw)
	if err != nil {
		return err
	}
	c.LogLevel = level

	origins := c.CORSAllowedOrigins[:0]
	for _, o := range c.CORSAllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	c.CORSAllowedOrigins = origins

	return nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
