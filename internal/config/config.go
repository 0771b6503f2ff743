package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/kitbuilder587/prompt-refactor-bot/internal/llm"
)

var (
	ErrMissingToken = errors.New("TELEGRAM_BOT_TOKEN is required")
	ErrMissingDB    = errors.New("DATABASE_URL is required")
)

type Config struct {
	Telegram  TelegramConfig
	Database  DatabaseConfig
	LLM       LLMConfig
	HTTP      HTTPConfig
	Log       LogConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	History   HistoryConfig
}

type TelegramConfig struct {
	Token string
	Debug bool
}

type DatabaseConfig struct {
	URL string
}

// LLMConfig - только транспортные настройки. Ключ, endpoint и модель
// нарочно не фиксируются на старте: см. LLMSettings.
type LLMConfig struct {
	Timeout time.Duration
}

type HTTPConfig struct {
	Addr string
}

type LogConfig struct {
	Level string
}

type CacheConfig struct {
	TTL time.Duration
}

type RateLimitConfig struct {
	RequestsPerMinute int
}

type HistoryConfig struct {
	DefaultLimit int
	MaxLimit     int
}

func Load() (*Config, error) {
	cfg := &Config{
		Telegram: TelegramConfig{
			Token: os.Getenv("TELEGRAM_BOT_TOKEN"),
			Debug: getEnvOrDefault("TELEGRAM_DEBUG", "") == "true",
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		LLM: LLMConfig{
			Timeout: time.Duration(getEnvIntOrDefault("LLM_TIMEOUT_SEC", 60)) * time.Second,
		},
		HTTP: HTTPConfig{
			Addr: getEnvOrDefault("HTTP_ADDR", ":8080"),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
		Cache: CacheConfig{
			TTL: time.Duration(getEnvIntOrDefault("CACHE_TTL_SEC", 3600)) * time.Second,
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvIntOrDefault("RATE_LIMIT_PER_MINUTE", 10),
		},
		History: HistoryConfig{
			DefaultLimit: getEnvIntOrDefault("HISTORY_DEFAULT_LIMIT", 5),
			MaxLimit:     getEnvIntOrDefault("HISTORY_MAX_LIMIT", 20),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return ErrMissingToken
	}
	if c.Database.URL == "" {
		return ErrMissingDB
	}
	return nil
}

// LLMSettings reads the completion settings from the environment on every
// call. Отсутствующий ключ не ошибка конфигурации: его отловит pre-flight
// проверка при первом запросе, а выставить ключ можно без рестарта.
func LLMSettings() llm.RequestConfig {
	return llm.RequestConfig{
		APIKey:    os.Getenv("OPENAI_API_KEY"),
		Endpoint:  getEnvOrDefault("OPENAI_ENDPOINT", llm.DefaultEndpoint),
		Model:     getEnvOrDefault("OPENAI_MODEL", llm.DefaultModel),
		MaxTokens: getEnvIntOrDefault("OPENAI_MAX_TOKENS", llm.DefaultMaxTokens),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
