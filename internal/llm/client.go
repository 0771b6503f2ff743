package llm

import (
	"context"
	"errors"
)

// Закрытый набор ошибок LLM-слоя. Детали добавляются через %w-обёртки,
// уже классифицированная ошибка повторно не оборачивается.
var (
	// ErrNoAPIKey covers both an unset key (pre-flight) and a key the
	// server rejected with 401. The wrapped message tells them apart.
	ErrNoAPIKey        = errors.New("api key missing or rejected")
	ErrRateLimit       = errors.New("rate limit exceeded")
	ErrAPI             = errors.New("api request failed")
	ErrInvalidResponse = errors.New("invalid completion response")
	ErrNetwork         = errors.New("network failure")
)

const (
	DefaultEndpoint  = "https://api.openai.com/v1/chat/completions"
	DefaultModel     = "gpt-4"
	DefaultMaxTokens = 2048
)

// RequestConfig - настройки одного запроса. Callers re-read it from their
// settings source on every call, so a changed key or model takes effect on
// the next request without restart.
type RequestConfig struct {
	APIKey    string
	Endpoint  string
	Model     string
	MaxTokens int
}

// WithDefaults returns a copy with unset fields filled in. APIKey is left
// as-is: an empty key is a per-call error, not something to default.
func (c RequestConfig) WithDefaults() RequestConfig {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	return c
}

type Client interface {
	Complete(ctx context.Context, cfg RequestConfig, system, prompt string) (string, error)
}
