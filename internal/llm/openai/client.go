package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/prompt-refactor-bot/internal/llm"
)

type Config struct {
	Timeout time.Duration
}

// Client talks to any OpenAI-compatible chat completions endpoint. The
// endpoint, model and key arrive with every call, the client itself only
// owns the HTTP transport.
type Client struct {
	client *http.Client
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &Client{
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

func (c *Client) Complete(ctx context.Context, cfg llm.RequestConfig, system, prompt string) (string, error) {
	// ключ проверяем до любых сетевых действий
	if strings.TrimSpace(cfg.APIKey) == "" {
		return "", fmt.Errorf("%w: API key is not set", llm.ErrNoAPIKey)
	}

	cfg = cfg.WithDefaults()

	req := llm.NewChatRequest(cfg.Model, system, prompt, cfg.MaxTokens)

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	respBody, statusCode, retryAfter, err := llm.DoRequest(c.client, httpReq)
	if err != nil {
		return "", err
	}

	if statusCode < 200 || statusCode >= 300 {
		c.logger.Warn("completion request failed",
			zap.Int("status", statusCode),
			zap.String("model", cfg.Model),
			zap.String("body", string(respBody)),
		)
	}

	return llm.Interpret(statusCode, retryAfter, respBody)
}

var _ llm.Client = (*Client)(nil)
