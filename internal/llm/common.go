package llm

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// temperature фиксирована, пользователю не настраивается
const temperature = 0.7

type ChatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatResponse struct {
	Choices []Choice  `json:"choices"`
	Error   *APIError `json:"error,omitempty"`
}

type Choice struct {
	Message Message `json:"message"`
}

// APIError - OpenAI-совместимый error envelope.
type APIError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
}

// NewChatRequest builds the two-message completion request: the system
// instruction first, then the user prompt verbatim.
func NewChatRequest(model, system, prompt string, maxTokens int) ChatRequest {
	return ChatRequest{
		Model: model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}
}

// Interpret classifies a completion response and extracts the result text.
// Ветки проверяются строго в этом порядке, первая сработавшая побеждает:
//
//	429 -> ErrRateLimit (с подсказкой из retry-after, если есть)
//	401 -> ErrNoAPIKey (ключ отклонён сервером)
//	другой не-2xx -> ErrAPI со статусом и телом ответа
//	2xx с error envelope -> ErrAPI с сообщением сервера
//	2xx без choices[0].message.content -> ErrInvalidResponse
//	иначе -> текст с обрезанными пробелами
//
// The function is pure: calling it twice on the same inputs yields the same
// outcome.
func Interpret(status int, retryAfter string, body []byte) (string, error) {
	if status == http.StatusTooManyRequests {
		if retryAfter != "" {
			return "", fmt.Errorf("%w: please try again in %s seconds", ErrRateLimit, retryAfter)
		}
		return "", fmt.Errorf("%w: please try again later", ErrRateLimit)
	}

	if status == http.StatusUnauthorized {
		return "", fmt.Errorf("%w: the server rejected the API key (status 401)", ErrNoAPIKey)
	}

	if status < 200 || status >= 300 {
		return "", fmt.Errorf("%w: status %d: %s", ErrAPI, status, string(body))
	}

	var resp ChatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: unmarshal response: %v", ErrAPI, err)
	}

	if resp.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrAPI, resp.Error.Message)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrInvalidResponse)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty completion content", ErrInvalidResponse)
	}

	return content, nil
}

// DoRequest executes the HTTP exchange and returns the raw body, status code
// and retry-after header. Transport-level failures, including a canceled
// context, classify as ErrNetwork; the cause stays reachable via errors.Is.
func DoRequest(client *http.Client, req *http.Request) (body []byte, status int, retryAfter string, err error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, "", fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, "", fmt.Errorf("%w: read response: %w", ErrNetwork, err)
	}

	return body, resp.StatusCode, resp.Header.Get("Retry-After"), nil
}
