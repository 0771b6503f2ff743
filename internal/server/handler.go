package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/prompt-refactor-bot/internal/domain"
	"github.com/kitbuilder587/prompt-refactor-bot/internal/llm"
	"github.com/kitbuilder587/prompt-refactor-bot/internal/service"
)

type handler struct {
	refactor service.RefactorService
	logger   *zap.Logger
}

type refactorRequest struct {
	Text   string `json:"text"`
	UserID int64  `json:"user_id,omitempty"`
}

type refactorResponse struct {
	Refactored string `json:"refactored"`
	Model      string `json:"model"`
	Cached     bool   `json:"cached"`
	ElapsedMs  int64  `json:"elapsed_ms"`
}

type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

func (h *handler) handleRefactor(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}

	var req refactorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}

	start := time.Now()
	result, err := h.refactor.Refactor(r.Context(), &domain.RefactorRequest{
		UserID:  req.UserID,
		Text:    req.Text,
		Surface: "http",
	})
	if err != nil {
		status, kind := classifyError(err)
		writeError(w, status, kind, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(refactorResponse{
		Refactored: result.Output,
		Model:      result.Model,
		Cached:     result.Cached,
		ElapsedMs:  time.Since(start).Milliseconds(),
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// classifyError переводит таксономию ошибок в HTTP-статусы для клиента
// редактора.
func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrEmptyPrompt), errors.Is(err, domain.ErrPromptTooLong):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, llm.ErrNoAPIKey):
		return http.StatusUnauthorized, "no_api_key"
	case errors.Is(err, llm.ErrRateLimit):
		return http.StatusTooManyRequests, "rate_limit"
	case errors.Is(err, llm.ErrInvalidResponse):
		return http.StatusBadGateway, "invalid_response"
	case errors.Is(err, llm.ErrNetwork):
		return http.StatusBadGateway, "network_error"
	case errors.Is(err, llm.ErrAPI):
		return http.StatusBadGateway, "api_error"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeError(w http.ResponseWriter, status int, kind, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: errorDetail{Message: msg, Kind: kind}})
}
