package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/kitbuilder587/prompt-refactor-bot/internal/domain"
	"github.com/kitbuilder587/prompt-refactor-bot/internal/llm"
)

type stubRefactorService struct {
	result *domain.RefactorResult
	err    error

	lastRequest *domain.RefactorRequest
}

func (s *stubRefactorService) Refactor(ctx context.Context, req *domain.RefactorRequest) (*domain.RefactorResult, error) {
	s.lastRequest = req
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubRefactorService) History(ctx context.Context, userID int64, limit int) ([]domain.Refactoring, error) {
	return nil, nil
}

func newTestHandler(svc *stubRefactorService) http.Handler {
	h := &handler{refactor: svc, logger: zap.NewNop()}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/refactor", h.handleRefactor)
	mux.HandleFunc("/healthz", h.handleHealth)
	return withRequestID(withLogging(zap.NewNop(), mux))
}

func postRefactor(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/refactor", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleRefactor_Success(t *testing.T) {
	svc := &stubRefactorService{
		result: &domain.RefactorResult{Output: "Improved", Model: "gpt-4"},
	}
	handler := newTestHandler(svc)

	rec := postRefactor(t, handler, `{"text":"raw prompt","user_id":7}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp refactorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Refactored != "Improved" || resp.Model != "gpt-4" {
		t.Errorf("response = %+v, want Improved/gpt-4", resp)
	}

	if svc.lastRequest.Text != "raw prompt" {
		t.Errorf("service got text %q, want raw prompt", svc.lastRequest.Text)
	}
	if svc.lastRequest.UserID != 7 {
		t.Errorf("service got user_id %d, want 7", svc.lastRequest.UserID)
	}
	if svc.lastRequest.Surface != "http" {
		t.Errorf("service got surface %q, want http", svc.lastRequest.Surface)
	}

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response should carry X-Request-ID")
	}
}

func TestHandleRefactor_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"empty prompt", domain.ErrEmptyPrompt, http.StatusBadRequest, "bad_request"},
		{"too long", domain.ErrPromptTooLong, http.StatusBadRequest, "bad_request"},
		{"no api key", llm.ErrNoAPIKey, http.StatusUnauthorized, "no_api_key"},
		{"rate limit", llm.ErrRateLimit, http.StatusTooManyRequests, "rate_limit"},
		{"invalid response", llm.ErrInvalidResponse, http.StatusBadGateway, "invalid_response"},
		{"network", llm.ErrNetwork, http.StatusBadGateway, "network_error"},
		{"api error", llm.ErrAPI, http.StatusBadGateway, "api_error"},
		{"unknown", context.DeadlineExceeded, http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(&stubRefactorService{err: tt.err})

			rec := postRefactor(t, handler, `{"text":"prompt"}`)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var resp errorResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if resp.Error.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", resp.Error.Kind, tt.wantKind)
			}
			if resp.Error.Message == "" {
				t.Error("error message should not be empty")
			}
		})
	}
}

func TestHandleRefactor_BadJSON(t *testing.T) {
	handler := newTestHandler(&stubRefactorService{})

	rec := postRefactor(t, handler, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandleRefactor_MethodNotAllowed(t *testing.T) {
	handler := newTestHandler(&stubRefactorService{})

	req := httptest.NewRequest(http.MethodGet, "/api/refactor", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHandleHealth(t *testing.T) {
	handler := newTestHandler(&stubRefactorService{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status = %q, want ok", resp["status"])
	}
}
