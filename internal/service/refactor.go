package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/prompt-refactor-bot/internal/cache"
	"github.com/kitbuilder587/prompt-refactor-bot/internal/domain"
	"github.com/kitbuilder587/prompt-refactor-bot/internal/llm"
	"github.com/kitbuilder587/prompt-refactor-bot/internal/metrics"
	"github.com/kitbuilder587/prompt-refactor-bot/internal/prompt"
	"github.com/kitbuilder587/prompt-refactor-bot/internal/repository"
)

type RefactorService interface {
	Refactor(ctx context.Context, req *domain.RefactorRequest) (*domain.RefactorResult, error)
	History(ctx context.Context, userID int64, limit int) ([]domain.Refactoring, error)
}

type RefactorConfig struct {
	CacheTTL     time.Duration
	HistoryLimit int
}

// RefactorDeps - зависимости сервиса. Settings вызывается на каждый запрос,
// поэтому смена ключа или модели подхватывается без рестарта.
type RefactorDeps struct {
	LLM      llm.Client
	Settings func() llm.RequestConfig
	Logger   *zap.Logger
	Config   RefactorConfig

	// опциональные компоненты
	History repository.RefactoringRepository
	Cache   cache.Cache
	Metrics *metrics.Metrics
}

type refactorService struct {
	llm      llm.Client
	settings func() llm.RequestConfig
	history  repository.RefactoringRepository
	cache    cache.Cache
	logger   *zap.Logger
	metrics  *metrics.Metrics
	config   RefactorConfig
}

func NewRefactorService(deps RefactorDeps) RefactorService {
	if deps.Config.CacheTTL == 0 {
		deps.Config.CacheTTL = time.Hour
	}
	if deps.Config.HistoryLimit == 0 {
		deps.Config.HistoryLimit = 20
	}

	return &refactorService{
		llm:      deps.LLM,
		settings: deps.Settings,
		history:  deps.History,
		cache:    deps.Cache,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
		config:   deps.Config,
	}
}

func (s *refactorService) Refactor(ctx context.Context, req *domain.RefactorRequest) (*domain.RefactorResult, error) {
	startTime := time.Now()

	if s.metrics != nil {
		s.metrics.IncRequestsInFlight()
		defer s.metrics.DecRequestsInFlight()
	}

	if err := req.Validate(); err != nil {
		if s.metrics != nil {
			s.metrics.RecordRequest(req.Surface, "validation_error", time.Since(startTime))
		}
		return nil, err
	}

	cfg := s.settings()

	s.logger.Info("refactoring prompt",
		zap.Int64("user_id", req.UserID),
		zap.String("surface", req.Surface),
		zap.String("model", cfg.WithDefaults().Model),
		zap.Int("prompt_length", len(req.Text)),
	)

	cacheKey := s.cacheKey(cfg, req.Text)
	if s.cache != nil {
		if cached, ok := s.cache.Get(cacheKey); ok {
			if output, ok := cached.(string); ok {
				if s.metrics != nil {
					s.metrics.RecordCacheHit()
					s.metrics.RecordRequest(req.Surface, "success", time.Since(startTime))
				}
				return &domain.RefactorResult{
					Output: output,
					Model:  cfg.WithDefaults().Model,
					Cached: true,
				}, nil
			}
		}
		if s.metrics != nil {
			s.metrics.RecordCacheMiss()
		}
	}

	llmStart := time.Now()
	output, err := s.llm.Complete(ctx, cfg, prompt.Instruction, req.Text)
	if s.metrics != nil {
		s.metrics.RecordLLMRequest(llmStatus(err), time.Since(llmStart))
	}
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordRequest(req.Surface, "error", time.Since(startTime))
		}
		return nil, err
	}

	result := &domain.RefactorResult{
		Output: output,
		Model:  cfg.WithDefaults().Model,
	}

	if s.cache != nil {
		s.cache.Set(cacheKey, output, s.config.CacheTTL)
	}

	// историю пишем в фоне, ответ пользователя не ждёт БД
	if s.history != nil {
		rec := &domain.Refactoring{
			UserID: req.UserID,
			Input:  req.Text,
			Output: output,
			Model:  result.Model,
		}
		go s.saveHistory(rec)
	}

	if s.metrics != nil {
		s.metrics.RecordRequest(req.Surface, "success", time.Since(startTime))
	}

	s.logger.Info("prompt refactored",
		zap.Int64("user_id", req.UserID),
		zap.Int("output_length", len(output)),
	)

	return result, nil
}

func (s *refactorService) History(ctx context.Context, userID int64, limit int) ([]domain.Refactoring, error) {
	if s.history == nil {
		return nil, nil
	}

	if limit <= 0 || limit > s.config.HistoryLimit {
		limit = s.config.HistoryLimit
	}

	return s.history.ListRecent(ctx, userID, limit)
}

func (s *refactorService) saveHistory(rec *domain.Refactoring) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.history.Create(ctx, rec); err != nil {
		s.logger.Warn("failed to save refactoring history",
			zap.Error(err),
			zap.Int64("user_id", rec.UserID),
		)
		if s.metrics != nil {
			s.metrics.RecordHistoryWrite("error")
		}
		return
	}

	if s.metrics != nil {
		s.metrics.RecordHistoryWrite("success")
	}
}

// ключ зависит от модели и текста: смена модели в настройках не должна
// отдавать результат старой
func (s *refactorService) cacheKey(cfg llm.RequestConfig, text string) string {
	h := sha256.New()
	h.Write([]byte(cfg.WithDefaults().Model))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

func llmStatus(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, llm.ErrNoAPIKey):
		return "no_api_key"
	case errors.Is(err, llm.ErrRateLimit):
		return "rate_limit"
	case errors.Is(err, llm.ErrInvalidResponse):
		return "invalid_response"
	case errors.Is(err, llm.ErrNetwork):
		return "network_error"
	default:
		return "api_error"
	}
}
