// Package server - HTTP-поверхность для интеграции с редактором: одна
// операция улучшения промпта плюс health и metrics.
package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/prompt-refactor-bot/internal/metrics"
	"github.com/kitbuilder587/prompt-refactor-bot/internal/service"
)

type Config struct {
	Addr string
}

type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

func New(cfg Config, refactorSvc service.RefactorService, logger *zap.Logger, m *metrics.Metrics) *Server {
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}

	h := &handler{
		refactor: refactorSvc,
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/refactor", h.handleRefactor)
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.Handle("/metrics", metrics.Handler())

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           withRequestID(withLogging(logger, mux)),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Run блокируется до отмены контекста, затем гасит сервер.
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		s.logger.Info("http server started", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("http server stopping")
	return s.httpServer.Shutdown(shutdownCtx)
}
