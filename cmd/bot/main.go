package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kitbuilder587/prompt-refactor-bot/internal/cache/memory"
	"github.com/kitbuilder587/prompt-refactor-bot/internal/config"
	"github.com/kitbuilder587/prompt-refactor-bot/internal/llm/openai"
	"github.com/kitbuilder587/prompt-refactor-bot/internal/metrics"
	"github.com/kitbuilder587/prompt-refactor-bot/internal/repository/postgres"
	"github.com/kitbuilder587/prompt-refactor-bot/internal/server"
	"github.com/kitbuilder587/prompt-refactor-bot/internal/service"
	"github.com/kitbuilder587/prompt-refactor-bot/internal/telegram"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		zap.NewExample().Fatal("failed to create logger", zap.Error(err))
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.New(ctx, cfg.Database.URL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		logger.Fatal("failed to apply schema", zap.Error(err))
	}

	m := metrics.New()

	resultCache := memory.New()
	defer resultCache.Stop()

	refactorSvc := service.NewRefactorService(service.RefactorDeps{
		LLM:      openai.New(openai.Config{Timeout: cfg.LLM.Timeout}, logger),
		Settings: config.LLMSettings,
		History:  postgres.NewRefactoringRepo(db),
		Cache:    resultCache,
		Logger:   logger,
		Metrics:  m,
		Config: service.RefactorConfig{
			CacheTTL:     cfg.Cache.TTL,
			HistoryLimit: cfg.History.MaxLimit,
		},
	})

	userSvc := service.NewUserService(postgres.NewUserRepo(db), logger)

	bot, err := telegram.New(telegram.BotConfig{
		Token:             cfg.Telegram.Token,
		Debug:             cfg.Telegram.Debug,
		RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
		HistoryLimit:      cfg.History.DefaultLimit,
	}, userSvc, refactorSvc, logger, m)
	if err != nil {
		logger.Fatal("failed to create bot", zap.Error(err))
	}

	httpServer := server.New(server.Config{Addr: cfg.HTTP.Addr}, refactorSvc, logger, m)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return bot.Run(ctx)
	})
	g.Go(func() error {
		return httpServer.Run(ctx)
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		logger.Error("service stopped with error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("service stopped")
}
