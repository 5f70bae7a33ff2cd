package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/Shyngys777/temporun/internal/app"
	"github.com/Shyngys777/temporun/internal/catalog"
	catalogdb "github.com/Shyngys777/temporun/internal/catalog/db"
	cataloghttp "github.com/Shyngys777/temporun/internal/catalog/http"
	"github.com/Shyngys777/temporun/internal/chat"
	"github.com/Shyngys777/temporun/internal/finder"
	"github.com/Shyngys777/temporun/internal/observability"
	"github.com/Shyngys777/temporun/internal/platform/cache"
	"github.com/Shyngys777/temporun/internal/platform/db"
	"github.com/Shyngys777/temporun/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	// Missing .env is fine; variables may come from the environment.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	// A dead Redis only costs the read cache, so start degraded.
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	catalogRepo := catalogdb.New(pool)
	catalogService := catalog.NewService(catalogRepo, logger)
	catalogCache := catalog.NewCache(redisClient, cfg.CacheTTL)
	catalogHandler := cataloghttp.NewHandler(logger, catalogService, catalogCache)

	finderService := finder.NewService(catalogService)
	finderHandler := finder.NewHandler(logger, finderService)

	chatResponder := chat.NewResponder(catalogService)
	chatHandler := chat.NewHandler(logger, chatResponder, chat.NewStore())

	metrics := observability.NewMetrics()

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		CatalogHandler: catalogHandler,
		FinderHandler:  finderHandler,
		ChatHandler:    chatHandler,
		JobHandler:     jobHandler,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", slog.Any("error", err))
	}
}
