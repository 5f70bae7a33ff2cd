package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/Shyngys777/temporun/internal/app"
	"github.com/Shyngys777/temporun/internal/catalog"
	catalogdb "github.com/Shyngys777/temporun/internal/catalog/db"
	"github.com/Shyngys777/temporun/internal/platform/cache"
	"github.com/Shyngys777/temporun/internal/platform/db"
	"github.com/Shyngys777/temporun/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

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
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	// Warmup runs are retried anyway, so a dead Redis only delays them.
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

	warmupJob := jobs.NewCatalogWarmupJob(catalogService, catalogCache, logger, nil)

	warmupTask, err := jobs.NewCatalogWarmupTask(jobs.CatalogWarmupPayload{})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	warmupSpec := "@every 5m"
	if cfg.CacheWarmupEvery > 0 {
		warmupSpec = "@every " + cfg.CacheWarmupEvery.String()
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts:   asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:      logger,
		Concurrency: cfg.WorkerConcurrency,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskCatalogWarmup, Handler: warmupJob.Handle},
			{Type: jobs.TaskCatalogCacheBump, Handler: warmupJob.HandleCacheBump},
		},
		Cron: []jobs.CronRegistration{
			{Spec: warmupSpec, Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
