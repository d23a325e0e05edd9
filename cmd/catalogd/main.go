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

	"github.com/odyssey-erp/productdesk/internal/app"
	"github.com/odyssey-erp/productdesk/internal/catalog/api"
	"github.com/odyssey-erp/productdesk/internal/observability"
	"github.com/odyssey-erp/productdesk/internal/platform/cache"
	"github.com/odyssey-erp/productdesk/internal/platform/db"
	"github.com/odyssey-erp/productdesk/internal/shared"
	"github.com/odyssey-erp/productdesk/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping product service startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)
	if cfg.CatalogAPIKeyHash == "" {
		logger.Warn("CATALOG_API_KEY_HASH is empty, /products accepts unauthenticated requests")
	}

	pool, err := db.New(ctx, cfg.PGDSN, db.Options{MaxConns: cfg.PGMaxConns})
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	// The list cache is optional; the service reads through to postgres without it.
	var listCache *api.ListCache
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable, product list cache disabled", slog.Any("error", err))
	} else {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
		listCache = api.NewListCache(redisClient, cfg.CatalogCacheTTL)
	}

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr}
	jobClient, err := jobs.NewClient(redisOpts)
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	inspector := asynq.NewInspector(redisOpts)
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()

	service := api.NewService(api.ServiceConfig{
		Repo:        api.NewRepository(pool),
		Cache:       listCache,
		Publisher:   jobClient,
		Idempotency: shared.NewIdempotencyStore(pool),
		Logger:      logger,
	})

	router := app.NewAPIRouter(app.APIRouterParams{
		Logger:         logger,
		Config:         cfg,
		ProductHandler: api.NewHandler(logger, service),
		JobHandler:     jobs.NewHandler(inspector, logger),
		Metrics:        observability.NewMetrics(),
		DB:             pool,
	})

	server := &http.Server{
		Addr:         cfg.CatalogAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting product service", slog.String("addr", cfg.CatalogAddr))
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
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
