package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/odyssey-erp/productdesk/internal/app"
	"github.com/odyssey-erp/productdesk/internal/catalog"
	"github.com/odyssey-erp/productdesk/internal/catalog/client"
	"github.com/odyssey-erp/productdesk/internal/catalog/controller"
	"github.com/odyssey-erp/productdesk/internal/console"
	"github.com/odyssey-erp/productdesk/internal/observability"
	"github.com/odyssey-erp/productdesk/internal/platform/cache"
	"github.com/odyssey-erp/productdesk/internal/shared"
	"github.com/odyssey-erp/productdesk/internal/view"
	"github.com/odyssey-erp/productdesk/report"
)

const sessionCookie = "pd_session"

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping console startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	if err := cfg.RequireSessionSecrets(); err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, sessionCookie, cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("load templates", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	remote := client.New(client.Config{
		BaseURL: cfg.CatalogURL,
		APIKey:  cfg.CatalogAPIKey,
		Timeout: cfg.CatalogTimeout,
		Logger:  logger,
		Metrics: metrics,
	})
	sorter := catalog.NewSorter(cfg.CatalogLocale)
	notifier := console.NewFlashNotifier(logger)

	store := console.NewStore(func() *controller.ListController {
		return controller.New(controller.Config{
			Remote:   remote,
			Sorter:   sorter,
			Notifier: notifier,
			Logger:   logger,
		})
	}, cfg.WorkspaceTTL, logger)
	go store.Run(ctx)

	pdfClient := report.NewClient(cfg.GotenbergURL, 0)

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessionManager,
		CSRFManager:    csrfManager,
		ConsoleHandler: console.NewHandler(logger, templates, csrfManager, store, pdfClient),
		ReportHandler:  report.NewHandler(pdfClient, logger),
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting console", slog.String("addr", cfg.AppAddr), slog.String("catalog", cfg.CatalogURL))
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
