package app

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/odyssey-erp/productdesk/internal/catalog/api"
	"github.com/odyssey-erp/productdesk/internal/console"
	"github.com/odyssey-erp/productdesk/internal/observability"
	"github.com/odyssey-erp/productdesk/internal/shared"
	"github.com/odyssey-erp/productdesk/jobs"
	"github.com/odyssey-erp/productdesk/report"
	"github.com/odyssey-erp/productdesk/web"
)

// RouterParams groups dependencies for building the console router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	ConsoleHandler *console.Handler
	ReportHandler  *report.Handler
	Metrics        *observability.Metrics
}

// NewRouter constructs the console chi.Router.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		// Static assets skip the session, CSRF and rate limiting chain.
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}
	r.Get("/healthz", healthz(nil))
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		for _, mw := range MiddlewareStack(MiddlewareConfig{
			Logger:         params.Logger,
			Config:         params.Config,
			SessionManager: params.SessionManager,
			CSRFManager:    params.CSRFManager,
			Metrics:        params.Metrics,
		}) {
			r.Use(mw)
		}
		r.Use(chimw.Logger)

		params.ConsoleHandler.MountRoutes(r)
		if params.ReportHandler != nil {
			r.Route("/report", params.ReportHandler.MountRoutes)
		}
	})

	return r
}

// Pinger reports backend readiness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// APIRouterParams groups dependencies for building the product service router.
type APIRouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	ProductHandler *api.Handler
	JobHandler     *jobs.Handler
	Metrics        *observability.Metrics
	DB             Pinger
}

// NewAPIRouter constructs the product service chi.Router.
func NewAPIRouter(params APIRouterParams) http.Handler {
	r := chi.NewRouter()
	for _, mw := range APIMiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}
	r.Use(chimw.Logger)

	r.Get("/healthz", healthz(params.DB))
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	apiKeyHash := ""
	if params.Config != nil {
		apiKeyHash = params.Config.CatalogAPIKeyHash
	}
	r.Route("/products", func(r chi.Router) {
		r.Use(api.RequireAPIKey(apiKeyHash, params.Logger))
		params.ProductHandler.MountRoutes(r)
	})
	return r
}

func healthz(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if db != nil {
			if err := db.Ping(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"status":"degraded"}`))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

// staticCacheHandler wraps a file server with a one hour Cache-Control header.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
