package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/odyssey-erp/productdesk/internal/catalog"
	"github.com/odyssey-erp/productdesk/internal/catalog/api"
	"github.com/odyssey-erp/productdesk/internal/catalog/controller"
	"github.com/odyssey-erp/productdesk/internal/console"
	"github.com/odyssey-erp/productdesk/internal/observability"
	"github.com/odyssey-erp/productdesk/internal/shared"
	"github.com/odyssey-erp/productdesk/internal/view"
	_ "github.com/odyssey-erp/productdesk/testing"
)

type emptyRepo struct{}

func (emptyRepo) List(context.Context) ([]catalog.Product, error) { return []catalog.Product{}, nil }

func (emptyRepo) Create(context.Context, catalog.Input, string) (catalog.Product, error) {
	return catalog.Product{}, errors.New("read only")
}

func (emptyRepo) Update(context.Context, int64, catalog.Input, string) (catalog.Product, error) {
	return catalog.Product{}, errors.New("read only")
}

func (emptyRepo) Delete(context.Context, int64) error { return errors.New("read only") }

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAPIRouterProtectsProductsOnly(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("key"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := &Config{CatalogAPIKeyHash: string(hash), AppRequestTimeout: time.Second}
	logger := discardLogger()
	router := NewAPIRouter(APIRouterParams{
		Logger:         logger,
		Config:         cfg,
		ProductHandler: api.NewHandler(logger, api.NewService(api.ServiceConfig{Repo: emptyRepo{}})),
		Metrics:        observability.NewMetrics(),
		DB:             pinger{},
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/products", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Authorization", "Bearer key")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestAPIRouterHealthDegraded(t *testing.T) {
	logger := discardLogger()
	router := NewAPIRouter(APIRouterParams{
		Logger:         logger,
		Config:         &Config{},
		ProductHandler: api.NewHandler(logger, api.NewService(api.ServiceConfig{Repo: emptyRepo{}})),
		DB:             pinger{err: errors.New("down")},
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func newConsoleRouter(t *testing.T) http.Handler {
	t.Helper()
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	logger := discardLogger()
	cfg := &Config{AppRequestTimeout: 5 * time.Second}
	sessions := shared.NewSessionManager(redisClient, "pd_session", "secret", time.Hour, false)
	csrf := shared.NewCSRFManager("csrfsecret")
	templates, err := view.NewEngine()
	require.NoError(t, err)
	store := console.NewStore(func() *controller.ListController {
		return controller.New(controller.Config{Remote: emptyRepoRemote{}, Logger: logger})
	}, time.Hour, logger)
	return NewRouter(RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessions,
		CSRFManager:    csrf,
		ConsoleHandler: console.NewHandler(logger, templates, csrf, store, nil),
		Metrics:        observability.NewMetrics(),
	})
}

type emptyRepoRemote struct{}

func (emptyRepoRemote) List(context.Context) ([]catalog.Product, error) { return nil, nil }

func (emptyRepoRemote) Create(context.Context, catalog.Input) (catalog.Product, error) {
	return catalog.Product{}, errors.New("read only")
}

func (emptyRepoRemote) Update(context.Context, int64, catalog.Input) (catalog.Product, error) {
	return catalog.Product{}, errors.New("read only")
}

func (emptyRepoRemote) Delete(context.Context, int64) error { return errors.New("read only") }

func TestConsoleRouterServesPageAndStatic(t *testing.T) {
	router := newConsoleRouter(t)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Nenhum produto cadastrado.")
	assert.NotEmpty(t, rr.Result().Cookies())
	assert.Equal(t, "DENY", rr.Header().Get("X-Frame-Options"))

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "public, max-age=3600", rr.Header().Get("Cache-Control"))
}

func TestConsoleRouterRejectsMissingCSRF(t *testing.T) {
	router := newConsoleRouter(t)

	form := url.Values{}
	req := httptest.NewRequest(http.MethodPost, "/rows/new", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}
