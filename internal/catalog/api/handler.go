package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/productdesk/internal/catalog"
	"github.com/odyssey-erp/productdesk/internal/platform/httpx"
)

// IdempotencyHeader carries the client generated key for create requests.
const IdempotencyHeader = "Idempotency-Key"

// Handler exposes the product resource over JSON.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers the product routes. Mount under /products.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type productRequest struct {
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
	SKU   string   `json:"sku"`
}

func (req productRequest) input() (catalog.Input, error) {
	if req.Price == nil {
		return catalog.Input{}, ErrMissingFields
	}
	return catalog.Input{Name: req.Name, Price: *req.Price, SKU: req.SKU}, nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, r, "list products failed", err)
		return
	}
	httpx.JSON(w, http.StatusOK, products)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	product, err := h.service.Create(r.Context(), in, r.Header.Get(IdempotencyHeader))
	if err != nil {
		h.fail(w, r, "create product failed", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, product)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	in, err := decodeInput(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	product, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, "update product failed", err, slog.Int64("id", id))
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, r, "delete product failed", err, slog.Int64("id", id))
		return
	}
	httpx.NoContent(w)
}

// fail logs server side faults at error level and client faults at debug.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error, attrs ...any) {
	var public *httpx.PublicError
	attrs = append(attrs, slog.Any("error", err))
	if errors.As(err, &public) {
		h.logger.DebugContext(r.Context(), msg, attrs...)
	} else {
		h.logger.ErrorContext(r.Context(), msg, attrs...)
	}
	httpx.RespondError(w, err)
}

func decodeInput(r *http.Request) (catalog.Input, error) {
	var req productRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		return catalog.Input{}, ErrMalformedBody
	}
	return req.input()
}

func parseID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
