// Package console serves the product management page.
package console

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/productdesk/internal/catalog"
	"github.com/odyssey-erp/productdesk/internal/catalog/controller"
	"github.com/odyssey-erp/productdesk/internal/catalog/editor"
	"github.com/odyssey-erp/productdesk/internal/shared"
	"github.com/odyssey-erp/productdesk/internal/view"
	"github.com/odyssey-erp/productdesk/report"
)

const (
	pageTitle           = "Produtos"
	unknownRowMessage   = "Produto não encontrado."
	notEditingMessage   = "Este produto não está em edição. Recarregue a página e tente novamente."
	exportFailedMessage = "Não foi possível gerar o PDF da lista de preços."
)

// PDFRenderer converts HTML into a PDF document.
type PDFRenderer interface {
	RenderHTML(ctx context.Context, html string, opts report.PageOptions) ([]byte, error)
}

// Handler serves the product page and its row actions.
type Handler struct {
	logger    *slog.Logger
	templates *view.Engine
	csrf      *shared.CSRFManager
	store     *Store
	pdf       PDFRenderer
	now       func() time.Time
}

// NewHandler constructs a Handler. pdf may be nil to disable the export.
func NewHandler(logger *slog.Logger, templates *view.Engine, csrf *shared.CSRFManager, store *Store, pdf PDFRenderer) *Handler {
	return &Handler{
		logger:    logger,
		templates: templates,
		csrf:      csrf,
		store:     store,
		pdf:       pdf,
		now:       time.Now,
	}
}

// MountRoutes registers the console routes at the router root.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.page)
	r.Post("/reload", h.reload)
	r.Post("/rows/new", h.addRow)
	r.Route("/rows/{key}", func(r chi.Router) {
		r.Post("/edit", h.edit)
		r.Post("/cancel", h.cancel)
		r.Post("/save", h.save)
		r.Get("/delete", h.confirmDelete)
		r.Post("/delete", h.delete)
	})
	r.Get("/export.pdf", h.exportPDF)
}

type productsPage struct {
	Ready     bool
	CanAdd    bool
	LoadError string
	Rows      []controller.RowView
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request) {
	ctl, sess, ok := h.workspace(w, r)
	if !ok {
		return
	}
	data := productsPage{
		Ready:     ctl.State() == controller.Ready,
		CanAdd:    ctl.CanAdd(),
		LoadError: ctl.LoadError(),
		Rows:      ctl.Rows(),
	}
	h.render(w, r, sess, http.StatusOK, "pages/products.html", pageTitle, data)
}

func (h *Handler) reload(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.store.Reload(r.Context(), sess.ID)
	redirectHome(w, r)
}

func (h *Handler) addRow(w http.ResponseWriter, r *http.Request) {
	ctl, _, ok := h.workspace(w, r)
	if !ok {
		return
	}
	ctl.RequestNewRow()
	redirectHome(w, r)
}

func (h *Handler) edit(w http.ResponseWriter, r *http.Request) {
	h.rowAction(w, r, func(ctl *controller.ListController, key catalog.RowKey) error {
		return ctl.Edit(key)
	})
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	h.rowAction(w, r, func(ctl *controller.ListController, key catalog.RowKey) error {
		return ctl.Cancel(key)
	})
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	h.rowAction(w, r, func(ctl *controller.ListController, key catalog.RowKey) error {
		for _, field := range []string{editor.FieldName, editor.FieldPrice, editor.FieldSKU} {
			value := r.PostFormValue(field)
			if field == editor.FieldPrice {
				value = decimalPoint(value)
			}
			if err := ctl.SetField(key, field, value); err != nil {
				return err
			}
		}
		return ctl.Submit(r.Context(), key)
	})
}

func (h *Handler) confirmDelete(w http.ResponseWriter, r *http.Request) {
	ctl, sess, ok := h.workspace(w, r)
	if !ok {
		return
	}
	key, product, found := findProduct(ctl, chi.URLParam(r, "key"))
	if !found {
		h.notFound(w, r, sess)
		return
	}
	h.render(w, r, sess, http.StatusOK, "pages/confirm_delete.html", "Deletar produto", map[string]any{
		"Key":     key,
		"Product": product,
		"Prompt":  controller.DeletePrompt,
	})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	ctl, sess, ok := h.workspace(w, r)
	if !ok {
		return
	}
	_, product, found := findProduct(ctl, chi.URLParam(r, "key"))
	if !found {
		sess.AddFlash(shared.FlashMessage{Kind: shared.FlashError, Message: unknownRowMessage})
		redirectHome(w, r)
		return
	}
	confirmer := controller.ConfirmFunc(func(context.Context, string) bool {
		return r.PostFormValue("confirm") == "yes"
	})
	if err := ctl.Delete(r.Context(), product.ID, confirmer); err != nil && !errors.Is(err, controller.ErrNotConfirmed) {
		h.logger.Debug("delete rejected", slog.Int64("id", product.ID), slog.Any("error", err))
	}
	redirectHome(w, r)
}

func (h *Handler) exportPDF(w http.ResponseWriter, r *http.Request) {
	ctl, sess, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if h.pdf == nil || ctl.State() != controller.Ready {
		sess.AddFlash(shared.FlashMessage{Kind: shared.FlashError, Message: exportFailedMessage})
		redirectHome(w, r)
		return
	}
	html, err := report.PriceList{GeneratedAt: h.now(), Products: ctl.Products()}.HTML()
	if err == nil {
		var pdf []byte
		pdf, err = h.pdf.RenderHTML(r.Context(), html, report.PageOptions{Margin: 0.5})
		if err == nil {
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", "attachment; filename=produtos.pdf")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(pdf)
			return
		}
	}
	h.logger.Error("export price list", slog.Any("error", err))
	sess.AddFlash(shared.FlashMessage{Kind: shared.FlashError, Message: exportFailedMessage})
	redirectHome(w, r)
}

// rowAction resolves the row key and runs fn. Alerts raised by the controller
// are already queued as flashes; unknown rows get their own flash.
func (h *Handler) rowAction(w http.ResponseWriter, r *http.Request, fn func(*controller.ListController, catalog.RowKey) error) {
	ctl, sess, ok := h.workspace(w, r)
	if !ok {
		return
	}
	key, err := catalog.ParseRowKey(chi.URLParam(r, "key"))
	if err == nil {
		err = fn(ctl, key)
	}
	switch {
	case err == nil:
	case errors.Is(err, catalog.ErrInvalidRowKey), errors.Is(err, controller.ErrUnknownRow):
		sess.AddFlash(shared.FlashMessage{Kind: shared.FlashError, Message: unknownRowMessage})
	case errors.Is(err, editor.ErrNotEditing):
		h.logger.Warn("row action on a row not being edited", slog.String("path", r.URL.Path))
		sess.AddFlash(shared.FlashMessage{Kind: shared.FlashError, Message: notEditingMessage})
	default:
		h.logger.Debug("row action failed", slog.String("path", r.URL.Path), slog.Any("error", err))
	}
	redirectHome(w, r)
}

func (h *Handler) workspace(w http.ResponseWriter, r *http.Request) (*controller.ListController, *shared.Session, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Error("console request without session", slog.String("path", r.URL.Path))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return nil, nil, false
	}
	return h.store.Get(r.Context(), sess.ID), sess, true
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request, sess *shared.Session) {
	h.render(w, r, sess, http.StatusNotFound, "pages/error.html", "Não encontrado", map[string]any{
		"Message": unknownRowMessage,
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, sess *shared.Session, status int, name, title string, data any) {
	token, err := h.csrf.EnsureToken(r.Context(), sess)
	if err != nil {
		h.logger.Error("ensure csrf token", slog.Any("error", err))
	}
	err = h.templates.RenderStatus(w, status, name, view.TemplateData{
		Title:       title,
		CSRFToken:   token,
		Flashes:     sess.PopFlashes(),
		CurrentPath: r.URL.Path,
		Data:        data,
	})
	if err != nil {
		h.logger.Error("render page", slog.String("template", name), slog.Any("error", err))
	}
}

func findProduct(ctl *controller.ListController, raw string) (catalog.RowKey, catalog.Product, bool) {
	key, err := catalog.ParseRowKey(raw)
	if err != nil {
		return "", catalog.Product{}, false
	}
	id, ok := key.ProductID()
	if !ok {
		return "", catalog.Product{}, false
	}
	for _, p := range ctl.Products() {
		if p.ID == id {
			return key, p, true
		}
	}
	return "", catalog.Product{}, false
}

// decimalPoint rewrites a pt-BR price ("1.234,56") to the dotted form the price
// parser reads. Text without a comma is returned unchanged.
func decimalPoint(text string) string {
	if !strings.Contains(text, ",") {
		return text
	}
	text = strings.ReplaceAll(text, ".", "")
	return strings.Replace(text, ",", ".", 1)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
