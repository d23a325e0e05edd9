// Package controller owns the product collection shown on the management page
// and orchestrates load, add, update and delete against the product service.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/odyssey-erp/productdesk/internal/catalog"
	"github.com/odyssey-erp/productdesk/internal/catalog/editor"
)

// State is the load state of the collection.
type State int

const (
	Loading State = iota
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Config groups ListController dependencies.
type Config struct {
	Remote   Remote
	Sorter   *catalog.Sorter
	Notifier Notifier
	Logger   *slog.Logger
}

// ListController is the single owner of the visible products, the pending-row
// flag and the row editors. The mutex is never held across a remote call, so
// concurrent actions are not serialised; creates of one placeholder row share
// an Idempotency-Key so the service rejects the duplicates.
type ListController struct {
	remote   Remote
	sorter   *catalog.Sorter
	notifier Notifier
	logger   *slog.Logger

	mu         sync.Mutex
	state      State
	loadErr    string
	products   []catalog.Product
	pending    bool
	// pendingKey is the Idempotency-Key of every create attempt for the
	// current placeholder row.
	pendingKey string
	editors    map[catalog.RowKey]*editor.Editor
}

// New constructs a ListController in the Loading state.
func New(cfg Config) *ListController {
	sorter := cfg.Sorter
	if sorter == nil {
		sorter = catalog.NewSorter(catalog.DefaultLocale)
	}
	var notifier Notifier = silentNotifier{}
	if cfg.Notifier != nil {
		notifier = cfg.Notifier
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ListController{
		remote:   cfg.Remote,
		sorter:   sorter,
		notifier: notifier,
		logger:   logger,
		state:    Loading,
		editors:  make(map[catalog.RowKey]*editor.Editor),
	}
}

// Load fetches the collection once. A failure is terminal: the controller stays
// Failed and shows LoadFailedMessage.
func (c *ListController) Load(ctx context.Context) error {
	c.mu.Lock()
	c.state = Loading
	c.loadErr = ""
	c.mu.Unlock()

	products, err := c.remote.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.logger.Error("error loading products", slog.Any("error", err))
		c.state = Failed
		c.loadErr = LoadFailedMessage
		return err
	}
	c.products = c.sorter.Sorted(products)
	c.editors = make(map[catalog.RowKey]*editor.Editor, len(c.products)+1)
	for _, p := range c.products {
		c.editors[catalog.SavedKey(p.ID)] = editor.New(catalog.SavedDraft(p))
	}
	if c.pending {
		c.editors[catalog.PendingKey] = editor.New(catalog.PendingDraft())
	}
	c.state = Ready
	return nil
}

// State reports the load state.
func (c *ListController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LoadError returns the persistent load failure message, if any.
func (c *ListController) LoadError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// Products returns a copy of the sorted collection.
func (c *ListController) Products() []catalog.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]catalog.Product, len(c.products))
	copy(out, c.products)
	return out
}

// HasPending reports whether the placeholder row is shown.
func (c *ListController) HasPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// CanAdd reports whether the "add new" action is enabled.
func (c *ListController) CanAdd() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == Ready && !c.pending
}

// RequestNewRow shows the placeholder row. It is a no-op returning false while
// one is already pending.
func (c *ListController) RequestNewRow() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Ready || c.pending {
		return false
	}
	c.pending = true
	c.pendingKey = uuid.NewString()
	c.editors[catalog.PendingKey] = editor.New(catalog.PendingDraft())
	return true
}

// CancelNewRow drops the placeholder row without persisting it.
func (c *ListController) CancelNewRow() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dropPendingLocked()
}

func (c *ListController) dropPendingLocked() {
	c.pending = false
	c.pendingKey = ""
	delete(c.editors, catalog.PendingKey)
}

// Delete removes product id after the confirmer approves. The local entry is
// removed only once the service confirmed the delete.
func (c *ListController) Delete(ctx context.Context, id int64, confirmer Confirmer) error {
	if confirmer == nil || !confirmer.Confirm(ctx, DeletePrompt) {
		return ErrNotConfirmed
	}
	if err := c.remote.Delete(ctx, id); err != nil {
		c.logger.Error("error deleting product", slog.Int64("id", id), slog.Any("error", err))
		c.notifier.Alert(ctx, DeleteFailedMessage)
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	kept := make([]catalog.Product, 0, len(c.products))
	for _, p := range c.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	c.products = c.sorter.Sorted(kept)
	delete(c.editors, catalog.SavedKey(id))
	return nil
}

// Save persists a draft. New drafts are created and replace the placeholder;
// saved drafts are updated by id. An existing draft equal to the stored product
// makes no call and only leaves edit mode. On failure the collection is left
// untouched and the user is alerted.
func (c *ListController) Save(ctx context.Context, draft catalog.Draft, isNew bool) error {
	in, err := draft.Input()
	if err != nil {
		c.notifier.Alert(ctx, IncompleteMessage)
		return err
	}

	var id int64
	if !isNew {
		var ok bool
		id, ok = draft.ID()
		if !ok {
			return ErrUnknownRow
		}
		if c.closeIfUnchanged(id, draft.Fields) {
			return nil
		}
	}

	var saved catalog.Product
	if isNew {
		c.mu.Lock()
		key := c.pendingKey
		c.mu.Unlock()
		if key != "" {
			ctx = catalog.WithIdempotencyKey(ctx, key)
		}
		saved, err = c.remote.Create(ctx, in)
	} else {
		saved, err = c.remote.Update(ctx, id, in)
	}
	if err != nil {
		c.logger.Error("error saving product", slog.Bool("new", isNew), slog.Int64("id", id), slog.Any("error", err))
		c.notifier.Alert(ctx, saveFailureMessage(err))
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if isNew {
		c.products = append(c.products, saved)
		c.dropPendingLocked()
		c.editors[catalog.SavedKey(saved.ID)] = editor.New(catalog.SavedDraft(saved))
	} else {
		for i := range c.products {
			if c.products[i].ID == id {
				c.products[i] = saved
			}
		}
		if ed, ok := c.editors[catalog.SavedKey(id)]; ok {
			ed.Reset(catalog.SavedDraft(saved))
		}
	}
	c.products = c.sorter.Sorted(c.products)
	return nil
}

func (c *ListController) closeIfUnchanged(id int64, fields catalog.Fields) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.products {
		if p.ID != id {
			continue
		}
		if !catalog.FieldsOf(p).Equal(fields) {
			return false
		}
		if ed, ok := c.editors[catalog.SavedKey(id)]; ok {
			ed.Reset(catalog.SavedDraft(p))
		}
		return true
	}
	return false
}

// saveFailureMessage prefers the message supplied by the service.
func saveFailureMessage(err error) string {
	var msgErr interface{ ServerMessage() (string, bool) }
	if errors.As(err, &msgErr) {
		if msg, ok := msgErr.ServerMessage(); ok {
			return SaveFailedPrefix + msg
		}
	}
	return SaveFailedMessage
}
