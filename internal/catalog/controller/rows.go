package controller

import (
	"context"
	"errors"
	"log/slog"

	"github.com/odyssey-erp/productdesk/internal/catalog"
	"github.com/odyssey-erp/productdesk/internal/catalog/editor"
)

// RowView is a read-only copy of one rendered row.
type RowView struct {
	Key     catalog.RowKey
	IsNew   bool
	Editing bool
	// Product holds the last saved values; zero for the placeholder.
	Product catalog.Product
	// Draft holds the values currently in the inputs.
	Draft catalog.Fields
}

// PriceInput is the text of the price input.
func (r RowView) PriceInput() string {
	return r.Draft.Price.String()
}

// DisplayPrice is the formatted saved price.
func (r RowView) DisplayPrice() string {
	return catalog.FormatBRL(r.Product.Price)
}

// Rows returns the rows to render: the placeholder first, then the sorted
// products.
func (c *ListController) Rows() []RowView {
	c.mu.Lock()
	defer c.mu.Unlock()
	rows := make([]RowView, 0, len(c.products)+1)
	if c.pending {
		ed := c.editorLocked(catalog.PendingKey, catalog.PendingDraft())
		rows = append(rows, RowView{
			Key:     catalog.PendingKey,
			IsNew:   true,
			Editing: ed.IsEditing(),
			Draft:   ed.Draft().Fields,
		})
	}
	for _, p := range c.products {
		ed := c.editorLocked(catalog.SavedKey(p.ID), catalog.SavedDraft(p))
		rows = append(rows, RowView{
			Key:     catalog.SavedKey(p.ID),
			Editing: ed.IsEditing(),
			Product: p,
			Draft:   ed.Draft().Fields,
		})
	}
	return rows
}

func (c *ListController) editorLocked(key catalog.RowKey, d catalog.Draft) *editor.Editor {
	ed, ok := c.editors[key]
	if !ok {
		ed = editor.New(d)
		c.editors[key] = ed
	}
	return ed
}

func (c *ListController) lookupLocked(key catalog.RowKey) (*editor.Editor, error) {
	if c.state != Ready {
		return nil, ErrNotLoaded
	}
	if key.IsPending() {
		if !c.pending {
			return nil, ErrUnknownRow
		}
		return c.editorLocked(key, catalog.PendingDraft()), nil
	}
	id, ok := key.ProductID()
	if !ok {
		return nil, ErrUnknownRow
	}
	for _, p := range c.products {
		if p.ID == id {
			return c.editorLocked(key, catalog.SavedDraft(p)), nil
		}
	}
	return nil, ErrUnknownRow
}

// Edit switches a row to edit mode.
func (c *ListController) Edit(key catalog.RowKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	ed, err := c.lookupLocked(key)
	if err != nil {
		return err
	}
	ed.Edit()
	return nil
}

// Cancel abandons the edit of a row; the placeholder is removed.
func (c *ListController) Cancel(key catalog.RowKey) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	ed, err := c.lookupLocked(key)
	if err != nil {
		return err
	}
	if ev := ed.Cancel(); ev.Action == editor.ActionDiscard {
		c.dropPendingLocked()
	}
	return nil
}

// SetField stores one input value of a row.
func (c *ListController) SetField(key catalog.RowKey, field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	ed, err := c.lookupLocked(key)
	if err != nil {
		return err
	}
	return ed.SetField(field, value)
}

// Submit runs the row's save transition and persists the draft when it changed.
// Validation failures alert the user and make no remote call.
func (c *ListController) Submit(ctx context.Context, key catalog.RowKey) error {
	c.mu.Lock()
	ed, err := c.lookupLocked(key)
	if err != nil {
		c.mu.Unlock()
		return err
	}
	ev, err := ed.Save()
	c.mu.Unlock()

	if err != nil {
		if errors.Is(err, catalog.ErrIncomplete) {
			c.logger.Warn("product form incomplete", slog.String("row", string(key)), slog.Any("error", err))
			c.notifier.Alert(ctx, IncompleteMessage)
		}
		return err
	}
	if ev.Action != editor.ActionSave {
		return nil
	}
	return c.Save(ctx, ev.Draft, ev.IsNew)
}
