// Package editor implements the per-row view/edit state machine of the product
// list.
package editor

import (
	"errors"
	"fmt"

	"github.com/odyssey-erp/productdesk/internal/catalog"
)

// Field names accepted by SetField.
const (
	FieldName  = "name"
	FieldPrice = "price"
	FieldSKU   = "sku"
)

var (
	// ErrNotEditing is returned when a row is modified while in view mode.
	ErrNotEditing = errors.New("editor: row is not being edited")
	// ErrUnknownField is returned by SetField for fields other than name, price and sku.
	ErrUnknownField = errors.New("editor: unknown field")
)

// Mode is the row display state.
type Mode int

const (
	Viewing Mode = iota
	Editing
)

func (m Mode) String() string {
	switch m {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Action tells the owner of a row what to do after a transition.
type Action int

const (
	// ActionNone needs no follow-up.
	ActionNone Action = iota
	// ActionSave asks the owner to persist Event.Draft.
	ActionSave
	// ActionDiscard asks the owner to drop the placeholder row.
	ActionDiscard
)

// Event is emitted upward by Cancel and Save.
type Event struct {
	Action Action
	Key    catalog.RowKey
	Draft  catalog.Draft
	IsNew  bool
}

// Editor holds the local draft of one row and the snapshot it was last reset to.
type Editor struct {
	draft    catalog.Draft
	snapshot catalog.Draft
	mode     Mode
}

// New binds an editor to d. The placeholder row starts in edit mode.
func New(d catalog.Draft) *Editor {
	e := &Editor{}
	e.Reset(d)
	return e
}

// Reset rebinds the row after the bound product or the new-row flag changed
// outside the editor.
func (e *Editor) Reset(d catalog.Draft) {
	e.draft = d
	e.snapshot = d
	if d.IsPending() {
		e.mode = Editing
	} else {
		e.mode = Viewing
	}
}

// Mode returns the current display state.
func (e *Editor) Mode() Mode { return e.mode }

// IsEditing is a template helper.
func (e *Editor) IsEditing() bool { return e.mode == Editing }

// IsNew reports whether the row is the placeholder.
func (e *Editor) IsNew() bool { return e.snapshot.IsPending() }

// Key addresses the row.
func (e *Editor) Key() catalog.RowKey { return e.snapshot.Key() }

// Draft returns the values currently in the inputs.
func (e *Editor) Draft() catalog.Draft { return e.draft }

// Snapshot returns the last saved values.
func (e *Editor) Snapshot() catalog.Draft { return e.snapshot }

// Edit switches a viewed row to edit mode.
func (e *Editor) Edit() {
	e.mode = Editing
}

// Cancel abandons the edit. The placeholder asks to be discarded; a saved row
// restores its snapshot and returns to view mode.
func (e *Editor) Cancel() Event {
	if e.IsNew() {
		return Event{Action: ActionDiscard, Key: e.Key(), Draft: e.draft, IsNew: true}
	}
	e.draft = e.snapshot
	e.mode = Viewing
	return Event{Action: ActionNone, Key: e.Key()}
}

// SetField stores raw input. Price text is parsed, name and sku are kept as typed.
func (e *Editor) SetField(field, value string) error {
	if e.mode != Editing {
		return ErrNotEditing
	}
	switch field {
	case FieldName:
		e.draft.Fields.Name = value
	case FieldPrice:
		e.draft.Fields.Price = catalog.ParsePrice(value)
	case FieldSKU:
		e.draft.Fields.SKU = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Save validates the draft. Incomplete drafts return an error wrapping
// catalog.ErrIncomplete and stay in edit mode. An unchanged saved row goes back to
// view mode without an event. Otherwise an ActionSave event is returned and the
// row stays in edit mode until the owner resets it.
func (e *Editor) Save() (Event, error) {
	if e.mode != Editing {
		return Event{}, ErrNotEditing
	}
	if err := e.draft.Fields.Validate(); err != nil {
		return Event{Action: ActionNone, Key: e.Key()}, err
	}
	if !e.IsNew() && e.draft.Fields.Equal(e.snapshot.Fields) {
		e.mode = Viewing
		return Event{Action: ActionNone, Key: e.Key()}, nil
	}
	return Event{Action: ActionSave, Key: e.Key(), Draft: e.draft, IsNew: e.IsNew()}, nil
}
