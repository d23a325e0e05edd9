package controller

import (
	"context"

	"github.com/odyssey-erp/productdesk/internal/catalog"
)

// Remote is the product service as seen by the controller.
type Remote interface {
	List(ctx context.Context) ([]catalog.Product, error)
	Create(ctx context.Context, in catalog.Input) (catalog.Product, error)
	Update(ctx context.Context, id int64, in catalog.Input) (catalog.Product, error)
	Delete(ctx context.Context, id int64) error
}

// Notifier shows a blocking message to the user.
type Notifier interface {
	Alert(ctx context.Context, message string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, message string)

// Alert implements Notifier.
func (f NotifierFunc) Alert(ctx context.Context, message string) { f(ctx, message) }

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) bool

// Confirm implements Confirmer.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

// Confirmed is used when the user already answered yes, e.g. on a confirmation page.
var Confirmed Confirmer = ConfirmFunc(func(context.Context, string) bool { return true })

type silentNotifier struct{}

func (silentNotifier) Alert(context.Context, string) {}
