package console

import (
	"context"
	"log/slog"

	"github.com/odyssey-erp/productdesk/internal/catalog/controller"
	"github.com/odyssey-erp/productdesk/internal/shared"
)

// NewFlashNotifier shows controller alerts as error flashes on the session
// carried by the request context.
func NewFlashNotifier(logger *slog.Logger) controller.Notifier {
	return controller.NotifierFunc(func(ctx context.Context, message string) {
		sess := shared.SessionFromContext(ctx)
		if sess == nil {
			logger.Warn("alert dropped, no session", slog.String("message", message))
			return
		}
		sess.AddFlash(shared.FlashMessage{Kind: shared.FlashError, Message: message})
	})
}
