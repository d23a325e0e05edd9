package app

import (
	"log/slog"
	"mime"
)

// Minimal containers ship without /etc/mime.types; the stylesheet must still
// be served as text/css under the nosniff header.
func init() {
	ensureMimeType(".css", "text/css; charset=utf-8")
}

func ensureMimeType(ext, typ string) {
	if mime.TypeByExtension(ext) != "" {
		return
	}
	if err := mime.AddExtensionType(ext, typ); err != nil {
		slog.Warn("register mime type", slog.String("ext", ext), slog.Any("error", err))
	}
}
