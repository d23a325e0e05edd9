package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/odyssey-erp/productdesk/internal/platform/httpx"
)

// ErrMissingAPIKey is returned when a request carries no bearer token.
var ErrMissingAPIKey = httpx.Public(httpx.ErrUnauthorized, "Chave de API ausente.")

// ErrInvalidAPIKey is returned when the bearer token does not match.
var ErrInvalidAPIKey = httpx.Public(httpx.ErrUnauthorized, "Chave de API inválida.")

// HashAPIKey produces the bcrypt hash stored in CATALOG_API_KEY_HASH.
func HashAPIKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", errors.New("api key must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// RequireAPIKey rejects requests whose bearer token does not match hash. An
// empty hash leaves the routes open.
func RequireAPIKey(hash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if hash == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				httpx.RespondError(w, ErrMissingAPIKey)
				return
			}
			if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)); err != nil {
				if logger != nil {
					logger.Warn("rejected api key", slog.String("remote", r.RemoteAddr), slog.String("path", r.URL.Path))
				}
				httpx.RespondError(w, ErrInvalidAPIKey)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
