package jobs

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthWithoutInspector(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(nil, slog.New(slog.NewTextHandler(io.Discard, nil))).MountRoutes(r)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var body queueHealth
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, QueueDefault, body.Queue)
	assert.Zero(t, body.Pending)
}

func TestNilClientIsNoop(t *testing.T) {
	var c *Client
	assert.NoError(t, c.ProductChanged(context.Background(), ProductChangedPayload{Action: ActionCreated, ProductID: 1}))
	assert.NoError(t, c.Close())
}

func TestRunWithoutWorker(t *testing.T) {
	var w *Worker
	assert.Error(t, w.Run(context.Background()))
}
