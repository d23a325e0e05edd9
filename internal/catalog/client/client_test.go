package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/productdesk/internal/catalog"
)

type recordedCall struct {
	op     string
	status int
}

type fakeRecorder struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (r *fakeRecorder) ObserveRemoteCall(op string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, recordedCall{op: op, status: status})
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *fakeRecorder) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	rec := &fakeRecorder{}
	return New(Config{BaseURL: srv.URL + "/", APIKey: "secret", Timeout: time.Second, Metrics: rec}), rec
}

func TestListDecodesProducts(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":2,"name":"B","price":10,"sku":"S2","missing_letter":"a"},{"id":1,"name":"A","price":5.5,"sku":"S1","missing_letter":"b"}]`))
	})

	products, err := c.List(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, catalog.Product{ID: 2, Name: "B", Price: 10, SKU: "S2", MissingLetter: "a"}, products[0])
	assert.Equal(t, []recordedCall{{op: "list", status: http.StatusOK}}, rec.calls)
}

func TestListEmptyBodyIsEmptySlice(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})

	products, err := c.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestCreateSendsOnlyNamePriceSku(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]any{"name": "X", "price": 12.5, "sku": "S1"}, body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":9,"name":"X","price":12.5,"sku":"S1","missing_letter":"a"}`))
	})

	created, err := c.Create(context.Background(), catalog.Input{Name: "X", Price: 12.5, SKU: "S1"})

	require.NoError(t, err)
	assert.Equal(t, int64(9), created.ID)
	assert.Equal(t, "a", created.MissingLetter)
}

func TestCreateReusesContextIdempotencyKey(t *testing.T) {
	var keys []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"Esta requisição já foi processada."}`))
	})
	ctx := catalog.WithIdempotencyKey(context.Background(), "row-key-1")

	_, _ = c.Create(ctx, catalog.Input{Name: "X", Price: 1, SKU: "S1"})
	_, _ = c.Create(ctx, catalog.Input{Name: "X", Price: 1, SKU: "S1"})
	_, _ = c.Create(context.Background(), catalog.Input{Name: "X", Price: 1, SKU: "S1"})

	require.Len(t, keys, 3)
	assert.Equal(t, []string{"row-key-1", "row-key-1"}, keys[:2])
	assert.NotEmpty(t, keys[2])
	assert.NotEqual(t, "row-key-1", keys[2])
}

func TestUpdateUsesProductPath(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/products/7", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":7,"name":"Y","price":1,"sku":"S7","missing_letter":"a"}`))
	})

	updated, err := c.Update(context.Background(), 7, catalog.Input{Name: "Y", Price: 1, SKU: "S7"})

	require.NoError(t, err)
	assert.Equal(t, "Y", updated.Name)
}

func TestDeleteAcceptsNoContent(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/products/3", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	assert.NoError(t, c.Delete(context.Background(), 3))
}

func TestErrorCarriesServerMessage(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"title":"Duplicate","status":409,"message":"SKU já cadastrado"}`))
	})

	_, err := c.Create(context.Background(), catalog.Input{Name: "X", Price: 1, SKU: "S1"})

	require.Error(t, err)
	msg, ok := serverMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "SKU já cadastrado", msg)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, []recordedCall{{op: "create", status: http.StatusConflict}}, rec.calls)
}

func TestErrorFallsBackToDetail(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"title":"Validation Failed","detail":"price must be positive"}`))
	})

	_, err := c.Update(context.Background(), 1, catalog.Input{Name: "X", Price: -1, SKU: "S"})

	msg, ok := serverMessage(err)
	assert.True(t, ok)
	assert.Equal(t, "price must be positive", msg)
}

func TestErrorWithoutMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := c.Delete(context.Background(), 1)

	require.Error(t, err)
	_, ok := serverMessage(err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "500")
}

func serverMessage(err error) (string, bool) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return "", false
	}
	return apiErr.ServerMessage()
}
