package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorPublicMessage(t *testing.T) {
	rr := httptest.NewRecorder()

	RespondError(rr, fmt.Errorf("create: %w", Public(ErrDuplicate, "SKU já cadastrado")))

	assert.Equal(t, http.StatusConflict, rr.Code)
	var body ProblemDetail
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "SKU já cadastrado", body.Message)
	assert.Equal(t, "Duplicate", body.Title)
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	rr := httptest.NewRecorder()

	RespondError(rr, errors.New("pq: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "connection reset")
}

func TestRespondErrorSentinelOnly(t *testing.T) {
	rr := httptest.NewRecorder()

	RespondError(rr, fmt.Errorf("get 4: %w", ErrNotFound))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	var body ProblemDetail
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "resource not found", body.Message)
}
