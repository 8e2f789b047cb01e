package transport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPHandler_PathAndQuery(t *testing.T) {
	srv := NewHTTPHandler(newTestRouter())

	req := httptest.NewRequest(http.MethodGet, "/items/7?verbose=yes", nil)
	req.Header.Set(HeaderCorrelationID, "corr-http")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "corr-http", rec.Header().Get(HeaderCorrelationID))
	assert.NotEmpty(t, rec.Header().Get(HeaderLatency))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "7", body["id"])
	assert.Equal(t, "yes", body["verbose"])
	assert.Equal(t, "corr-http", body["correlation_id"])
}

func TestHTTPHandler_Body(t *testing.T) {
	srv := NewHTTPHandler(newTestRouter())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{"name":"x"}`)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"body":"{\"name\":\"x\"}","status":"OK"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(HeaderCorrelationID))
}

func TestHTTPHandler_Errors(t *testing.T) {
	srv := NewHTTPHandler(newTestRouter())

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/items/1", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
