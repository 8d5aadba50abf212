package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPHandlerSuccess(t *testing.T) {
	store := &stubStore{}
	h := NewHandler(&stubGenerator{text: "Bees are essential pollinators..."}, store, "blogs", nil)
	fixedClock(h)
	srv := NewHTTPHandler(h, time.Second)

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"blogtopic": "bees"}`))
	req.Header.Set("X-Request-Id", "req-1")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "req-1", rec.Header().Get("X-Request-Id"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "blogs/bees-2024-05-01_10-11-12.txt", body["s3_key"])
	assert.Equal(t, []string{"blogs/bees-2024-05-01_10-11-12.txt"}, store.keys)
}

func TestHTTPHandlerMirrorsErrors(t *testing.T) {
	h := NewHandler(&stubGenerator{text: "text"}, &stubStore{}, "blogs", nil)
	srv := NewHTTPHandler(h, 0)
	assert.Equal(t, defaultTimeout, srv.Timeout)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "blogtopic is required"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"blogtopic": `)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHTTPHandlerRejectsGet(t *testing.T) {
	gen := &stubGenerator{text: "text"}
	srv := NewHTTPHandler(NewHandler(gen, &stubStore{}, "blogs", nil), time.Second)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
	assert.Empty(t, gen.topics)
}
