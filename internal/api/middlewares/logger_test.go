package middlewares_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mw "github.com/5w1tchy/password-meter/internal/api/middlewares"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func TestRequestLogger_LogsWithoutQuery(t *testing.T) {
	buf := captureLog(t)
	h := mw.RequestID(mw.RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("nope"))
	})))

	req := httptest.NewRequest(http.MethodGet, "/missing?password=hunter2", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Response-Time"))
	assert.NotContains(t, buf.String(), "hunter2")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "/missing", entry["path"])
	assert.EqualValues(t, http.StatusNotFound, entry["status"])
	assert.EqualValues(t, 4, entry["bytes"])
	assert.Equal(t, rec.Header().Get("X-Request-ID"), entry["request_id"])
}

func TestRequestLogger_StampsWhenNothingWritten(t *testing.T) {
	captureLog(t)
	h := mw.RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/", nil))

	assert.NotEmpty(t, rec.Header().Get("X-Response-Time"))
}

func TestRequestLogger_ClientIPFromConnection(t *testing.T) {
	buf := captureLog(t)
	h := mw.RequestLogger(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.5:4000"
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "10.0.0.5", entry["client_ip"])
	assert.Equal(t, "203.0.113.7", entry["forwarded_for"])
}
