package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	mw "github.com/5w1tchy/password-meter/internal/api/middlewares"
)

func TestRequestID_GeneratesID(t *testing.T) {
	var seen string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = mw.GetRequestID(r)
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	mw.RequestID(handler).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	rid := rec.Header().Get("X-Request-ID")
	if _, err := uuid.Parse(rid); err != nil {
		t.Errorf("Expected a UUID request ID, got %q", rid)
	}
	if seen != rid {
		t.Errorf("Handler saw %q, response carried %q", seen, rid)
	}
}

func TestRequestID_UsesProvidedID(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "custom-request-id")
	rec := httptest.NewRecorder()

	mw.RequestID(okHandler()).ServeHTTP(rec, req)

	if rec.Header().Get("X-Request-ID") != "custom-request-id" {
		t.Errorf("Expected custom-request-id, got %s", rec.Header().Get("X-Request-ID"))
	}
}

func TestRequestID_RejectsInvalidID(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "invalid@#$%id")
	rec := httptest.NewRecorder()

	mw.RequestID(okHandler()).ServeHTTP(rec, req)

	rid := rec.Header().Get("X-Request-ID")
	if rid == "invalid@#$%id" {
		t.Error("Should have rejected invalid request ID")
	}
	if rid == "" {
		t.Error("Should have generated new request ID")
	}
}
