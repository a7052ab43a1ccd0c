package middlewares_test

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"

	mw "github.com/5w1tchy/password-meter/internal/api/middlewares"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestSecurityHeaders(t *testing.T) {
	wrapped := mw.SecurityHeaders(false)(okHandler())

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	tests := []struct {
		header   string
		expected string
	}{
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "DENY"},
		{"Referrer-Policy", "no-referrer"},
		{"Content-Security-Policy", "default-src 'self'; form-action 'self'; frame-ancestors 'none'"},
		{"Cache-Control", "no-store, no-cache, must-revalidate, max-age=0"},
	}
	for _, tt := range tests {
		if got := rec.Header().Get(tt.header); got != tt.expected {
			t.Errorf("Header %s: expected %q, got %q", tt.header, tt.expected, got)
		}
	}

	if rec.Header().Get("Strict-Transport-Security") != "" {
		t.Error("HSTS must not be sent over plain HTTP")
	}
	if rec.Header().Get("Cross-Origin-Opener-Policy") != "" {
		t.Error("COOP only expected in strict mode")
	}
}

func TestSecurityHeaders_HSTS_OverTLS(t *testing.T) {
	wrapped := mw.SecurityHeaders(false)(okHandler())

	req := httptest.NewRequest("GET", "https://example.com/", nil)
	req.TLS = &tls.ConnectionState{}
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	if rec.Header().Get("Strict-Transport-Security") == "" {
		t.Error("Expected HSTS over TLS")
	}
}

func TestSecurityHeaders_Strict(t *testing.T) {
	wrapped := mw.SecurityHeaders(true)(okHandler())

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	for _, h := range []string{"Cross-Origin-Opener-Policy", "Cross-Origin-Embedder-Policy", "Cross-Origin-Resource-Policy"} {
		if rec.Header().Get(h) == "" {
			t.Errorf("Expected %s in strict mode", h)
		}
	}
}
