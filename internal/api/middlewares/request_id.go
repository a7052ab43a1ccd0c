package middlewares

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

type ctxKey int

const ctxKeyRequestID ctxKey = iota

const headerRequestID = "X-Request-ID"

var ridRe = regexp.MustCompile(`^[A-Za-z0-9_.\-]{1,64}$`)

// RequestID keeps a well-formed inbound X-Request-ID or mints a UUID, and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get(headerRequestID)
		if !ridRe.MatchString(rid) {
			rid = uuid.NewString()
		}
		r = r.WithContext(context.WithValue(r.Context(), ctxKeyRequestID, rid))
		r.Header.Set(headerRequestID, rid)
		w.Header().Set(headerRequestID, rid)

		next.ServeHTTP(w, r)
	})
}

// GetRequestID extracts the value previously set by RequestID.
func GetRequestID(r *http.Request) string {
	if v, _ := r.Context().Value(ctxKeyRequestID).(string); v != "" {
		return v
	}
	return r.Header.Get(headerRequestID)
}
