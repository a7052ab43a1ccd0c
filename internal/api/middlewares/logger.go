package middlewares

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// accessWriter records the status and stamps X-Response-Time just before headers go out.
type accessWriter struct {
	http.ResponseWriter
	start       time.Time
	wroteHeader bool
	status      int
	bytes       int
}

func (w *accessWriter) stamp() {
	if !w.wroteHeader {
		w.Header().Set("X-Response-Time", time.Since(w.start).String())
		w.wroteHeader = true
	}
}

func (w *accessWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.status = code
	w.stamp()
	w.ResponseWriter.WriteHeader(code)
}

func (w *accessWriter) Write(b []byte) (int, error) {
	w.stamp()
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// RequestLogger writes one access log line per request. Only the path is logged,
// never the query or body, so submitted passwords cannot leak into logs.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		aw := &accessWriter{
			ResponseWriter: w,
			start:          time.Now(),
			status:         http.StatusOK,
		}
		next.ServeHTTP(aw, r)

		// nothing written (HEAD, empty 200)
		if !aw.wroteHeader {
			aw.Header().Set("X-Response-Time", time.Since(aw.start).String())
		}

		var ev *zerolog.Event
		switch {
		case aw.status >= 500:
			ev = log.Error()
		case aw.status >= 400:
			ev = log.Warn()
		default:
			ev = log.Info()
		}
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			ev.Str("forwarded_for", xff)
		}
		ev.Str("request_id", GetRequestID(r)).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("client_ip", clientIP(r, false)).
			Int("status", aw.status).
			Int("bytes", aw.bytes).
			Dur("duration", time.Since(aw.start)).
			Msg("request")
	})
}
