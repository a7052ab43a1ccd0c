package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/5w1tchy/password-meter/internal/api/httpx"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger func(ctx context.Context) error

const healthTimeout = time.Second

// Health reports liveness. With a Pinger (Redis, when configured) it also reports readiness.
func Health(ping Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			defer cancel()
			if err := ping(ctx); err != nil {
				log.Warn().Err(err).Msg("health check: dependency unavailable")
				httpx.ErrorJSON(w, http.StatusServiceUnavailable, "rate limit store unavailable")
				return
			}
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
