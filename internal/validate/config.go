package validate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/5w1tchy/password-meter/internal/config"
)

// Env checks what Load cannot: that referenced files exist and that the
// Redis URL parses. Fail fast on bad config.
func Env(cfg *config.Config) error {
	if cfg.UseTLS() {
		for _, f := range []string{cfg.TLSCert, cfg.TLSKey} {
			if _, err := os.Stat(f); err != nil {
				return fmt.Errorf("TLS file %q: %w", f, err)
			}
		}
	}
	if cfg.RedisURL != "" {
		if _, err := redis.ParseURL(cfg.RedisURL); err != nil {
			return fmt.Errorf("REDIS_URL: %w", err)
		}
	}
	if cfg.WriteTimeout > cfg.ShutdownTimeout {
		return errors.New("SHUTDOWN_TIMEOUT must be at least WRITE_TIMEOUT so in-flight requests can finish")
	}
	return nil
}

// HardeningWarnings returns non-fatal warnings worth logging on startup.
func HardeningWarnings(cfg *config.Config) []string {
	var warns []string

	if cfg.GenerateLength < 12 {
		warns = append(warns, fmt.Sprintf("GENERATE_LENGTH=%d is below 12; generated passwords will be short", cfg.GenerateLength))
	}

	if strings.EqualFold(cfg.AppEnv, "production") {
		if !cfg.UseTLS() {
			warns = append(warns, "TLS_CERT/TLS_KEY not set; passwords are submitted in clear text unless a TLS proxy fronts the server")
		}
		if strings.HasPrefix(cfg.RedisURL, "redis://") {
			warns = append(warns, "REDIS_URL uses redis:// (no TLS). Prefer rediss:// for TLS")
		}
		if cfg.RedisURL == "" && cfg.RedisAddr != "" && cfg.RedisPassword == "" {
			warns = append(warns, "REDIS_ADDR provided without REDIS_PASSWORD; require auth in production")
		}
		if !cfg.RedisEnabled() {
			warns = append(warns, "no Redis configured; rate limits are per process")
		}
	}

	return warns
}

// PingRedis checks connectivity with a short timeout.
func PingRedis(rdb *redis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_, err := rdb.Ping(ctx).Result()
	return err
}
