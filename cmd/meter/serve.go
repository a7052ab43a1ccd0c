package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/5w1tchy/password-meter/internal/api/handlers"
	mw "github.com/5w1tchy/password-meter/internal/api/middlewares"
	"github.com/5w1tchy/password-meter/internal/api/router"
	"github.com/5w1tchy/password-meter/internal/config"
	"github.com/5w1tchy/password-meter/internal/logging"
	"github.com/5w1tchy/password-meter/internal/metrics"
	"github.com/5w1tchy/password-meter/internal/validate"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web form",
	Long:  `Serve the password strength meter page. Configuration comes from the environment (and .env).`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address, overrides ADDR")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stdout)

	if err := validate.Env(cfg); err != nil {
		return err
	}
	for _, w := range validate.HardeningWarnings(cfg) {
		log.Warn().Msg(w)
	}

	opts := router.Options{
		Metrics:        metrics.New(),
		CSRF:           mw.DefaultCSRFOptions(cfg.UseTLS()),
		GenerateLength: cfg.GenerateLength,
		MaxBodySize:    cfg.MaxBodySize,
		StrictSecurity: cfg.StrictSecurity,
	}

	if cfg.RedisEnabled() {
		rdb, err := newRedisClient(cfg)
		if err != nil {
			return err
		}
		defer rdb.Close()

		// Fail fast if Redis isn't reachable
		if err := validate.PingRedis(rdb, 3*time.Second); err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
		log.Info().Msg("connected to redis")

		opts.Limiter = mw.NewRedisTokenBucket(rdb, cfg.RateLimitPerSecond, cfg.RateLimitBurst, mw.PerIPKey("rl:meter", cfg.TrustProxy))
		opts.Health = handlers.Pinger(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	} else {
		opts.Limiter = mw.NewLocalTokenBucket(cfg.RateLimitPerSecond, cfg.RateLimitBurst, mw.PerIPKey("rl:meter", cfg.TrustProxy))
	}

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router.Handler(opts),
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Bool("tls", cfg.UseTLS()).Str("env", cfg.AppEnv).Msg("server listening")
		if cfg.UseTLS() {
			errCh <- server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			errCh <- server.ListenAndServe()
		}
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func newRedisClient(cfg *config.Config) (*redis.Client, error) {
	if cfg.RedisURL != "" {
		// e.g. rediss://default:<token>@host:port
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		if opt.TLSConfig != nil && opt.TLSConfig.MinVersion < tls.VersionTLS12 {
			opt.TLSConfig.MinVersion = tls.VersionTLS12
		}
		opt.DialTimeout = 5 * time.Second
		opt.ReadTimeout = time.Second
		opt.WriteTimeout = time.Second
		return redis.NewClient(opt), nil
	}

	return redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Username:     cfg.RedisUser,
		Password:     cfg.RedisPassword,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	}), nil
}
