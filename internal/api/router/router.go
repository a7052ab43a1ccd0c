package router

import (
	"net/http"

	"github.com/5w1tchy/password-meter/internal/api/handlers"
	mw "github.com/5w1tchy/password-meter/internal/api/middlewares"
	"github.com/5w1tchy/password-meter/internal/metrics"
)

type Options struct {
	Metrics        *metrics.Metrics
	CSRF           mw.CSRFOptions
	GenerateLength int
	Health         handlers.Pinger // nil when there is nothing to probe

	Limiter        mw.Limiter
	MaxBodySize    int64
	StrictSecurity bool
}

func Router(opts Options) *http.ServeMux {
	mux := http.NewServeMux()
	page := handlers.NewPage(opts.Metrics, opts.CSRF, opts.GenerateLength)

	handle := func(pattern string, h http.Handler) {
		mux.Handle(pattern, opts.Metrics.Instrument(pattern, h))
	}

	// Page ({$} keeps / from matching every path)
	handle("GET /{$}", http.HandlerFunc(page.Show))
	handle("POST /{$}", mw.CSRF(opts.CSRF)(http.HandlerFunc(page.Submit)))
	handle("GET /static/style.css", http.HandlerFunc(handlers.Stylesheet))

	// Ops
	handle("GET /healthz", handlers.Health(opts.Health))
	mux.Handle("GET /metrics", opts.Metrics.Handler())

	return mux
}

// Handler is the router behind the full middleware stack, outermost first.
func Handler(opts Options) http.Handler {
	mws := []mw.Middleware{
		mw.RequestID,
		mw.RequestLogger,
		mw.Compression,
		mw.Recovery,
		mw.SecurityHeaders(opts.StrictSecurity),
	}
	if opts.Limiter != nil {
		mws = append(mws, opts.Limiter.Middleware)
	}
	mws = append(mws,
		mw.BodySizeLimit(opts.MaxBodySize),
		mw.HPP(mw.FormHPPOptions()),
	)
	return mw.Chain(Router(opts), mws...)
}
