// Package metrics holds the Prometheus collectors for the meter. Nothing here ever
// records password material, only derived labels and counts.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "password_meter"

type Metrics struct {
	reg *prometheus.Registry

	Checks          *prometheus.CounterVec
	BlacklistHits   prometheus.Counter
	Generated       *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry, so several instances can coexist in tests.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		Checks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "password_checks_total",
			Help:      "Passwords scored, by resulting strength level",
		}, []string{"level"}),
		BlacklistHits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "password_blacklist_hits_total",
			Help:      "Submitted passwords rejected as commonly used",
		}),
		Generated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "passwords_generated_total",
			Help:      "Passwords generated, by generation mode",
		}, []string{"mode"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"pattern", "method", "code"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// Instrument observes request latency for the route registered under pattern.
func (m *Metrics) Instrument(pattern string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)
		m.RequestDuration.
			WithLabelValues(pattern, r.Method, strconv.Itoa(sw.status)).
			Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
