// Package metrics exposes engine and HTTP metrics for Prometheus.
package metrics

import (
	"bufio"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/litescript/ls-orrery/internal/ephem"
	"github.com/litescript/ls-orrery/internal/orbit"
)

var (
	ticksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ls_orrery_ticks_total",
			Help: "Total number of controller ticks.",
		},
	)

	tickDtSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ls_orrery_tick_dt_seconds",
			Help:    "Clamped frame time passed to the controller.",
			Buckets: []float64{0.005, 0.01, 0.02, 0.04, 0.08, 0.1},
		},
	)

	ephemerisFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ls_orrery_ephemeris_failures_total",
			Help: "Times a body's angle started being held because its ephemeris failed.",
		},
		[]string{"body"},
	)

	modeSwitchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ls_orrery_mode_switches_total",
			Help: "Mode switches by destination mode.",
		},
		[]string{"mode"},
	)

	wsClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ls_orrery_ws_clients",
			Help: "Connected WebSocket snapshot subscribers.",
		},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ls_orrery_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ls_orrery_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)
)

func init() {
	prometheus.MustRegister(ticksTotal)
	prometheus.MustRegister(tickDtSeconds)
	prometheus.MustRegister(ephemerisFailuresTotal)
	prometheus.MustRegister(modeSwitchesTotal)
	prometheus.MustRegister(wsClients)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpDurationSeconds)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Engine is an orbit.Observer that records controller activity.
type Engine struct{}

var _ orbit.Observer = Engine{}

func (Engine) ModeChanged(_, to orbit.Mode) {
	modeSwitchesTotal.WithLabelValues(to.String()).Inc()
}

func (Engine) BodyHeld(body ephem.Body, _ error) {
	ephemerisFailuresTotal.WithLabelValues(body.String()).Inc()
}

func (Engine) BodyRecovered(ephem.Body) {}

func (Engine) Ticked(dt float64) {
	ticksTotal.Inc()
	tickDtSeconds.Observe(dt)
}

// ClientConnected and ClientDisconnected track WebSocket subscribers.
func ClientConnected()    { wsClients.Inc() }
func ClientDisconnected() { wsClients.Dec() }

// knownRoutes are the paths served by the HTTP API. Anything else is
// labeled "other" to keep cardinality bounded.
var knownRoutes = map[string]bool{
	"/healthz":          true,
	"/metrics":          true,
	"/ws":               true,
	"/api/v1/snapshot":  true,
	"/api/v1/events":    true,
	"/api/v1/stars":     true,
	"/api/v1/zodiac":    true,
	"/api/v1/mode":      true,
	"/api/v1/catalog":   true,
	"/api/v1/ayanamsa":  true,
	"/api/v1/providers": true,
}

func normalizeRoute(path string) string {
	if knownRoutes[path] {
		return path
	}
	return "other"
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Hijack lets WebSocket upgrades through the wrapper.
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("metrics: underlying ResponseWriter is not a Hijacker")
	}
	rw.statusCode = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Middleware records request count and duration for each request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		code := strconv.Itoa(rw.statusCode)
		path := normalizeRoute(r.URL.Path)

		httpRequestsTotal.WithLabelValues(path, r.Method, code).Inc()
		httpDurationSeconds.WithLabelValues(path, r.Method).Observe(duration)
	})
}
