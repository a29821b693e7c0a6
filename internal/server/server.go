// Package server publishes the orrery over HTTP: JSON snapshots, the star
// wall, zodiac boundaries, a control endpoint and a WebSocket frame push.
package server

import (
	"bufio"
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/logging"
	"github.com/litescript/ls-orrery/internal/metrics"
	"github.com/litescript/ls-orrery/internal/state"
)

// Config holds server settings.
type Config struct {
	Addr            string
	PushHz          float64
	MaxClients      int
	MaxClientsPerIP int
	Location        *time.Location // for date query parameters
	Now             func() time.Time
}

// Server holds the HTTP server and its dependencies.
type Server struct {
	httpServer *http.Server
	handler    http.Handler
	logger     *logging.Logger

	state    *state.Manager
	commands Commander
	catalog  astro.StarCatalog

	pushHz   float64
	limiter  *connLimiter
	upgrader websocket.Upgrader
	loc      *time.Location
	now      func() time.Time

	// closed when Shutdown starts; WebSocket pushers exit on it
	done   context.Context
	cancel context.CancelFunc
}

// New creates a configured HTTP server.
func New(cfg Config, st *state.Manager, commands Commander, catalog astro.StarCatalog, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	if cfg.PushHz <= 0 {
		cfg.PushHz = 10
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	done, cancel := context.WithCancel(context.Background())
	s := &Server{
		logger:   logger.With("server"),
		state:    st,
		commands: commands,
		catalog:  catalog,
		pushHz:   cfg.PushHz,
		limiter:  newConnLimiter(cfg.MaxClientsPerIP, cfg.MaxClients),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		loc:    cfg.Location,
		now:    cfg.Now,
		done:   done,
		cancel: cancel,
	}

	mux := http.NewServeMux()

	// Register routes.
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /api/v1/snapshot", s.handleSnapshot)
	mux.HandleFunc("GET /api/v1/events", s.handleEvents)
	mux.HandleFunc("GET /api/v1/stars", s.handleStars)
	mux.HandleFunc("GET /api/v1/zodiac", s.handleZodiac)
	mux.HandleFunc("POST /api/v1/mode", s.handleMode)
	mux.HandleFunc("GET /ws", s.handleWS)

	// Build middleware chain: metrics -> logging -> mux.
	var handler http.Handler = mux
	handler = loggingMiddleware(s.logger)(handler)
	handler = metrics.Middleware(handler)
	s.handler = handler

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// HTTPServer returns the underlying *http.Server for external control.
func (s *Server) HTTPServer() *http.Server {
	return s.httpServer
}

// ListenAndServe starts the HTTP server. It returns nil after Shutdown.
func (s *Server) ListenAndServe() error {
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting requests, ends WebSocket pushes and waits for
// in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	return s.httpServer.Shutdown(ctx)
}

// probePath returns true for paths scraped often enough that logging them at
// INFO would drown everything else.
func probePath(path string) bool {
	return path == "/healthz" || path == "/metrics"
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := sr.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("server: ResponseWriter is not a Hijacker")
	}
	sr.statusCode = http.StatusSwitchingProtocols
	return h.Hijack()
}

func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}

func loggingMiddleware(logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(sr, r)

			log := logger.Info
			if probePath(r.URL.Path) {
				log = logger.Debug
			}
			log("%s %s %d %dms %s", r.Method, r.URL.Path, sr.statusCode,
				time.Since(start).Milliseconds(), r.RemoteAddr)
		})
	}
}
