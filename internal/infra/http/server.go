package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"shopping-list-bot/internal/infra/logging"
)

const uptimeText = "✅ Uptime OK"

// Server serves liveness, metrics and, in webhook mode, Telegram updates.
type Server struct {
	port     int
	webhook  http.Handler
	hookPath string
	gatherer prometheus.Gatherer
	users    UserCounter
	apiKey   string
	log      *zerolog.Logger
	server   *http.Server
}

type Option func(*Server)

// WithWebhook mounts h at POST path.
func WithWebhook(path string, h http.Handler) Option {
	return func(s *Server) {
		s.hookPath = path
		s.webhook = h
	}
}

// WithGatherer replaces the default Prometheus registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

func NewServer(port int, logger *zerolog.Logger, opts ...Option) *Server {
	s := &Server{
		port:     port,
		gatherer: prometheus.DefaultGatherer,
		log:      logging.Component(logger, "http"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.accessLog)

	r.Get("/", s.handleUptime)
	r.Get("/uptime", s.handleUptime)
	r.Get("/health", s.handleHealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	if s.webhook != nil {
		r.Method(http.MethodPost, s.hookPath, s.webhook)
	}
	if s.users != nil && s.apiKey != "" {
		r.With(s.authMiddleware).Get("/api/v1/stats", s.handleStats)
	}
	return r
}

// Start blocks until the server stops. A clean Shutdown returns nil.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info().Int("port", s.port).Msg("HTTP server listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) handleUptime(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(uptimeText))
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
