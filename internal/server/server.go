// Package server exposes word counting over HTTP: a multipart upload
// endpoint plus health and Prometheus endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/netutil"

	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/config"
	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/logging"
	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/metrics"
	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/wordcount"
)

// Server wraps the HTTP server
type Server struct {
	httpServer *http.Server
	cfg        *config.Config
	logger     *slog.Logger
}

// NewServer creates a new Server instance
func NewServer(cfg *config.Config, counter wordcount.WordCounter, cache *wordcount.ResultCache, logger *slog.Logger) *Server {
	logger = logging.OrDefault(logger)
	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           NewRouter(cfg, counter, cache, logger),
			ReadHeaderTimeout: ReadHeaderTimeout,
			ReadTimeout:       ReadTimeout,
			WriteTimeout:      WriteTimeout,
			IdleTimeout:       IdleTimeout,
		},
		cfg:    cfg,
		logger: logger,
	}
}

// NewRouter builds the route table and middleware chain. Request logs go to
// logger, or slog.Default() when it is nil.
func NewRouter(cfg *config.Config, counter wordcount.WordCounter, cache *wordcount.ResultCache, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(requestContextMiddleware(logging.OrDefault(logger)))
	r.Use(loggingMiddleware)
	r.Use(metrics.Middleware)

	r.Get(RouteHealthz, HandleHealthz())
	r.Handle(RouteMetrics, promhttp.Handler())
	r.Method(http.MethodPost, RouteUpload, NewUploadHandler(cfg.UploadDir, cfg.MaxUploadBytes, counter, cache))

	return r
}

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln, at most MaxConnections at a time.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("Starting server",
		"addr", ln.Addr().String(),
		"upload_dir", s.cfg.UploadDir,
		"max_connections", s.cfg.MaxConnections)

	err := s.httpServer.Serve(netutil.LimitListener(ln, s.cfg.MaxConnections))
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down server")
	return s.httpServer.Shutdown(ctx)
}
