// Package server exposes the rehearsal engine over HTTP: a WebSocket
// endpoint at /practice that streams transcript revisions in and progress
// updates out, plus the usual /healthz, /readyz, and /metrics routes.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/offstage/linecoach/internal/config"
	"github.com/offstage/linecoach/internal/health"
	"github.com/offstage/linecoach/internal/observe"
	"github.com/offstage/linecoach/internal/session"
)

// shutdownTimeout bounds how long Run waits for in-flight requests after the
// context is cancelled.
const shutdownTimeout = 10 * time.Second

// Server ties the session manager to the HTTP surface.
type Server struct {
	cfg      config.ServerConfig
	sessions *session.Manager
	metrics  *observe.Metrics
}

// New creates a Server. The metrics may be nil, in which case the
// package-level default instruments are used.
func New(cfg config.ServerConfig, sessions *session.Manager, metrics *observe.Metrics) *Server {
	if metrics == nil {
		metrics = observe.DefaultMetrics()
	}
	return &Server{
		cfg:      cfg,
		sessions: sessions,
		metrics:  metrics,
	}
}

// Handler builds the full route table wrapped in the observability
// middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /practice", s.handlePractice)
	mux.Handle("GET /metrics", promhttp.Handler())

	h := health.New(health.Checker{
		Name:  "matcher",
		Check: s.matcherCheck,
	})
	h.Register(mux)

	return observe.Middleware(s.metrics)(mux)
}

// matcherCheck verifies the session manager can hand out working sessions.
func (s *Server) matcherCheck(_ context.Context) error {
	if s.sessions == nil {
		return errors.New("session manager not configured")
	}
	return nil
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	addr := s.cfg.ListenAddr
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server listening", "addr", addr, "tls", s.cfg.TLS != nil)
		var err error
		if s.cfg.TLS != nil {
			err = srv.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
