// Package web provides the HTTP server, pages, and JSON/export API for module
// comparison.
package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/ModCompare/internal/config"
	"github.com/JonMunkholm/ModCompare/internal/core"
	"github.com/JonMunkholm/ModCompare/internal/export"
	"github.com/JonMunkholm/ModCompare/internal/web/middleware"
)

const contentSecurityPolicy = "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; font-src 'self'"

// Server is the HTTP server for the comparison UI and API.
type Server struct {
	service *core.Service
	builder *export.Builder
	cfg     *config.Config
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a server. The builder decides whether PDF export is
// offered.
func NewServer(service *core.Service, builder *export.Builder, cfg *config.Config) *Server {
	s := &Server{
		service: service,
		builder: builder,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(chimw.RequestID)
	s.router.Use(middleware.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(middleware.Logger)
	s.router.Use(chimw.Recoverer)
	if s.cfg.Server.RequestTimeout > 0 {
		s.router.Use(chimw.Timeout(s.cfg.Server.RequestTimeout))
	}
	s.router.Use(securityHeaders(s.cfg.Security.EnableCSP))

	if s.cfg.Rate.Enabled {
		s.router.Use(newRateLimiter(s.cfg.Rate.RequestsPerMinute, time.Minute).middleware)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	// Pages
	s.router.Get("/", s.handleComparePage)
	s.router.Get("/custom", s.handleCustomPage)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/models", s.handleListModels)
		r.Get("/parameters", s.handleListParameters)
		r.Get("/compare", s.handleCompare)

		r.Route("/export", func(r chi.Router) {
			if s.cfg.Rate.Enabled {
				r.Use(newRateLimiter(s.cfg.Rate.ExportLimit, time.Minute).middleware)
			}
			r.Get("/compare.{format}", s.handleExportCompare)
			r.Get("/custom.{format}", s.handleExportCustom)
		})

		r.With(middleware.APIKeyAuth(&s.cfg.Security)).Post("/cache/clear", s.handleClearCache)
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully. It returns
// only after in-flight requests and renders have finished or shutdownTimeout
// has passed.
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	s.server = s.newHTTPServer(addr)
	slog.Info("starting server", "addr", addr, "pdf_export", s.builder.CanRender())

	errCh := make(chan error, 1)
	go func() { errCh <- s.server.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.Shutdown(shutdownCtx)
	if serveErr := <-errCh; !errors.Is(serveErr, http.ErrServerClosed) && err == nil {
		err = serveErr
	}
	slog.Info("server stopped")
	return err
}

func (s *Server) newHTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
}

// Shutdown stops accepting requests and waits for in-flight renders.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	err := s.server.Shutdown(ctx)
	if limiter := s.builder.Limiter(); limiter != nil {
		if drainErr := limiter.WaitForDrain(ctx); drainErr != nil {
			slog.Warn("renders still active at shutdown", "active", limiter.ActiveCount())
		}
	}
	return err
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(enableCSP bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			if enableCSP {
				w.Header().Set("Content-Security-Policy", contentSecurityPolicy)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeJSON encodes v as JSON and writes it to w. Encoding happens before
// the status is written so a failure becomes a 500 rather than an empty 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
