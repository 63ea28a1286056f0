// internal/server/server.go
// Package server previews an exported site over HTTP, mounted under the
// same base path it will be deployed to.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/mwiater/lrmeval/internal/appconfig"
	"github.com/mwiater/lrmeval/internal/logging"
)

// Config holds the HTTP server configuration.
type Config struct {
	Dir      string
	BasePath string
	Host     string
	Port     int
	// AllowedOrigins defaults to any origin.
	AllowedOrigins []string
}

// Server wraps the HTTP server with configuration.
type Server struct {
	cfg     Config
	srv     *http.Server
	metrics *Metrics
}

// New creates a new preview server for an exported directory.
func New(cfg Config) (*Server, error) {
	if cfg.Dir == "" {
		return nil, errors.New("server: site directory is required")
	}
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("server: %s is not a directory", cfg.Dir)
	}
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == 0 {
		cfg.Port = 3000
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	cfg.BasePath = appconfig.NormalizeBasePath(cfg.BasePath)

	s := &Server{cfg: cfg, metrics: NewMetrics()}
	s.srv = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, requestLogger, middleware.Recoverer)
	r.Use(s.metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Accept-Encoding", "Content-Type"},
		ExposedHeaders: []string{"Content-Length", "Content-Encoding"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	static := &staticHandler{dir: s.cfg.Dir, base: s.cfg.BasePath, metrics: s.metrics}
	if s.cfg.BasePath == "" {
		r.Handle("/*", static)
		return r
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, s.cfg.BasePath+"/", http.StatusFound)
	})
	r.Mount(s.cfg.BasePath, http.StripPrefix(s.cfg.BasePath, static))
	return r
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}

// URL is the address of the site root.
func (s *Server) URL() string {
	return fmt.Sprintf("http://%s%s/", s.srv.Addr, s.cfg.BasePath)
}

// ListenAndServe starts the HTTP server and blocks until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	logging.LogEvent("[SERVE] dir=%s addr=%s base=%q", s.cfg.Dir, s.srv.Addr, s.cfg.BasePath)
	fmt.Printf("lrmeval preview: %s\n", s.URL())

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		logging.LogEvent("[SERVE] shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			logging.LogEvent("[SERVE] shutdown error: %v", err)
		}
	}()

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Handler returns the underlying http.Handler (useful for testing).
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logging.LogEvent("[HTTP] %s %s status=%d bytes=%d dur=%s id=%s",
			r.Method, r.URL.Path, ww.Status(), ww.BytesWritten(), time.Since(start), middleware.GetReqID(r.Context()))
	})
}
