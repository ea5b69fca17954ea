// Package ui exposes the engine adapter to the IDE frontend over HTTP.
package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/robwalker-codes/granite-db/internal/granitectl"
)

// Adapter is the engine surface the API exposes. *granitectl.Client
// implements it.
type Adapter interface {
	VerifyOpenable(path string) error
	CreateDatabase(ctx context.Context, path string) error
	Execute(ctx context.Context, dbPath, sql, format string) (*granitectl.ExecResponse, error)
	Explain(ctx context.Context, dbPath, sql string) (string, error)
	Schema(ctx context.Context, dbPath string) (*granitectl.Schema, error)
	ExportCSV(ctx context.Context, dbPath, sql, destPath string) error
	Describe(ctx context.Context) granitectl.ToolInfo
}

// Server is the IDE-facing API server.
type Server struct {
	adapter Adapter
	logger  *slog.Logger
	host    string
	port    int
}

// Config holds configuration for the API server.
type Config struct {
	Adapter Adapter
	Logger  *slog.Logger
	Host    string
	Port    int
}

// NewServer creates a new API server instance.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Server{
		adapter: cfg.Adapter,
		logger:  logger,
		host:    cfg.Host,
		port:    cfg.Port,
	}
}

// Serve starts the API server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := net.JoinHostPort(s.host, strconv.Itoa(s.port))
	s.logger.Info("starting IDE API server", "addr", addr)

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Routes(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down IDE API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Routes builds the API router. Exposed separately from Serve so handler
// tests can drive it with httptest.
func (s *Server) Routes() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.Recoverer,
		s.requestLogger,
	)

	r.Route("/api", func(r chi.Router) {
		r.Post("/database/open", s.handleOpen)
		r.Post("/database/create", s.handleCreate)
		r.Post("/query/exec", s.handleExec)
		r.Post("/query/explain", s.handleExplain)
		r.Post("/query/export", s.handleExport)
		r.Get("/schema", s.handleSchema)
		r.Get("/tool", s.handleTool)
	})

	return r
}

// requestLogger tags every request with a correlation ID and logs its
// completion.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := uuid.NewString()
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)

		next.ServeHTTP(ww, req)

		s.logger.Debug("request",
			"id", id,
			"method", req.Method,
			"path", req.URL.Path,
			"status", ww.Status(),
			"elapsed", time.Since(start))
	})
}
