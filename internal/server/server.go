// Package server exposes deck generation over HTTP.
//
// Routes:
//
//	POST /api/generate-ppt  JSON or YAML request body, artifact bytes in response
//	GET  /healthz           liveness probe
//
// Structurally invalid requests get 400; every other failure gets 500. Error
// bodies are JSON: {"error": "...", "details": "..."}.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	deckgen "github.com/alnah/go-deckgen"
)

// Generator produces one artifact per request.
type Generator interface {
	Generate(ctx context.Context, req deckgen.Request) (*deckgen.Result, error)
}

// Defaults for Options fields left zero.
const (
	DefaultMaxBodyBytes    = 1 << 20
	DefaultShutdownTimeout = 10 * time.Second
	readHeaderTimeout      = 10 * time.Second
)

// Error messages sent to clients.
const (
	msgInvalidStructure = "Invalid presentation data structure"
	msgGenerateFailed   = "Failed to generate presentation"
	msgBodyTooLarge     = "Request body too large"
)

// Options configures a Server.
type Options struct {
	Generator       Generator
	Logger          *log.Logger // nil discards
	MaxBodyBytes    int64       // 0 = DefaultMaxBodyBytes
	ShutdownTimeout time.Duration
}

// Server routes HTTP requests to a Generator.
type Server struct {
	gen             Generator
	logger          *log.Logger
	maxBodyBytes    int64
	shutdownTimeout time.Duration
	router          chi.Router
}

// New builds a Server and its routes.
func New(opts Options) *Server {
	s := &Server{
		gen:             opts.Generator,
		logger:          opts.Logger,
		maxBodyBytes:    opts.MaxBodyBytes,
		shutdownTimeout: opts.ShutdownTimeout,
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.maxBodyBytes <= 0 {
		s.maxBodyBytes = DefaultMaxBodyBytes
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = DefaultShutdownTimeout
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Post("/api/generate-ppt", s.handleGenerate)

	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully. Returns nil after a clean shutdown.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
