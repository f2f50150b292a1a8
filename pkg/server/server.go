// Package server hosts the local preview server for generator asset
// trees. It serves a directory of sprite sheets and definition files over
// HTTP so the browser-based character generator can load them, and shuts
// down cleanly when the surrounding context is cancelled.
package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/spriteforge/pkg/errors"
)

// shutdownTimeout bounds how long in-flight requests may run after the
// context is cancelled.
const shutdownTimeout = 5 * time.Second

// Options configures the preview server.
type Options struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// Dir is the directory served at the root path.
	Dir string

	Logger *log.Logger
}

// Server serves a static asset directory.
type Server struct {
	opts Options
}

// New validates the options and creates a server.
func New(opts Options) (*Server, error) {
	if opts.Addr == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "listen address is required")
	}
	info, err := os.Stat(opts.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "asset directory %s", opts.Dir)
		}
		return nil, errors.Wrap(errors.ErrCodeIORead, err, "stat %s", opts.Dir)
	}
	if !info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s is not a directory", opts.Dir)
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Server{opts: opts}, nil
}

// Router builds the HTTP handler: a file server over the asset directory
// with request logging and panic recovery. http.FileServer cleans request
// paths, so traversal outside the directory is not possible.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/*", http.FileServer(http.Dir(s.opts.Dir)))
	return r
}

// ListenAndServe runs the server until the context is cancelled or the
// listener fails, then drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.opts.Logger.Info("preview server listening", "addr", s.opts.Addr, "dir", s.opts.Dir)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "shutdown")
		}
		s.opts.Logger.Info("preview server stopped")
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "listen on %s", s.opts.Addr)
	}
}

// requestLogger logs one line per request with status and timing.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.opts.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}
