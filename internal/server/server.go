// Package server exposes the display over HTTP.
//
// Devices poll GET /api/screen for the current frame and send the ETag of
// the frame they show in If-None-Match; an unchanged frame answers 304.
// The remaining routes inspect and steer the refresh loop.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/inkframe/inkframe"
	"github.com/inkframe/inkframe/internal/refresh"
	"github.com/inkframe/inkframe/layout"
	"github.com/inkframe/inkframe/plugin"
)

// ShutdownTimeout bounds graceful shutdown in ListenAndServe.
const ShutdownTimeout = 10 * time.Second

// Server serves the HTTP API.
type Server struct {
	refresh *refresh.Manager
	plugins *plugin.Manager
	engine  *layout.Engine
	clock   func() time.Time
	router  chi.Router
}

// New returns a server steering rm, reporting on pm and listing the
// layouts of e.
func New(rm *refresh.Manager, pm *plugin.Manager, e *layout.Engine) *Server {
	s := &Server{
		refresh: rm,
		plugins: pm,
		engine:  e,
		clock:   time.Now,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/screen", s.handleScreen)
		r.Post("/refresh", s.handleRefresh)
		r.Get("/status", s.handleStatus)
		r.Get("/data", s.handleData)
		r.Get("/data/{plugin}", s.handlePluginData)
		r.Get("/layouts", s.handleLayouts)
		r.Post("/layout", s.handleSetLayout)
		r.Post("/rotation", s.handleRotation)
		r.Post("/plugin/{name}/toggle", s.handleToggle)
		r.Post("/plugin/{name}/refresh", s.handlePluginRefresh)
		r.Get("/health", s.handleHealth)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		inkframe.Logger().Info("server listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	inkframe.Logger().Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		inkframe.Logger().Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
