// Package webserver serves saved benchmark runs over HTTP: a JSON API for
// the raw records and rendered HTML reports for browsers.
package webserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/tjc-lp/xlbench/internal/store"
)

// Config holds the HTTP server configuration.
type Config struct {
	Port       int
	ResultsDir string
}

// Server wraps the echo server with its result store.
type Server struct {
	cfg   Config
	echo  *echo.Echo
	store *store.Store
}

// New creates a server over the given results directory.
func New(cfg Config) *Server {
	if cfg.Port == 0 {
		cfg.Port = 3000
	}
	if cfg.ResultsDir == "" {
		cfg.ResultsDir = "results"
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{
		cfg:   cfg,
		echo:  e,
		store: store.New(cfg.ResultsDir),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/api/runs", s.listRuns)
	s.echo.GET("/api/runs/:name", s.getRun)
	s.echo.GET("/runs/:name", s.runReport)
	s.echo.GET("/", s.index)
}

// ListenAndServe starts the server and shuts it down when ctx ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := fmt.Sprintf("127.0.0.1:%d", s.cfg.Port)
	slog.Info("HTTP server starting", "address", addr, "results_dir", s.cfg.ResultsDir)
	fmt.Printf("xlbench results: http://%s\n", addr)

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.echo.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error", "error", err)
		}
	}()

	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Handler returns the underlying http.Handler (useful for testing).
func (s *Server) Handler() http.Handler {
	return s.echo
}
