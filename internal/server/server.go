// Package server exposes the dashboard reports as a JSON API for the web
// frontend.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joycelim/callheat/internal/util"
)

type Server struct {
	config  *Config
	dataset *Dataset
	http    *http.Server
}

func New(config *Config, dataset *Dataset) *Server {
	s := &Server{config: config, dataset: dataset}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(accessLog(util.Logger()))
	r.Use(chimiddleware.Recoverer)
	r.Use(corsHandler(config.AllowedOrigins))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/overview", s.handleOverview)
		r.Get("/heatmap", s.handleHeatmap)
		r.Get("/calendar", s.handleCalendar)
		r.Get("/trend", s.handleTrend)
		r.Get("/distribution", s.handleDistribution)
	})

	s.http = &http.Server{
		Addr:         ":" + config.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler exposes the router, used by the HTTP tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// ListenAndServe runs the server until the listener fails or Shutdown is
// called.
func (s *Server) ListenAndServe() error {
	util.LogInfo("server listening on :" + s.config.Port)
	return s.http.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
