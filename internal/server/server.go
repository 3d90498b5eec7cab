// internal/server/server.go

package server

import (
	"context"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"travel-assistant/internal/common/config"
	"travel-assistant/internal/common/logger"
)

type Server struct {
	httpServer *http.Server
	logger     logger.Logger
}

// New wires the API routes plus the operational endpoints onto one
// listener.
func New(cfg config.ServerConfig, handlers *Handlers, log logger.Logger) *Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/display-itinerary", handlers.DisplayItinerary)
	mux.HandleFunc("/ask", handlers.Ask)
	mux.HandleFunc("/healthz", handlers.Healthz)
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Address,
			Handler:      mux,
			ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
			WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
		},
		logger: log,
	}
}

// Start blocks serving requests until Shutdown or a listener error.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", map[string]interface{}{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
