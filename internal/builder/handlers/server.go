// Package handlers provides the HTTP server and JSON handlers for the
// careers page builder, bridging the transport layer and business logic.
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/hirecanvas/hirecanvas/internal/builder/auth"
	"go.uber.org/zap"
)

// Server wraps the HTTP server and its router.
type Server struct {
	httpServer   *http.Server
	router       *mux.Router
	logger       *zap.Logger
	httpEndpoint string
}

// NewServer constructs a Server listening on the given port. Every route
// passes through the auth middleware so a valid token always yields an
// actor in the request context.
func NewServer(httpPort int, jwtSecret string, logger *zap.Logger) *Server {
	router := mux.NewRouter()
	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%d", httpPort),
			Handler: auth.Middleware(router, jwtSecret),
		},
		router:       router,
		logger:       logger,
		httpEndpoint: fmt.Sprintf(":%d", httpPort),
	}
}

// Router exposes the mux so handler sets can register their routes.
func (s *Server) Router() *mux.Router {
	return s.router
}

// Start runs the HTTP server, returning when it stops serving.
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", zap.String("endpoint", s.httpEndpoint))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP serve error: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() {
	s.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	s.logger.Info("Server stopped")
}
