// Package server exposes the margin simulator as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/careflow/margin-simulator/internal/calculation"
	"github.com/careflow/margin-simulator/internal/catalog"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Server wires the simulation engine to a gin router.
type Server struct {
	engine   *calculation.SimulationEngine
	logger   *zap.Logger
	pageSize int
	router   *gin.Engine
}

// New builds a server around engine. A nil logger disables request logging and
// pageSize <= 0 falls back to catalog.DefaultPageSize.
func New(engine *calculation.SimulationEngine, logger *zap.Logger, pageSize int) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pageSize <= 0 {
		pageSize = catalog.DefaultPageSize
	}
	s := &Server{
		engine:   engine,
		logger:   logger,
		pageSize: pageSize,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(s.logger))

	r.GET("/healthz", s.handleHealth)

	api := r.Group("/api")
	api.GET("/procedures", s.handleListProcedures)
	api.GET("/procedures/:id", s.handleGetProcedure)
	api.POST("/simulations", s.handleSimulate)
	api.POST("/calculate", s.handleCalculate)

	return r
}

// Handler returns the HTTP handler serving the API.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
