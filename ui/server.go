package ui

import (
	"context"
	"net/http"
	"time"

	"esglens/app"
	"esglens/internal"
	"esglens/internal/config"
	"esglens/internal/session"

	"github.com/gin-gonic/gin"
)

// Server serves the dashboard API
type Server struct {
	router     *gin.Engine
	config     *config.Config
	dashboards *app.DashboardService
	sessions   *session.Store
}

// NewServer creates a server with its routes registered
func NewServer(cfg *config.Config, dashboards *app.DashboardService, sessions *session.Store) *Server {
	s := &Server{
		router:     gin.New(),
		config:     cfg,
		dashboards: dashboards,
		sessions:   sessions,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.POST("/sessions", s.handleCreateSession)
		api.GET("/sessions/:id", s.handleGetDashboard)
		api.PUT("/sessions/:id/selection", s.handleUpdateSelection)
		api.GET("/sessions/:id/options", s.handleOptions)
		api.GET("/sessions/:id/report", s.handleReport)
		api.GET("/sessions/:id/export", s.handleExport)
		api.DELETE("/sessions/:id", s.handleDeleteSession)
	}
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		internal.DefaultLogger.Info("[API] Starting esglens API on http://%s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	internal.DefaultLogger.Info("[API] Shutting down")
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": s.sessions.Len(),
	})
}
