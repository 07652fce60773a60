// Package api serves the journal and its mined rules over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/franklinfx2/master-trader-sub000/journal"
	"github.com/franklinfx2/master-trader-sub000/rulecache"
)

// ServerConfig holds the HTTP settings.
type ServerConfig struct {
	Host    string
	Port    int
	Version string
	// RecentTrades is the default window for /api/rules; 0 means all trades.
	RecentTrades int
}

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	store      journal.Store
	cache      *rulecache.Cache
	config     ServerConfig
	logger     zerolog.Logger
}

// NewServer wires the routes. store and cache must be non-nil. Callers pick
// the gin mode before calling it.
func NewServer(config ServerConfig, store journal.Store, cache *rulecache.Cache, logger zerolog.Logger) *Server {
	s := &Server{
		router: gin.New(),
		store:  store,
		cache:  cache,
		config: config,
		logger: logger.With().Str("component", "api").Logger(),
	}
	s.router.Use(s.requestLogger())
	s.router.Use(gin.Recovery())
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.handleHealth)

		api.GET("/rules", s.handleRules)
		api.GET("/rules/stats", s.handleCacheStats)

		api.GET("/trades", s.handleListTrades)
		api.POST("/trades", s.handleCreateTrade)
		api.GET("/trades/:id", s.handleGetTrade)
		api.DELETE("/trades/:id", s.handleDeleteTrade)
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called. It returns nil after a clean
// shutdown, even one that happened before Start.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("starting HTTP server")

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		ev := s.logger.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			ev = s.logger.Error()
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"error":   true,
		"message": message,
	})
}
