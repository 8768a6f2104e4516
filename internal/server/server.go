// Package server exposes a local status endpoint for the agent: connection
// lifecycle state, badge counts and router dispatch counters.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"campus-notify/internal/api"
	"campus-notify/internal/badge"
	"campus-notify/internal/connection"
	"campus-notify/internal/router"
	"campus-notify/pkg/log"
)

// Server represents the local HTTP server.
type Server struct {
	config Config
	server *http.Server
}

// Config holds server configuration and the inspected components.
type Config struct {
	Host       string
	Port       int
	Mode       string
	Logger     log.Logger
	Connection connection.Manager
	Reconciler badge.Reconciler
	Router     router.Router
	API        api.Client
}

// New creates a new Server instance.
func New(cfg Config) *Server {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())

	setupRoutes(engine, cfg)

	return &Server{
		config: cfg,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      engine,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.config.Logger.Infof(context.Background(), "status server listening on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
