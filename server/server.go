// Package server wires the HTTP and websocket surface of the PDF chat
// service.
package server

import (
	"context"
	"crypto/tls"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nikhilkoche/Home-Assignment/pkg/chat"
	"github.com/nikhilkoche/Home-Assignment/pkg/config"
	"github.com/nikhilkoche/Home-Assignment/pkg/connection"
	"github.com/nikhilkoche/Home-Assignment/pkg/health"
	"github.com/nikhilkoche/Home-Assignment/pkg/ingest"
	"github.com/nikhilkoche/Home-Assignment/pkg/logger"
)

// Server represents the chat service
type Server struct {
	cfg      *config.AppConfig
	registry *connection.Registry
	pump     *chat.Pump
	pipeline *ingest.Pipeline
	monitor  *health.Monitor
	log      *logger.Logger

	httpServer *http.Server
}

// NewServer creates a server over already-wired collaborators.
func NewServer(cfg *config.AppConfig, registry *connection.Registry, pump *chat.Pump, pipeline *ingest.Pipeline, monitor *health.Monitor) *Server {
	return &Server{
		cfg:      cfg,
		registry: registry,
		pump:     pump,
		pipeline: pipeline,
		monitor:  monitor,
		log:      logger.Get().With("component", "server"),
	}
}

// Router builds the Gin router with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.Default()
	router.Use(CORSMiddleware())

	router.GET("/", s.handleIndex)
	router.GET("/chat/:client_id", s.handleChat)
	router.POST("/upload_pdf", s.handleUploadPDF)
	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}

// Start runs the HTTP server until Shutdown or a listener error.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:    s.cfg.Server.Address,
		Handler: s.Router(),
	}
	s.httpServer = srv

	var err error
	if s.cfg.Server.TLS.Enabled {
		srv.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		s.log.InfoWith("Starting server with TLS", "address", s.cfg.Server.Address)
		err = srv.ListenAndServeTLS(s.cfg.Server.TLS.CertFile, s.cfg.Server.TLS.KeyFile)
	} else {
		s.log.InfoWith("Starting server", "address", s.cfg.Server.Address)
		err = srv.ListenAndServe()
	}
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.log.InfoWith("Shutting down HTTP server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.httpServer.Close()
		return err
	}
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	h := s.monitor.GetHealth(s.registry.Count())
	status := http.StatusOK
	if h.Status == health.StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, h)
}

// CORSMiddleware allows browser clients served from other origins.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
