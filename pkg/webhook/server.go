package webhook

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config holds the webhook server configuration.
type Config struct {
	Port string
}

// Validate checks the server configuration.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port cannot be empty")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid port %q: %w", c.Port, err)
	}
	return nil
}

// Server serves manifest validation over HTTP.
type Server struct {
	config *Config
}

// NewServer creates a new validation server.
func NewServer(config *Config) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Server{config: config}, nil
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestMetrics())

	router.GET("/healthz", s.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.POST("/v1/validate", s.ValidateHandler)

	return router
}

// Start runs the HTTP server until it fails.
func (s *Server) Start() error {
	return s.Router().Run(":" + s.config.Port)
}

func (s *Server) requestMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		requestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
