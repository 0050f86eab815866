// Package ops provides the operational HTTP server: service info, health,
// tool-call stats, and Prometheus metrics. It runs beside the MCP transport
// and never serves protocol traffic.
package ops

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/Denis-Chistyakov/Skycast/internal/analytics"
	"github.com/Denis-Chistyakov/Skycast/internal/version"
	"github.com/Denis-Chistyakov/Skycast/internal/weather"
)

// Server is the ops HTTP server.
type Server struct {
	app       *fiber.App
	collector *analytics.Collector
	weather   *weather.Client
	host      string
	port      int
}

// NewServer creates the ops server.
func NewServer(collector *analytics.Collector, weatherClient *weather.Client, host string, port int) *Server {
	app := fiber.New(fiber.Config{
		ServerHeader: "Skycast",
		AppName:      fmt.Sprintf("Skycast v%s", version.Version),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	s := &Server{
		app:       app,
		collector: collector,
		weather:   weatherClient,
		host:      host,
		port:      port,
	}

	app.Use(RequestIDMiddleware())
	app.Use(LoggingMiddleware())

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.app.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":    "Skycast",
			"version": version.Version,
			"status":  "running",
		})
	})

	s.app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	s.app.Get("/version", func(c fiber.Ctx) error {
		return c.JSON(version.Info())
	})

	// Metrics endpoint (Prometheus)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	s.app.Get("/stats", func(c fiber.Ctx) error {
		if s.collector == nil || !s.collector.Enabled() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "analytics not enabled",
			})
		}
		return c.JSON(fiber.Map{
			"tools":    s.collector.GetStats(),
			"upstream": s.weather.Stats(),
		})
	})
}

// Start begins listening in a background goroutine.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	log.Info().Str("addr", addr).Msg("Starting ops HTTP server")

	go func() {
		if err := s.app.Listen(addr); err != nil {
			log.Error().Err(err).Msg("Ops server error")
		}
	}()

	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	log.Info().Msg("Stopping ops HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// App exposes the fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
