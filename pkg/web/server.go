// Package web exposes focusbox telemetry and the emergency controls
// over HTTP.
package web

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/SZhOU-c/focusbox/pkg/box"
)

// Controller is the slice of the state machine the server needs.
type Controller interface {
	Snapshot() box.Status
	Emergency()
	Reset()
}

// Server serves the status API.
type Server struct {
	app     *fiber.App
	port    string
	machine Controller
	logger  *slog.Logger
}

// NewServer builds the server around the given controller.
func NewServer(port string, machine Controller) *Server {
	s := &Server{
		port:    port,
		machine: machine,
		logger:  slog.Default().With("component", "web"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Focusbox",
		DisableStartupMessage: true,
	})

	// Allow a dashboard served from elsewhere on the LAN
	app.Use(cors.New())

	app.Get("/healthz", s.handleHealth)

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Post("/emergency", s.handleEmergency)
	api.Post("/reset", s.handleReset)

	s.app = app
	return s
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("telemetry server listening", "port", s.port)
	return s.app.Listen(":" + s.port)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
