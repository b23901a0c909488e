package web

import (
	"github.com/gofiber/fiber/v2"
)

// handleHealth is a liveness probe.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

// handleStatus returns the machine snapshot.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.machine.Snapshot())
}

// handleEmergency triggers an emergency unlock, the HTTP twin of the
// physical panic button.
func (s *Server) handleEmergency(c *fiber.Ctx) error {
	s.logger.Warn("emergency requested over HTTP", "ip", c.IP())
	s.machine.Emergency()
	return c.JSON(s.machine.Snapshot())
}

// handleReset clears an emergency. No-op in any other mode.
func (s *Server) handleReset(c *fiber.Ctx) error {
	s.machine.Reset()
	return c.JSON(s.machine.Snapshot())
}
