package web

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-haptic/pkg/hub"
)

// handleState returns the most recent display frame.
func (s *Server) handleState(c *fiber.Ctx) error {
	s.frameMu.RLock()
	defer s.frameMu.RUnlock()
	return c.JSON(s.frame)
}

// ratesResponse is the loop-rate summary for the dashboard header.
type ratesResponse struct {
	HapticHz   float64 `json:"haptic_hz"`
	GraphicsHz float64 `json:"graphics_hz"`
}

// handleRates returns the measured loop rates.
func (s *Server) handleRates(c *fiber.Ctx) error {
	s.frameMu.RLock()
	defer s.frameMu.RUnlock()
	return c.JSON(ratesResponse{
		HapticHz:   s.frame.HapticHz,
		GraphicsHz: s.frame.GraphicsHz,
	})
}

// handleStateWS streams display frames to a dashboard client.
func (s *Server) handleStateWS(c *websocket.Conn) {
	client := hub.NewClient(s.frameHub, c)
	client.Run() // Blocks until the connection closes
}
