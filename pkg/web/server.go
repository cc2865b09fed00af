// Package web provides the real-time dashboard for the haptic demo: REST
// endpoints for the current simulation state and a WebSocket stream of
// display frames.
package web

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-haptic/internal/log"
	"github.com/teslashibe/go-haptic/pkg/hub"
	"github.com/teslashibe/go-haptic/pkg/render"
)

// Server is the dashboard server. It implements render.FrameSink: the
// render loop pushes one frame per display tick, which is kept as the
// current state and broadcast to websocket clients.
type Server struct {
	app  *fiber.App
	port string

	// Latest frame from the render loop
	frameMu sync.RWMutex
	frame   render.Frame

	// Hub for websocket broadcast
	frameHub *hub.Hub
}

var _ render.FrameSink = (*Server)(nil)

// NewServer creates a new dashboard server
func NewServer(port string) *Server {
	s := &Server{
		port:     port,
		frameHub: hub.New("frames"),
	}

	app := fiber.New(fiber.Config{
		AppName:               "go-haptic dashboard",
		DisableStartupMessage: true,
	})

	// CORS for local development
	app.Use(cors.New())

	// API routes
	api := app.Group("/api")
	api.Get("/state", s.handleState)
	api.Get("/rates", s.handleRates)

	// WebSocket upgrade middleware
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/state", websocket.New(s.handleStateWS))

	s.app = app
	return s
}

// Start starts the web server. Blocks.
func (s *Server) Start() error {
	log.Info("dashboard listening", "addr", "http://localhost:"+s.port)

	go s.frameHub.Run()

	return s.app.Listen(":" + s.port)
}

// StartAsync starts the web server in a goroutine
func (s *Server) StartAsync() {
	go func() {
		if err := s.Start(); err != nil {
			log.Error("web server error", "err", err)
		}
	}()
}

// PushFrame stores the latest frame and broadcasts it to clients.
// Called by the render loop at display rate.
func (s *Server) PushFrame(f render.Frame) {
	s.frameMu.Lock()
	s.frame = f
	s.frameMu.Unlock()

	s.frameHub.BroadcastJSON(f)
}

// Shutdown gracefully stops the web server
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
