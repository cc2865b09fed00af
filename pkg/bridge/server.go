// Package bridge exposes a local haptic device over WebSocket so the
// demo can run with the device out of process. One control loop at a
// time: a second client is rejected while a session is active.
package bridge

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/soypat/geometry/md3"

	"github.com/teslashibe/go-haptic/internal/log"
	"github.com/teslashibe/go-haptic/pkg/haptic"
	"github.com/teslashibe/go-haptic/pkg/protocol"
)

// Server serves a haptic.Device on /ws/device.
type Server struct {
	app    *fiber.App
	device haptic.Device

	mu        sync.Mutex
	sessionID string // empty when no client is attached

	samplesSent    atomic.Uint64
	forcesReceived atomic.Uint64
}

// NewServer wraps a device in a bridge server.
func NewServer(dev haptic.Device) *Server {
	s := &Server{device: dev}

	app := fiber.New(fiber.Config{
		AppName:               "go-haptic bridge",
		DisableStartupMessage: true,
	})

	app.Get("/api/specs", s.handleSpecs)
	app.Get("/api/stats", s.handleStats)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/device", websocket.New(s.handleDevice))

	s.app = app
	return s
}

// Listen serves the bridge on the given address. Blocks.
func (s *Server) Listen(addr string) error {
	log.Info("bridge listening", "addr", addr)
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func (s *Server) handleSpecs(c *fiber.Ctx) error {
	specs := s.device.Specs()
	return c.JSON(protocol.SpecsData{
		MaxLinearForce:     specs.MaxLinearForce,
		MaxLinearStiffness: specs.MaxLinearStiffness,
		MaxLinearDamping:   specs.MaxLinearDamping,
		SampleRate:         specs.SampleRate,
	})
}

// Stats contains bridge statistics.
type Stats struct {
	SessionActive  bool   `json:"session_active"`
	SamplesSent    uint64 `json:"samples_sent"`
	ForcesReceived uint64 `json:"forces_received"`
}

func (s *Server) handleStats(c *fiber.Ctx) error {
	s.mu.Lock()
	active := s.sessionID != ""
	s.mu.Unlock()

	return c.JSON(Stats{
		SessionActive:  active,
		SamplesSent:    s.samplesSent.Load(),
		ForcesReceived: s.forcesReceived.Load(),
	})
}

// handleDevice runs one bridge session: announce specs, stream kinematic
// samples, apply incoming force commands.
func (s *Server) handleDevice(c *websocket.Conn) {
	sessionID := uuid.NewString()

	s.mu.Lock()
	if s.sessionID != "" {
		s.mu.Unlock()
		log.Warn("bridge session rejected, device busy", "session", sessionID)
		c.Close()
		return
	}
	s.sessionID = sessionID
	s.mu.Unlock()

	log.Info("bridge session started", "session", sessionID)
	defer func() {
		s.mu.Lock()
		s.sessionID = ""
		s.mu.Unlock()
		log.Info("bridge session ended", "session", sessionID)
	}()

	if err := s.sendSpecs(c); err != nil {
		log.Warn("bridge specs send failed", "err", err)
		return
	}

	// The sample pump owns writes; the read loop below owns reads.
	var writeMu sync.Mutex
	stop := make(chan struct{})
	go s.samplePump(c, &writeMu, stop)
	defer close(stop)

	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			return
		}

		msg, err := protocol.ParseMessage(data)
		if err != nil {
			log.Debug("bridge parse error", "err", err)
			continue
		}

		switch msg.Type {
		case protocol.TypeForce:
			force, err := msg.GetForceData()
			if err != nil {
				continue
			}
			s.forcesReceived.Add(1)
			s.device.SetForce(md3.Vec{X: force.Force[0], Y: force.Force[1], Z: force.Force[2]})
			s.device.Apply()

		case protocol.TypePing:
			pong, err := protocol.NewMessage(protocol.TypePong, protocol.PongData{
				PingTS: msg.Timestamp,
				PongTS: time.Now().UnixMilli(),
			})
			if err == nil {
				writeMu.Lock()
				s.writeMessage(c, pong)
				writeMu.Unlock()
			}
		}
	}
}

// samplePump drives the local device and streams its kinematic samples
// until the session ends.
func (s *Server) samplePump(c *websocket.Conn, writeMu *sync.Mutex, stop <-chan struct{}) {
	var sample uint64
	for {
		select {
		case <-stop:
			return
		default:
		}

		if err := s.device.Update(); err != nil {
			log.Warn("bridge device update failed", "err", err)
			time.Sleep(time.Millisecond)
			continue
		}

		sample++
		pos := s.device.Position()
		vel := s.device.LinearVelocity()
		msg, err := protocol.NewStateMessage(protocol.StateData{
			Pos:    [3]float64{pos.X, pos.Y, pos.Z},
			Vel:    [3]float64{vel.X, vel.Y, vel.Z},
			Sample: sample,
		})
		if err != nil {
			continue
		}

		writeMu.Lock()
		err = s.writeMessage(c, msg)
		writeMu.Unlock()
		if err != nil {
			return
		}
		s.samplesSent.Add(1)
	}
}

func (s *Server) sendSpecs(c *websocket.Conn) error {
	specs := s.device.Specs()
	msg, err := protocol.NewSpecsMessage(protocol.SpecsData{
		MaxLinearForce:     specs.MaxLinearForce,
		MaxLinearStiffness: specs.MaxLinearStiffness,
		MaxLinearDamping:   specs.MaxLinearDamping,
		SampleRate:         specs.SampleRate,
	})
	if err != nil {
		return err
	}
	return s.writeMessage(c, msg)
}

func (s *Server) writeMessage(c *websocket.Conn, msg *protocol.Message) error {
	data, err := msg.Bytes()
	if err != nil {
		return err
	}
	return c.WriteMessage(websocket.TextMessage, data)
}
