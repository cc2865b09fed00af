package device

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/soypat/geometry/md3"

	"github.com/teslashibe/go-haptic/internal/log"
	"github.com/teslashibe/go-haptic/pkg/haptic"
	"github.com/teslashibe/go-haptic/pkg/protocol"
)

// bridgeDialTimeout bounds the initial connection handshake.
const bridgeDialTimeout = 5 * time.Second

// Bridge is a haptic.Device backed by a remote bridge server over
// WebSocket. Update blocks on the next state message from the bridge,
// which paces the control loop at the remote device's sample rate; Apply
// sends the force command back.
//
// No reconnection is attempted: a dropped bridge surfaces as Update
// errors, which the control loop logs and rides out.
type Bridge struct {
	conn *websocket.Conn

	specs haptic.Specs

	mu    sync.Mutex
	pos   md3.Vec
	vel   md3.Vec
	force md3.Vec
}

var _ haptic.Device = (*Bridge)(nil)

// DialBridge connects to a bridge server, e.g.
// "ws://192.168.68.80:9001/ws/device", and waits for the device
// specifications message before returning.
func DialBridge(url string) (*Bridge, error) {
	dialer := websocket.Dialer{HandshakeTimeout: bridgeDialTimeout}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("bridge dial failed: %w", err)
	}

	b := &Bridge{conn: conn}

	// The bridge announces device specs as its first message.
	conn.SetReadDeadline(time.Now().Add(bridgeDialTimeout))
	msg, err := b.readMessage()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("bridge specs read failed: %w", err)
	}
	specs, err := msg.GetSpecsData()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("bridge handshake: %w", err)
	}
	conn.SetReadDeadline(time.Time{})

	b.specs = haptic.Specs{
		MaxLinearForce:     specs.MaxLinearForce,
		MaxLinearStiffness: specs.MaxLinearStiffness,
		MaxLinearDamping:   specs.MaxLinearDamping,
		SampleRate:         specs.SampleRate,
	}

	log.Info("bridge connected", "url", url, "sample_rate", specs.SampleRate)
	return b, nil
}

func (b *Bridge) readMessage() (*protocol.Message, error) {
	_, data, err := b.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	return protocol.ParseMessage(data)
}

// Update blocks until the bridge delivers the next kinematic sample.
func (b *Bridge) Update() error {
	for {
		msg, err := b.readMessage()
		if err != nil {
			return fmt.Errorf("bridge read: %w", err)
		}

		switch msg.Type {
		case protocol.TypeState:
			state, err := msg.GetStateData()
			if err != nil {
				return err
			}
			b.mu.Lock()
			b.pos = md3.Vec{X: state.Pos[0], Y: state.Pos[1], Z: state.Pos[2]}
			b.vel = md3.Vec{X: state.Vel[0], Y: state.Vel[1], Z: state.Vel[2]}
			b.mu.Unlock()
			return nil

		case protocol.TypePing:
			pong, err := protocol.NewMessage(protocol.TypePong, protocol.PongData{
				PingTS: msg.Timestamp,
				PongTS: time.Now().UnixMilli(),
			})
			if err == nil {
				b.writeMessage(pong)
			}

		default:
			// Skip anything else and keep waiting for a sample.
		}
	}
}

// Position returns the position of the last received sample.
func (b *Bridge) Position() md3.Vec {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pos
}

// LinearVelocity returns the velocity of the last received sample.
func (b *Bridge) LinearVelocity() md3.Vec {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.vel
}

// SetForce stages the force to send on the next Apply.
func (b *Bridge) SetForce(f md3.Vec) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.force = f
}

// Apply sends the staged force command to the bridge.
func (b *Bridge) Apply() error {
	b.mu.Lock()
	force := b.force
	b.mu.Unlock()

	msg, err := protocol.NewForceMessage([3]float64{force.X, force.Y, force.Z})
	if err != nil {
		return err
	}
	return b.writeMessage(msg)
}

func (b *Bridge) writeMessage(msg *protocol.Message) error {
	data, err := msg.Bytes()
	if err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conn.WriteMessage(websocket.TextMessage, data)
}

// Specs returns the limits announced by the bridge.
func (b *Bridge) Specs() haptic.Specs { return b.specs }

// Close closes the bridge connection.
func (b *Bridge) Close() error {
	return b.conn.Close()
}
