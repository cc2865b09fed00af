// Package device provides haptic.Device implementations: an in-process
// simulated device and a WebSocket bridge client for a remote device.
package device

import (
	"sync"
	"time"

	"github.com/soypat/geometry/md3"

	"github.com/teslashibe/go-haptic/pkg/haptic"
)

// Simulated device defaults, loosely modeled on a desktop-class
// force-feedback device.
const (
	SimSampleRate   = 1000.0 // Hz
	SimMaxForce     = 7.0    // N
	SimMaxStiffness = 1000.0 // N/unit
	SimMaxDamping   = 15.0   // N·s/unit
	// simTracking is the first-order tracking gain toward the target
	// position, per sample.
	simTracking = 0.02
)

// Sim is a simulated haptic device. Update blocks until the next edge of
// the 1 kHz sample clock, so a control loop built on it runs at device
// rate just like on hardware. The end-effector tracks a settable target
// position with first-order dynamics, which gives tests and the demo a
// tool that actually moves.
type Sim struct {
	mu sync.Mutex

	pos    md3.Vec
	vel    md3.Vec
	target md3.Vec
	force  md3.Vec // last applied force, for inspection

	period     time.Duration
	nextSample time.Time
	closed     bool
}

var _ haptic.Device = (*Sim)(nil)

// NewSim creates a simulated device with the end-effector at the origin.
func NewSim() *Sim {
	return &Sim{period: time.Duration(float64(time.Second) / SimSampleRate)}
}

// SetTarget sets the position the simulated end-effector drifts toward.
// Safe to call from any goroutine, e.g. a test scripting a trajectory.
func (s *Sim) SetTarget(p md3.Vec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = p
}

// Teleport places the end-effector immediately, zeroing its velocity.
func (s *Sim) Teleport(p md3.Vec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pos = p
	s.target = p
	s.vel = md3.Vec{}
}

// Update blocks to the next sample edge, then advances the end-effector
// toward its target.
func (s *Sim) Update() error {
	s.mu.Lock()
	now := time.Now()
	if s.nextSample.IsZero() {
		s.nextSample = now
	}
	wait := s.nextSample.Sub(now)
	s.nextSample = s.nextSample.Add(s.period)
	s.mu.Unlock()

	if wait > 0 {
		time.Sleep(wait)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	step := md3.Scale(simTracking, md3.Sub(s.target, s.pos))
	s.vel = md3.Scale(1/s.period.Seconds(), step)
	s.pos = md3.Add(s.pos, step)
	return nil
}

// Position returns the end-effector position of the last sample.
func (s *Sim) Position() md3.Vec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos
}

// LinearVelocity returns the end-effector velocity of the last sample.
func (s *Sim) LinearVelocity() md3.Vec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vel
}

// SetForce stages the force to render on the next Apply.
func (s *Sim) SetForce(f md3.Vec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.force = f
}

// Apply commits the staged force. The simulation records it; hardware
// would render it.
func (s *Sim) Apply() error {
	return nil
}

// LastForce returns the most recently applied force, for tests and the
// bridge server.
func (s *Sim) LastForce() md3.Vec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.force
}

// Specs returns the simulated device limits.
func (s *Sim) Specs() haptic.Specs {
	return haptic.Specs{
		MaxLinearForce:     SimMaxForce,
		MaxLinearStiffness: SimMaxStiffness,
		MaxLinearDamping:   SimMaxDamping,
		SampleRate:         SimSampleRate,
	}
}

// Close releases the device.
func (s *Sim) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
