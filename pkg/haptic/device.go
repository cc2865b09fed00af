// Package haptic contains the real-time force-feedback core of the demo:
// the device abstraction, the tool cursor, the per-object force
// contributors and the control loop that composes them at device rate.
//
// The package follows the Interface Segregation Principle: consumers
// depend on the smallest device interface that serves them.
package haptic

import "github.com/soypat/geometry/md3"

// Specs describes the physical limits of a haptic device, used to derive
// material gains at scene-construction time.
type Specs struct {
	// MaxLinearForce is the largest force the device can render, in N.
	MaxLinearForce float64
	// MaxLinearStiffness is the stiffest stable virtual wall, in N/unit.
	MaxLinearStiffness float64
	// MaxLinearDamping is the strongest stable damping, in N·s/unit.
	MaxLinearDamping float64
	// SampleRate is the device sampling rate in Hz.
	SampleRate float64
}

// KinematicSource provides the tool-side kinematic state of a device.
// Position and LinearVelocity are valid only after Update has returned.
type KinematicSource interface {
	// Update blocks until the next device sample is available and
	// refreshes the kinematic snapshot. It is the natural rate limiter
	// of the control loop.
	Update() error
	Position() md3.Vec
	LinearVelocity() md3.Vec
}

// ForceSink accepts the composed force of a tick. SetForce stages the
// force; Apply commits it to the hardware. The control loop calls the
// pair exactly once per tick.
type ForceSink interface {
	SetForce(f md3.Vec)
	Apply() error
}

// Device is the full contract the control loop needs from a haptic
// device, hardware-backed or simulated.
type Device interface {
	KinematicSource
	ForceSink
	Specs() Specs
	Close() error
}
