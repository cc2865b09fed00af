package haptic

import (
	"sync"

	"github.com/soypat/geometry/md3"

	"github.com/teslashibe/go-haptic/pkg/scene"
)

// Tool defaults matching the demo's cursor setup.
const (
	// DefaultToolRadius is the contact radius of the tool cursor.
	DefaultToolRadius = 0.03
	// DefaultWorkspaceRadius maps the physical device workspace onto the
	// virtual workspace.
	DefaultWorkspaceRadius = 1.0
	// smallForceThreshold is the force magnitude below which the
	// wait-for-small-force latch releases, in N.
	smallForceThreshold = 0.2
)

// Tool is the virtual proxy of the haptic device's end-effector. It
// scales device coordinates into the virtual workspace, queries the scene
// for the base interaction force, and commits the final composed force to
// the device.
//
// The haptic loop is the only mutator; the kinematic snapshot is
// mutex-guarded so the render loop can read it for display.
//
// Forces are withheld until the first computed force is small
// (wait-for-small-force), avoiding the spike that occurs when the
// application starts with the tool inside an object.
type Tool struct {
	device Device
	scene  *scene.Scene

	radius         float64
	workspaceScale float64

	mu    sync.RWMutex
	pos   md3.Vec
	vel   md3.Vec
	force md3.Vec

	forcesEnabled  bool
	waitSmallForce bool
}

// NewTool binds a device to the scene with default cursor geometry.
func NewTool(dev Device, sc *scene.Scene) *Tool {
	return &Tool{
		device:         dev,
		scene:          sc,
		radius:         DefaultToolRadius,
		workspaceScale: DefaultWorkspaceRadius,
		waitSmallForce: true,
	}
}

// Radius returns the tool's contact radius.
func (t *Tool) Radius() float64 { return t.radius }

// SetWaitForSmallForce controls the startup force latch.
func (t *Tool) SetWaitForSmallForce(wait bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.waitSmallForce = wait
	if !wait {
		t.forcesEnabled = true
	}
}

// ForcesEnabled reports whether the startup latch has released.
func (t *Tool) ForcesEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.forcesEnabled || !t.waitSmallForce
}

// UpdateFromDevice blocks for the next device sample and refreshes the
// tool's kinematic snapshot, scaled into the virtual workspace.
func (t *Tool) UpdateFromDevice() error {
	if err := t.device.Update(); err != nil {
		return err
	}
	t.mu.Lock()
	t.pos = md3.Scale(t.workspaceScale, t.device.Position())
	t.vel = md3.Scale(t.workspaceScale, t.device.LinearVelocity())
	t.mu.Unlock()
	return nil
}

// Position returns the tool position in world coordinates.
// Valid only after UpdateFromDevice.
func (t *Tool) Position() md3.Vec {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pos
}

// LinearVelocity returns the tool velocity in world coordinates.
// Valid only after UpdateFromDevice.
func (t *Tool) LinearVelocity() md3.Vec {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.vel
}

// ComputeInteractionForces queries the scene's collision/material solver
// and stages the resulting base force. Returns the base force.
func (t *Tool) ComputeInteractionForces() md3.Vec {
	force := t.scene.InteractionForce(scene.ToolState{Pos: t.Position(), Vel: t.LinearVelocity()})
	t.mu.Lock()
	t.force = force
	t.mu.Unlock()
	return force
}

// Force returns the currently staged force.
func (t *Tool) Force() md3.Vec {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.force
}

// SetForce stages the force to send on the next Apply.
func (t *Tool) SetForce(f md3.Vec) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.force = f
}

// Apply commits the staged force to the device, honoring the
// wait-for-small-force latch.
func (t *Tool) Apply() error {
	t.mu.Lock()
	force := t.force
	if t.waitSmallForce && !t.forcesEnabled {
		if md3.Norm(force) < smallForceThreshold {
			t.forcesEnabled = true
		} else {
			force = md3.Vec{}
		}
	}
	t.mu.Unlock()

	t.device.SetForce(force)
	return t.device.Apply()
}
