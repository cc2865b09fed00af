package scene

import (
	"sync"

	"github.com/soypat/geometry/md3"
)

// Sphere is an interactive object in the world: a fixed radius, a mutable
// position and a set of enabled haptic effects backed by a Material.
//
// Positions are guarded by a mutex: the haptic loop is the single writer
// (only the stick-slip sphere ever moves), the render loop reads. A
// one-frame-stale read is acceptable for display.
type Sphere struct {
	id       int
	radius   float64
	material Material

	mu        sync.RWMutex
	localPos  md3.Vec
	globalPos md3.Vec

	effects map[Effect]bool

	// Stick-slip latch state, owned by the solver.
	stickPos    md3.Vec
	stickActive bool
}

// NewSphere creates a sphere with the given identity, radius and material.
// No effects are enabled initially.
func NewSphere(id int, radius float64, mat Material) *Sphere {
	return &Sphere{
		id:       id,
		radius:   radius,
		material: mat,
		effects:  make(map[Effect]bool),
	}
}

// ID returns the sphere's identity (0-3 in the demo scene).
func (s *Sphere) ID() int { return s.id }

// Radius returns the sphere radius.
func (s *Sphere) Radius() float64 { return s.radius }

// Material returns the sphere's haptic material parameters.
func (s *Sphere) Material() Material { return s.material }

// EnableEffect turns on a haptic effect for this sphere.
// Effects stack: more than one may be enabled at a time.
func (s *Sphere) EnableEffect(e Effect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.effects[e] = true
}

// HasEffect reports whether the given effect is enabled.
func (s *Sphere) HasEffect(e Effect) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.effects[e]
}

// SetLocalPos sets the sphere's position in parent coordinates.
func (s *Sphere) SetLocalPos(p md3.Vec) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.localPos = p
}

// LocalPos returns the sphere's position in parent coordinates.
func (s *Sphere) LocalPos() md3.Vec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.localPos
}

// GlobalPos returns the sphere's world position as of the last
// Scene.ComputeGlobalPositions call.
func (s *Sphere) GlobalPos() md3.Vec {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.globalPos
}

func (s *Sphere) updateGlobal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Spheres are parented directly to the world.
	s.globalPos = s.localPos
}
