// Package scene maintains the shared world state of the haptic demo:
// interactive spheres, their materials and the base interaction-force
// solver. The haptic loop is the single writer of object positions; the
// render loop reads them for display.
package scene

import "github.com/soypat/geometry/md3"

// Scene holds the interactive objects of the virtual world.
type Scene struct {
	spheres []*Sphere
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add inserts a sphere into the active scene. Only attached spheres
// contribute to the interaction force.
func (sc *Scene) Add(s *Sphere) {
	sc.spheres = append(sc.spheres, s)
}

// Spheres returns the attached spheres in insertion order.
func (sc *Scene) Spheres() []*Sphere {
	return sc.spheres
}

// Find returns the attached sphere with the given id, or nil.
func (sc *Scene) Find(id int) *Sphere {
	for _, s := range sc.spheres {
		if s.id == id {
			return s
		}
	}
	return nil
}

// ComputeGlobalPositions refreshes every sphere's world position from its
// local position. Called at the top of each haptic tick, before any
// proximity test reads GlobalPos.
func (sc *Scene) ComputeGlobalPositions() {
	for _, s := range sc.spheres {
		s.updateGlobal()
	}
}

// ToolState is the per-tick kinematic snapshot of the tool used by the
// solver. It is read-only for the solver.
type ToolState struct {
	Pos md3.Vec
	Vel md3.Vec
}
