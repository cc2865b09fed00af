package scene

import (
	"math"
	"testing"

	"github.com/soypat/geometry/md3"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func vecEquals(a, b md3.Vec) bool {
	return floatEquals(a.X, b.X) && floatEquals(a.Y, b.Y) && floatEquals(a.Z, b.Z)
}

func sceneWith(s *Sphere) *Scene {
	sc := New()
	sc.Add(s)
	sc.ComputeGlobalPositions()
	return sc
}

func TestSurfaceForce_Penetration(t *testing.T) {
	s := NewSphere(0, 0.5, Material{Stiffness: 100})
	s.EnableEffect(EffectSurface)
	sc := sceneWith(s)

	// 0.1 penetration, force along the outward normal.
	force := sc.InteractionForce(ToolState{Pos: md3.Vec{X: 0.4}})
	if !vecEquals(force, md3.Vec{X: 10}) {
		t.Errorf("Penetration force: got %v, want (10,0,0)", force)
	}

	// Outside the surface: no force.
	force = sc.InteractionForce(ToolState{Pos: md3.Vec{X: 0.6}})
	if !vecEquals(force, md3.Vec{}) {
		t.Errorf("Force outside: got %v, want zero", force)
	}

	// Exactly at the center there is no defined normal.
	force = sc.InteractionForce(ToolState{Pos: md3.Vec{}})
	if !vecEquals(force, md3.Vec{}) {
		t.Errorf("Force at center: got %v, want zero", force)
	}
}

func TestViscousForce_InsideOnly(t *testing.T) {
	s := NewSphere(1, 0.3, Material{Viscosity: 5})
	s.EnableEffect(EffectViscous)
	sc := sceneWith(s)

	vel := md3.Vec{X: 1, Y: -2}
	force := sc.InteractionForce(ToolState{Pos: md3.Vec{X: 0.1}, Vel: vel})
	if !vecEquals(force, md3.Vec{X: -5, Y: 10}) {
		t.Errorf("Drag inside: got %v, want -5*vel", force)
	}

	force = sc.InteractionForce(ToolState{Pos: md3.Vec{X: 2}, Vel: vel})
	if !vecEquals(force, md3.Vec{}) {
		t.Errorf("Drag outside: got %v, want zero", force)
	}
}

func TestMagneticForce_FadesWithGap(t *testing.T) {
	s := NewSphere(0, 0.5, Material{MagnetMaxForce: 2, MagnetMaxDistance: 0.2})
	s.EnableEffect(EffectMagnetic)
	sc := sceneWith(s)

	// Gap 0.1 of 0.2: half strength, pulling inward.
	force := sc.InteractionForce(ToolState{Pos: md3.Vec{X: 0.6}})
	if !vecEquals(force, md3.Vec{X: -1}) {
		t.Errorf("Magnetic pull: got %v, want (-1,0,0)", force)
	}

	// At or past the max distance the pull is gone.
	force = sc.InteractionForce(ToolState{Pos: md3.Vec{X: 0.7}})
	if !vecEquals(force, md3.Vec{}) {
		t.Errorf("Pull at max distance: got %v, want zero", force)
	}

	// Inside the sphere the magnetic term does not apply.
	force = sc.InteractionForce(ToolState{Pos: md3.Vec{X: 0.3}})
	if !vecEquals(force, md3.Vec{}) {
		t.Errorf("Pull inside: got %v, want zero", force)
	}
}

func TestStickSlipForce_LatchAndBreakAway(t *testing.T) {
	s := NewSphere(2, 0.3, Material{StickSlipForceMax: 0.5, StickSlipStiffness: 10})
	s.EnableEffect(EffectStickSlip)
	sc := sceneWith(s)

	// First tick inside: the stick point latches at the tool, zero force.
	force := sc.InteractionForce(ToolState{Pos: md3.Vec{X: 0.1}})
	if !vecEquals(force, md3.Vec{}) {
		t.Errorf("Latch tick force: got %v, want zero", force)
	}

	// Move within the break-away budget: spring pulls back to the latch.
	force = sc.InteractionForce(ToolState{Pos: md3.Vec{X: 0.15}})
	if !vecEquals(force, md3.Vec{X: -0.5}) {
		t.Errorf("Holding force: got %v, want (-0.5,0,0)", force)
	}

	// Move past the budget: the stick point slips, force stays capped.
	force = sc.InteractionForce(ToolState{Pos: md3.Vec{X: 0.25}})
	if !floatEquals(md3.Norm(force), 0.5) {
		t.Errorf("Break-away force magnitude: got %v, want 0.5", md3.Norm(force))
	}

	// Leaving the sphere drops the latch; re-entry latches fresh.
	force = sc.InteractionForce(ToolState{Pos: md3.Vec{X: 2}})
	if !vecEquals(force, md3.Vec{}) {
		t.Errorf("Force outside: got %v, want zero", force)
	}
	force = sc.InteractionForce(ToolState{Pos: md3.Vec{X: -0.1}})
	if !vecEquals(force, md3.Vec{}) {
		t.Errorf("Re-latch tick force: got %v, want zero", force)
	}
}

func TestInteractionForce_SumsSpheres(t *testing.T) {
	a := NewSphere(0, 0.5, Material{Stiffness: 100})
	a.EnableEffect(EffectSurface)
	b := NewSphere(1, 0.5, Material{Viscosity: 2})
	b.EnableEffect(EffectViscous)

	sc := New()
	sc.Add(a)
	sc.Add(b)
	sc.ComputeGlobalPositions()

	// Tool inside both co-located spheres: spring plus drag.
	force := sc.InteractionForce(ToolState{Pos: md3.Vec{X: 0.4}, Vel: md3.Vec{Y: 1}})
	if !vecEquals(force, md3.Vec{X: 10, Y: -2}) {
		t.Errorf("Summed force: got %v, want (10,-2,0)", force)
	}
}

func TestClampForce(t *testing.T) {
	f := md3.Vec{X: 3, Y: 4} // magnitude 5

	clamped := ClampForce(f, 2.5)
	if !floatEquals(md3.Norm(clamped), 2.5) {
		t.Errorf("Clamped magnitude: got %v, want 2.5", md3.Norm(clamped))
	}
	// Direction preserved.
	if !floatEquals(clamped.X/clamped.Y, f.X/f.Y) {
		t.Errorf("Clamp changed direction: %v", clamped)
	}

	if !vecEquals(ClampForce(f, 10), f) {
		t.Error("Force under the cap should pass unchanged")
	}
	if !vecEquals(ClampForce(f, 0), f) {
		t.Error("Zero cap should disable clamping")
	}
}

func TestDist(t *testing.T) {
	if !floatEquals(Dist(md3.Vec{X: 1}, md3.Vec{X: 4, Y: 4}), 5) {
		t.Errorf("Dist: got %v, want 5", Dist(md3.Vec{X: 1}, md3.Vec{X: 4, Y: 4}))
	}
}

func TestScene_Find(t *testing.T) {
	sc := New()
	s := NewSphere(2, 0.3, Material{})
	sc.Add(s)

	if sc.Find(2) != s {
		t.Error("Find should return the attached sphere by id")
	}
	if sc.Find(7) != nil {
		t.Error("Find of an unknown id should return nil")
	}
}
