package demo

import (
	"math"
	"testing"

	"github.com/soypat/geometry/md3"

	"github.com/teslashibe/go-haptic/pkg/haptic"
	"github.com/teslashibe/go-haptic/pkg/scene"
)

const floatTolerance = 1e-9

func floatEquals(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

var testSpecs = haptic.Specs{
	MaxLinearForce:     10, // above the cap, exercises the min
	MaxLinearStiffness: 1000,
	MaxLinearDamping:   15,
	SampleRate:         1000,
}

func TestBuild_SceneLayout(t *testing.T) {
	w := Build(testSpecs)

	if got := len(w.Scene.Spheres()); got != 3 {
		t.Fatalf("Attached spheres: got %d, want 3", got)
	}
	if w.Scene.Find(1) != nil {
		t.Error("Fluid sphere should stay detached from the scene")
	}
	if w.Fluid == nil {
		t.Error("Fluid sphere should still be constructed")
	}

	if pos := w.Magnet.LocalPos(); !floatEquals(pos.Y, -1.2) {
		t.Errorf("Magnet position: got %v, want y=-1.2", pos)
	}
	if pos := w.StickSlip.LocalPos(); !floatEquals(pos.Y, 1) {
		t.Errorf("Stick-slip position: got %v, want y=1", pos)
	}
	if pos := w.Vibrating.LocalPos(); pos != (md3.Vec{}) {
		t.Errorf("Vibrating position: got %v, want origin", pos)
	}
}

func TestBuild_MaterialsFromSpecs(t *testing.T) {
	w := Build(testSpecs)

	// MaxLinearForce 10 caps to 7.
	stick := w.StickSlip.Material()
	if !floatEquals(stick.StickSlipForceMax, StickSlipForceMaxFrac*7) {
		t.Errorf("Break-away force: got %v, want %v", stick.StickSlipForceMax, StickSlipForceMaxFrac*7)
	}
	if !floatEquals(stick.StickSlipStiffness, StickSlipStiffFrac*1000) {
		t.Errorf("Stick stiffness: got %v, want %v", stick.StickSlipStiffness, StickSlipStiffFrac*1000)
	}

	if !floatEquals(w.Fluid.Material().Viscosity, FluidViscosityFrac*15) {
		t.Errorf("Fluid viscosity: got %v, want %v", w.Fluid.Material().Viscosity, FluidViscosityFrac*15)
	}

	vib := w.Vibrating.Material()
	if !floatEquals(vib.Stiffness, VibSurfaceStiffness) {
		t.Errorf("Vibrating stiffness: got %v, want %v", vib.Stiffness, VibSurfaceStiffness)
	}
	if !floatEquals(vib.VibrationAmplitude, VibMaterialAmpFrac*7) {
		t.Errorf("Vibration amplitude: got %v, want %v", vib.VibrationAmplitude, VibMaterialAmpFrac*7)
	}
}

func TestBuild_ContributorOrder(t *testing.T) {
	w := Build(testSpecs)

	contributors := w.Contributors()
	if len(contributors) != 3 {
		t.Fatalf("Contributors: got %d, want 3", len(contributors))
	}
	wantOrder := []string{"contact-damper", "contact-oscillator", "spring-tether"}
	for i, c := range contributors {
		if c.Name() != wantOrder[i] {
			t.Errorf("Contributor %d: got %s, want %s", i, c.Name(), wantOrder[i])
		}
	}
}

// runTick executes one control cycle by hand: solver, then contributors
// in order. Returns the final composed force.
func runTick(w *World, pos, vel md3.Vec) md3.Vec {
	w.Scene.ComputeGlobalPositions()
	base := w.Scene.InteractionForce(scene.ToolState{Pos: pos, Vel: vel})
	tick := &haptic.Tick{ToolPos: pos, ToolVel: vel, Force: base, Dt: 0.001}
	for _, c := range w.Contributors() {
		c.Apply(tick)
	}
	return tick.Force
}

func TestWorld_MagnetContactDamping(t *testing.T) {
	w := Build(testSpecs)

	// Tool inside the magnet sphere, moving along x. The magnet has no
	// surface stiffness, so the entire output is the amplified damping
	// term: gain * kv * v.
	force := runTick(w, md3.Vec{Y: -0.8}, md3.Vec{X: 1})
	want := MagnetForceGain * MagnetDampingKv * 1.0
	if !floatEquals(force.X, want) {
		t.Errorf("Damped force x: got %v, want %v", force.X, want)
	}
	if !floatEquals(force.Y, 0) || !floatEquals(force.Z, 0) {
		t.Errorf("Unexpected off-axis force: %v", force)
	}
}

func TestWorld_VibratingContact(t *testing.T) {
	w := Build(testSpecs)

	// Tool just under the vibrating sphere's surface, at rest.
	force := runTick(w, md3.Vec{Z: 0.2}, md3.Vec{})

	phase := 2 * math.Pi * VibOscFrequency * 0.001
	oscY := VibOscAmplitude * math.Sin(phase)
	oscZ := VibOscAmplitude * math.Cos(phase)
	surfaceZ := VibSurfaceStiffness * (VibRadius - 0.2)

	if !floatEquals(force.Y, oscY) {
		t.Errorf("Oscillation y: got %v, want %v", force.Y, oscY)
	}
	if !floatEquals(force.Z, surfaceZ+oscZ) {
		t.Errorf("Force z: got %v, want surface %v plus oscillation %v", force.Z, surfaceZ, oscZ)
	}
	if !w.Oscillator.Inside() {
		t.Error("Oscillator should latch while the tool touches the sphere")
	}
}

func TestWorld_StickSlipMovesSphere(t *testing.T) {
	w := Build(testSpecs)

	// Two ticks inside the stick-slip sphere: latch, then a displaced
	// tool produces a holding force, which both gets amplified and
	// pushes the sphere off its rest position.
	runTick(w, md3.Vec{Y: 1.05}, md3.Vec{})
	force := runTick(w, md3.Vec{Y: 1.12}, md3.Vec{})

	if force.Y >= 0 {
		t.Errorf("Holding force should pull back toward the latch: got %v", force.Y)
	}
	if w.Tether.Velocity() == (md3.Vec{}) {
		t.Error("Reaction should inject sphere velocity")
	}

	// Out of contact the sphere keeps drifting but decays.
	before := w.StickSlip.LocalPos()
	runTick(w, md3.Vec{X: 5}, md3.Vec{})
	if w.StickSlip.LocalPos() == before {
		t.Error("Sphere should keep integrating after the tool leaves")
	}
}

func TestWorld_QuietFarFromObjects(t *testing.T) {
	w := Build(testSpecs)

	force := runTick(w, md3.Vec{X: 3, Y: 3, Z: 3}, md3.Vec{X: 1})
	if force != (md3.Vec{}) {
		t.Errorf("Force far from all objects: got %v, want zero", force)
	}
}
