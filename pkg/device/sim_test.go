package device

import (
	"testing"
	"time"

	"github.com/soypat/geometry/md3"

	"github.com/teslashibe/go-haptic/pkg/scene"
)

func TestSim_TracksTarget(t *testing.T) {
	sim := NewSim()
	defer sim.Close()

	target := md3.Vec{X: 1}
	sim.SetTarget(target)

	start := scene.Dist(sim.Position(), target)
	for i := 0; i < 50; i++ {
		if err := sim.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	end := scene.Dist(sim.Position(), target)

	if end >= start {
		t.Errorf("End-effector did not close on the target: %v -> %v", start, end)
	}
	if sim.LinearVelocity() == (md3.Vec{}) {
		t.Error("Moving end-effector should report velocity")
	}
}

func TestSim_Teleport(t *testing.T) {
	sim := NewSim()
	defer sim.Close()

	p := md3.Vec{X: 0.3, Y: -0.2}
	sim.Teleport(p)

	if sim.Position() != p {
		t.Errorf("Position after teleport: got %v, want %v", sim.Position(), p)
	}
	if sim.LinearVelocity() != (md3.Vec{}) {
		t.Errorf("Velocity after teleport: got %v, want zero", sim.LinearVelocity())
	}

	// Stationary at the target: Update must not drift.
	if err := sim.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if sim.Position() != p {
		t.Errorf("Position drifted at target: got %v", sim.Position())
	}
}

func TestSim_PacesAtSampleRate(t *testing.T) {
	sim := NewSim()
	defer sim.Close()

	start := time.Now()
	for i := 0; i < 20; i++ {
		if err := sim.Update(); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	elapsed := time.Since(start)

	// 20 samples at 1 kHz need at least ~19 periods; allow slack below
	// for the free first sample.
	if elapsed < 15*time.Millisecond {
		t.Errorf("20 samples completed in %v, faster than the sample clock", elapsed)
	}
}

func TestSim_RecordsForce(t *testing.T) {
	sim := NewSim()
	defer sim.Close()

	f := md3.Vec{Z: 2.5}
	sim.SetForce(f)
	if err := sim.Apply(); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if sim.LastForce() != f {
		t.Errorf("LastForce: got %v, want %v", sim.LastForce(), f)
	}
}

func TestSim_Specs(t *testing.T) {
	sim := NewSim()
	defer sim.Close()

	specs := sim.Specs()
	if specs.MaxLinearForce != SimMaxForce || specs.SampleRate != SimSampleRate {
		t.Errorf("Specs: got %+v", specs)
	}
}
