// Package demo assembles the four-object effects scene: a magnet sphere
// with amplified contact damping, a detached fluid sphere, a stick-slip
// sphere with spring-mass dynamics, and a vibrating sphere with a
// hysteretic oscillator.
package demo

import (
	"math"

	"github.com/soypat/geometry/md3"

	"github.com/teslashibe/go-haptic/pkg/haptic"
	"github.com/teslashibe/go-haptic/pkg/scene"
)

// Per-object tuning. These are physical-model parameters, kept as named
// constants rather than inline literals.
const (
	// Object 0 "magnet": contact-triggered damping amplifier.
	MagnetRadius        = 0.5
	MagnetContactMargin = 0.05
	MagnetDampingKv     = 0.1
	MagnetForceGain     = 4.0

	// Object 1 "fluid": viscous drag sphere (constructed but detached).
	FluidRadius        = 0.3
	FluidViscosityFrac = 0.9 // fraction of the device's max damping

	// Object 2 "stick-slip": spring-mass dynamics.
	StickSlipRadius        = 0.3
	StickSlipContactMargin = 0.03
	StickSlipMass          = 0.5
	StickSlipDamping       = 0.0
	StickSlipForceGain     = 10.0
	StickSlipVelocityDecay = 0.999
	StickSlipMaxDrift      = 1.0
	StickSlipForceMaxFrac  = 0.2 // fraction of the device's max force
	StickSlipStiffFrac     = 0.6 // fraction of the device's max stiffness

	// Object 3 "vibrations": hysteretic oscillator.
	VibContactMargin    = 0.05
	VibRadius           = 0.5
	VibHysteresisFactor = 2.0
	VibOscAmplitude     = 6.0 // N
	VibOscFrequency     = 6.0 // Hz
	VibSurfaceStiffness = 0.1
	VibMaterialFreq     = 60.0
	VibMaterialAmpFrac  = 0.5 // fraction of the device's max force
)

// World is the assembled demo scene plus the per-object contributors, in
// the order the control loop must apply them.
type World struct {
	Scene *scene.Scene

	Magnet    *scene.Sphere
	Fluid     *scene.Sphere // detached: present but not in the scene
	StickSlip *scene.Sphere
	Vibrating *scene.Sphere

	Damper     *haptic.ContactDamper
	Oscillator *haptic.ContactOscillator
	Tether     *haptic.SpringTether
}

// Contributors returns the contributors in application order: damper,
// oscillator, tether. The order is fixed; later contributors compose on
// the force already modified by earlier ones.
func (w *World) Contributors() []haptic.Contributor {
	return []haptic.Contributor{w.Damper, w.Oscillator, w.Tether}
}

// Build constructs the demo world, deriving material gains from the
// device specifications the way the tool workspace maps them.
func Build(specs haptic.Specs) *World {
	maxForce := math.Min(specs.MaxLinearForce, scene.MaxLinearForceCap)
	maxStiffness := specs.MaxLinearStiffness / haptic.DefaultWorkspaceRadius
	maxDamping := specs.MaxLinearDamping / haptic.DefaultWorkspaceRadius

	sc := scene.New()

	// Object 0: "magnet". Surface contact only; the felt effect comes
	// from the contact damper contributor.
	magnet := scene.NewSphere(0, MagnetRadius, scene.Material{})
	magnet.SetLocalPos(md3.Vec{Y: -1.2})
	magnet.EnableEffect(scene.EffectSurface)
	sc.Add(magnet)

	// Object 1: "fluid". Constructed with its viscous material but kept
	// out of the scene: it shares the origin with the vibration sphere
	// and attaching it would stack drag onto that demo.
	fluid := scene.NewSphere(1, FluidRadius, scene.Material{
		Viscosity: FluidViscosityFrac * maxDamping,
	})
	fluid.EnableEffect(scene.EffectViscous)

	// Object 2: "stick-slip".
	stick := scene.NewSphere(2, StickSlipRadius, scene.Material{
		StickSlipForceMax:  StickSlipForceMaxFrac * maxForce,
		StickSlipStiffness: StickSlipStiffFrac * maxStiffness,
	})
	stick.SetLocalPos(md3.Vec{Y: 1})
	stick.EnableEffect(scene.EffectStickSlip)
	sc.Add(stick)

	// Object 3: "vibrations". Soft surface plus the oscillator
	// contributor; the material's vibration parameters are declarative
	// only, the oscillator renders the effect.
	vib := scene.NewSphere(3, VibRadius, scene.Material{
		Stiffness:          VibSurfaceStiffness,
		VibrationFrequency: VibMaterialFreq,
		VibrationAmplitude: VibMaterialAmpFrac * maxForce,
	})
	vib.SetLocalPos(md3.Vec{})
	vib.EnableEffect(scene.EffectSurface)
	vib.EnableEffect(scene.EffectViscous)
	sc.Add(vib)

	return &World{
		Scene:      sc,
		Magnet:     magnet,
		Fluid:      fluid,
		StickSlip:  stick,
		Vibrating:  vib,
		Damper:     haptic.NewContactDamper(magnet, MagnetContactMargin, MagnetDampingKv, MagnetForceGain),
		Oscillator: haptic.NewContactOscillator(vib, VibContactMargin, VibHysteresisFactor, VibOscAmplitude, VibOscFrequency),
		Tether:     haptic.NewSpringTether(stick, StickSlipContactMargin, StickSlipMass, StickSlipDamping, StickSlipForceGain, StickSlipVelocityDecay, StickSlipMaxDrift),
	}
}
