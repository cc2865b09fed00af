package scene

// Effect identifies a force-feedback behavior a sphere can render.
type Effect int

const (
	// EffectSurface is a linear-spring contact response.
	EffectSurface Effect = iota
	// EffectViscous is velocity-proportional drag while inside the sphere.
	EffectViscous
	// EffectMagnetic attracts the tool toward the surface from outside.
	EffectMagnetic
	// EffectStickSlip is a latched friction spring capped at a maximum force.
	EffectStickSlip
)

// Material holds the declarative haptic parameters of a sphere.
// Values are set once at construction; which of them are active is
// controlled by the sphere's enabled effect set.
type Material struct {
	// Surface contact stiffness (N per unit penetration).
	Stiffness float64

	// Viscous drag coefficient (N per unit velocity).
	Viscosity float64

	// Magnetic attraction: maximum pull and the distance outside the
	// surface at which the pull fades to zero.
	MagnetMaxForce    float64
	MagnetMaxDistance float64

	// Stick-slip friction: holding-spring stiffness and the force at
	// which the stick point breaks loose.
	StickSlipForceMax  float64
	StickSlipStiffness float64

	// Vibration parameters. Kept for completeness of the material
	// description; the demo renders vibration through its own
	// oscillator contributor rather than the solver.
	VibrationFrequency float64
	VibrationAmplitude float64
}
