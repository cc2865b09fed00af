package haptic

import (
	"math"

	"github.com/soypat/geometry/md3"

	"github.com/teslashibe/go-haptic/pkg/scene"
)

// contactState is the oscillator's two-state hysteresis machine.
type contactState int

const (
	stateOutside contactState = iota
	stateInside
)

// ContactOscillator superimposes a circular oscillating force while the
// tool touches its sphere. Contact uses hysteresis: entering requires the
// nominal radius, but leaving requires clearing twice the radius, which
// prevents contact chatter at the boundary. The oscillation phase resets
// to zero every time contact is lost.
type ContactOscillator struct {
	sphere *scene.Sphere

	margin     float64 // activation margin beyond the radius
	hysteresis float64 // radius multiplier applied while inside
	amp        float64 // oscillation amplitude, N
	freq       float64 // oscillation frequency, Hz

	state   contactState
	oscTime float64 // accumulated phase time while inside, s
}

// NewContactOscillator creates the hysteretic oscillator contributor.
// The hysteresis factor widens the effective radius while in contact;
// the demo uses 2.
func NewContactOscillator(s *scene.Sphere, margin, hysteresis, amp, freq float64) *ContactOscillator {
	return &ContactOscillator{
		sphere:     s,
		margin:     margin,
		hysteresis: hysteresis,
		amp:        amp,
		freq:       freq,
	}
}

// Name identifies the contributor in logs.
func (o *ContactOscillator) Name() string { return "contact-oscillator" }

// PhaseTime returns the accumulated oscillation phase time in seconds.
func (o *ContactOscillator) PhaseTime() float64 { return o.oscTime }

// Inside reports whether the oscillator is currently latched in contact.
func (o *ContactOscillator) Inside() bool { return o.state == stateInside }

// Apply implements Contributor.
func (o *ContactOscillator) Apply(t *Tick) {
	radius := o.sphere.Radius()
	if o.state == stateInside {
		radius *= o.hysteresis
	}

	if !inReach(t.ToolPos, o.sphere.GlobalPos(), radius, o.margin) {
		o.state = stateOutside
		o.oscTime = 0
		return
	}

	o.state = stateInside
	o.oscTime += t.Dt

	phase := 2 * math.Pi * o.freq * o.oscTime
	f := o.amp * math.Sin(phase)
	f2 := o.amp * math.Cos(phase)

	t.Force = md3.Add(t.Force, md3.Vec{X: -f2, Y: f, Z: f2})
}
