package haptic

import (
	"github.com/soypat/geometry/md3"

	"github.com/teslashibe/go-haptic/pkg/scene"
)

// SpringTether simulates the stick-slip sphere as a spring-mass-damper
// tethered to its rest position. While the tool is in contact the sphere
// accelerates away from the felt force and the returned force is scaled
// up to render the stick-slip "catch"; the position integration and
// velocity decay run every tick regardless of contact.
//
// The contributor is the single writer of its sphere's position. A
// divergence clamp snaps the sphere back to rest if it drifts more than
// maxDrift from the rest position; this is a silent stability safeguard,
// not an error.
type SpringTether struct {
	sphere *scene.Sphere

	margin    float64 // contact activation margin beyond the radius
	mass      float64 // sphere mass for the spring-mass integration
	damping   float64 // damping on the sphere's own velocity
	forceGain float64 // multiplier on the output force while in contact
	decay     float64 // per-tick velocity decay factor
	maxDrift  float64 // displacement bound before the divergence clamp

	rest md3.Vec // rest position, set at construction
	vel  md3.Vec // sphere velocity, integrated every tick
}

// NewSpringTether creates the stick-slip dynamics contributor. The
// sphere's position at call time becomes its rest position.
func NewSpringTether(s *scene.Sphere, margin, mass, damping, forceGain, decay, maxDrift float64) *SpringTether {
	return &SpringTether{
		sphere:    s,
		margin:    margin,
		mass:      mass,
		damping:   damping,
		forceGain: forceGain,
		decay:     decay,
		maxDrift:  maxDrift,
		rest:      s.LocalPos(),
	}
}

// Name identifies the contributor in logs.
func (st *SpringTether) Name() string { return "spring-tether" }

// Velocity returns the sphere's current integrated velocity.
func (st *SpringTether) Velocity() md3.Vec { return st.vel }

// RestPos returns the tether rest position.
func (st *SpringTether) RestPos() md3.Vec { return st.rest }

// Apply implements Contributor.
func (st *SpringTether) Apply(t *Tick) {
	if inReach(t.ToolPos, st.sphere.GlobalPos(), st.sphere.Radius(), st.margin) {
		// Reaction: the sphere is pushed by the negative of the felt
		// force, minus its own damping. Semi-implicit Euler.
		net := md3.Sub(md3.Scale(-1, t.Force), md3.Scale(st.damping, st.vel))
		st.vel = md3.Add(st.vel, md3.Scale(t.Dt/st.mass, net))

		t.Force = md3.Scale(st.forceGain, t.Force)
	}

	// Integration runs every tick, in or out of contact.
	pos := md3.Add(st.sphere.LocalPos(), md3.Scale(t.Dt, st.vel))
	st.sphere.SetLocalPos(pos)
	st.vel = md3.Scale(st.decay, st.vel)

	// Divergence clamp: strict inequality, displacement of exactly
	// maxDrift does not trigger.
	if scene.Dist(pos, st.rest) > st.maxDrift {
		st.vel = md3.Vec{}
		st.sphere.SetLocalPos(st.rest)
	}
}
