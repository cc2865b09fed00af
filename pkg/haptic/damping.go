package haptic

import (
	"github.com/soypat/geometry/md3"

	"github.com/teslashibe/go-haptic/pkg/scene"
)

// ContactDamper amplifies the felt force while the tool is in contact
// range of its sphere: a velocity-proportional damping term is added to
// the incoming force and the sum is scaled by a fixed gain. Outside
// contact the force passes through untouched. Stateless.
type ContactDamper struct {
	sphere *scene.Sphere

	margin float64 // contact activation margin beyond the radius
	kv     float64 // damping gain on tool velocity
	gain   float64 // multiplier on the combined force
}

// NewContactDamper creates the contact-triggered damping amplifier.
// kv is a static gain, not derived from device specs.
func NewContactDamper(s *scene.Sphere, margin, kv, gain float64) *ContactDamper {
	return &ContactDamper{sphere: s, margin: margin, kv: kv, gain: gain}
}

// Name identifies the contributor in logs.
func (d *ContactDamper) Name() string { return "contact-damper" }

// Apply implements Contributor.
func (d *ContactDamper) Apply(t *Tick) {
	if !inReach(t.ToolPos, d.sphere.GlobalPos(), d.sphere.Radius(), d.margin) {
		return
	}
	damping := md3.Scale(d.kv, t.ToolVel)
	t.Force = md3.Scale(d.gain, md3.Add(t.Force, damping))
}
