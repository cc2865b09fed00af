package scene

import "github.com/soypat/geometry/md3"

// InteractionForce computes the base contact force felt by a point tool at
// the given kinematic state, summing the enabled material effects of every
// attached sphere. This is the force the per-object contributors in
// pkg/haptic compose on top of.
func (sc *Scene) InteractionForce(tool ToolState) md3.Vec {
	var force md3.Vec
	for _, s := range sc.spheres {
		force = md3.Add(force, s.interactionForce(tool))
	}
	return force
}

func (s *Sphere) interactionForce(tool ToolState) md3.Vec {
	center := s.GlobalPos()
	offset := md3.Sub(tool.Pos, center)
	dist := md3.Norm(offset)
	inside := dist < s.radius

	var force md3.Vec

	if s.HasEffect(EffectSurface) && inside {
		force = md3.Add(force, s.surfaceForce(offset, dist))
	}
	if s.HasEffect(EffectViscous) && inside {
		force = md3.Add(force, md3.Scale(-s.material.Viscosity, tool.Vel))
	}
	if s.HasEffect(EffectMagnetic) && !inside {
		force = md3.Add(force, s.magneticForce(offset, dist))
	}
	if s.HasEffect(EffectStickSlip) {
		force = md3.Add(force, s.stickSlipForce(tool.Pos, inside))
	}

	return force
}

// surfaceForce is a linear spring along the outward normal, proportional
// to penetration depth.
func (s *Sphere) surfaceForce(offset md3.Vec, dist float64) md3.Vec {
	if dist == 0 {
		// Tool exactly at the center: no defined normal, no force.
		return md3.Vec{}
	}
	normal := md3.Scale(1/dist, offset)
	penetration := s.radius - dist
	return md3.Scale(s.material.Stiffness*penetration, normal)
}

// magneticForce pulls the tool toward the surface while it is within
// MagnetMaxDistance outside the sphere, fading linearly with the gap.
func (s *Sphere) magneticForce(offset md3.Vec, dist float64) md3.Vec {
	gap := dist - s.radius
	maxDist := s.material.MagnetMaxDistance
	if maxDist <= 0 || gap >= maxDist {
		return md3.Vec{}
	}
	inward := md3.Scale(-1/dist, offset)
	magnitude := s.material.MagnetMaxForce * (1 - gap/maxDist)
	return md3.Scale(magnitude, inward)
}

// stickSlipForce holds the tool to a latched stick point with a spring,
// re-latching whenever the spring force would exceed the break-away
// maximum. The latch drops when the tool leaves the sphere.
func (s *Sphere) stickSlipForce(toolPos md3.Vec, inside bool) md3.Vec {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !inside {
		s.stickActive = false
		return md3.Vec{}
	}

	if !s.stickActive {
		s.stickPos = toolPos
		s.stickActive = true
		return md3.Vec{}
	}

	k := s.material.StickSlipStiffness
	pull := md3.Sub(s.stickPos, toolPos)
	magnitude := k * md3.Norm(pull)

	if magnitude > s.material.StickSlipForceMax && k > 0 {
		// Break-away: slip the stick point to the force cap.
		reach := s.material.StickSlipForceMax / k
		dir := md3.Scale(1/md3.Norm(pull), pull)
		s.stickPos = md3.Add(toolPos, md3.Scale(reach, dir))
		pull = md3.Sub(s.stickPos, toolPos)
	}

	return md3.Scale(k, pull)
}

// MaxLinearForceCap bounds the force derived from device specifications,
// matching the conservative cap used when configuring materials.
const MaxLinearForceCap = 7.0

// ClampForce limits the magnitude of f to maxForce. Zero or negative
// maxForce disables clamping.
func ClampForce(f md3.Vec, maxForce float64) md3.Vec {
	if maxForce <= 0 {
		return f
	}
	norm := md3.Norm(f)
	if norm <= maxForce || norm == 0 {
		return f
	}
	return md3.Scale(maxForce/norm, f)
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b md3.Vec) float64 {
	return md3.Norm(md3.Sub(a, b))
}
