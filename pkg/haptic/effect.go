package haptic

import "github.com/soypat/geometry/md3"

// Tick is the mutable state of one control-loop iteration. The tool
// kinematics are a read-only snapshot; Force starts as the solver's base
// force and is transformed in place by each contributor in turn.
type Tick struct {
	ToolPos md3.Vec
	ToolVel md3.Vec
	Force   md3.Vec
	Dt      float64
}

// Contributor is one object's force-modification rule, applied once per
// tick in a fixed order. Contributors may carry persistent dynamic state
// (oscillator phase, spring-mass velocity) but must never write to the
// device themselves: the loop sends the composed force exactly once.
type Contributor interface {
	Name() string
	Apply(t *Tick)
}
