// Package joint holds engine-side joint configurations. A configuration keeps
// user-facing parameters in engine units and mirrors them onto a simulation
// joint whenever one exists.
package joint

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/jointlab/physics"
)

// Body is the engine-side view of a rigid body a joint can attach to.
type Body interface {
	SimBody() *cp.Body
	Scale() cp.Vector
}

// Joint is the lifecycle surface the joint system drives.
type Joint interface {
	DualJoint() bool
	Attach(world *physics.World, bodyA, bodyB Body) bool
	Detach()
	Attached() bool
	Synchronize()
	ReactionForce() float64
	BreakPoint() float64
	Break()
	Broken() bool
}

var _ Joint = (*FixedRevolute)(nil)

func bodyPresent(b Body) bool {
	return b != nil && b.SimBody() != nil
}
