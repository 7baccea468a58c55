package joint

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/jointlab/common"
	"github.com/milk9111/jointlab/physics"
)

// FixedRevolute pins a local anchor on a rigid body to a world position
// without constraining rotation. Angle limits and a motor are optional.
//
// Every setter stores its value and then calls Synchronize. Without an
// attached simulation joint setters only store and readouts return 0. The
// zero value is an enabled, unbreakable, unattached joint.
type FixedRevolute struct {
	localAnchor    cp.Vector
	worldAnchor    cp.Vector
	limitEnabled   bool
	lowerLimit     float64
	upperLimit     float64
	referenceAngle float64
	motorEnabled   bool
	maxMotorTorque float64
	motorSpeed     float64 // radians per frame

	disabled      bool
	collideBodies bool
	breakPoint    float64
	broken        bool

	world *physics.World
	bodyA Body
	bodyB Body
	joint *physics.FixedRevoluteJoint
}

// NewFixedRevolute returns an unattached joint configuration.
func NewFixedRevolute() *FixedRevolute {
	return &FixedRevolute{}
}

// DualJoint is false: the joint binds one body to the world.
func (f *FixedRevolute) DualJoint() bool {
	return false
}

// LocalAnchor is the anchor point in the body's local space.
func (f *FixedRevolute) LocalAnchor() cp.Vector {
	if f == nil {
		return cp.Vector{}
	}
	return f.localAnchor
}

func (f *FixedRevolute) SetLocalAnchor(v cp.Vector) {
	if f == nil {
		return
	}
	f.localAnchor = v
	f.Synchronize()
}

// WorldAnchor is the world position the body is pinned to.
func (f *FixedRevolute) WorldAnchor() cp.Vector {
	if f == nil {
		return cp.Vector{}
	}
	return f.worldAnchor
}

func (f *FixedRevolute) SetWorldAnchor(v cp.Vector) {
	if f == nil {
		return
	}
	f.worldAnchor = v
	f.Synchronize()
}

func (f *FixedRevolute) LimitEnabled() bool {
	return f != nil && f.limitEnabled
}

func (f *FixedRevolute) SetLimitEnabled(enabled bool) {
	if f == nil {
		return
	}
	f.limitEnabled = enabled
	f.Synchronize()
}

// LowerLimit is the lower joint limit in radians.
func (f *FixedRevolute) LowerLimit() float64 {
	if f == nil {
		return 0
	}
	return f.lowerLimit
}

// SetLowerLimit stores rad, clamped so it never exceeds the upper limit.
func (f *FixedRevolute) SetLowerLimit(rad float64) {
	if f == nil {
		return
	}
	f.lowerLimit = math.Min(rad, f.upperLimit)
	f.Synchronize()
}

// UpperLimit is the upper joint limit in radians.
func (f *FixedRevolute) UpperLimit() float64 {
	if f == nil {
		return 0
	}
	return f.upperLimit
}

// SetUpperLimit stores rad, clamped so it never drops below the lower limit.
func (f *FixedRevolute) SetUpperLimit(rad float64) {
	if f == nil {
		return
	}
	f.upperLimit = math.Max(rad, f.lowerLimit)
	f.Synchronize()
}

// SetLimits assigns both limits in whichever order lets a pair with
// lower <= upper survive the clamp unchanged.
func (f *FixedRevolute) SetLimits(lower, upper float64) {
	if f == nil {
		return
	}
	if lower > f.upperLimit {
		f.upperLimit = math.Max(upper, f.lowerLimit)
		f.lowerLimit = math.Min(lower, f.upperLimit)
	} else {
		f.lowerLimit = lower
		f.upperLimit = math.Max(upper, f.lowerLimit)
	}
	f.Synchronize()
}

// ReferenceAngle is the body angle, in radians, that counts as joint angle 0.
func (f *FixedRevolute) ReferenceAngle() float64 {
	if f == nil {
		return 0
	}
	return f.referenceAngle
}

func (f *FixedRevolute) SetReferenceAngle(rad float64) {
	if f == nil {
		return
	}
	f.referenceAngle = rad
	f.Synchronize()
}

func (f *FixedRevolute) MotorEnabled() bool {
	return f != nil && f.motorEnabled
}

func (f *FixedRevolute) SetMotorEnabled(enabled bool) {
	if f == nil {
		return
	}
	f.motorEnabled = enabled
	f.Synchronize()
}

func (f *FixedRevolute) MaxMotorTorque() float64 {
	if f == nil {
		return 0
	}
	return f.maxMotorTorque
}

func (f *FixedRevolute) SetMaxMotorTorque(torque float64) {
	if f == nil {
		return
	}
	f.maxMotorTorque = torque
	f.Synchronize()
}

// MotorSpeed is the desired motor speed in degrees per frame.
func (f *FixedRevolute) MotorSpeed() float64 {
	if f == nil {
		return 0
	}
	return common.RadToDeg(f.motorSpeed)
}

func (f *FixedRevolute) SetMotorSpeed(degPerFrame float64) {
	if f == nil {
		return
	}
	f.motorSpeed = common.DegToRad(degPerFrame)
	f.Synchronize()
}

// Enabled reports whether the joint takes part in the simulation.
func (f *FixedRevolute) Enabled() bool {
	return f != nil && !f.disabled
}

func (f *FixedRevolute) SetEnabled(enabled bool) {
	if f == nil {
		return
	}
	f.disabled = !enabled
	f.Synchronize()
}

// CollideBodies reports whether the jointed body still collides with the
// static world.
func (f *FixedRevolute) CollideBodies() bool {
	return f != nil && f.collideBodies
}

func (f *FixedRevolute) SetCollideBodies(collide bool) {
	if f == nil {
		return
	}
	f.collideBodies = collide
	f.Synchronize()
}

// BreakPoint is the reaction force, in engine units, above which the joint
// breaks. Values <= 0 make the joint unbreakable.
func (f *FixedRevolute) BreakPoint() float64 {
	if f == nil {
		return 0
	}
	return f.breakPoint
}

func (f *FixedRevolute) SetBreakPoint(force float64) {
	if f == nil {
		return
	}
	f.breakPoint = force
	f.Synchronize()
}

// Broken reports whether the joint broke. A broken joint stays attached but
// inactive until it is attached again.
func (f *FixedRevolute) Broken() bool {
	return f != nil && f.broken
}

func (f *FixedRevolute) Break() {
	if f == nil {
		return
	}
	f.broken = true
	f.Synchronize()
}

// JointSpeed is the current joint angle speed in radians per frame.
func (f *FixedRevolute) JointSpeed() float64 {
	j := f.handle()
	if j == nil {
		return 0
	}
	return angularVelocityToEngine(j.JointSpeed())
}

// JointAngle is the current joint angle in radians.
func (f *FixedRevolute) JointAngle() float64 {
	j := f.handle()
	if j == nil {
		return 0
	}
	return angleToEngine(j.JointAngle())
}

// MotorTorque is the torque the motor applied during the last step.
func (f *FixedRevolute) MotorTorque() float64 {
	j := f.handle()
	if j == nil {
		return 0
	}
	return torqueToEngine(j.MotorTorque())
}

// ReactionForce is the force the pin applied during the last step.
func (f *FixedRevolute) ReactionForce() float64 {
	j := f.handle()
	if j == nil {
		return 0
	}
	return forceToEngine(j.ReactionForce())
}

// BodyA returns the attached body, if any.
func (f *FixedRevolute) BodyA() Body {
	if f == nil {
		return nil
	}
	return f.bodyA
}

// SimulationJoint returns the live simulation joint, or nil.
func (f *FixedRevolute) SimulationJoint() *physics.FixedRevoluteJoint {
	return f.handle()
}

// Attached reports whether a live simulation joint exists.
func (f *FixedRevolute) Attached() bool {
	return f.handle() != nil
}

// Attach replaces any current simulation joint with one for bodyA in world
// and pushes the stored parameters onto it. It reports whether a joint was
// created.
func (f *FixedRevolute) Attach(world *physics.World, bodyA, bodyB Body) bool {
	if f == nil {
		return false
	}
	f.Detach()

	f.world = world
	f.joint = f.CreateSimulationJoint(bodyA, bodyB)
	if f.joint == nil {
		f.world = nil
		return false
	}
	f.bodyA = bodyA
	f.bodyB = bodyB
	f.broken = false
	f.Synchronize()
	return true
}

// Detach destroys the simulation joint, if any, and forgets the bodies.
func (f *FixedRevolute) Detach() {
	if f == nil {
		return
	}
	if f.joint != nil {
		f.joint.Destroy()
	}
	f.joint = nil
	f.world = nil
	f.bodyA = nil
	f.bodyB = nil
}

// CreateSimulationJoint builds a fixed revolute joint for bodyA in the
// attached world, anchored at the origin of both frames. It returns nil
// without bodyA. Anchors are applied by Synchronize.
func (f *FixedRevolute) CreateSimulationJoint(bodyA, bodyB Body) *physics.FixedRevoluteJoint {
	if f == nil || !bodyPresent(bodyA) || f.world == nil {
		return nil
	}
	return physics.CreateFixedRevoluteJoint(f.world, bodyA.SimBody(), cp.Vector{}, cp.Vector{})
}

// Synchronize pushes every stored parameter onto the simulation joint. It is
// a no-op without one.
func (f *FixedRevolute) Synchronize() {
	j := f.handle()
	if j == nil {
		return
	}

	j.SetWorldAnchorB(lengthToSimulation(f.worldAnchor))
	j.SetLocalAnchorA(localPointToSimulation(f.bodyA, f.localAnchor))
	j.SetMotorEnabled(f.motorEnabled)
	j.SetMotorSpeed(motorSpeedToSimulation(f.motorSpeed))
	j.SetMaxMotorTorque(torqueToSimulation(f.maxMotorTorque))
	j.SetLimitEnabled(f.limitEnabled)
	lower, upper := limitsToSimulation(f.lowerLimit, f.upperLimit)
	j.SetLowerLimit(lower)
	j.SetUpperLimit(upper)
	j.SetReferenceAngle(angleToSimulation(f.referenceAngle))
	j.SetCollideBodies(f.collideBodies)
	j.SetEnabled(!f.disabled && !f.broken)
}

// handle returns the simulation joint while it is still live. The world may
// destroy it underneath us when the body goes away.
func (f *FixedRevolute) handle() *physics.FixedRevoluteJoint {
	if f == nil || !f.joint.Valid() {
		return nil
	}
	return f.joint
}
