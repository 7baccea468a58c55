package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// FixedRevoluteJoint pins a point on bodyA to a fixed world point while
// leaving rotation free, optionally bounded by angle limits and driven by a
// motor. It is built from Chipmunk constraints between bodyA and the static
// body: a pivot for the pin, a rotary limit and a simple motor.
//
// Angles follow the simulation convention: the joint angle is the body angle
// minus the reference angle, and the limits bound the joint angle.
type FixedRevoluteJoint struct {
	world *World
	bodyA *cp.Body

	pivot *cp.Constraint
	limit *cp.Constraint
	motor *cp.Constraint

	pivotActive bool
	limitActive bool
	motorActive bool

	localAnchorA   cp.Vector
	worldAnchorB   cp.Vector
	referenceAngle float64
	lowerLimit     float64
	upperLimit     float64
	limitEnabled   bool
	motorEnabled   bool
	motorSpeed     float64
	maxMotorTorque float64
	enabled        bool
	collideBodies  bool

	destroyed bool
}

// CreateFixedRevoluteJoint adds a fixed revolute joint for bodyA to the world.
// anchorA is in bodyA's local frame, anchorB in world space.
func CreateFixedRevoluteJoint(world *World, bodyA *cp.Body, anchorA, anchorB cp.Vector) *FixedRevoluteJoint {
	if world == nil || world.space == nil || bodyA == nil {
		return nil
	}
	static := world.StaticBody()

	j := &FixedRevoluteJoint{
		world:        world,
		bodyA:        bodyA,
		pivot:        cp.NewPivotJoint2(bodyA, static, anchorA, anchorB),
		limit:        cp.NewRotaryLimitJoint(static, bodyA, 0, 0),
		motor:        cp.NewSimpleMotor(bodyA, static, 0),
		localAnchorA: anchorA,
		worldAnchorB: anchorB,
		enabled:      true,
	}
	world.trackJoint(j)
	j.apply()
	return j
}

// Valid reports whether the joint is still part of its world.
func (j *FixedRevoluteJoint) Valid() bool {
	return j != nil && !j.destroyed
}

// Destroy removes all of the joint's constraints from the world. The handle
// stays readable but is no longer valid.
func (j *FixedRevoluteJoint) Destroy() {
	if !j.Valid() {
		return
	}
	j.setActive(j.pivot, &j.pivotActive, false)
	j.setActive(j.limit, &j.limitActive, false)
	j.setActive(j.motor, &j.motorActive, false)
	j.world.untrackJoint(j)
	j.destroyed = true
}

// BodyA returns the body the joint pins.
func (j *FixedRevoluteJoint) BodyA() *cp.Body {
	if j == nil {
		return nil
	}
	return j.bodyA
}

func (j *FixedRevoluteJoint) LocalAnchorA() cp.Vector {
	if j == nil {
		return cp.Vector{}
	}
	return j.localAnchorA
}

func (j *FixedRevoluteJoint) SetLocalAnchorA(v cp.Vector) {
	if j == nil {
		return
	}
	j.localAnchorA = v
	j.apply()
}

func (j *FixedRevoluteJoint) WorldAnchorB() cp.Vector {
	if j == nil {
		return cp.Vector{}
	}
	return j.worldAnchorB
}

func (j *FixedRevoluteJoint) SetWorldAnchorB(v cp.Vector) {
	if j == nil {
		return
	}
	j.worldAnchorB = v
	j.apply()
}

func (j *FixedRevoluteJoint) ReferenceAngle() float64 {
	if j == nil {
		return 0
	}
	return j.referenceAngle
}

func (j *FixedRevoluteJoint) SetReferenceAngle(angle float64) {
	if j == nil {
		return
	}
	j.referenceAngle = angle
	j.apply()
}

func (j *FixedRevoluteJoint) LimitEnabled() bool {
	return j != nil && j.limitEnabled
}

func (j *FixedRevoluteJoint) SetLimitEnabled(enabled bool) {
	if j == nil {
		return
	}
	j.limitEnabled = enabled
	j.apply()
}

func (j *FixedRevoluteJoint) LowerLimit() float64 {
	if j == nil {
		return 0
	}
	return j.lowerLimit
}

func (j *FixedRevoluteJoint) SetLowerLimit(lower float64) {
	if j == nil {
		return
	}
	j.lowerLimit = lower
	j.apply()
}

func (j *FixedRevoluteJoint) UpperLimit() float64 {
	if j == nil {
		return 0
	}
	return j.upperLimit
}

func (j *FixedRevoluteJoint) SetUpperLimit(upper float64) {
	if j == nil {
		return
	}
	j.upperLimit = upper
	j.apply()
}

func (j *FixedRevoluteJoint) MotorEnabled() bool {
	return j != nil && j.motorEnabled
}

func (j *FixedRevoluteJoint) SetMotorEnabled(enabled bool) {
	if j == nil {
		return
	}
	j.motorEnabled = enabled
	j.apply()
}

// MotorSpeed is the target angular velocity of bodyA in radians per second.
func (j *FixedRevoluteJoint) MotorSpeed() float64 {
	if j == nil {
		return 0
	}
	return j.motorSpeed
}

func (j *FixedRevoluteJoint) SetMotorSpeed(speed float64) {
	if j == nil {
		return
	}
	j.motorSpeed = speed
	j.apply()
}

func (j *FixedRevoluteJoint) MaxMotorTorque() float64 {
	if j == nil {
		return 0
	}
	return j.maxMotorTorque
}

// SetMaxMotorTorque sets the motor's torque budget. Negative values are
// stored as 0; Chipmunk rejects negative max forces.
func (j *FixedRevoluteJoint) SetMaxMotorTorque(torque float64) {
	if j == nil {
		return
	}
	j.maxMotorTorque = math.Max(torque, 0)
	j.apply()
}

func (j *FixedRevoluteJoint) Enabled() bool {
	return j != nil && j.enabled
}

// SetEnabled adds or removes every constraint of the joint from the space.
func (j *FixedRevoluteJoint) SetEnabled(enabled bool) {
	if j == nil {
		return
	}
	j.enabled = enabled
	j.apply()
}

func (j *FixedRevoluteJoint) CollideBodies() bool {
	return j != nil && j.collideBodies
}

func (j *FixedRevoluteJoint) SetCollideBodies(collide bool) {
	if j == nil {
		return
	}
	j.collideBodies = collide
	j.apply()
}

// JointAngle is bodyA's angle relative to the reference angle, in radians.
func (j *FixedRevoluteJoint) JointAngle() float64 {
	if j == nil || j.bodyA == nil {
		return 0
	}
	return j.bodyA.Angle() - j.referenceAngle
}

// JointSpeed is bodyA's angular velocity in radians per second.
func (j *FixedRevoluteJoint) JointSpeed() float64 {
	if j == nil || j.bodyA == nil {
		return 0
	}
	return j.bodyA.AngularVelocity()
}

// MotorTorque is the torque the motor applied during the last step.
func (j *FixedRevoluteJoint) MotorTorque() float64 {
	if j == nil || !j.motorActive {
		return 0
	}
	return j.perSecond(j.motor.Class.GetImpulse())
}

// ReactionForce is the force the pivot applied during the last step.
func (j *FixedRevoluteJoint) ReactionForce() float64 {
	if j == nil || !j.pivotActive {
		return 0
	}
	return j.perSecond(j.pivot.Class.GetImpulse())
}

func (j *FixedRevoluteJoint) perSecond(impulse float64) float64 {
	dt := j.world.LastStep()
	if dt <= 0 {
		return 0
	}
	return impulse / dt
}

// apply pushes the stored parameters onto the Chipmunk constraints and keeps
// the set of constraints in the space in line with the enabled flags.
func (j *FixedRevoluteJoint) apply() {
	if !j.Valid() {
		return
	}

	if pivot, ok := j.pivot.Class.(*cp.PivotJoint); ok {
		pivot.AnchorA = j.localAnchorA
		pivot.AnchorB = j.worldAnchorB
	}
	if limit, ok := j.limit.Class.(*cp.RotaryLimitJoint); ok {
		limit.Min = j.lowerLimit + j.referenceAngle
		limit.Max = j.upperLimit + j.referenceAngle
	}
	if motor, ok := j.motor.Class.(*cp.SimpleMotor); ok {
		motor.Rate = j.motorSpeed
	}
	j.motor.SetMaxForce(j.maxMotorTorque)

	for _, c := range []*cp.Constraint{j.pivot, j.limit, j.motor} {
		c.SetCollideBodies(j.collideBodies)
	}

	j.setActive(j.pivot, &j.pivotActive, j.enabled)
	j.setActive(j.limit, &j.limitActive, j.enabled && j.limitEnabled)
	j.setActive(j.motor, &j.motorActive, j.enabled && j.motorEnabled)

	j.bodyA.Activate()
}

func (j *FixedRevoluteJoint) setActive(c *cp.Constraint, active *bool, want bool) {
	if *active == want {
		return
	}
	space := j.world.Space()
	if want {
		space.AddConstraint(c)
	} else {
		space.RemoveConstraint(c)
	}
	*active = want
}
