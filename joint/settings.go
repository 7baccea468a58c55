package joint

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/jointlab/common"
)

// FixedRevoluteSettings is a plain snapshot of a FixedRevolute's editable
// properties, in the units its accessors use.
type FixedRevoluteSettings struct {
	LocalAnchor    cp.Vector
	WorldAnchor    cp.Vector
	LimitEnabled   bool
	LowerLimit     float64 // radians
	UpperLimit     float64 // radians
	ReferenceAngle float64 // radians
	MotorEnabled   bool
	MaxMotorTorque float64
	MotorSpeed     float64 // degrees per frame
	Enabled        bool
	CollideBodies  bool
	BreakPoint     float64
}

// DefaultFixedRevoluteSettings matches a freshly constructed FixedRevolute.
func DefaultFixedRevoluteSettings() FixedRevoluteSettings {
	return FixedRevoluteSettings{Enabled: true}
}

// Settings returns the current properties.
func (f *FixedRevolute) Settings() FixedRevoluteSettings {
	if f == nil {
		return DefaultFixedRevoluteSettings()
	}
	return FixedRevoluteSettings{
		LocalAnchor:    f.localAnchor,
		WorldAnchor:    f.worldAnchor,
		LimitEnabled:   f.limitEnabled,
		LowerLimit:     f.lowerLimit,
		UpperLimit:     f.upperLimit,
		ReferenceAngle: f.referenceAngle,
		MotorEnabled:   f.motorEnabled,
		MaxMotorTorque: f.maxMotorTorque,
		MotorSpeed:     f.MotorSpeed(),
		Enabled:        !f.disabled,
		CollideBodies:  f.collideBodies,
		BreakPoint:     f.breakPoint,
	}
}

// Apply stores every property of s and synchronizes once. Limits go through
// the same clamp as SetLimits.
func (f *FixedRevolute) Apply(s FixedRevoluteSettings) {
	if f == nil {
		return
	}
	f.localAnchor = s.LocalAnchor
	f.worldAnchor = s.WorldAnchor
	f.limitEnabled = s.LimitEnabled
	f.referenceAngle = s.ReferenceAngle
	f.motorEnabled = s.MotorEnabled
	f.maxMotorTorque = s.MaxMotorTorque
	f.motorSpeed = common.DegToRad(s.MotorSpeed)
	f.disabled = !s.Enabled
	f.collideBodies = s.CollideBodies
	f.breakPoint = s.BreakPoint
	f.SetLimits(s.LowerLimit, s.UpperLimit)
}
