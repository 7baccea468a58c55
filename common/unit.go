package common

// Conversion table between engine units (pixels, frames) and the physical
// units the simulation runs in (meters, seconds). Multiply an engine value by
// an XToPhysical factor to get the physical value and vice versa.
const (
	LengthToEngine   = 100.0
	LengthToPhysical = 1.0 / LengthToEngine

	TimeToEngine   = FramesPerSecond
	TimeToPhysical = 1.0 / TimeToEngine

	MassToEngine   = 1.0
	MassToPhysical = 1.0 / MassToEngine

	AngleToEngine   = 1.0
	AngleToPhysical = 1.0 / AngleToEngine

	VelocityToEngine   = LengthToEngine / TimeToEngine
	VelocityToPhysical = 1.0 / VelocityToEngine

	AngularVelocityToEngine   = AngleToEngine / TimeToEngine
	AngularVelocityToPhysical = 1.0 / AngularVelocityToEngine

	ForceToEngine   = MassToEngine * LengthToEngine / (TimeToEngine * TimeToEngine)
	ForceToPhysical = 1.0 / ForceToEngine

	TorqueToEngine   = ForceToEngine * LengthToEngine
	TorqueToPhysical = 1.0 / TorqueToEngine
)
