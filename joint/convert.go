package joint

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/jointlab/common"
)

// The simulation measures rotation in the opposite direction from the engine.
// Every angle-like value crossing into the simulation goes through one of the
// functions below so the inversion lives in one place.

// angleToSimulation converts an engine angle to a simulation angle.
func angleToSimulation(rad float64) float64 {
	return -rad * common.AngleToPhysical
}

// limitsToSimulation maps an engine limit pair onto the simulation's. Negating
// both ends swaps their order.
func limitsToSimulation(lower, upper float64) (simLower, simUpper float64) {
	return angleToSimulation(upper), angleToSimulation(lower)
}

// motorSpeedToSimulation converts radians per frame to simulation radians per second.
func motorSpeedToSimulation(radPerFrame float64) float64 {
	return -radPerFrame / common.SecondsPerFrame
}

func lengthToSimulation(v cp.Vector) cp.Vector {
	return v.Mult(common.LengthToPhysical)
}

func torqueToSimulation(torque float64) float64 {
	return torque * common.TorqueToPhysical
}

// localPointToSimulation converts a body-local engine point, honoring the
// body's transform scale.
func localPointToSimulation(body Body, p cp.Vector) cp.Vector {
	if body != nil {
		scale := body.Scale()
		p = cp.Vector{X: p.X * scale.X, Y: p.Y * scale.Y}
	}
	return lengthToSimulation(p)
}

func angleToEngine(rad float64) float64 {
	return rad * common.AngleToEngine
}

func angularVelocityToEngine(radPerSecond float64) float64 {
	return radPerSecond * common.AngularVelocityToEngine
}

func torqueToEngine(torque float64) float64 {
	return torque * common.TorqueToEngine
}

func forceToEngine(force float64) float64 {
	return force * common.ForceToEngine
}
