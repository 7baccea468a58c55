package component

import "github.com/jakecoffman/cp"

const (
	ShapeBox    = "box"
	ShapeCircle = "circle"
)

// RigidBody describes a simulated body in engine units. Body is filled in by
// the physics system while the body lives in the simulation.
type RigidBody struct {
	Shape  string
	Width  float64
	Height float64
	Radius float64
	Mass   float64
	Static bool

	Body  *cp.Body
	scale cp.Vector
}

// SimBody returns the simulation body, or nil before it is created.
func (rb *RigidBody) SimBody() *cp.Body {
	if rb == nil {
		return nil
	}
	return rb.Body
}

// Scale returns the owning transform's scale as last seen by the physics system.
func (rb *RigidBody) Scale() cp.Vector {
	if rb == nil || (rb.scale.X == 0 && rb.scale.Y == 0) {
		return cp.Vector{X: 1, Y: 1}
	}
	return rb.scale
}

func (rb *RigidBody) SetScale(s cp.Vector) {
	if rb == nil {
		return
	}
	rb.scale = s
}

var RigidBodyComponent = NewComponent[*RigidBody]("rigid_body")
