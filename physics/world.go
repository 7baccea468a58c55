package physics

import (
	"github.com/jakecoffman/cp"
)

// Config holds simulation-wide settings in physical units.
type Config struct {
	Gravity    cp.Vector
	Iterations int
}

// DefaultConfig returns earth gravity pointing down the screen.
func DefaultConfig() Config {
	return Config{
		Gravity:    cp.Vector{X: 0, Y: 9.81},
		Iterations: 20,
	}
}

// World owns the Chipmunk space and the bookkeeping needed to tear bodies
// and joints down together.
type World struct {
	space  *cp.Space
	lastDt float64

	shapes map[*cp.Body][]*cp.Shape
	joints map[*cp.Body][]*FixedRevoluteJoint
}

// NewWorld creates a physics world.
func NewWorld(cfg Config) *World {
	space := cp.NewSpace()
	if cfg.Iterations > 0 {
		space.Iterations = uint(cfg.Iterations)
	}
	space.SetGravity(cfg.Gravity)

	return &World{
		space:  space,
		shapes: make(map[*cp.Body][]*cp.Shape),
		joints: make(map[*cp.Body][]*FixedRevoluteJoint),
	}
}

// Space returns the underlying Chipmunk space.
func (pw *World) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// StaticBody returns the space's static body that world-anchored joints pin to.
func (pw *World) StaticBody() *cp.Body {
	if pw == nil || pw.space == nil {
		return nil
	}
	return pw.space.StaticBody
}

// Step advances the simulation by dt seconds.
func (pw *World) Step(dt float64) {
	if pw == nil || pw.space == nil || dt <= 0 {
		return
	}
	pw.space.Step(dt)
	pw.lastDt = dt
}

// LastStep returns the duration of the most recent step, or 0 before the first.
func (pw *World) LastStep() float64 {
	if pw == nil {
		return 0
	}
	return pw.lastDt
}

// NewBoxBody adds a box-shaped body centered at pos.
func (pw *World) NewBoxBody(mass, width, height float64, pos cp.Vector, static bool) *cp.Body {
	if pw == nil || pw.space == nil || width <= 0 || height <= 0 {
		return nil
	}
	mass = bodyMass(mass)
	body := pw.newBody(static, mass, cp.MomentForBox(mass, width, height))
	body.SetPosition(pos)
	pw.space.AddBody(body)
	pw.addShape(body, cp.NewBox(body, width, height, 0))
	return body
}

// NewCircleBody adds a circular body centered at pos.
func (pw *World) NewCircleBody(mass, radius float64, pos cp.Vector, static bool) *cp.Body {
	if pw == nil || pw.space == nil || radius <= 0 {
		return nil
	}
	mass = bodyMass(mass)
	body := pw.newBody(static, mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	body.SetPosition(pos)
	pw.space.AddBody(body)
	pw.addShape(body, cp.NewCircle(body, radius, cp.Vector{}))
	return body
}

// RemoveBody removes a body, its shapes and every joint attached to it.
func (pw *World) RemoveBody(body *cp.Body) {
	if pw == nil || pw.space == nil || body == nil {
		return
	}
	for _, j := range append([]*FixedRevoluteJoint(nil), pw.joints[body]...) {
		j.Destroy()
	}
	delete(pw.joints, body)
	for _, shape := range pw.shapes[body] {
		pw.space.RemoveShape(shape)
	}
	delete(pw.shapes, body)
	pw.space.RemoveBody(body)
}

// HasBody reports whether the body was created by this world and not removed.
func (pw *World) HasBody(body *cp.Body) bool {
	if pw == nil || body == nil {
		return false
	}
	_, ok := pw.shapes[body]
	return ok
}

func (pw *World) newBody(static bool, mass, moment float64) *cp.Body {
	if static {
		return cp.NewStaticBody()
	}
	return cp.NewBody(mass, moment)
}

func bodyMass(mass float64) float64 {
	if mass <= 0 {
		return 1
	}
	return mass
}

func (pw *World) addShape(body *cp.Body, shape *cp.Shape) {
	shape.SetFriction(0.8)
	pw.space.AddShape(shape)
	pw.shapes[body] = append(pw.shapes[body], shape)
}

func (pw *World) trackJoint(j *FixedRevoluteJoint) {
	pw.joints[j.bodyA] = append(pw.joints[j.bodyA], j)
}

func (pw *World) untrackJoint(j *FixedRevoluteJoint) {
	list := pw.joints[j.bodyA]
	for i, other := range list {
		if other == j {
			pw.joints[j.bodyA] = append(list[:i], list[i+1:]...)
			break
		}
	}
	if len(pw.joints[j.bodyA]) == 0 {
		delete(pw.joints, j.bodyA)
	}
}
