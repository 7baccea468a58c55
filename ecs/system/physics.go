package system

import (
	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/jointlab/common"
	"github.com/milk9111/jointlab/ecs"
	"github.com/milk9111/jointlab/ecs/component"
	"github.com/milk9111/jointlab/physics"
)

// PhysicsSystem mirrors rigid bodies into the simulation, steps it once per
// frame and copies the results back onto transforms.
type PhysicsSystem struct {
	world  *physics.World
	bodies map[ecs.Entity]*cp.Body
	logger *log.Logger
}

func NewPhysicsSystem(world *physics.World, logger *log.Logger) *PhysicsSystem {
	if world == nil {
		world = physics.NewWorld(physics.DefaultConfig())
	}
	if logger == nil {
		logger = log.Default()
	}
	return &PhysicsSystem{
		world:  world,
		bodies: make(map[ecs.Entity]*cp.Body),
		logger: logger,
	}
}

func (ps *PhysicsSystem) World() *physics.World {
	if ps == nil {
		return nil
	}
	return ps.world
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}

	ps.removeStale(w)
	ps.syncEntities(w)

	ps.world.Step(common.SecondsPerFrame)

	ps.syncTransforms(w)
}

// removeStale drops bodies whose entity died, lost its rigid body or had its
// body replaced. Joints on those bodies go with them.
func (ps *PhysicsSystem) removeStale(w *ecs.World) {
	for e, body := range ps.bodies {
		rb, ok := ecs.Get(w, e, component.RigidBodyComponent)
		if ok && rb.Body == body {
			continue
		}
		ps.world.RemoveBody(body)
		delete(ps.bodies, e)
		w.Events().Push(ecs.Event{Type: ecs.EventBodyRemoved, Data: ecs.EntityEvent{Entity: e}})
		ps.logger.Debug("body removed", "entity", e)
	}
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	for _, e := range w.Query(component.TransformComponent.Kind(), component.RigidBodyComponent.Kind()) {
		transform, _ := ecs.Get(w, e, component.TransformComponent)
		rb, _ := ecs.Get(w, e, component.RigidBodyComponent)
		if transform == nil || rb == nil {
			continue
		}

		rb.SetScale(transform.Scale())
		if rb.Body != nil {
			continue
		}

		body := ps.createBody(transform, rb)
		if body == nil {
			ps.logger.Warn("rigid body has no usable shape", "entity", e, "shape", rb.Shape)
			continue
		}
		rb.Body = body
		ps.bodies[e] = body
		w.Events().Push(ecs.Event{Type: ecs.EventBodyCreated, Data: ecs.EntityEvent{Entity: e}})
		ps.logger.Debug("body created", "entity", e, "shape", rb.Shape, "static", rb.Static)
	}
}

func (ps *PhysicsSystem) createBody(transform *component.Transform, rb *component.RigidBody) *cp.Body {
	scale := transform.Scale()
	pos := cp.Vector{X: transform.X * common.LengthToPhysical, Y: transform.Y * common.LengthToPhysical}
	mass := rb.Mass * common.MassToPhysical

	var body *cp.Body
	switch rb.Shape {
	case component.ShapeCircle:
		radius := rb.Radius * max(abs(scale.X), abs(scale.Y)) * common.LengthToPhysical
		body = ps.world.NewCircleBody(mass, radius, pos, rb.Static)
	case component.ShapeBox, "":
		width := rb.Width * abs(scale.X) * common.LengthToPhysical
		height := rb.Height * abs(scale.Y) * common.LengthToPhysical
		body = ps.world.NewBoxBody(mass, width, height, pos, rb.Static)
	}
	if body != nil {
		body.SetAngle(-transform.Rotation * common.AngleToPhysical)
	}
	return body
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	for _, e := range w.Query(component.RigidBodyComponent.Kind(), component.TransformComponent.Kind()) {
		rb, _ := ecs.Get(w, e, component.RigidBodyComponent)
		if rb == nil || rb.Body == nil || rb.Static {
			continue
		}
		transform, _ := ecs.Get(w, e, component.TransformComponent)
		if transform == nil {
			continue
		}
		pos := rb.Body.Position()
		transform.X = pos.X * common.LengthToEngine
		transform.Y = pos.Y * common.LengthToEngine
		transform.Rotation = -rb.Body.Angle() * common.AngleToEngine
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
