package system

import (
	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/jointlab/ecs"
	"github.com/milk9111/jointlab/ecs/component"
	"github.com/milk9111/jointlab/joint"
	"github.com/milk9111/jointlab/physics"
)

// JointSystem keeps joint configurations attached to their entity's body and
// breaks joints whose reaction force exceeds their break point.
type JointSystem struct {
	world    *physics.World
	attached map[ecs.Entity]attachment
	logger   *log.Logger
}

type attachment struct {
	joint *joint.FixedRevolute
	body  *cp.Body
}

func NewJointSystem(world *physics.World, logger *log.Logger) *JointSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &JointSystem{
		world:    world,
		attached: make(map[ecs.Entity]attachment),
		logger:   logger,
	}
}

func (js *JointSystem) Update(w *ecs.World) {
	if js == nil || w == nil || js.world == nil {
		return
	}

	js.detachStale(w)
	js.attachPending(w)
	js.checkBreaks(w)
}

func (js *JointSystem) detachStale(w *ecs.World) {
	for e, a := range js.attached {
		j, _ := ecs.Get(w, e, component.FixedRevoluteJointComponent)
		rb, _ := ecs.Get(w, e, component.RigidBodyComponent)
		if j == a.joint && rb.SimBody() == a.body && a.joint.Attached() {
			continue
		}
		// a replaced joint component leaves the old configuration attached
		a.joint.Detach()
		delete(js.attached, e)
		w.Events().Push(ecs.Event{Type: ecs.EventJointDetached, Data: ecs.EntityEvent{Entity: e}})
		js.logger.Debug("joint detached", "entity", e)
	}
}

func (js *JointSystem) attachPending(w *ecs.World) {
	for _, e := range w.Query(component.FixedRevoluteJointComponent.Kind(), component.RigidBodyComponent.Kind()) {
		if _, ok := js.attached[e]; ok {
			continue
		}
		j, _ := ecs.Get(w, e, component.FixedRevoluteJointComponent)
		rb, _ := ecs.Get(w, e, component.RigidBodyComponent)
		if j == nil || rb.SimBody() == nil {
			continue
		}
		if !j.Attach(js.world, rb, nil) {
			continue
		}
		js.attached[e] = attachment{joint: j, body: rb.SimBody()}
		w.Events().Push(ecs.Event{Type: ecs.EventJointAttached, Data: ecs.EntityEvent{Entity: e}})
		js.logger.Debug("joint attached", "entity", e, "anchor", j.WorldAnchor())
	}
}

func (js *JointSystem) checkBreaks(w *ecs.World) {
	for e, a := range js.attached {
		j := a.joint
		if j.Broken() || j.BreakPoint() <= 0 {
			continue
		}
		force := j.ReactionForce()
		if force <= j.BreakPoint() {
			continue
		}
		j.Break()
		w.Events().Push(ecs.Event{Type: ecs.EventJointBroken, Data: ecs.EntityEvent{Entity: e, Value: force}})
		js.logger.Info("joint broke", "entity", e, "force", force, "break_point", j.BreakPoint())
	}
}
