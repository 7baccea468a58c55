package system

import (
	"fmt"
	"sort"
	"strings"

	"github.com/milk9111/jointlab/common"
	"github.com/milk9111/jointlab/ecs"
	"github.com/milk9111/jointlab/ecs/component"
)

// JointReport formats the read-backs of every joint, one line per entity,
// ordered by entity.
func JointReport(w *ecs.World) string {
	if w == nil {
		return ""
	}
	ents := w.Query(component.FixedRevoluteJointComponent.Kind())
	sort.Slice(ents, func(i, k int) bool { return ents[i] < ents[k] })

	var b strings.Builder
	for _, e := range ents {
		j, _ := ecs.Get(w, e, component.FixedRevoluteJointComponent)
		name := e.String()
		if p, ok := ecs.Get(w, e, component.PrefabComponent); ok && p.Name != "" {
			name = p.Name
		}
		state := "ok"
		switch {
		case j.Broken():
			state = "broken"
		case !j.Attached():
			state = "detached"
		case !j.Enabled():
			state = "disabled"
		}
		fmt.Fprintf(&b, "%-12s %-8s angle %7.2f°  speed %7.3f°/f  torque %9.2f  force %8.2f\n",
			name, state,
			common.RadToDeg(j.JointAngle()), common.RadToDeg(j.JointSpeed()),
			j.MotorTorque(), j.ReactionForce())
	}
	return b.String()
}
