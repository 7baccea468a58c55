package entity

import (
	"fmt"

	"github.com/milk9111/jointlab/ecs"
	"github.com/milk9111/jointlab/ecs/component"
	"github.com/milk9111/jointlab/prefabs"
)

// ReloadPrefab re-reads a prefab and pushes its joint and driver settings onto
// every entity built from it. Attached joints are updated in place; bodies and
// transforms are left alone. It returns the number of entities updated.
func ReloadPrefab(w *ecs.World, prefabPath string) (int, error) {
	if w == nil {
		return 0, fmt.Errorf("reload prefab: world is nil")
	}
	name := prefabs.Name(prefabPath)
	spec, err := prefabs.LoadEntityBuildSpec(name)
	if err != nil {
		return 0, fmt.Errorf("reload prefab: %w", err)
	}

	updated := 0
	for _, e := range w.Query(component.PrefabComponent.Kind()) {
		p, _ := ecs.Get(w, e, component.PrefabComponent)
		if p == nil || p.Path != name {
			continue
		}
		if err := reloadEntity(w, e, spec); err != nil {
			return updated, fmt.Errorf("reload prefab %q: entity %s: %w", name, e, err)
		}
		updated++
		w.Events().Push(ecs.Event{Type: ecs.EventPrefabReloaded, Data: ecs.EntityEvent{Entity: e}})
	}
	return updated, nil
}

func reloadEntity(w *ecs.World, e ecs.Entity, spec prefabs.EntityBuildSpec) error {
	if raw, ok := spec.Components[component.FixedRevoluteJointComponent.Name()]; ok {
		settings, err := decodeFixedRevoluteSettings(raw)
		if err != nil {
			return err
		}
		if j, ok := ecs.Get(w, e, component.FixedRevoluteJointComponent); ok && j != nil {
			j.Apply(settings)
		} else if err := addFixedRevoluteJoint(w, e, raw, nil); err != nil {
			return err
		}
	} else {
		ecs.Remove(w, e, component.FixedRevoluteJointComponent)
	}

	if raw, ok := spec.Components[component.JointDriverComponent.Name()]; ok {
		return addJointDriver(w, e, raw, nil)
	}
	ecs.Remove(w, e, component.JointDriverComponent)
	return nil
}
