package entity

import (
	"fmt"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/jointlab/common"
	"github.com/milk9111/jointlab/ecs"
	"github.com/milk9111/jointlab/ecs/component"
	"github.com/milk9111/jointlab/joint"
	"github.com/milk9111/jointlab/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	component.TransformComponent.Name():           addTransform,
	component.RigidBodyComponent.Name():           addRigidBody,
	component.FixedRevoluteJointComponent.Name(): addFixedRevoluteJoint,
	component.JointDriverComponent.Name():         addJointDriver,
}

var componentBuildOrder = []string{
	component.TransformComponent.Name(),
	component.RigidBodyComponent.Name(),
	component.FixedRevoluteJointComponent.Name(),
	component.JointDriverComponent.Name(),
}

func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := w.CreateEntity()
	ctx := &buildContext{PrefabPath: prefabPath}

	if err := buildComponents(w, e, spec, ctx); err != nil {
		w.DestroyEntity(e)
		return 0, err
	}

	if err := ecs.Add(w, e, component.PrefabComponent, &component.Prefab{Name: spec.Name, Path: prefabs.Name(prefabPath)}); err != nil {
		w.DestroyEntity(e)
		return 0, err
	}
	return e, nil
}

func buildComponents(w *ecs.World, e ecs.Entity, spec prefabs.EntityBuildSpec, ctx *buildContext) error {
	names := make([]string, 0, len(spec.Components))
	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			return fmt.Errorf("build entity: %q: no builder for component %q", ctx.PrefabPath, name)
		}
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		return buildRank(names[i]) < buildRank(names[j])
	})

	for _, name := range names {
		if err := componentRegistry[name](w, e, spec.Components[name], ctx); err != nil {
			return fmt.Errorf("build entity: %q: add %q: %w", ctx.PrefabPath, name, err)
		}
	}
	return nil
}

func buildRank(name string) int {
	for i, n := range componentBuildOrder {
		if n == name {
			return i
		}
	}
	return len(componentBuildOrder)
}

// BuildScene builds every entity a scene lists. Entities built before a
// failure are destroyed again.
func BuildScene(w *ecs.World, scene prefabs.SceneSpec) ([]ecs.Entity, error) {
	built := make([]ecs.Entity, 0, len(scene.Entities))
	for _, path := range scene.Entities {
		e, err := BuildEntity(w, path)
		if err != nil {
			for _, b := range built {
				w.DestroyEntity(b)
			}
			return nil, fmt.Errorf("build scene %q: %w", scene.Name, err)
		}
		built = append(built, e)
	}
	return built, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, rotation float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok || t == nil {
		t = &component.Transform{ScaleX: 1, ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Rotation = rotation
	return ecs.Add(w, e, component.TransformComponent, t)
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleX == 0 {
		spec.ScaleX = 1
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent, &component.Transform{
		X:        spec.X,
		Y:        spec.Y,
		ScaleX:   spec.ScaleX,
		ScaleY:   spec.ScaleY,
		Rotation: common.DegToRad(spec.Rotation),
	})
}

type rigidBodySpec = prefabs.RigidBodyComponentSpec

func addRigidBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[rigidBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode rigid_body spec: %w", err)
	}
	switch spec.Shape {
	case "", component.ShapeBox:
		if spec.Width <= 0 || spec.Height <= 0 {
			return fmt.Errorf("box needs a positive width and height")
		}
		spec.Shape = component.ShapeBox
	case component.ShapeCircle:
		if spec.Radius <= 0 {
			return fmt.Errorf("circle needs a positive radius")
		}
	default:
		return fmt.Errorf("unknown shape %q", spec.Shape)
	}
	if !ecs.Has(w, e, component.TransformComponent) {
		if err := SetEntityTransform(w, e, 0, 0, 0); err != nil {
			return err
		}
	}
	return ecs.Add(w, e, component.RigidBodyComponent, &component.RigidBody{
		Shape:  spec.Shape,
		Width:  spec.Width,
		Height: spec.Height,
		Radius: spec.Radius,
		Mass:   spec.Mass,
		Static: spec.Static,
	})
}

type fixedRevoluteJointSpec = prefabs.FixedRevoluteJointComponentSpec

func addFixedRevoluteJoint(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	settings, err := decodeFixedRevoluteSettings(raw)
	if err != nil {
		return err
	}
	if !ecs.Has(w, e, component.RigidBodyComponent) {
		return fmt.Errorf("fixed_revolute_joint requires rigid_body on the same entity")
	}
	j := joint.NewFixedRevolute()
	j.Apply(settings)
	return ecs.Add(w, e, component.FixedRevoluteJointComponent, j)
}

// decodeFixedRevoluteSettings converts the prefab's degrees into the radians
// the joint stores. Motor speed stays in degrees per frame.
func decodeFixedRevoluteSettings(raw any) (joint.FixedRevoluteSettings, error) {
	spec, err := prefabs.DecodeComponentSpec[fixedRevoluteJointSpec](raw)
	if err != nil {
		return joint.FixedRevoluteSettings{}, fmt.Errorf("decode fixed_revolute_joint spec: %w", err)
	}
	enabled := true
	if spec.Enabled != nil {
		enabled = *spec.Enabled
	}
	return joint.FixedRevoluteSettings{
		LocalAnchor:    cp.Vector{X: spec.LocalAnchor.X, Y: spec.LocalAnchor.Y},
		WorldAnchor:    cp.Vector{X: spec.WorldAnchor.X, Y: spec.WorldAnchor.Y},
		LimitEnabled:   spec.LimitEnabled,
		LowerLimit:     common.DegToRad(spec.LowerLimit),
		UpperLimit:     common.DegToRad(spec.UpperLimit),
		ReferenceAngle: common.DegToRad(spec.ReferenceAngle),
		MotorEnabled:   spec.MotorEnabled,
		MaxMotorTorque: spec.MaxMotorTorque,
		MotorSpeed:     spec.MotorSpeed,
		Enabled:        enabled,
		CollideBodies:  spec.CollideBodies,
		BreakPoint:     spec.BreakPoint,
	}, nil
}

type jointDriverSpec = prefabs.JointDriverComponentSpec

func addJointDriver(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[jointDriverSpec](raw)
	if err != nil {
		return fmt.Errorf("decode joint_driver spec: %w", err)
	}
	if spec.Script == "" {
		return fmt.Errorf("joint_driver needs a script")
	}
	return ecs.Add(w, e, component.JointDriverComponent, &component.JointDriver{
		ScriptPath: spec.Script,
		Disabled:   spec.Disabled,
	})
}
