package entity

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/jointlab/ecs"
	"github.com/milk9111/jointlab/ecs/component"
	"github.com/milk9111/jointlab/joint"
	"github.com/milk9111/jointlab/prefabs"
)

func TestBuildEntityPendulum(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntity(w, "pendulum.yaml")
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	tr, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		t.Fatalf("missing transform")
	}
	if diff := cmp.Diff(&component.Transform{X: 300, Y: 120, ScaleX: 1, ScaleY: 1}, tr); diff != "" {
		t.Fatalf("transform mismatch (-want +got):\n%s", diff)
	}

	rb, ok := ecs.Get(w, e, component.RigidBodyComponent)
	if !ok || rb.Shape != component.ShapeCircle || rb.Radius != 18 || rb.Mass != 2 {
		t.Fatalf("unexpected rigid body %+v", rb)
	}

	j, ok := ecs.Get(w, e, component.FixedRevoluteJointComponent)
	if !ok {
		t.Fatalf("missing joint")
	}
	if j.LocalAnchor() != (cp.Vector{X: -120}) || j.WorldAnchor() != (cp.Vector{X: 180, Y: 120}) {
		t.Fatalf("unexpected anchors %v %v", j.LocalAnchor(), j.WorldAnchor())
	}
	if !j.Enabled() || j.Attached() {
		t.Fatalf("built joint should be enabled and unattached")
	}

	p, _ := ecs.Get(w, e, component.PrefabComponent)
	if diff := cmp.Diff(&component.Prefab{Name: "pendulum", Path: "pendulum.yaml"}, p); diff != "" {
		t.Fatalf("prefab mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildEntityConvertsDegrees(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntity(w, "prefabs/limited_arm.yaml")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	j, _ := ecs.Get(w, e, component.FixedRevoluteJointComponent)

	want := joint.FixedRevoluteSettings{
		LocalAnchor:  cp.Vector{X: -60},
		WorldAnchor:  cp.Vector{X: 720, Y: 200},
		LimitEnabled: true,
		LowerLimit:   -math.Pi / 6,
		UpperLimit:   math.Pi / 6,
		Enabled:      true,
	}
	if diff := cmp.Diff(want, j.Settings(), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}

	driver, ok := ecs.Get(w, e, component.JointDriverComponent)
	if !ok || driver.ScriptPath != "sweep.tengo" {
		t.Fatalf("unexpected driver %+v", driver)
	}
}

func TestBuildScene(t *testing.T) {
	scene, err := prefabs.LoadSceneSpec("lab.yaml")
	if err != nil {
		t.Fatalf("load scene: %v", err)
	}
	w := ecs.NewWorld()
	ents, err := BuildScene(w, scene)
	if err != nil {
		t.Fatalf("build scene: %v", err)
	}
	if len(ents) != len(scene.Entities) {
		t.Fatalf("expected %d entities, got %d", len(scene.Entities), len(ents))
	}
	if got := len(w.Query(component.FixedRevoluteJointComponent.Kind())); got != 4 {
		t.Fatalf("expected 4 jointed entities, got %d", got)
	}
}

func TestBuildSceneRollsBack(t *testing.T) {
	w := ecs.NewWorld()
	_, err := BuildScene(w, prefabs.SceneSpec{Name: "broken", Entities: []string{"pendulum.yaml", "missing.yaml"}})
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(w.Entities()) != 0 {
		t.Fatalf("partial scene left %d entities", len(w.Entities()))
	}
}

func TestComponentBuilderErrors(t *testing.T) {
	cases := []struct {
		name  string
		build func(w *ecs.World, e ecs.Entity) error
		want  string
	}{
		{
			name: "joint_without_body",
			build: func(w *ecs.World, e ecs.Entity) error {
				return addFixedRevoluteJoint(w, e, map[string]any{}, nil)
			},
			want: "requires rigid_body",
		},
		{
			name: "unknown_shape",
			build: func(w *ecs.World, e ecs.Entity) error {
				return addRigidBody(w, e, map[string]any{"shape": "capsule"}, nil)
			},
			want: "unknown shape",
		},
		{
			name: "empty_box",
			build: func(w *ecs.World, e ecs.Entity) error {
				return addRigidBody(w, e, map[string]any{"shape": "box"}, nil)
			},
			want: "positive width",
		},
		{
			name: "driver_without_script",
			build: func(w *ecs.World, e ecs.Entity) error {
				return addJointDriver(w, e, map[string]any{}, nil)
			},
			want: "needs a script",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			err := c.build(w, w.CreateEntity())
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("expected error containing %q, got %v", c.want, err)
			}
		})
	}
}

func TestRigidBodyAddsMissingTransform(t *testing.T) {
	w := ecs.NewWorld()
	e := w.CreateEntity()
	if err := addRigidBody(w, e, map[string]any{"shape": "circle", "radius": 4}, nil); err != nil {
		t.Fatalf("add: %v", err)
	}
	tr, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok || tr.ScaleX != 1 || tr.ScaleY != 1 {
		t.Fatalf("expected default transform, got %+v", tr)
	}
}

func TestDecodeFixedRevoluteSettingsDisabled(t *testing.T) {
	settings, err := decodeFixedRevoluteSettings(map[string]any{
		"enabled":         false,
		"reference_angle": 90,
		"motor_speed":     1.5,
	})
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if settings.Enabled {
		t.Fatalf("explicit enabled: false was ignored")
	}
	if math.Abs(settings.ReferenceAngle-math.Pi/2) > 1e-12 || settings.MotorSpeed != 1.5 {
		t.Fatalf("unexpected conversion %+v", settings)
	}
}

func TestReloadPrefabUpdatesJoints(t *testing.T) {
	w := ecs.NewWorld()
	a, err := BuildEntity(w, "motor_wheel.yaml")
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	b, _ := BuildEntity(w, "motor_wheel.yaml")
	other, _ := BuildEntity(w, "pendulum.yaml")

	ja, _ := ecs.Get(w, a, component.FixedRevoluteJointComponent)
	ja.SetMotorSpeed(-9)
	ja.SetMotorEnabled(false)

	n, err := ReloadPrefab(w, "/some/checkout/prefabs/motor_wheel.yaml")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 entities reloaded, got %d", n)
	}
	for _, e := range []ecs.Entity{a, b} {
		j, _ := ecs.Get(w, e, component.FixedRevoluteJointComponent)
		if !j.MotorEnabled() || math.Abs(j.MotorSpeed()-3) > 1e-9 {
			t.Fatalf("entity %s: motor not restored (%v, %v)", e, j.MotorEnabled(), j.MotorSpeed())
		}
	}
	if ja2, _ := ecs.Get(w, a, component.FixedRevoluteJointComponent); ja2 != ja {
		t.Fatalf("reload should update the joint in place")
	}

	events := w.Events().Drain()
	if len(events) != 2 {
		t.Fatalf("expected 2 reload events, got %d", len(events))
	}
	for _, evt := range events {
		if evt.Data.(ecs.EntityEvent).Entity == other {
			t.Fatalf("unrelated prefab reloaded")
		}
	}
}

func TestReloadPrefabMissing(t *testing.T) {
	if _, err := ReloadPrefab(ecs.NewWorld(), "missing.yaml"); err == nil {
		t.Fatalf("expected error")
	}
}
