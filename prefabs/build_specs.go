package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// TransformComponentSpec rotation is in degrees.
type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type RigidBodyComponentSpec struct {
	Shape  string  `yaml:"shape"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Radius float64 `yaml:"radius"`
	Mass   float64 `yaml:"mass"`
	Static bool    `yaml:"static"`
}

// FixedRevoluteJointComponentSpec uses engine units: pixels, degrees and
// degrees per frame. Enabled defaults to true.
type FixedRevoluteJointComponentSpec struct {
	LocalAnchor    VectorSpec `yaml:"local_anchor"`
	WorldAnchor    VectorSpec `yaml:"world_anchor"`
	LimitEnabled   bool       `yaml:"limit_enabled"`
	LowerLimit     float64    `yaml:"lower_limit"`
	UpperLimit     float64    `yaml:"upper_limit"`
	ReferenceAngle float64    `yaml:"reference_angle"`
	MotorEnabled   bool       `yaml:"motor_enabled"`
	MaxMotorTorque float64    `yaml:"max_motor_torque"`
	MotorSpeed     float64    `yaml:"motor_speed"`
	Enabled        *bool      `yaml:"enabled"`
	CollideBodies  bool       `yaml:"collide_bodies"`
	BreakPoint     float64    `yaml:"break_point"`
}

type JointDriverComponentSpec struct {
	Script   string `yaml:"script"`
	Disabled bool   `yaml:"disabled"`
}
