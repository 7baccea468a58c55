package system

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/jointlab/ecs"
	"github.com/milk9111/jointlab/ecs/component"
	"github.com/milk9111/jointlab/joint"
	"github.com/milk9111/jointlab/prefabs"
)

// A driver script defines update(joint, state). It runs once per frame with a
// map of joint functions and a map that persists between frames.
const jointDriverDispatchScript = `
update(__joint, __state)
`

type jointScript struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
	err      error
}

// JointDriverSystem runs joint driver scripts against the entity's joint.
type JointDriverSystem struct {
	scripts map[ecs.Entity]*jointScript
	load    func(path string) ([]byte, error)
	frame   int
	logger  *log.Logger
}

func NewJointDriverSystem(logger *log.Logger) *JointDriverSystem {
	if logger == nil {
		logger = log.Default()
	}
	return &JointDriverSystem{
		scripts: make(map[ecs.Entity]*jointScript),
		load:    prefabs.LoadScript,
		logger:  logger,
	}
}

// SetLoader replaces the script source. Cached scripts are dropped.
func (ds *JointDriverSystem) SetLoader(load func(path string) ([]byte, error)) {
	if ds == nil || load == nil {
		return
	}
	ds.load = load
	clear(ds.scripts)
}

// Invalidate drops every cached script loaded from path so the next frame
// compiles it again.
func (ds *JointDriverSystem) Invalidate(path string) {
	if ds == nil {
		return
	}
	name := scriptName(path)
	for e, rt := range ds.scripts {
		if scriptName(rt.path) == name {
			delete(ds.scripts, e)
		}
	}
}

func (ds *JointDriverSystem) Update(w *ecs.World) {
	if ds == nil || w == nil {
		return
	}
	ds.frame++

	for e := range ds.scripts {
		if !ecs.Has(w, e, component.JointDriverComponent) {
			delete(ds.scripts, e)
		}
	}

	for _, e := range w.Query(component.JointDriverComponent.Kind(), component.FixedRevoluteJointComponent.Kind()) {
		driver, _ := ecs.Get(w, e, component.JointDriverComponent)
		j, _ := ecs.Get(w, e, component.FixedRevoluteJointComponent)
		if driver == nil || driver.Disabled || j == nil {
			continue
		}

		rt := ds.runtime(w, e, driver.ScriptPath)
		if rt.err != nil {
			continue
		}
		if err := rt.run(buildJointScriptObject(j, ds.frame)); err != nil {
			ds.fail(w, e, rt, err)
		}
	}
}

// runtime returns the cached script for e, compiling it on first use. A script
// that failed stays failed until it is invalidated.
func (ds *JointDriverSystem) runtime(w *ecs.World, e ecs.Entity, path string) *jointScript {
	if rt, ok := ds.scripts[e]; ok && rt.path == path {
		return rt
	}
	rt := &jointScript{path: path, state: &tengo.Map{Value: map[string]tengo.Object{}}}
	ds.scripts[e] = rt

	compiled, err := compileJointScript(ds.load, path)
	if err != nil {
		ds.fail(w, e, rt, fmt.Errorf("compile: %w", err))
		return rt
	}
	rt.compiled = compiled
	return rt
}

func (ds *JointDriverSystem) fail(w *ecs.World, e ecs.Entity, rt *jointScript, err error) {
	rt.err = err
	w.Events().Push(ecs.Event{Type: ecs.EventScriptFailed, Data: ecs.EntityEvent{Entity: e}})
	ds.logger.Error("joint driver failed", "entity", e, "script", rt.path, "err", err)
}

func compileJointScript(load func(string) ([]byte, error), path string) (*tengo.Compiled, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty script path")
	}
	src, err := load(path)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + jointDriverDispatchScript))
	_ = script.Add("__joint", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	return script.Compile()
}

func (rt *jointScript) run(jointObj *tengo.ImmutableMap) error {
	if err := rt.compiled.Set("__joint", jointObj); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildJointScriptObject(j *joint.FixedRevolute, frame int) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	getter := func(name string, get func() float64) {
		values[name] = &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			return &tengo.Float{Value: get()}, nil
		}}
	}
	getter("angle", j.JointAngle)
	getter("speed", j.JointSpeed)
	getter("torque", j.MotorTorque)
	getter("reaction", j.ReactionForce)
	getter("motor_speed", j.MotorSpeed)
	getter("lower_limit", j.LowerLimit)
	getter("upper_limit", j.UpperLimit)

	values["frame"] = &tengo.UserFunction{Name: "frame", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(frame)}, nil
	}}

	values["broken"] = &tengo.UserFunction{Name: "broken", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return boolObject(j.Broken()), nil
	}}

	setFloat := func(name string, set func(float64)) {
		values[name] = &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 1 {
				return nil, tengo.ErrWrongNumArguments
			}
			v, ok := tengo.ToFloat64(args[0])
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "first", Expected: "float", Found: args[0].TypeName()}
			}
			set(v)
			return tengo.UndefinedValue, nil
		}}
	}
	setFloat("set_motor_speed", j.SetMotorSpeed)
	setFloat("set_max_motor_torque", j.SetMaxMotorTorque)
	setFloat("set_reference_angle", j.SetReferenceAngle)

	setBool := func(name string, set func(bool)) {
		values[name] = &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 1 {
				return nil, tengo.ErrWrongNumArguments
			}
			set(!args[0].IsFalsy())
			return tengo.UndefinedValue, nil
		}}
	}
	setBool("set_motor_enabled", j.SetMotorEnabled)
	setBool("set_limit_enabled", j.SetLimitEnabled)
	setBool("set_enabled", j.SetEnabled)

	values["set_limits"] = &tengo.UserFunction{Name: "set_limits", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 2 {
			return nil, tengo.ErrWrongNumArguments
		}
		lower, ok := tengo.ToFloat64(args[0])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "first", Expected: "float", Found: args[0].TypeName()}
		}
		upper, ok := tengo.ToFloat64(args[1])
		if !ok {
			return nil, tengo.ErrInvalidArgumentType{Name: "second", Expected: "float", Found: args[1].TypeName()}
		}
		j.SetLimits(lower, upper)
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func scriptName(path string) string {
	s := strings.TrimPrefix(strings.ReplaceAll(path, "\\", "/"), "prefabs/")
	return strings.TrimPrefix(s, "scripts/")
}
