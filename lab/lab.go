// Package lab runs a joint test scene: it builds the scene's prefabs, steps
// the systems once per frame and applies prefab and script edits while the
// scene runs.
package lab

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/jointlab/ecs"
	"github.com/milk9111/jointlab/ecs/entity"
	"github.com/milk9111/jointlab/ecs/system"
	"github.com/milk9111/jointlab/physics"
	"github.com/milk9111/jointlab/prefabs"
)

type Lab struct {
	cfg    Config
	logger *log.Logger

	scene     prefabs.SceneSpec
	world     *ecs.World
	physics   *system.PhysicsSystem
	joints    *system.JointSystem
	drivers   *system.JointDriverSystem
	scheduler *ecs.Scheduler
	frame     int
}

func New(cfg Config, logger *log.Logger) (*Lab, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	l := &Lab{cfg: cfg, logger: logger}
	if err := l.Reset(); err != nil {
		return nil, err
	}
	return l, nil
}

// Reset reloads the scene file and rebuilds the simulation from scratch.
func (l *Lab) Reset() error {
	scene, err := prefabs.LoadSceneSpec(l.cfg.Scene)
	if err != nil {
		return err
	}

	world := ecs.NewWorld()
	phys := physics.NewWorld(l.physicsConfig(scene))
	ps := system.NewPhysicsSystem(phys, l.logger.WithPrefix("physics"))
	js := system.NewJointSystem(phys, l.logger.WithPrefix("joint"))
	ds := system.NewJointDriverSystem(l.logger.WithPrefix("driver"))

	ents, err := entity.BuildScene(world, scene)
	if err != nil {
		return err
	}

	l.scene = scene
	l.world = world
	l.physics = ps
	l.joints = js
	l.drivers = ds
	l.scheduler = ecs.NewScheduler(ds, ps, js)
	l.frame = 0
	l.logger.Info("scene built", "scene", scene.Name, "entities", len(ents))
	return nil
}

func (l *Lab) physicsConfig(scene prefabs.SceneSpec) physics.Config {
	cfg := physics.DefaultConfig()
	cfg.Gravity = cp.Vector{X: scene.Gravity.X, Y: scene.Gravity.Y}.Mult(l.cfg.GravityScale)
	if scene.Iterations > 0 {
		cfg.Iterations = scene.Iterations
	}
	if l.cfg.Iterations > 0 {
		cfg.Iterations = l.cfg.Iterations
	}
	return cfg
}

// Step advances the scene one frame and logs what happened.
func (l *Lab) Step() {
	l.scheduler.Update(l.world)
	l.frame++
	for _, evt := range l.world.Events().Drain() {
		l.logEvent(evt)
	}
}

// Run steps frames frames, or until ctx is done. With ReportEvery set the
// joint read-backs are logged at that interval.
func (l *Lab) Run(ctx context.Context, frames int) error {
	for i := 0; i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		l.Step()
		if l.cfg.ReportEvery > 0 && l.frame%l.cfg.ReportEvery == 0 {
			l.logger.Info(fmt.Sprintf("frame %d\n%s", l.frame, l.Report()))
		}
	}
	return nil
}

// Reload applies a watched file change. Script edits recompile on the next
// frame, prefab edits update matching entities in place and scene edits
// rebuild everything.
func (l *Lab) Reload(change prefabs.Change) error {
	name := prefabs.Name(change.Path)
	switch change.Kind {
	case prefabs.ChangeScript:
		l.drivers.Invalidate(name)
		l.logger.Info("script reloaded", "script", name)
		return nil
	case prefabs.ChangePrefab:
		if name == prefabs.Name(l.cfg.Scene) {
			return l.Reset()
		}
		n, err := entity.ReloadPrefab(l.world, name)
		if err != nil {
			return err
		}
		for _, evt := range l.world.Events().Drain() {
			l.logEvent(evt)
		}
		l.logger.Info("prefab reloaded", "prefab", name, "entities", n)
		return nil
	}
	return fmt.Errorf("lab: unknown change kind %d", change.Kind)
}

func (l *Lab) logEvent(evt ecs.Event) {
	data, _ := evt.Data.(ecs.EntityEvent)
	switch evt.Type {
	case ecs.EventJointBroken:
		l.logger.Warn("joint broke", "frame", l.frame, "entity", data.Entity, "force", data.Value)
	case ecs.EventScriptFailed:
		l.logger.Warn("driver script stopped", "frame", l.frame, "entity", data.Entity)
	default:
		l.logger.Debug(evt.Type, "frame", l.frame, "entity", data.Entity)
	}
}

// Report formats the joint read-backs.
func (l *Lab) Report() string {
	return system.JointReport(l.world)
}

func (l *Lab) Config() Config {
	return l.cfg
}

func (l *Lab) Scene() prefabs.SceneSpec {
	return l.scene
}

func (l *Lab) World() *ecs.World {
	return l.world
}

func (l *Lab) Frame() int {
	return l.frame
}

func (l *Lab) PhysicsWorld() *physics.World {
	return l.physics.World()
}
