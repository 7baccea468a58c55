package lab

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
	"github.com/milk9111/jointlab/ecs"
	"github.com/milk9111/jointlab/ecs/component"
	"github.com/milk9111/jointlab/prefabs"
	"github.com/spf13/viper"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestDefaultConfig(t *testing.T) {
	want := Config{
		Scene:        "lab.yaml",
		Frames:       600,
		LogLevel:     "info",
		GravityScale: 1,
		ReportEvery:  60,
		Zoom:         1,
	}
	if diff := cmp.Diff(want, DefaultConfig()); diff != "" {
		t.Fatalf("default config mismatch (-want +got):\n%s", diff)
	}
}

func TestConfigFromViperEnv(t *testing.T) {
	t.Setenv("JOINTLAB_FRAMES", "42")
	t.Setenv("JOINTLAB_LOG_LEVEL", "debug")

	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("JOINTLAB")
	v.AutomaticEnv()

	cfg, err := ConfigFromViper(v)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if cfg.Frames != 42 || cfg.Level() != log.DebugLevel {
		t.Fatalf("env not applied: %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no_scene", func(c *Config) { c.Scene = "" }},
		{"negative_frames", func(c *Config) { c.Frames = -1 }},
		{"negative_iterations", func(c *Config) { c.Iterations = -3 }},
		{"negative_report", func(c *Config) { c.ReportEvery = -1 }},
		{"bad_level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			c.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestLabBuildsAndSteps(t *testing.T) {
	l, err := New(DefaultConfig(), quietLogger())
	if err != nil {
		t.Fatalf("new lab: %v", err)
	}
	if l.Scene().Name != "lab" {
		t.Fatalf("unexpected scene %q", l.Scene().Name)
	}

	if err := l.Run(context.Background(), 10); err != nil {
		t.Fatalf("run: %v", err)
	}
	if l.Frame() != 10 {
		t.Fatalf("expected frame 10, got %d", l.Frame())
	}

	attached := 0
	for _, e := range l.World().Query(component.FixedRevoluteJointComponent.Kind()) {
		j, _ := ecs.Get(l.World(), e, component.FixedRevoluteJointComponent)
		if j.Attached() {
			attached++
		}
	}
	if attached != 4 {
		t.Fatalf("expected 4 attached joints, got %d", attached)
	}

	report := l.Report()
	for _, name := range []string{"pendulum", "motor_wheel", "limited_arm", "breakable"} {
		if !strings.Contains(report, name) {
			t.Fatalf("report missing %s:\n%s", name, report)
		}
	}
}

func TestLabRunStopsOnCancel(t *testing.T) {
	l, err := New(DefaultConfig(), quietLogger())
	if err != nil {
		t.Fatalf("new lab: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Run(ctx, 100); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if l.Frame() != 0 {
		t.Fatalf("no frame should run after cancel, ran %d", l.Frame())
	}
}

func TestLabGravityScale(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GravityScale = 0
	cfg.Iterations = 5
	l, err := New(cfg, quietLogger())
	if err != nil {
		t.Fatalf("new lab: %v", err)
	}
	space := l.PhysicsWorld().Space()
	if g := space.Gravity(); g.X != 0 || g.Y != 0 {
		t.Fatalf("expected zero gravity, got %v", g)
	}
	if space.Iterations != 5 {
		t.Fatalf("expected 5 iterations, got %d", space.Iterations)
	}
}

func TestLabMissingScene(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scene = "nowhere.yaml"
	if _, err := New(cfg, quietLogger()); err == nil {
		t.Fatalf("expected error for missing scene")
	}
}

func TestLabReload(t *testing.T) {
	l, err := New(DefaultConfig(), quietLogger())
	if err != nil {
		t.Fatalf("new lab: %v", err)
	}
	_ = l.Run(context.Background(), 5)

	if err := l.Reload(prefabs.Change{Path: filepath.Join("prefabs", "motor_wheel.yaml"), Kind: prefabs.ChangePrefab}); err != nil {
		t.Fatalf("prefab reload: %v", err)
	}
	if l.Frame() != 5 {
		t.Fatalf("prefab reload should keep the running scene")
	}

	if err := l.Reload(prefabs.Change{Path: "prefabs/scripts/oscillate.tengo", Kind: prefabs.ChangeScript}); err != nil {
		t.Fatalf("script reload: %v", err)
	}

	if err := l.Reload(prefabs.Change{Path: "prefabs/lab.yaml", Kind: prefabs.ChangePrefab}); err != nil {
		t.Fatalf("scene reload: %v", err)
	}
	if l.Frame() != 0 {
		t.Fatalf("scene reload should rebuild, frame=%d", l.Frame())
	}

	if err := l.Reload(prefabs.Change{Path: "x", Kind: prefabs.ChangeKind(9)}); err == nil {
		t.Fatalf("expected error for unknown change kind")
	}
}

func TestLabReloadFromDisk(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, prefabs.Dir), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	l, err := New(DefaultConfig(), quietLogger())
	if err != nil {
		t.Fatalf("new lab: %v", err)
	}

	edited := `name: pendulum
components:
  transform: { x: 300, y: 120 }
  rigid_body: { shape: circle, radius: 18, mass: 2 }
  fixed_revolute_joint:
    local_anchor: { x: -120, y: 0 }
    world_anchor: { x: 180, y: 120 }
    break_point: 123
`
	path := filepath.Join(prefabs.Dir, "pendulum.yaml")
	if err := os.WriteFile(path, []byte(edited), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := l.Reload(prefabs.Change{Path: path, Kind: prefabs.ChangePrefab}); err != nil {
		t.Fatalf("reload: %v", err)
	}

	for _, e := range l.World().Query(component.PrefabComponent.Kind()) {
		p, _ := ecs.Get(l.World(), e, component.PrefabComponent)
		if p.Name != "pendulum" {
			continue
		}
		j, _ := ecs.Get(l.World(), e, component.FixedRevoluteJointComponent)
		if j.BreakPoint() != 123 {
			t.Fatalf("expected break point from disk, got %v", j.BreakPoint())
		}
		return
	}
	t.Fatalf("pendulum not found")
}
