package physics

import (
	"testing"

	"github.com/jakecoffman/cp"
)

func TestWorldStepRecordsDt(t *testing.T) {
	w := NewWorld(DefaultConfig())
	if w.LastStep() != 0 {
		t.Fatalf("expected no step yet")
	}
	w.Step(0)
	w.Step(-1)
	if w.LastStep() != 0 {
		t.Fatalf("expected non-positive steps to be ignored")
	}
	w.Step(0.5)
	if w.LastStep() != 0.5 {
		t.Fatalf("expected 0.5, got %v", w.LastStep())
	}
}

func TestWorldBodies(t *testing.T) {
	w := NewWorld(DefaultConfig())

	box := w.NewBoxBody(2, 1, 1, cp.Vector{X: 1, Y: 2}, false)
	circle := w.NewCircleBody(1, 0.5, cp.Vector{}, true)
	if box == nil || circle == nil {
		t.Fatalf("expected bodies")
	}
	if !w.HasBody(box) || !w.HasBody(circle) {
		t.Fatalf("expected bodies tracked")
	}
	if got := box.Position(); got.X != 1 || got.Y != 2 {
		t.Fatalf("expected position (1,2), got %v", got)
	}

	if w.NewBoxBody(1, 0, 1, cp.Vector{}, false) != nil {
		t.Fatalf("expected zero-width box to be rejected")
	}
	if w.NewCircleBody(1, -1, cp.Vector{}, false) != nil {
		t.Fatalf("expected negative radius to be rejected")
	}

	w.RemoveBody(box)
	if w.HasBody(box) {
		t.Fatalf("expected body removed")
	}
	w.RemoveBody(box)
}

func TestWorldGravityMovesDynamicBodies(t *testing.T) {
	w := NewWorld(DefaultConfig())
	body := w.NewBoxBody(1, 0.1, 0.1, cp.Vector{}, false)
	static := w.NewBoxBody(1, 0.1, 0.1, cp.Vector{X: 5}, true)
	for i := 0; i < 30; i++ {
		w.Step(1.0 / 60.0)
	}
	if body.Position().Y <= 0 {
		t.Fatalf("expected dynamic body to fall, at %v", body.Position())
	}
	if static.Position().Y != 0 {
		t.Fatalf("expected static body to stay put, at %v", static.Position())
	}
}

func TestNilWorld(t *testing.T) {
	var w *World
	w.Step(1)
	w.RemoveBody(nil)
	if w.Space() != nil || w.StaticBody() != nil || w.LastStep() != 0 {
		t.Fatalf("expected nil world to be inert")
	}
}
