package physics

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
)

const testDt = 1.0 / 60.0

func stepN(w *World, n int) {
	for i := 0; i < n; i++ {
		w.Step(testDt)
	}
}

func newPendulum(t *testing.T, cfg Config) (*World, *cp.Body, *FixedRevoluteJoint) {
	t.Helper()
	w := NewWorld(cfg)
	body := w.NewBoxBody(1, 0.2, 0.2, cp.Vector{X: 0, Y: 1}, false)
	if body == nil {
		t.Fatalf("expected body")
	}
	j := CreateFixedRevoluteJoint(w, body, cp.Vector{}, cp.Vector{})
	if j == nil {
		t.Fatalf("expected joint")
	}
	j.SetLocalAnchorA(cp.Vector{X: 0, Y: -1})
	j.SetWorldAnchorB(cp.Vector{X: 0, Y: 0})
	return w, body, j
}

func TestCreateFixedRevoluteJointRequiresBody(t *testing.T) {
	w := NewWorld(DefaultConfig())
	if j := CreateFixedRevoluteJoint(w, nil, cp.Vector{}, cp.Vector{}); j != nil {
		t.Fatalf("expected nil joint without body")
	}
	body := w.NewCircleBody(1, 0.1, cp.Vector{}, false)
	if j := CreateFixedRevoluteJoint(nil, body, cp.Vector{}, cp.Vector{}); j != nil {
		t.Fatalf("expected nil joint without world")
	}
}

func TestFixedRevoluteJointPinsAnchor(t *testing.T) {
	w, body, _ := newPendulum(t, DefaultConfig())
	body.SetVelocity(2, 0)

	stepN(w, 180)

	anchor := body.LocalToWorld(cp.Vector{X: 0, Y: -1})
	if d := anchor.Length(); d > 0.02 {
		t.Fatalf("anchor drifted %v from world anchor", d)
	}
	if math.Abs(body.Position().Sub(cp.Vector{}).Length()-1) > 0.02 {
		t.Fatalf("expected body to stay 1m from the pivot, at %v", body.Position())
	}
}

func TestFixedRevoluteJointLimits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gravity = cp.Vector{}
	w, body, j := newPendulum(t, cfg)
	j.SetLowerLimit(-0.1)
	j.SetUpperLimit(0.1)
	j.SetLimitEnabled(true)

	body.SetAngularVelocity(3)
	stepN(w, 120)

	if a := j.JointAngle(); a > 0.13 || a < -0.13 {
		t.Fatalf("expected joint angle within limits, got %v", a)
	}
}

func TestFixedRevoluteJointReferenceAngleShiftsLimits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gravity = cp.Vector{}
	w, body, j := newPendulum(t, cfg)
	j.SetReferenceAngle(0.5)
	j.SetLowerLimit(0)
	j.SetUpperLimit(0)
	j.SetLimitEnabled(true)

	stepN(w, 240)

	if math.Abs(body.Angle()-0.5) > 0.03 {
		t.Fatalf("expected body angle near reference 0.5, got %v", body.Angle())
	}
	if math.Abs(j.JointAngle()) > 0.03 {
		t.Fatalf("expected joint angle near 0, got %v", j.JointAngle())
	}
}

func TestFixedRevoluteJointMotor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gravity = cp.Vector{}
	w := NewWorld(cfg)
	body := w.NewCircleBody(1, 0.5, cp.Vector{X: 2, Y: 2}, false)
	j := CreateFixedRevoluteJoint(w, body, cp.Vector{}, cp.Vector{X: 2, Y: 2})

	j.SetMaxMotorTorque(1000)
	j.SetMotorSpeed(2)
	j.SetMotorEnabled(true)

	stepN(w, 60)

	if math.Abs(j.JointSpeed()-2) > 0.05 {
		t.Fatalf("expected joint speed near 2, got %v", j.JointSpeed())
	}

	j.SetMotorEnabled(false)
	if j.MotorTorque() != 0 {
		t.Fatalf("expected no motor torque with the motor disabled")
	}
}

func TestFixedRevoluteJointMotorTorqueBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Gravity = cp.Vector{}
	w := NewWorld(cfg)
	body := w.NewCircleBody(1, 0.5, cp.Vector{}, false)
	j := CreateFixedRevoluteJoint(w, body, cp.Vector{}, cp.Vector{})
	j.SetMaxMotorTorque(0.5)
	j.SetMotorSpeed(50)
	j.SetMotorEnabled(true)

	stepN(w, 10)

	if got := j.MotorTorque(); got <= 0 || got > 0.5+1e-9 {
		t.Fatalf("expected motor torque in (0, 0.5], got %v", got)
	}
}

func TestFixedRevoluteJointNegativeTorqueClamped(t *testing.T) {
	w := NewWorld(DefaultConfig())
	body := w.NewCircleBody(1, 0.5, cp.Vector{}, false)
	j := CreateFixedRevoluteJoint(w, body, cp.Vector{}, cp.Vector{})
	j.SetMaxMotorTorque(-3)
	if got := j.MaxMotorTorque(); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestFixedRevoluteJointDisable(t *testing.T) {
	w, body, j := newPendulum(t, DefaultConfig())
	j.SetEnabled(false)

	stepN(w, 60)

	if body.Position().Y < 4 {
		t.Fatalf("expected disabled joint to let the body fall, at %v", body.Position())
	}
	if j.ReactionForce() != 0 {
		t.Fatalf("expected no reaction force while disabled")
	}
}

func TestFixedRevoluteJointDestroy(t *testing.T) {
	cases := []struct {
		name    string
		destroy func(w *World, body *cp.Body, j *FixedRevoluteJoint)
	}{
		{"destroy", func(w *World, body *cp.Body, j *FixedRevoluteJoint) { j.Destroy() }},
		{"remove_body", func(w *World, body *cp.Body, j *FixedRevoluteJoint) { w.RemoveBody(body) }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, body, j := newPendulum(t, DefaultConfig())
			c.destroy(w, body, j)
			if j.Valid() {
				t.Fatalf("expected joint to be invalid")
			}
			// setters on a dead handle are no-ops
			j.SetMotorEnabled(true)
			j.SetLimitEnabled(true)
			j.Destroy()
			stepN(w, 2)
		})
	}
}

func TestNilJointIsInert(t *testing.T) {
	var j *FixedRevoluteJoint
	j.SetMotorSpeed(1)
	j.Destroy()
	if j.Valid() || j.JointAngle() != 0 || j.JointSpeed() != 0 || j.MotorTorque() != 0 {
		t.Fatalf("expected nil joint to read as zero")
	}
}
