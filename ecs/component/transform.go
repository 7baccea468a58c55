package component

import "github.com/jakecoffman/cp"

// Transform is an entity's placement in engine units. Rotation is in radians.
type Transform struct {
	X        float64
	Y        float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
}

// Scale returns the transform scale, treating unset axes as 1.
func (t *Transform) Scale() cp.Vector {
	if t == nil {
		return cp.Vector{X: 1, Y: 1}
	}
	s := cp.Vector{X: t.ScaleX, Y: t.ScaleY}
	if s.X == 0 {
		s.X = 1
	}
	if s.Y == 0 {
		s.Y = 1
	}
	return s
}

var TransformComponent = NewComponent[*Transform]("transform")
