package physics

import (
	"math"

	"github.com/colinrgodsey/orbitd/lib/vec"
)

// G is the gravitational constant in m^3 kg^-1 s^-2
const G = 6.67430e-11

// Body is a point mass. Units are SI (kg, m, m/s).
type Body[V vec.Vec[V]] struct {
	Name     string  `json:"name,omitempty"`
	Mass     float64 `json:"mass"`
	Position V       `json:"position"`
	Velocity V       `json:"velocity"`
}

// NewBody creates a new unnamed Body.
func NewBody[V vec.Vec[V]](mass float64, pos, vel V) Body[V] {
	return Body[V]{Mass: mass, Position: pos, Velocity: vel}
}

// Momentum of b (m*v)
func (b Body[V]) Momentum() V {
	return b.Velocity.Mul(b.Mass)
}

// KineticEnergy of b (m*v^2/2)
func (b Body[V]) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Velocity.Dot(b.Velocity)
}

func (b Body[V]) validate(i int) error {
	switch {
	case math.IsNaN(b.Mass) || math.IsInf(b.Mass, 0):
		return &InvalidBodyError{i, b.Mass, "mass is not finite"}
	case b.Mass <= 0:
		return &InvalidBodyError{i, b.Mass, "mass must be positive"}
	case !vec.IsFinite(b.Position):
		return &InvalidBodyError{i, b.Mass, "position is not finite"}
	case !vec.IsFinite(b.Velocity):
		return &InvalidBodyError{i, b.Mass, "velocity is not finite"}
	}
	return nil
}
