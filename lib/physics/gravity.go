package physics

import "github.com/colinrgodsey/orbitd/lib/vec"

// Force returns the gravitational force exerted on a by b, pointing
// from a towards b. Coincident bodies exert no force on each other.
//
// The mass product is formed before scaling by g so that
// Force(g, a, b) is exactly -Force(g, b, a).
func Force[V vec.Vec[V]](g float64, a, b Body[V]) V {
	d := b.Position.Sub(a.Position)
	r := d.Len()
	if r == 0 {
		var zero V
		return zero
	}
	mag := g * (a.Mass * b.Mass) / (r * r)
	return vec.Div(d, r).Mul(mag)
}

// Integrate advances b by dt under force using semi-implicit Euler:
// velocity first, then position from the updated velocity.
// Returns the acceleration that was applied.
func Integrate[V vec.Vec[V]](b *Body[V], force V, dt float64) (acc V) {
	acc = force.Mul(1.0 / b.Mass)
	b.Velocity = b.Velocity.Add(acc.Mul(dt))
	b.Position = b.Position.Add(b.Velocity.Mul(dt))
	return
}

// PotentialEnergy of the pair a, b. Zero for coincident bodies.
func PotentialEnergy[V vec.Vec[V]](g float64, a, b Body[V]) float64 {
	r := b.Position.Sub(a.Position).Len()
	if r == 0 {
		return 0
	}
	return -g * (a.Mass * b.Mass) / r
}
