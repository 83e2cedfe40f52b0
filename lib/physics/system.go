package physics

import (
	"encoding/binary"
	"math"

	"github.com/colinrgodsey/orbitd/lib/vec"
	"github.com/zeebo/xxh3"
)

// System is a fixed, ordered set of bodies under mutual gravity.
// A System is not safe for concurrent use.
type System[V vec.Vec[V]] struct {
	g      float64
	bodies []Body[V]

	// scratch space, reused across steps
	forces []V
	next   []Body[V]

	steps int
}

// NewSystem validates and copies bodies into a new System.
func NewSystem[V vec.Vec[V]](g float64, bodies []Body[V]) (*System[V], error) {
	if len(bodies) == 0 {
		return nil, ErrEmptySystem
	}
	for i, b := range bodies {
		if err := b.validate(i); err != nil {
			return nil, err
		}
	}
	s := &System[V]{
		g:      g,
		bodies: append([]Body[V](nil), bodies...),
		forces: make([]V, len(bodies)),
		next:   make([]Body[V], len(bodies)),
	}
	return s, nil
}

// Clone returns a deep copy of s
func (s *System[V]) Clone() *System[V] {
	return &System[V]{
		g:      s.g,
		bodies: s.Bodies(),
		forces: make([]V, len(s.bodies)),
		next:   make([]Body[V], len(s.bodies)),
		steps:  s.steps,
	}
}

// Len returns the number of bodies
func (s *System[V]) Len() int {
	return len(s.bodies)
}

// G returns the gravitational constant used by s
func (s *System[V]) G() float64 {
	return s.g
}

// Steps returns the number of committed steps
func (s *System[V]) Steps() int {
	return s.steps
}

// Body returns a copy of body i
func (s *System[V]) Body(i int) Body[V] {
	return s.bodies[i]
}

// Bodies returns a copy of all bodies
func (s *System[V]) Bodies() []Body[V] {
	return append([]Body[V](nil), s.bodies...)
}

/*
Step advances every body by dt. All pair forces are summed from the state
at the start of the step before any body is moved. The new state is built
in scratch space and only committed once every body is known to be finite,
so a failed step leaves the system untouched.
*/
func (s *System[V]) Step(dt float64) error {
	if len(s.bodies) == 0 {
		return ErrEmptySystem
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return ErrInvalidStep
	}

	var zero V
	for i := range s.forces {
		s.forces[i] = zero
	}
	for i := range s.bodies {
		for j := range s.bodies {
			if i == j {
				continue
			}
			s.forces[i] = s.forces[i].Add(Force(s.g, s.bodies[i], s.bodies[j]))
		}
	}

	copy(s.next, s.bodies)
	for i := range s.next {
		Integrate(&s.next[i], s.forces[i], dt)
		if !vec.IsFinite(s.next[i].Position) || !vec.IsFinite(s.next[i].Velocity) {
			return &StepError{s.steps + 1, ErrDiverged}
		}
	}

	s.bodies, s.next = s.next, s.bodies
	s.steps++
	return nil
}

// Centroid returns the mass weighted average position of all bodies.
// Always computed from the current positions.
func (s *System[V]) Centroid() (c V, err error) {
	if len(s.bodies) == 0 {
		err = ErrEmptySystem
		return
	}
	for _, b := range s.bodies {
		c = c.Add(b.Position.Mul(b.Mass))
	}
	c = vec.Div(c, s.Mass())
	return
}

// Momentum returns the total linear momentum.
func (s *System[V]) Momentum() (p V) {
	for _, b := range s.bodies {
		p = p.Add(b.Momentum())
	}
	return
}

// Mass returns the total mass.
func (s *System[V]) Mass() (m float64) {
	for _, b := range s.bodies {
		m += b.Mass
	}
	return
}

func (s *System[V]) KineticEnergy() (e float64) {
	for _, b := range s.bodies {
		e += b.KineticEnergy()
	}
	return
}

func (s *System[V]) PotentialEnergy() (e float64) {
	for i := range s.bodies {
		for j := i + 1; j < len(s.bodies); j++ {
			e += PotentialEnergy(s.g, s.bodies[i], s.bodies[j])
		}
	}
	return
}

// Energy returns the total mechanical energy.
func (s *System[V]) Energy() float64 {
	return s.KineticEnergy() + s.PotentialEnergy()
}

// Fingerprint hashes the exact bit patterns of every position and
// velocity. Two systems with equal fingerprints are, for all practical
// purposes, in bit-identical states.
func (s *System[V]) Fingerprint() uint64 {
	buf := make([]byte, 0, len(s.bodies)*2*vec.Dims[V]()*8)
	for _, b := range s.bodies {
		for _, v := range [...]V{b.Position, b.Velocity} {
			for _, c := range vec.Components(v) {
				buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(c))
			}
		}
	}
	return xxh3.Hash(buf)
}
