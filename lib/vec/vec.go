package vec

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrDimension is returned when a slice can't be converted to
// the requested vector type.
var ErrDimension = errors.New("vec: dimension mismatch")

// Vec is the set of vector types the engine can be instantiated with.
type Vec[V any] interface {
	mgl64.Vec2 | mgl64.Vec3

	Add(V) V
	Sub(V) V
	Mul(float64) V
	Dot(V) float64
	Len() float64
}

// Dims returns the dimensionality of V.
func Dims[V Vec[V]]() int {
	var v V
	switch any(v).(type) {
	case mgl64.Vec2:
		return 2
	default:
		return 3
	}
}

// Div scales v by the multiplicative inverse of s
func Div[V Vec[V]](v V, s float64) V {
	return v.Mul(1.0 / s)
}

// Components returns the values of v as a new slice.
func Components[V Vec[V]](v V) []float64 {
	switch v := any(v).(type) {
	case mgl64.Vec2:
		return []float64{v[0], v[1]}
	case mgl64.Vec3:
		return []float64{v[0], v[1], v[2]}
	}
	return nil
}

// FromSlice creates a V from a slice with exactly Dims[V]() values.
func FromSlice[V Vec[V]](vs []float64) (v V, err error) {
	if len(vs) != Dims[V]() {
		err = fmt.Errorf("%w: got %v values, need %v", ErrDimension, len(vs), Dims[V]())
		return
	}
	switch p := any(&v).(type) {
	case *mgl64.Vec2:
		*p = mgl64.Vec2{vs[0], vs[1]}
	case *mgl64.Vec3:
		*p = mgl64.Vec3{vs[0], vs[1], vs[2]}
	}
	return
}

// XY projects v onto the x/y plane.
func XY[V Vec[V]](v V) (x, y float64) {
	cs := Components(v)
	return cs[0], cs[1]
}

// IsFinite returns false if any dimension of v is NaN or Inf.
func IsFinite[V Vec[V]](v V) bool {
	for _, c := range Components(v) {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}
