package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestForceThirdLaw(t *testing.T) {
	bodies := []Body[mgl64.Vec3]{
		NewBody(5.972e24, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{}),
		NewBody(7.348e22, mgl64.Vec3{384400000, 0, 0}, mgl64.Vec3{}),
		NewBody(3.348e22, mgl64.Vec3{-1.3e7, 84400000, 12.5}, mgl64.Vec3{}),
		NewBody(1e9, mgl64.Vec3{100, 0.1, -7}, mgl64.Vec3{}),
		NewBody(0.001, mgl64.Vec3{1e-3, 3e-3, 1e12}, mgl64.Vec3{}),
	}

	for i, a := range bodies {
		for j, b := range bodies {
			if i == j {
				continue
			}
			fab := Force(G, a, b)
			fba := Force(G, b, a)
			if fab != fba.Mul(-1) {
				t.Fatalf("Force(%v, %v) = %v is not the negative of %v", i, j, fab, fba)
			}
		}
	}
}

func TestForceDirection(t *testing.T) {
	a := NewBody(2, mgl64.Vec2{0, 0}, mgl64.Vec2{})
	b := NewBody(3, mgl64.Vec2{0, 2}, mgl64.Vec2{})

	f := Force(1, a, b)
	if f != (mgl64.Vec2{0, 1.5}) {
		t.Fatalf("Expected force (0, 1.5) towards b, got %v", f)
	}

	f = Force(G, a, b)
	if math.Abs(f[1]-G*6/4) > 1e-25 || f[0] != 0 {
		t.Fatalf("Bad force magnitude %v", f)
	}
}

func TestForceCoincident(t *testing.T) {
	a := NewBody(5.972e24, mgl64.Vec2{10, 10}, mgl64.Vec2{1, 0})
	b := NewBody(7.348e22, mgl64.Vec2{10, 10}, mgl64.Vec2{0, 1})

	if f := Force(G, a, b); f != (mgl64.Vec2{}) {
		t.Fatalf("Coincident bodies should have zero force, got %v", f)
	}
	if e := PotentialEnergy(G, a, b); e != 0 {
		t.Fatalf("Coincident bodies should have zero potential, got %v", e)
	}
}

func TestIntegrateOrder(t *testing.T) {
	b := NewBody(2, mgl64.Vec2{1, 1}, mgl64.Vec2{1, 0})

	acc := Integrate(&b, mgl64.Vec2{0, 4}, 0.5)
	if acc != (mgl64.Vec2{0, 2}) {
		t.Fatalf("Bad acceleration %v", acc)
	}
	if b.Velocity != (mgl64.Vec2{1, 1}) {
		t.Fatalf("Bad velocity %v", b.Velocity)
	}
	// position must use the updated velocity
	if b.Position != (mgl64.Vec2{1.5, 1.5}) {
		t.Fatalf("Bad position %v", b.Position)
	}
}
