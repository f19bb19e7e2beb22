package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

type Ball struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Radius   float64
}

func NewBall(radius float64) *Ball {
	return &Ball{Radius: radius}
}

// Integrate advances the ball by dt seconds under a constant acceleration.
// Position uses the velocity at the start of the step plus the half-step
// gravity term, so the result is exact for constant gravity.
func (b *Ball) Integrate(gravity mgl64.Vec3, dt float64) {
	b.Position = b.Position.Add(b.Velocity.Add(gravity.Mul(0.5 * dt)).Mul(dt))
	b.Velocity = b.Velocity.Add(gravity.Mul(dt))
}

// Reset places the ball at the given serve state.
func (b *Ball) Reset(position, velocity mgl64.Vec3) {
	b.Position = position
	b.Velocity = velocity
}

func (b *Ball) Speed() float64 {
	return b.Velocity.Len()
}

// Finite reports whether every component of position and velocity is a
// real number.
func (b *Ball) Finite() bool {
	for i := 0; i < 3; i++ {
		if !finite(b.Position[i]) || !finite(b.Velocity[i]) {
			return false
		}
	}
	return true
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
