package physics

import (
	"math"

	"github.com/san-kum/ballpit/internal/dynamo"
)

// KineticEnergy returns the total kinetic energy with unit mass per body.
func KineticEnergy(bodies []dynamo.Body) float64 {
	e := 0.0
	for i := range bodies {
		e += 0.5 * bodies[i].Vel.Dot(bodies[i].Vel)
	}
	return e
}

// Momentum returns the total momentum with unit mass per body.
func Momentum(bodies []dynamo.Body) dynamo.Vec2 {
	var p dynamo.Vec2
	for i := range bodies {
		p = p.Add(bodies[i].Vel)
	}
	return p
}

// MaxPenetration returns the deepest overlap between any two bodies.
func MaxPenetration(bodies []dynamo.Body) float64 {
	maxDepth := 0.0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			maxDepth = math.Max(maxDepth, Penetration(&bodies[i], &bodies[j]))
		}
	}
	return maxDepth
}
