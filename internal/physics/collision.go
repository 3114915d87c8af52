package physics

import (
	"math"

	"github.com/san-kum/ballpit/internal/dynamo"
)

// Slack is added to every penetration depth when pushing a pair apart so
// the pair is not detected again on the very next tick.
const Slack = 1.0

// Collide resolves one pair as an equal-mass elastic collision. It reports
// whether the pair overlapped.
//
// Velocities are rotated into the frame of the collision normal, their
// normal components are swapped and the result is rotated back; tangential
// components are untouched. Both bodies are then moved apart along the line
// of centers by half of the overlap plus Slack each.
func Collide(a, b *dynamo.Body) bool {
	delta := a.Center().Sub(b.Center())
	dist := delta.Len()
	minDist := a.Radius + b.Radius
	if dist >= minDist {
		return false
	}

	// cos and sin of atan2(dy, dx). Coincident centers have no direction,
	// so they fall back to angle 0.
	cos, sin := 1.0, 0.0
	if dist > 0 {
		cos, sin = delta.X/dist, delta.Y/dist
	}

	an := a.Vel.X*cos + a.Vel.Y*sin
	at := a.Vel.Y*cos - a.Vel.X*sin
	bn := b.Vel.X*cos + b.Vel.Y*sin
	bt := b.Vel.Y*cos - b.Vel.X*sin

	an, bn = bn, an

	a.Vel = dynamo.Vec2{X: an*cos - at*sin, Y: at*cos + an*sin}
	b.Vel = dynamo.Vec2{X: bn*cos - bt*sin, Y: bt*cos + bn*sin}

	overlap := minDist - dist + Slack
	move := dynamo.Vec2{X: overlap * cos / 2, Y: overlap * sin / 2}
	a.Pos = a.Pos.Add(move)
	b.Pos = b.Pos.Sub(move)

	return true
}

// ResolveAll runs Collide once over every unordered pair and returns the
// number of contacts. Later pairs see positions already corrected by
// earlier ones; overlap left by crowded contacts is picked up next tick.
func ResolveAll(bodies []dynamo.Body) int {
	contacts := 0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if Collide(&bodies[i], &bodies[j]) {
				contacts++
			}
		}
	}
	return contacts
}

// Penetration returns how far two bodies overlap, or 0 when they don't.
func Penetration(a, b *dynamo.Body) float64 {
	depth := a.Radius + b.Radius - a.Center().Sub(b.Center()).Len()
	return math.Max(depth, 0)
}
