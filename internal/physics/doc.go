// Package physics implements the per-tick rules of the bouncing-body world.
//
// Every function works on a plain []dynamo.Body slice and a viewport:
//
//   - [Reflect]: wall clamp with specular velocity reflection per axis
//   - [Collide] / [ResolveAll]: equal-mass elastic collisions with
//     positional de-penetration
//   - [Step]: one full tick (integrate, reflect, resolve, contain)
//
// Nothing in this package keeps state between calls; the caller owns the
// slice and decides when a step runs.
//
// # Energy
//
// Wall reflections and pair exchanges both preserve speed, so the total
// kinetic energy reported by [KineticEnergy] stays constant over a run:
//
//	before := physics.KineticEnergy(bodies)
//	physics.Step(bodies, vp)
//	drift := physics.KineticEnergy(bodies) - before // ~0
package physics
