// Package dynamo provides the core data model for the bouncing-body simulation.
//
// The package defines the types every other package exchanges:
//
//   - [Body]: one circular particle (position, velocity, radius, visual id)
//   - [Viewport]: the bounded region bodies must stay in
//   - [BodyView]: read-only snapshot element handed to renderers
//   - [Config]: construction record (body count, radius range, viewport)
//   - [Metric] and [Observer]: hooks called after every completed step
//
// # Example
//
//	cfg := dynamo.DefaultConfig()
//	cfg.BodyCount = 20
//	s, err := sim.New(cfg)
//	s.Start()
//	s.Tick()
//	views := s.Snapshot()
//
// # Thread Safety
//
// Body values are plain data. Only the simulator that owns them mutates
// them; everything else receives copies.
package dynamo
