package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/physics"
)

// Simulator owns a body set for its whole lifetime and advances it one step
// per refresh signal. A step always runs to completion under the mutex, and
// Snapshot takes the same mutex, so readers never see a half-applied step.
//
// Metrics and observers are called while the mutex is held; they must not
// call back into the Simulator.
type Simulator struct {
	mu        sync.Mutex
	bodies    []dynamo.Body
	viewport  dynamo.Viewport
	running   bool
	ticks     int
	last      physics.Stats
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

// New validates cfg and spawns cfg.BodyCount bodies from cfg.Seed.
func New(cfg dynamo.Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	return newSimulator(Spawn(cfg, rng), cfg.Viewport), nil
}

// NewWithBodies builds a simulator around an explicit scene. The slice is
// copied.
func NewWithBodies(bodies []dynamo.Body, vp dynamo.Viewport) (*Simulator, error) {
	if err := vp.Validate(); err != nil {
		return nil, err
	}
	owned := make([]dynamo.Body, len(bodies))
	for i, b := range bodies {
		if !(b.Radius > 0) || math.IsInf(b.Radius, 0) {
			return nil, fmt.Errorf("%w: body %d radius %g", dynamo.ErrInvalidRadius, i, b.Radius)
		}
		if !vp.Fits(b.Radius) {
			return nil, fmt.Errorf("%w: body %d diameter %g", dynamo.ErrBodyTooLarge, i, b.Diameter())
		}
		if !b.Pos.IsFinite() || !b.Vel.IsFinite() {
			return nil, fmt.Errorf("%w: body %d", dynamo.ErrInvalidState, i)
		}
		owned[i] = b
	}
	return newSimulator(owned, vp), nil
}

func newSimulator(bodies []dynamo.Body, vp dynamo.Viewport) *Simulator {
	return &Simulator{
		bodies:    bodies,
		viewport:  vp,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
}

// Spawn creates a fresh body set: radius uniform in the configured range,
// position fully inside the viewport, speed uniform in the configured range
// along a uniformly random direction.
func Spawn(cfg dynamo.Config, rng *rand.Rand) []dynamo.Body {
	bodies := make([]dynamo.Body, cfg.BodyCount)
	for i := range bodies {
		r := cfg.RadiusMin + rng.Float64()*(cfg.RadiusMax-cfg.RadiusMin)
		d := 2 * r
		speed := cfg.SpeedMin + rng.Float64()*(cfg.SpeedMax-cfg.SpeedMin)
		angle := rng.Float64() * 2 * math.Pi

		bodies[i] = dynamo.Body{
			Pos: dynamo.Vec2{
				X: rng.Float64() * (cfg.Viewport.Width - d),
				Y: rng.Float64() * (cfg.Viewport.Height - d),
			},
			Vel:    dynamo.Vec2{X: speed * math.Cos(angle), Y: speed * math.Sin(angle)},
			Radius: r,
			Visual: dynamo.VisualID(rng.Intn(cfg.Visuals)),
		}
	}
	return bodies
}

func (s *Simulator) AddMetric(m dynamo.Metric) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = append(s.metrics, m)
}

func (s *Simulator) AddObserver(o dynamo.Observer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Start begins accepting refresh signals. Calling it again is a no-op.
func (s *Simulator) Start() {
	s.mu.Lock()
	s.running = true
	s.mu.Unlock()
}

// Stop cancels stepping. It waits for an in-flight step to finish; once it
// returns, no further Tick mutates any body.
func (s *Simulator) Stop() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

func (s *Simulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Tick handles one refresh signal. It runs exactly one step when the
// simulator is running and reports whether it did.
func (s *Simulator) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return false
	}

	s.last = physics.Step(s.bodies, s.viewport)
	s.ticks++

	if len(s.metrics) == 0 && len(s.observers) == 0 {
		return true
	}
	f := s.frameLocked()
	for _, m := range s.metrics {
		m.Observe(f)
	}
	for _, o := range s.observers {
		o.OnStep(f)
	}
	return true
}

// Drive calls Tick once per value received on refresh until ctx is done or
// refresh is closed. A time.Ticker channel or a UI frame signal both work.
func (s *Simulator) Drive(ctx context.Context, refresh <-chan time.Time) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-refresh:
			if !ok {
				return nil
			}
			s.Tick()
		}
	}
}

// Snapshot returns position, radius and visual id of every body, in the
// same order on every call.
func (s *Simulator) Snapshot() []dynamo.BodyView {
	s.mu.Lock()
	defer s.mu.Unlock()

	views := make([]dynamo.BodyView, len(s.bodies))
	for i := range s.bodies {
		views[i] = s.bodies[i].View()
	}
	return views
}

// Frame returns a copy of the full state after the last completed step.
func (s *Simulator) Frame() dynamo.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameLocked()
}

func (s *Simulator) frameLocked() dynamo.Frame {
	bodies := make([]dynamo.Body, len(s.bodies))
	copy(bodies, s.bodies)
	return dynamo.Frame{
		Tick:     s.ticks,
		Viewport: s.viewport,
		Bodies:   bodies,
		WallHits: s.last.WallHits,
		Contacts: s.last.Contacts,
	}
}

func (s *Simulator) Ticks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

func (s *Simulator) Viewport() dynamo.Viewport { return s.viewport }

// Run drives the simulator headlessly for cfg.Steps ticks, sampling after
// every tick. It stops early, returning what it has, when ctx is canceled
// or the simulator is stopped from elsewhere.
func (s *Simulator) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	s.mu.Lock()
	for _, m := range s.metrics {
		m.Reset()
	}
	s.mu.Unlock()

	result := &Result{
		Samples: make([]dynamo.Sample, 0, cfg.Steps),
		Metrics: make(map[string]float64),
	}

	initial := s.Frame()
	initialEnergy := physics.KineticEnergy(initial.Bodies)
	if cfg.RecordTrails {
		result.Trails = make([][]dynamo.Vec2, len(initial.Bodies))
		for i := range initial.Bodies {
			result.Trails[i] = append(make([]dynamo.Vec2, 0, cfg.Steps+1), initial.Bodies[i].Center())
		}
	}

	s.Start()
	defer s.Stop()

	finalEnergy := initialEnergy
	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result, initialEnergy, finalEnergy)
			return result, ctx.Err()
		default:
		}

		if !s.Tick() {
			break
		}
		f := s.Frame()
		result.Ticks++

		if cfg.ValidateState {
			for j := range f.Bodies {
				if !f.Bodies[j].Pos.IsFinite() || !f.Bodies[j].Vel.IsFinite() {
					s.finish(result, initialEnergy, finalEnergy)
					return result, &dynamo.SimulationError{
						Tick:    f.Tick,
						Wrapped: fmt.Errorf("%w: body %d", dynamo.ErrInvalidState, j),
					}
				}
			}
		}

		finalEnergy = physics.KineticEnergy(f.Bodies)
		result.Samples = append(result.Samples, dynamo.Sample{
			Tick:          f.Tick,
			KineticEnergy: finalEnergy,
			Momentum:      physics.Momentum(f.Bodies).Len(),
			Contacts:      f.Contacts,
			WallHits:      f.WallHits,
			MaxOverlap:    physics.MaxPenetration(f.Bodies),
		})

		if cfg.RecordTrails {
			for j := range f.Bodies {
				result.Trails[j] = append(result.Trails[j], f.Bodies[j].Center())
			}
		}
	}

	s.finish(result, initialEnergy, finalEnergy)
	return result, nil
}

func (s *Simulator) finish(result *Result, initialEnergy, finalEnergy float64) {
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}
	result.Final = s.Snapshot()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg RunConfig) error {
	if cfg.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", cfg.Steps)
	}
	return nil
}
