package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/sim"
)

// Config describes one headless run of a body set.
type Config struct {
	Name         string
	World        dynamo.Config
	Steps        int
	Metrics      []string
	RecordTrails bool
}

type Experiment struct {
	cfg       Config
	simulator *sim.Simulator
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup spawns the body set and attaches the named metrics. An empty
// metric list attaches the registry defaults.
func (e *Experiment) Setup(reg *Registry) error {
	s, err := sim.New(e.cfg.World)
	if err != nil {
		return err
	}

	if len(e.cfg.Metrics) == 0 {
		for _, m := range reg.DefaultMetrics() {
			s.AddMetric(m)
		}
	}
	for _, name := range e.cfg.Metrics {
		m, err := reg.GetMetric(name)
		if err != nil {
			return err
		}
		s.AddMetric(m)
	}

	e.simulator = s
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	return e.simulator.Run(ctx, sim.RunConfig{
		Steps:         e.cfg.Steps,
		RecordTrails:  e.cfg.RecordTrails,
		ValidateState: true,
	})
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
