package sim

import "github.com/san-kum/ballpit/internal/dynamo"

// RunConfig controls a headless run.
type RunConfig struct {
	Steps         int
	RecordTrails  bool
	ValidateState bool
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Steps:         600,
		ValidateState: true,
	}
}

type Result struct {
	Ticks       int
	Samples     []dynamo.Sample
	Metrics     map[string]float64
	Final       []dynamo.BodyView
	Trails      [][]dynamo.Vec2
	EnergyDrift float64
}
