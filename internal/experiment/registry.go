package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/metrics"
)

// DefaultMetricNames are attached when an experiment names none.
var DefaultMetricNames = []string{"energy", "energy_drift", "containment", "overlap", "contacts", "wall_hits"}

type Registry struct {
	metrics map[string]func() dynamo.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func() dynamo.Metric),
	}

	r.metrics["energy"] = func() dynamo.Metric { return metrics.NewEnergy() }
	r.metrics["energy_drift"] = func() dynamo.Metric { return metrics.NewEnergyDrift() }
	r.metrics["containment"] = func() dynamo.Metric { return metrics.NewContainment() }
	r.metrics["overlap"] = func() dynamo.Metric { return metrics.NewOverlap() }
	r.metrics["contacts"] = func() dynamo.Metric { return metrics.NewContacts() }
	r.metrics["wall_hits"] = func() dynamo.Metric { return metrics.NewWallHits() }

	return r
}

func (r *Registry) GetMetric(name string) (dynamo.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns a fresh instance of every default metric. Each call
// allocates new metrics, so results can be handed to separate simulators.
func (r *Registry) DefaultMetrics() []dynamo.Metric {
	out := make([]dynamo.Metric, 0, len(DefaultMetricNames))
	for _, name := range DefaultMetricNames {
		out = append(out, r.metrics[name]())
	}
	return out
}
