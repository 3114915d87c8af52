package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/ballpit/internal/dynamo"
)

// Ensemble runs independent simulators of the same configuration with
// consecutive seeds. Every run owns its own body set.
type Ensemble struct {
	cfg       dynamo.Config
	numRuns   int
	seedStart int64
	metrics   func() []dynamo.Metric
}

func NewEnsemble(cfg dynamo.Config, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart}
}

// WithMetrics sets a factory called once per run, so runs never share
// metric state.
func (e *Ensemble) WithMetrics(fn func() []dynamo.Metric) *Ensemble {
	e.metrics = fn
	return e
}

func (e *Ensemble) Run(ctx context.Context, rc RunConfig) ([]*Result, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	if e.numRuns < 1 {
		return nil, fmt.Errorf("ensemble needs at least one run, got %d", e.numRuns)
	}

	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := e.cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			s, err := New(cfgCopy)
			if err != nil {
				errs[idx] = err
				return
			}
			if e.metrics != nil {
				for _, m := range e.metrics() {
					s.AddMetric(m)
				}
			}

			results[idx], errs[idx] = s.Run(ctx, rc)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
