package automation

import (
	"context"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballpit/internal/config"
	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/experiment"
	"github.com/san-kum/ballpit/internal/sim"
	"github.com/san-kum/ballpit/internal/storage"
)

// Scenario defines a scripted sequence of headless runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep starts from a preset (default "ballpit") and overrides
// every non-zero field.
type ScenarioStep struct {
	Preset    string   `yaml:"preset"`
	Bodies    int      `yaml:"bodies"`
	RadiusMin float64  `yaml:"radius_min"`
	RadiusMax float64  `yaml:"radius_max"`
	SpeedMin  float64  `yaml:"speed_min"`
	SpeedMax  float64  `yaml:"speed_max"`
	Width     float64  `yaml:"width"`
	Height    float64  `yaml:"height"`
	Steps     int      `yaml:"steps"`
	Seed      int64    `yaml:"seed"`
	Metrics   []string `yaml:"metrics"`
	SaveAs    string   `yaml:"save_as"`
}

// StepResult pairs a scenario step's run with the id it was stored under.
type StepResult struct {
	Name   string
	World  dynamo.Config
	Result *sim.Result
	RunID  string
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// World resolves the step's body-set configuration and tick count.
func (s ScenarioStep) World() (dynamo.Config, int, error) {
	name := s.Preset
	if name == "" {
		name = "ballpit"
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return dynamo.Config{}, 0, fmt.Errorf("unknown preset: %s", name)
	}

	if s.Bodies != 0 {
		cfg.Bodies = s.Bodies
	}
	if s.RadiusMin != 0 {
		cfg.Radius.Min = s.RadiusMin
	}
	if s.RadiusMax != 0 {
		cfg.Radius.Max = s.RadiusMax
	}
	if s.SpeedMin != 0 {
		cfg.Speed.Min = s.SpeedMin
	}
	if s.SpeedMax != 0 {
		cfg.Speed.Max = s.SpeedMax
	}
	if s.Width != 0 {
		cfg.Viewport.Width = s.Width
	}
	if s.Height != 0 {
		cfg.Viewport.Height = s.Height
	}
	if s.Steps != 0 {
		cfg.Steps = s.Steps
	}
	cfg.Seed = s.Seed

	world := cfg.World()
	return world, cfg.Steps, world.Validate()
}

// RunScenario executes all steps in order. Steps with save_as are written
// to st when st is not nil.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, st *storage.Store) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		world, steps, err := step.World()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		name := step.SaveAs
		if name == "" {
			name = fmt.Sprintf("%s_step%d", scenario.Name, i+1)
		}
		fmt.Printf("Running step %d/%d: %s (%d bodies, %d ticks)\n", i+1, len(scenario.Steps), name, world.BodyCount, steps)

		exp := experiment.New(experiment.Config{Name: name, World: world, Steps: steps, Metrics: step.Metrics})
		if err := exp.Setup(registry); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Name: name, World: world, Result: result}
		if step.SaveAs != "" && st != nil {
			if sr.RunID, err = st.Save(step.SaveAs, world, result); err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}
		results = append(results, sr)
	}

	return results, nil
}

// SweepParams lists the parameters RunSweep can vary.
var SweepParams = []string{"bodies", "radius_max", "speed_max"}

// ParameterSweep runs the same world across evenly spaced values of one
// parameter.
type ParameterSweep struct {
	Base      dynamo.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Ticks     int
}

type SweepResult struct {
	ParamValue  float64
	Contacts    float64
	Overlap     float64
	EnergyDrift float64
	Containment float64
}

func applyParam(cfg *dynamo.Config, name string, v float64) error {
	switch name {
	case "bodies":
		cfg.BodyCount = int(math.Round(v))
	case "radius_max":
		cfg.RadiusMax = v
		cfg.RadiusMin = math.Min(cfg.RadiusMin, v)
	case "speed_max":
		cfg.SpeedMax = v
		cfg.SpeedMin = math.Min(cfg.SpeedMin, v)
	default:
		return fmt.Errorf("unknown sweep parameter: %s", name)
	}
	return nil
}

func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one value, got %d", sweep.NumSteps)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep
		world := sweep.Base
		if err := applyParam(&world, sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		exp := experiment.New(experiment.Config{
			World:   world,
			Steps:   sweep.Ticks,
			Metrics: []string{"contacts", "overlap", "energy_drift", "containment"},
		})
		if err := exp.Setup(registry); err != nil {
			return nil, fmt.Errorf("%s=%.4f: %w", sweep.ParamName, paramVal, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			ParamValue:  paramVal,
			Contacts:    result.Metrics["contacts"],
			Overlap:     result.Metrics["overlap"],
			EnergyDrift: result.Metrics["energy_drift"],
			Containment: result.Metrics["containment"],
		})

		fmt.Printf("Sweep %d/%d: %s=%.4f\n", i+1, sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}

// MonteCarloConfig runs one world under many consecutive seeds.
type MonteCarloConfig struct {
	World     dynamo.Config
	NumTrials int
	Ticks     int
	Seed      int64
}

type MonteCarloResult struct {
	TrialID     int
	Seed        int64
	Containment float64
	Overlap     float64
	Stable      bool
}

// RunMonteCarlo runs the trials concurrently. A trial is stable when every
// frame kept every body inside the viewport.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry) ([]MonteCarloResult, error) {
	ens := sim.NewEnsemble(cfg.World, cfg.NumTrials, cfg.Seed).WithMetrics(func() []dynamo.Metric {
		c, _ := registry.GetMetric("containment")
		o, _ := registry.GetMetric("overlap")
		return []dynamo.Metric{c, o}
	})

	runs, err := ens.Run(ctx, sim.RunConfig{Steps: cfg.Ticks, ValidateState: true})
	if err != nil {
		return nil, err
	}

	results := make([]MonteCarloResult, len(runs))
	for i, r := range runs {
		results[i] = MonteCarloResult{
			TrialID:     i,
			Seed:        cfg.Seed + int64(i),
			Containment: r.Metrics["containment"],
			Overlap:     r.Metrics["overlap"],
			Stable:      r.Metrics["containment"] == 1,
		}
	}
	return results, nil
}

func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
