package experiment

import (
	"context"
	"reflect"
	"testing"

	"github.com/san-kum/ballpit/internal/dynamo"
)

func TestRegistry(t *testing.T) {
	reg := NewRegistry()

	if got := reg.ListMetrics(); len(got) != len(DefaultMetricNames) {
		t.Errorf("expected %d metrics, got %v", len(DefaultMetricNames), got)
	}
	for _, name := range DefaultMetricNames {
		m, err := reg.GetMetric(name)
		if err != nil {
			t.Fatalf("metric %s: %v", name, err)
		}
		if m.Name() != name {
			t.Errorf("metric registered as %s reports name %s", name, m.Name())
		}
	}
	if _, err := reg.GetMetric("nope"); err == nil {
		t.Error("expected error for unknown metric")
	}

	a, b := reg.DefaultMetrics(), reg.DefaultMetrics()
	if a[0] == b[0] {
		t.Error("DefaultMetrics should allocate fresh instances")
	}
}

func TestExperiment_Run(t *testing.T) {
	world := dynamo.DefaultConfig()
	world.Seed = 17

	exp := New(Config{Name: "default", World: world, Steps: 200})
	if err := exp.Setup(NewRegistry()); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Ticks != 200 {
		t.Errorf("expected 200 ticks, got %d", result.Ticks)
	}
	for _, name := range DefaultMetricNames {
		if _, ok := result.Metrics[name]; !ok {
			t.Errorf("default metric %s not attached", name)
		}
	}
	if result.Metrics["containment"] != 1 {
		t.Errorf("bodies left the viewport: containment %v", result.Metrics["containment"])
	}
	if result.Metrics["energy_drift"] > 1e-9 {
		t.Errorf("energy drifted by %v", result.Metrics["energy_drift"])
	}
}

func TestExperiment_Deterministic(t *testing.T) {
	world := dynamo.DefaultConfig()
	world.Seed = 5

	run := func() []dynamo.BodyView {
		exp := New(Config{World: world, Steps: 120, Metrics: []string{"contacts"}})
		if err := exp.Setup(NewRegistry()); err != nil {
			t.Fatal(err)
		}
		r, err := exp.Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		return r.Final
	}

	if !reflect.DeepEqual(run(), run()) {
		t.Error("same seed should reproduce the same run")
	}
}

func TestExperiment_Errors(t *testing.T) {
	if _, err := New(Config{Steps: 10}).Run(context.Background()); err == nil {
		t.Error("expected error before setup")
	}

	exp := New(Config{World: dynamo.DefaultConfig(), Steps: 10, Metrics: []string{"bogus"}})
	if err := exp.Setup(NewRegistry()); err == nil {
		t.Error("expected error for unknown metric")
	}

	bad := dynamo.DefaultConfig()
	bad.RadiusMin = 0
	if err := New(Config{World: bad, Steps: 10}).Setup(NewRegistry()); err == nil {
		t.Error("expected error for invalid world")
	}
}

type tickCounter struct{ ticks int }

func (c *tickCounter) OnStep(f dynamo.Frame) { c.ticks = f.Tick }

func TestExperiment_SimulatorObserver(t *testing.T) {
	exp := New(Config{World: dynamo.DefaultConfig(), Steps: 30, Metrics: []string{"contacts"}})
	if exp.GetSimulator() != nil {
		t.Error("simulator should not exist before setup")
	}
	if err := exp.Setup(NewRegistry()); err != nil {
		t.Fatal(err)
	}

	counter := &tickCounter{}
	exp.GetSimulator().AddObserver(counter)
	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if counter.ticks != 30 {
		t.Errorf("observer saw %d ticks, want 30", counter.ticks)
	}
	if len(result.Metrics) != 1 {
		t.Errorf("explicit metric list should replace defaults, got %v", result.Metrics)
	}
}
