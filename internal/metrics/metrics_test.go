package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/ballpit/internal/dynamo"
)

var vp = dynamo.Viewport{Width: 200, Height: 100}

func frame(bodies ...dynamo.Body) dynamo.Frame {
	return dynamo.Frame{Viewport: vp, Bodies: bodies}
}

func moving(x, y, vx, vy float64) dynamo.Body {
	return dynamo.Body{Pos: dynamo.Vec2{X: x, Y: y}, Vel: dynamo.Vec2{X: vx, Y: vy}, Radius: 10}
}

func TestEnergy(t *testing.T) {
	m := NewEnergy()
	m.Observe(frame(moving(0, 0, 3, 4)))
	m.Observe(frame(moving(0, 0, 1, 0)))

	// (12.5 + 0.5) / 2
	if math.Abs(m.Value()-6.5) > 1e-12 {
		t.Errorf("expected mean energy 6.5, got %v", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift()
	m.Observe(frame(moving(0, 0, 2, 0)))
	m.Observe(frame(moving(0, 0, 0, 2)))
	if m.Value() != 0 {
		t.Errorf("rotated velocity should not drift, got %v", m.Value())
	}

	m.Observe(frame(moving(0, 0, 0, 1)))
	if math.Abs(m.Value()-0.75) > 1e-12 {
		t.Errorf("expected drift 0.75, got %v", m.Value())
	}

	m.Reset()
	m.Observe(frame())
	if m.Value() != 0 {
		t.Error("empty frame should not produce drift")
	}
}

func TestContainment(t *testing.T) {
	tests := []struct {
		name   string
		frames []dynamo.Frame
		want   float64
	}{
		{"no frames", nil, 1},
		{"inside", []dynamo.Frame{frame(moving(10, 10, 1, 1))}, 1},
		{"half outside", []dynamo.Frame{
			frame(moving(10, 10, 1, 1)),
			frame(moving(10, 10, 1, 1), moving(190, 10, 1, 1)),
		}, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewContainment()
			for _, f := range tt.frames {
				m.Observe(f)
			}
			if m.Value() != tt.want {
				t.Errorf("expected %v, got %v", tt.want, m.Value())
			}
		})
	}
}

func TestOverlap(t *testing.T) {
	m := NewOverlap()
	m.Observe(frame(moving(0, 0, 0, 0), moving(50, 0, 0, 0)))
	if m.Value() != 0 {
		t.Errorf("separated bodies should not overlap, got %v", m.Value())
	}

	m.Observe(frame(moving(0, 0, 0, 0), moving(15, 0, 0, 0)))
	if math.Abs(m.Value()-5) > 1e-12 {
		t.Errorf("expected overlap 5, got %v", m.Value())
	}

	m.Observe(frame())
	if math.Abs(m.Value()-5) > 1e-12 {
		t.Error("overlap should keep its maximum")
	}
}

func TestCountingMetrics(t *testing.T) {
	c := NewContacts()
	w := NewWallHits()
	for _, f := range []dynamo.Frame{{Contacts: 2, WallHits: 1}, {Contacts: 0, WallHits: 3}} {
		c.Observe(f)
		w.Observe(f)
	}

	if c.Value() != 1 {
		t.Errorf("expected 1 contact per step, got %v", c.Value())
	}
	if w.Value() != 2 {
		t.Errorf("expected 2 wall hits per step, got %v", w.Value())
	}

	c.Reset()
	w.Reset()
	if c.Value() != 0 || w.Value() != 0 {
		t.Error("expected zero after reset")
	}
}
