package metrics

import (
	"math"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/physics"
)

// Containment is the fraction of frames in which every body lies fully
// inside the viewport. It should always be 1.
type Containment struct {
	name       string
	violations int
	samples    int
}

func NewContainment() *Containment {
	return &Containment{name: "containment"}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(f dynamo.Frame) {
	c.samples++
	for i := range f.Bodies {
		if !physics.InBounds(&f.Bodies[i], f.Viewport) {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}

// Overlap is the deepest residual penetration seen after any step. The
// resolver makes a single pass, so crowded scenes leave some.
type Overlap struct {
	name     string
	maxDepth float64
}

func NewOverlap() *Overlap {
	return &Overlap{name: "overlap"}
}

func (o *Overlap) Name() string {
	return o.name
}

func (o *Overlap) Observe(f dynamo.Frame) {
	o.maxDepth = math.Max(o.maxDepth, physics.MaxPenetration(f.Bodies))
}

func (o *Overlap) Value() float64 {
	return o.maxDepth
}

func (o *Overlap) Reset() {
	o.maxDepth = 0
}
