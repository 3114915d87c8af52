package physics_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/physics"
)

func randomWorld(rng *rand.Rand, n int, vp dynamo.Viewport) []dynamo.Body {
	bodies := make([]dynamo.Body, n)
	for i := range bodies {
		r := 5 + rng.Float64()*10
		bodies[i] = dynamo.Body{
			Pos:    dynamo.Vec2{X: rng.Float64() * (vp.Width - 2*r), Y: rng.Float64() * (vp.Height - 2*r)},
			Vel:    dynamo.Vec2{X: (rng.Float64() - 0.5) * 6, Y: (rng.Float64() - 0.5) * 6},
			Radius: r,
			Visual: dynamo.VisualID(i % 10),
		}
	}
	return bodies
}

var _ = Describe("Step", func() {
	var (
		vp  dynamo.Viewport
		rng *rand.Rand
	)

	BeforeEach(func() {
		vp = dynamo.Viewport{Width: 320, Height: 200}
		rng = rand.New(rand.NewSource(GinkgoRandomSeed()))
	})

	It("keeps every body inside the viewport after every tick", func() {
		bodies := randomWorld(rng, 25, vp)
		for tick := 0; tick < 1000; tick++ {
			physics.Step(bodies, vp)
			for i := range bodies {
				b := bodies[i]
				Expect(b.Pos.X).To(BeNumerically(">=", 0), "tick %d body %d", tick, i)
				Expect(b.Pos.Y).To(BeNumerically(">=", 0), "tick %d body %d", tick, i)
				Expect(b.Pos.X).To(BeNumerically("<=", vp.Width-b.Diameter()), "tick %d body %d", tick, i)
				Expect(b.Pos.Y).To(BeNumerically("<=", vp.Height-b.Diameter()), "tick %d body %d", tick, i)
			}
		}
	})

	It("never changes radius or visual id", func() {
		bodies := randomWorld(rng, 12, vp)
		before := make([]dynamo.Body, len(bodies))
		copy(before, bodies)

		for tick := 0; tick < 300; tick++ {
			physics.Step(bodies, vp)
		}
		for i := range bodies {
			Expect(bodies[i].Radius).To(Equal(before[i].Radius))
			Expect(bodies[i].Visual).To(Equal(before[i].Visual))
		}
	})

	It("conserves kinetic energy", func() {
		bodies := randomWorld(rng, 20, vp)
		e0 := physics.KineticEnergy(bodies)
		for tick := 0; tick < 500; tick++ {
			physics.Step(bodies, vp)
		}
		Expect(physics.KineticEnergy(bodies)).To(BeNumerically("~", e0, e0*1e-9))
	})

	It("works itself out of a dense pile over later ticks", func() {
		bodies := make([]dynamo.Body, 6)
		for i := range bodies {
			bodies[i] = dynamo.Body{
				Pos:    dynamo.Vec2{X: 100 + float64(i), Y: 80},
				Radius: 10,
			}
		}
		Expect(physics.MaxPenetration(bodies)).To(BeNumerically(">", 15))

		for tick := 0; tick < 200; tick++ {
			physics.Step(bodies, vp)
		}
		Expect(physics.MaxPenetration(bodies)).To(BeNumerically("<", 1e-9))
	})
})

var _ = Describe("Reflect", func() {
	vp := dynamo.Viewport{Width: 50, Height: 50}

	DescribeTable("flips the velocity of every clamped axis",
		func(pos, vel dynamo.Vec2, flipX, flipY bool) {
			b := dynamo.Body{Pos: pos, Vel: vel, Radius: 5}
			hx, hy := physics.Reflect(&b, vp)

			Expect(hx).To(Equal(flipX))
			Expect(hy).To(Equal(flipY))
			if flipX {
				Expect(b.Vel.X).To(Equal(-vel.X))
			} else {
				Expect(b.Vel.X).To(Equal(vel.X))
			}
			if flipY {
				Expect(b.Vel.Y).To(Equal(-vel.Y))
			} else {
				Expect(b.Vel.Y).To(Equal(vel.Y))
			}
			Expect(physics.InBounds(&b, vp)).To(BeTrue())
		},
		Entry("left", dynamo.Vec2{X: -1, Y: 20}, dynamo.Vec2{X: -1, Y: 1}, true, false),
		Entry("right", dynamo.Vec2{X: 41, Y: 20}, dynamo.Vec2{X: 1, Y: 1}, true, false),
		Entry("top", dynamo.Vec2{X: 20, Y: -3}, dynamo.Vec2{X: 1, Y: -3}, false, true),
		Entry("bottom", dynamo.Vec2{X: 20, Y: 42}, dynamo.Vec2{X: 1, Y: 2}, false, true),
		Entry("top-left corner", dynamo.Vec2{X: -1, Y: -1}, dynamo.Vec2{X: -1, Y: -1}, true, true),
		Entry("bottom-right corner", dynamo.Vec2{X: 45, Y: 45}, dynamo.Vec2{X: 2, Y: 2}, true, true),
	)
})

var _ = Describe("Collide", func() {
	It("restores non-overlap for any overlapping pair", func() {
		rng := rand.New(rand.NewSource(GinkgoRandomSeed()))
		for trial := 0; trial < 500; trial++ {
			ra, rb := 1+rng.Float64()*20, 1+rng.Float64()*20
			angle := rng.Float64() * 2 * math.Pi
			d := rng.Float64() * 0.99 * (ra + rb)

			a := dynamo.Body{Pos: dynamo.Vec2{X: 100 - ra, Y: 100 - ra}, Radius: ra,
				Vel: dynamo.Vec2{X: rng.NormFloat64(), Y: rng.NormFloat64()}}
			b := dynamo.Body{Pos: dynamo.Vec2{X: 100 + d*math.Cos(angle) - rb, Y: 100 + d*math.Sin(angle) - rb}, Radius: rb,
				Vel: dynamo.Vec2{X: rng.NormFloat64(), Y: rng.NormFloat64()}}

			Expect(physics.Collide(&a, &b)).To(BeTrue())
			dist := a.Center().Sub(b.Center()).Len()
			Expect(dist).To(BeNumerically(">=", ra+rb), "trial %d", trial)
		}
	})
})
