package sim_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/ballpit/internal/dynamo"
	"github.com/san-kum/ballpit/internal/sim"
)

type frameRecorder struct {
	frames []dynamo.Frame
}

func (r *frameRecorder) OnStep(f dynamo.Frame) { r.frames = append(r.frames, f) }

var _ = Describe("Simulator", func() {
	var s *sim.Simulator

	BeforeEach(func() {
		cfg := dynamo.DefaultConfig()
		cfg.Seed = GinkgoRandomSeed()
		var err error
		s, err = sim.New(cfg)
		Expect(err).NotTo(HaveOccurred())
	})

	Context("before Start", func() {
		It("ignores refresh signals", func() {
			before := s.Snapshot()
			Expect(s.Tick()).To(BeFalse())
			Expect(s.Snapshot()).To(Equal(before))
			Expect(s.Ticks()).To(BeZero())
		})
	})

	Context("while running", func() {
		BeforeEach(func() { s.Start() })

		It("steps once per refresh signal", func() {
			for i := 0; i < 10; i++ {
				Expect(s.Tick()).To(BeTrue())
			}
			Expect(s.Ticks()).To(Equal(10))
		})

		It("hands observers a finished frame after every step", func() {
			rec := &frameRecorder{}
			s.AddObserver(rec)
			for i := 0; i < 3; i++ {
				s.Tick()
			}
			Expect(rec.frames).To(HaveLen(3))
			Expect(rec.frames[2].Tick).To(Equal(3))
			Expect(rec.frames[2].Bodies).To(HaveLen(dynamo.DefaultBodyCount))
		})

		It("keeps snapshot order stable", func() {
			first := s.Snapshot()
			for i := 0; i < 50; i++ {
				s.Tick()
			}
			later := s.Snapshot()
			Expect(later).To(HaveLen(len(first)))
			for i := range first {
				Expect(later[i].Radius).To(Equal(first[i].Radius))
				Expect(later[i].Visual).To(Equal(first[i].Visual))
			}
		})
	})

	Context("after Stop", func() {
		It("never changes any body again", func() {
			s.Start()
			for i := 0; i < 20; i++ {
				s.Tick()
			}
			s.Stop()
			frozen := s.Frame()

			for i := 0; i < 50; i++ {
				s.Tick()
			}
			Expect(s.Frame()).To(Equal(frozen))
			Expect(s.Running()).To(BeFalse())
		})

		It("stops a ticker-driven loop at a step boundary", func() {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			ticker := time.NewTicker(time.Millisecond)
			defer ticker.Stop()

			s.Start()
			done := make(chan error, 1)
			go func() { done <- s.Drive(ctx, ticker.C) }()

			Eventually(s.Ticks).Should(BeNumerically(">=", 5))
			s.Stop()
			frozen := s.Frame()
			Consistently(s.Frame, 50*time.Millisecond, 5*time.Millisecond).Should(Equal(frozen))

			cancel()
			Eventually(done).Should(Receive(MatchError(context.Canceled)))
		})
	})
})
