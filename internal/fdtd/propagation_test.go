package fdtd_test

import (
	"context"
	"math"
	"slices"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/yeesim/internal/fdtd"
)

func maxAbs(xs []float64) float64 {
	m := 0.0
	for _, x := range xs {
		m = math.Max(m, math.Abs(x))
	}
	return m
}

func argMaxAbs(xs []float64) int {
	best, idx := 0.0, -1
	for i, x := range xs {
		if math.Abs(x) > best {
			best, idx = math.Abs(x), i
		}
	}
	return idx
}

var _ = Describe("Engine propagation", func() {
	var eng *fdtd.Engine

	pulse := func(e *fdtd.Engine) fdtd.Waveform {
		return fdtd.Gaussian{Amplitude: 1, Delay: 30 * e.Dt(), Width: 10 * e.Dt()}
	}

	steps := func(n int) {
		for i := 0; i < n; i++ {
			Expect(eng.Step()).To(BeTrue())
		}
	}

	BeforeEach(func() {
		var err error
		eng, err = fdtd.New(fdtd.Config{AreaSize: 2.0, SpaceStep: 0.01, TimeDuration: 2e-8, Sc: 1.0})
		Expect(err).NotTo(HaveOccurred())
		Expect(eng.Size()).To(Equal(200))
	})

	Context("without sources", func() {
		It("keeps the ground state at zero", func() {
			Expect(eng.Run(ctx())).To(Succeed())
			Expect(eng.StepIndex()).To(Equal(eng.TimeCounts()))
			Expect(eng.E()).To(HaveEach(BeZero()))
			Expect(eng.H()).To(HaveEach(BeZero()))
		})
	})

	Context("with a directional source mid-grid", func() {
		BeforeEach(func() {
			Expect(eng.AddSource(fdtd.NewSource(1.0, pulse(eng)))).To(Succeed())
			Expect(eng.AddProbes(0.6, 1.4)).To(Succeed())
		})

		It("radiates towards +x only", func() {
			steps(120)

			left, right := eng.Probes()[0], eng.Probes()[1]
			Expect(left.Len()).To(Equal(120))
			Expect(maxAbs(right.EField())).To(BeNumerically(">", 0.9))
			Expect(maxAbs(left.EField())).To(BeNumerically("<", 0.01*maxAbs(right.EField())))
		})

		It("stays dark behind the source while the pulse reflects off the far edge", func() {
			Expect(eng.AddProbes(1.7)).To(Succeed())
			// peak leaves x=1.0 at step 30, hits the PEC at 1.99 near step 129
			// and is back at x=1.7 near step 158.
			steps(175)

			// the PEC reflection comes back inverted
			near := eng.Probes()[2].EField()
			Expect(slices.Max(near)).To(BeNumerically(">", 0.9))
			Expect(slices.Min(near)).To(BeNumerically("<", -0.9))

			Expect(maxAbs(eng.E()[:100])).To(BeNumerically("<", 1e-2))
			Expect(maxAbs(eng.Probes()[0].EField())).To(BeNumerically("<", 1e-2))
			Expect(eng.E()[0]).To(BeZero())
		})

		It("is slowed down by a dielectric layer", func() {
			steps(140)
			vacuum := argMaxAbs(eng.Probes()[1].EField())

			eng.Reset()
			Expect(eng.AddLayer(fdtd.NewLayer(1.2, 2.0, 4, 1, 0))).To(Succeed())
			steps(140)
			slab := argMaxAbs(eng.Probes()[1].EField())

			Expect(vacuum).To(BeNumerically(">", 60))
			Expect(slab).To(BeNumerically(">", vacuum+10))
		})

		It("is attenuated by a lossy layer", func() {
			Expect(eng.AddLayer(fdtd.NewLayer(1.05, 1.35, 1, 1, 0.05))).To(Succeed())
			steps(120)
			Expect(maxAbs(eng.Probes()[1].EField())).To(BeNumerically("<", 0.6))
		})
	})

	DescribeTable("right edge conditions",
		func(b fdtd.Boundary, absorbs bool) {
			eng.SetRightBoundary(b)
			Expect(eng.AddSource(fdtd.NewSource(1.0, pulse(eng)))).To(Succeed())
			steps(250)

			residual := maxAbs(eng.E())
			if absorbs {
				Expect(residual).To(BeNumerically("<", 1e-3))
			} else {
				Expect(residual).To(BeNumerically(">", 0.5))
			}
		},
		Entry("PEC reflects", fdtd.NewPEC(fdtd.Right), false),
		Entry("first-order ABC absorbs", fdtd.NewABCFirstOrder(fdtd.Right), true),
		Entry("second-order ABC absorbs", fdtd.NewABCSecondOrder(fdtd.Right), true),
	)

	It("observes every step in Run", func() {
		seen := 0
		Expect(eng.Run(ctx(), fdtd.ObserverFunc(func(e *fdtd.Engine) {
			seen++
			Expect(e.StepIndex()).To(Equal(seen))
		}))).To(Succeed())
		Expect(seen).To(Equal(eng.TimeCounts()))
	})

	It("stops when the context is cancelled", func() {
		c, cancel := cancellable()
		err := eng.Run(c, fdtd.ObserverFunc(func(e *fdtd.Engine) {
			if e.StepIndex() == 10 {
				cancel()
			}
		}))
		Expect(err).To(MatchError(context.Canceled))
		Expect(eng.StepIndex()).To(Equal(10))
	})
})
