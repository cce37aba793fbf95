package kernel_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/spanbench/internal/kernel"
	"github.com/san-kum/spanbench/internal/particle"
)

// randomStack fills n records with in-domain values: beta2 strictly inside
// (0,1) for every record, every third identifier zero.
func randomStack(n int, seed int64) particle.Stack {
	rng := rand.New(rand.NewSource(seed))
	s := particle.NewStack(n)
	for i := range s {
		id := int32(i)
		if i%3 == 0 {
			id = 0
		}
		px := float32(rng.Float64()*2 - 1)
		py := float32(rng.Float64()*2 - 1)
		pz := float32(rng.Float64()*2 - 1)
		p2 := px*px + py*py + pz*pz
		// e > |p| keeps beta2 = p2/e2 below 1
		e := float32(math.Sqrt(float64(p2)))*2 + float32(rng.Float64()*10) + 1
		s[i] = particle.Particle{
			ID: id,
			Px: px, Py: py, Pz: pz,
			E: e,
			X: float32(rng.Float64()), Y: float32(rng.Float64()),
			Z: float32(rng.Float64()), T: 0,
		}
	}
	return s
}

var _ = Describe("EnergyLoss", func() {
	It("matches the scalar path applied record by record", func() {
		for _, n := range []int{1, 2, 3, 17, 256} {
			batch := randomStack(n, int64(n))
			scalar := randomStack(n, int64(n))

			kernel.EnergyLoss(particle.View(batch))
			for i := range scalar {
				kernel.EnergyLossOne(&scalar[i])
			}

			for i := range batch {
				Expect(batch[i].E).To(Equal(scalar[i].E),
					"record %d of %d", i, n)
			}
		}
	})

	It("leaves uncharged particles untouched", func() {
		s := randomStack(30, 7)
		before := append(particle.Stack(nil), s...)

		kernel.EnergyLoss(particle.View(s))

		for i := range s {
			if before[i].ID == 0 {
				Expect(s[i].E).To(Equal(before[i].E), "record %d", i)
			}
		}
	})

	It("applies the closed-form loss to charged particles", func() {
		s := randomStack(50, 99)
		before := append(particle.Stack(nil), s...)

		kernel.EnergyLoss(particle.View(s))

		for i := range s {
			if before[i].ID == 0 {
				continue
			}
			p := before[i]
			p2 := float64(p.Px)*float64(p.Px) + float64(p.Py)*float64(p.Py) + float64(p.Pz)*float64(p.Pz)
			beta2 := p2 / (float64(p.E) * float64(p.E))
			Expect(beta2).To(BeNumerically(">", 0))
			Expect(beta2).To(BeNumerically("<", 1))

			loss := math.Log(beta2/(1-beta2))/beta2 - 1
			want := float64(p.E) - loss
			Expect(float64(s[i].E)).To(BeNumerically("~", want, math.Abs(want)*1e-4+1e-4),
				"record %d", i)
		}
	})

	It("only touches the energy column", func() {
		s := randomStack(12, 3)
		before := append(particle.Stack(nil), s...)

		kernel.EnergyLoss(particle.View(s))

		for i := range s {
			got, want := s[i], before[i]
			got.E = 0
			want.E = 0
			Expect(got).To(Equal(want), "record %d", i)
		}
	})
})

var _ = Describe("Drift", func() {
	It("matches the scalar path applied record by record", func() {
		for _, n := range []int{1, 2, 5, 64} {
			batch := randomStack(n, int64(100+n))
			scalar := randomStack(n, int64(100+n))

			kernel.Drift(particle.View(batch), kernel.DefaultDt)
			for i := range scalar {
				kernel.DriftOne(&scalar[i], kernel.DefaultDt)
			}

			for i := range batch {
				Expect(batch[i]).To(Equal(scalar[i]), "record %d of %d", i, n)
			}
		}
	})

	It("advances positions by momentum times dt", func() {
		s := particle.NewStack(1)
		s[0] = particle.Particle{ID: 1, Px: 2, Py: -3, Pz: 0.5, E: 10, X: 1, Y: 1, Z: 1, T: 0}

		kernel.Drift(particle.View(s), 0.25)

		Expect(s[0].X).To(Equal(float32(1.5)))
		Expect(s[0].Y).To(Equal(float32(0.25)))
		Expect(s[0].Z).To(Equal(float32(1.125)))
		Expect(s[0].T).To(Equal(float32(0.25)))
		Expect(s[0].E).To(Equal(float32(10)))
	})
})

var _ = Describe("Worked example", func() {
	// three records, identifiers [0,1,2], unit momenta, e=10, rest zero
	newExample := func() particle.Stack {
		s := particle.NewStack(3)
		for i := range s {
			s[i] = particle.Particle{ID: int32(i), Px: 1, Py: 1, Pz: 1, E: 10}
		}
		return s
	}

	It("drift moves every record to x=y=z=t=0.1", func() {
		s := newExample()
		kernel.Drift(particle.View(s), 0.1)

		for i := range s {
			Expect(s[i].X).To(Equal(float32(0.1)), "record %d", i)
			Expect(s[i].Y).To(Equal(float32(0.1)), "record %d", i)
			Expect(s[i].Z).To(Equal(float32(0.1)), "record %d", i)
			Expect(s[i].T).To(Equal(float32(0.1)), "record %d", i)
		}
	})

	It("energy loss skips record 0 and hits records 1 and 2 equally", func() {
		s := newExample()
		kernel.EnergyLoss(particle.View(s))

		Expect(s[0].E).To(Equal(float32(10)))
		Expect(s[1].E).NotTo(Equal(float32(10)))
		Expect(s[1].E).To(Equal(s[2].E))
	})
})
