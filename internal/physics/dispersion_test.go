package physics_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/quentinglorieux/Bogo3D/internal/bogo"
	"github.com/quentinglorieux/Bogo3D/internal/physics"
)

// kScale puts the sampled wavevectors in each geometry's natural range.
var kScale = map[string]float64{
	"spatial":    10e3,
	"temporal":   10e3,
	"condensate": 1,
}

var _ = Describe("Dispersion relations", func() {
	for _, name := range physics.Names() {
		name := name

		Context(name, func() {
			var rel bogo.Relation
			var scale float64

			BeforeEach(func() {
				var err error
				rel, err = physics.New(name)
				Expect(err).NotTo(HaveOccurred())
				scale = kScale[name]
				Expect(scale).To(BeNumerically(">", 0))
			})

			It("validates its defaults", func() {
				Expect(rel.Validate()).To(Succeed())
			})

			It("vanishes at the origin", func() {
				Expect(rel.Omega(0, 0)).To(BeZero())
				Expect(rel.Free(0, 0)).To(BeZero())
			})

			It("is even under coordinate reflection", func() {
				a, b := 0.7*scale, 0.3*scale
				Expect(rel.Omega(-a, -b)).To(BeNumerically("~", rel.Omega(a, b), 1e-9))
				Expect(rel.Free(-a, -b)).To(BeNumerically("~", rel.Free(a, b), 1e-9))
			})

			It("keeps the interacting branch above the free one", func() {
				for _, frac := range []float64{0.1, 0.5, 1, 2} {
					k := frac * scale
					Expect(rel.Omega(k, 0)).To(BeNumerically(">=", rel.Free(k, 0)),
						"at k = %g", k)
				}
			})

			It("rises monotonically along the first axis", func() {
				prev := rel.Omega(0.1*scale, 0)
				for _, frac := range []float64{0.2, 0.5, 1, 2, 5} {
					next := rel.Omega(frac*scale, 0)
					Expect(next).To(BeNumerically(">", prev), "at k = %g", frac*scale)
					prev = next
				}
			})
		})
	}
})

var _ = Describe("Parameter plumbing", func() {
	for _, name := range physics.Names() {
		name := name

		Context(name, func() {
			var cfg bogo.Configurable

			BeforeEach(func() {
				rel, err := physics.New(name)
				Expect(err).NotTo(HaveOccurred())
				c, ok := rel.(bogo.Configurable)
				Expect(ok).To(BeTrue(), "relation should expose its parameters")
				cfg = c
			})

			It("round-trips every exposed parameter", func() {
				for pname, value := range cfg.GetParams() {
					Expect(cfg.SetParam(pname, value*2)).To(Succeed())
					Expect(cfg.GetParams()[pname]).To(BeNumerically("~", value*2, 1e-12))
				}
			})

			It("rejects unknown parameters", func() {
				Expect(cfg.SetParam("no-such-param", 1)).NotTo(Succeed())
			})
		})
	}
})
