package potential_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/akoven/enslab/internal/ensemble"
	"github.com/akoven/enslab/internal/potential"
)

// indexKernel tags each configuration's results with its index so ordering
// can be asserted.
type indexKernel struct{}

func (indexKernel) Name() string    { return "index" }
func (indexKernel) Available() bool { return true }

func (indexKernel) Evaluate(_ context.Context, configs []ensemble.Configuration) ([]float64, [][]ensemble.Vec3, error) {
	energies := make([]float64, len(configs))
	forces := make([][]ensemble.Vec3, len(configs))
	for i, c := range configs {
		energies[i] = float64(i) + 0.5
		forces[i] = make([]ensemble.Vec3, len(c.Positions))
		for j := range forces[i] {
			forces[i][j] = ensemble.Vec3{float64(i), float64(j), 1}
		}
	}
	return energies, forces, nil
}

func newEnsemble(n, atoms int) *ensemble.Ensemble {
	configs := make([]ensemble.Configuration, n)
	for i := range configs {
		configs[i] = ensemble.Configuration{Positions: make([]ensemble.Vec3, atoms)}
	}
	return ensemble.New(configs, 0)
}

var _ = Describe("ComputeEnsemble", func() {
	var (
		adapter *potential.Adapter
		ens     *ensemble.Ensemble
	)

	BeforeEach(func() {
		adapter = potential.New(indexKernel{})
		ens = newEnsemble(8, 4)
		ens.HasStress = true
	})

	It("populates every configuration exactly once", func() {
		Expect(adapter.ComputeEnsemble(context.Background(), ens)).To(Succeed())

		Expect(ens.Energies).To(HaveLen(8))
		Expect(ens.Forces).To(HaveLen(8))
		for i := range ens.ForceComputed {
			Expect(ens.ForceComputed[i]).To(BeTrue(), "configuration %d not marked computed", i)
		}
	})

	It("clears the stress flag", func() {
		Expect(adapter.ComputeEnsemble(context.Background(), ens)).To(Succeed())
		Expect(ens.HasStress).To(BeFalse())
	})

	It("keeps results index-aligned with configurations", func() {
		Expect(adapter.ComputeEnsemble(context.Background(), ens)).To(Succeed())

		for i := range ens.Configs {
			Expect(ens.Energies[i]).To(Equal(float64(i) + 0.5))
			for j := range ens.Forces[i] {
				Expect(ens.Forces[i][j]).To(Equal(ensemble.Vec3{float64(i), float64(j), 1}))
			}
		}
	})

	It("refreshes ensemble weights", func() {
		Expect(adapter.ComputeEnsemble(context.Background(), ens)).To(Succeed())

		sum := 0.0
		for _, w := range ens.Weights {
			sum += w
		}
		Expect(sum).To(BeNumerically("~", 1.0, 1e-12))
	})
})

var _ = Describe("GetEnergyForces", func() {
	It("produces the same ensemble state as ComputeEnsemble", func() {
		adapter := potential.New(indexKernel{})

		direct := newEnsemble(6, 3)
		forwarded := newEnsemble(6, 3)

		Expect(adapter.ComputeEnsemble(context.Background(), direct)).To(Succeed())
		Expect(adapter.GetEnergyForces(context.Background(), forwarded)).To(Succeed())

		Expect(forwarded.Energies).To(Equal(direct.Energies))
		Expect(forwarded.Forces).To(Equal(direct.Forces))
		Expect(forwarded.ForceComputed).To(Equal(direct.ForceComputed))
		Expect(forwarded.Weights).To(Equal(direct.Weights))
		Expect(forwarded.HasStress).To(Equal(direct.HasStress))
	})
})
