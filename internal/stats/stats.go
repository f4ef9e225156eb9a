package stats

import (
	"math"

	"github.com/akoven/enslab/internal/ensemble"
)

// Summary holds ensemble observables computed from installed results.
// Energies are in kelvin, forces in kelvin per angstrom.
type Summary struct {
	Configs        int     `json:"configs"`
	Atoms          int     `json:"atoms"`
	MeanEnergy     float64 `json:"mean_energy"`
	EnergyStd      float64 `json:"energy_std"`
	EnergyPerAtom  float64 `json:"energy_per_atom"`
	WeightedEnergy float64 `json:"weighted_energy"`
	MeanForceNorm  float64 `json:"mean_force_norm"`
	MaxForce       float64 `json:"max_force"`
}

// Summarize computes observables over a fully computed ensemble. Calling it
// on a partially computed ensemble gives a zero Summary apart from the
// counts.
func Summarize(ens *ensemble.Ensemble) Summary {
	s := Summary{Configs: ens.Size(), Atoms: ens.NAtoms()}
	if ens.Size() == 0 || !ens.Computed() {
		return s
	}

	sum, sumSq := 0.0, 0.0
	for _, e := range ens.Energies {
		sum += e
		sumSq += e * e
	}
	n := float64(ens.Size())
	s.MeanEnergy = sum / n
	variance := sumSq/n - s.MeanEnergy*s.MeanEnergy
	if variance > 0 {
		s.EnergyStd = math.Sqrt(variance)
	}
	if s.Atoms > 0 {
		s.EnergyPerAtom = s.MeanEnergy / float64(s.Atoms)
	}

	for i, e := range ens.Energies {
		s.WeightedEnergy += ens.Weights[i] * e
	}

	totalNorm := 0.0
	atoms := 0
	for _, forces := range ens.Forces {
		for _, f := range forces {
			norm := f.Norm()
			totalNorm += norm
			atoms++
			for k := 0; k < 3; k++ {
				if abs := math.Abs(f[k]); abs > s.MaxForce {
					s.MaxForce = abs
				}
			}
		}
	}
	if atoms > 0 {
		s.MeanForceNorm = totalNorm / float64(atoms)
	}

	return s
}
