package generate

import (
	"math"
	"math/rand"

	"github.com/akoven/enslab/internal/config"
	"github.com/akoven/enslab/internal/ensemble"
)

// Lattice builds a reference configuration of atoms on a simple cubic grid
// centered in a cubic cell of the given side length.
func Lattice(atoms int, cell float64) ensemble.Configuration {
	perSide := int(math.Ceil(math.Cbrt(float64(atoms))))
	spacing := cell / float64(perSide)

	positions := make([]ensemble.Vec3, 0, atoms)
	for ix := 0; ix < perSide && len(positions) < atoms; ix++ {
		for iy := 0; iy < perSide && len(positions) < atoms; iy++ {
			for iz := 0; iz < perSide && len(positions) < atoms; iz++ {
				positions = append(positions, ensemble.Vec3{
					(float64(ix) + 0.5) * spacing,
					(float64(iy) + 0.5) * spacing,
					(float64(iz) + 0.5) * spacing,
				})
			}
		}
	}
	return ensemble.Configuration{Positions: positions}
}

// Displace draws n configurations by adding independent Gaussian
// displacements of width sigma to every atom of the reference. The same
// seed reproduces the same ensemble.
func Displace(ref ensemble.Configuration, n int, sigma float64, seed int64) []ensemble.Configuration {
	rng := rand.New(rand.NewSource(seed))

	configs := make([]ensemble.Configuration, n)
	for i := range configs {
		c := ref.Clone()
		for j := range c.Positions {
			c.Positions[j] = c.Positions[j].Add(ensemble.Vec3{
				rng.NormFloat64() * sigma,
				rng.NormFloat64() * sigma,
				rng.NormFloat64() * sigma,
			})
		}
		configs[i] = c
	}
	return configs
}

// Ensemble builds a thermally displaced ensemble from a config.
func Ensemble(cfg *config.Config) *ensemble.Ensemble {
	ref := Lattice(cfg.Atoms, cfg.Cell)
	configs := Displace(ref, cfg.Configs, cfg.Sigma, cfg.Seed)
	return ensemble.New(configs, cfg.Temperature)
}
