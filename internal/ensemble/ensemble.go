package ensemble

import (
	"math"
)

type Vec3 [3]float64

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]}
}

func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{v[0] * f, v[1] * f, v[2] * f}
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

func (v Vec3) IsValid() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Configuration is one snapshot of atomic positions, in angstrom.
type Configuration struct {
	Positions []Vec3
}

func (c Configuration) Clone() Configuration {
	p := make([]Vec3, len(c.Positions))
	copy(p, c.Positions)
	return Configuration{Positions: p}
}

// Ensemble holds an ordered set of configurations together with
// per-configuration result storage. Energies are in kelvin, forces in
// kelvin per angstrom. The result arrays are index-aligned with Configs:
// Energies[i] and Forces[i] belong to Configs[i].
type Ensemble struct {
	Configs       []Configuration
	Energies      []float64
	Forces        [][]Vec3
	Stresses      [][6]float64
	HasStress     bool
	ForceComputed []bool

	// Weights holds normalized importance weights, recomputed by Init
	// after the result arrays are populated.
	Weights []float64

	// Temperature in kelvin, used for reweighting. Zero means uniform.
	Temperature float64
}

// New allocates an ensemble for the given configurations with empty,
// correctly sized result storage.
func New(configs []Configuration, temperature float64) *Ensemble {
	n := len(configs)
	forces := make([][]Vec3, n)
	for i, c := range configs {
		forces[i] = make([]Vec3, len(c.Positions))
	}
	weights := make([]float64, n)
	for i := range weights {
		if n > 0 {
			weights[i] = 1.0 / float64(n)
		}
	}
	return &Ensemble{
		Configs:       configs,
		Energies:      make([]float64, n),
		Forces:        forces,
		Stresses:      make([][6]float64, n),
		ForceComputed: make([]bool, n),
		Weights:       weights,
		Temperature:   temperature,
	}
}

// Size returns the number of configurations.
func (e *Ensemble) Size() int { return len(e.Configs) }

// NAtoms returns the atom count of the first configuration, or zero for an
// empty ensemble. All configurations are expected to share it.
func (e *Ensemble) NAtoms() int {
	if len(e.Configs) == 0 {
		return 0
	}
	return len(e.Configs[0].Positions)
}

// Computed reports whether every configuration has results installed.
func (e *Ensemble) Computed() bool {
	for _, done := range e.ForceComputed {
		if !done {
			return false
		}
	}
	return true
}

// Init recomputes the derived bookkeeping after the result arrays change.
// Weights follow a Boltzmann factor relative to the minimum energy at the
// ensemble temperature; a zero temperature yields uniform weights.
func (e *Ensemble) Init() {
	n := e.Size()
	if n == 0 {
		return
	}
	if e.Temperature <= 0 || !e.Computed() {
		for i := range e.Weights {
			e.Weights[i] = 1.0 / float64(n)
		}
		return
	}

	minE := e.Energies[0]
	for _, en := range e.Energies[1:] {
		if en < minE {
			minE = en
		}
	}

	total := 0.0
	for i, en := range e.Energies {
		// Energies are in kelvin, so kB = 1 here.
		w := math.Exp(-(en - minE) / e.Temperature)
		e.Weights[i] = w
		total += w
	}
	if total == 0 {
		for i := range e.Weights {
			e.Weights[i] = 1.0 / float64(n)
		}
		return
	}
	for i := range e.Weights {
		e.Weights[i] /= total
	}
}
