package kernel

import (
	"context"
	"math"
	"runtime"
	"sync"

	"github.com/akoven/enslab/internal/ensemble"
)

// Aziz HFD-B(He) parameters. Energies come out in kelvin, distances are
// taken in angstrom.
const (
	azizEpsilon = 10.948
	azizRm      = 2.9634
	azizA       = 184431.01
	azizAlpha   = 10.43329537
	azizBeta    = -2.27965105
	azizC6      = 1.36745214
	azizC8      = 0.42123807
	azizC10     = 0.17473318
	azizD       = 1.4826
)

// CPU evaluates the helium pair potential in pure Go, parallelized over
// configurations.
type CPU struct {
	workers int
}

func NewCPU() *CPU {
	return &CPU{workers: runtime.NumCPU()}
}

func (c *CPU) Name() string    { return "cpu" }
func (c *CPU) Available() bool { return true }

func (c *CPU) Evaluate(ctx context.Context, configs []ensemble.Configuration) ([]float64, [][]ensemble.Vec3, error) {
	n := len(configs)
	energies := make([]float64, n)
	forces := make([][]ensemble.Vec3, n)

	if n < 4 || c.workers < 2 {
		for i, cfg := range configs {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
			energies[i], forces[i] = evaluateOne(cfg)
		}
		return energies, forces, nil
	}

	var wg sync.WaitGroup
	chunkSize := (n + c.workers - 1) / c.workers
	errs := make([]error, c.workers)

	for w := 0; w < c.workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()

			start := worker * chunkSize
			end := start + chunkSize
			if end > n {
				end = n
			}

			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					errs[worker] = err
					return
				}
				energies[i], forces[i] = evaluateOne(configs[i])
			}
		}(w)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, nil, err
		}
	}
	return energies, forces, nil
}

// evaluateOne sums the pair potential over all atom pairs of a single
// configuration and accumulates the analytic pair forces.
func evaluateOne(cfg ensemble.Configuration) (float64, []ensemble.Vec3) {
	pos := cfg.Positions
	n := len(pos)
	force := make([]ensemble.Vec3, n)
	energy := 0.0

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			rij := pos[j].Sub(pos[i])
			r := rij.Norm()
			if r == 0 {
				continue
			}

			v, dvdr := azizPair(r)
			energy += v

			// force on i = dV/dr * (rj-ri)/r, equal and opposite on j
			f := rij.Scale(dvdr / r)
			force[i] = force[i].Add(f)
			force[j] = force[j].Sub(f)
		}
	}

	return energy, force
}

// azizPair returns V(r) and dV/dr for the HFD-B form
//
//	V(r) = eps * [ A exp(-alpha x + beta x^2) - F(x) (c6/x^6 + c8/x^8 + c10/x^10) ]
//
// with x = r/rm and the damping F(x) = exp(-(D/x - 1)^2) for x < D, else 1.
func azizPair(r float64) (v, dvdr float64) {
	x := r / azizRm

	rep := azizA * math.Exp(-azizAlpha*x+azizBeta*x*x)
	drep := rep * (-azizAlpha + 2*azizBeta*x)

	x2 := x * x
	x6 := x2 * x2 * x2
	x8 := x6 * x2
	x10 := x8 * x2
	disp := azizC6/x6 + azizC8/x8 + azizC10/x10
	ddisp := -(6*azizC6/(x6*x) + 8*azizC8/(x8*x) + 10*azizC10/(x10*x))

	damp := 1.0
	ddamp := 0.0
	if x < azizD {
		t := azizD/x - 1
		damp = math.Exp(-t * t)
		ddamp = damp * 2 * t * azizD / x2
	}

	v = azizEpsilon * (rep - damp*disp)
	dvdx := azizEpsilon * (drep - (ddamp*disp + damp*ddisp))
	return v, dvdx / azizRm
}
