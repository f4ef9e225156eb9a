package potential

import (
	"context"
	"fmt"

	"github.com/akoven/enslab/internal/ensemble"
)

// Kernel is the external routine that computes energies and forces for a
// batch of configurations. The returned sequences must be index-aligned
// with the input: energies[i] and forces[i] belong to configs[i].
//
// A kernel whose bridge failed to load reports Available() == false; its
// Evaluate is never called by the adapter in that case.
type Kernel interface {
	Name() string
	Available() bool
	Evaluate(ctx context.Context, configs []ensemble.Configuration) (energies []float64, forces [][]ensemble.Vec3, err error)
}

// Adapter installs kernel results into an ensemble's storage. It is
// stateless between calls; the same adapter may be reused across ensembles.
type Adapter struct {
	kernel Kernel
}

func New(kernel Kernel) *Adapter {
	return &Adapter{kernel: kernel}
}

// Kernel returns the kernel the adapter evaluates with.
func (a *Adapter) Kernel() Kernel { return a.kernel }

// ComputeEnsemble evaluates every configuration in ens with a single batch
// kernel call and copies the results into the ensemble's arrays. On success
// every computed flag is true, the stress flag is false (stress is not
// supported on the kernel path) and the ensemble's Init bookkeeping has run.
// On error the result arrays and computed flags are left untouched.
func (a *Adapter) ComputeEnsemble(ctx context.Context, ens *ensemble.Ensemble) error {
	if ens.Size() == 0 {
		return ErrEmptyEnsemble
	}
	if a.kernel == nil || !a.kernel.Available() {
		return fmt.Errorf("%w: %s", ErrKernelUnavailable, a.kernelName())
	}

	// Stress is unsupported on the kernel path, marked before evaluating.
	ens.HasStress = false

	energies, forces, err := a.kernel.Evaluate(ctx, ens.Configs)
	if err != nil {
		return fmt.Errorf("kernel %s: %w", a.kernel.Name(), err)
	}
	if err := a.checkAlignment(ens, energies, forces); err != nil {
		return err
	}

	copy(ens.Energies, energies)
	for i, f := range forces {
		copy(ens.Forces[i], f)
	}
	for i := range ens.ForceComputed {
		ens.ForceComputed[i] = true
	}

	ens.Init()
	return nil
}

// GetEnergyForces is a forwarding alias for ComputeEnsemble, kept for
// callers that expect the host framework's method name.
func (a *Adapter) GetEnergyForces(ctx context.Context, ens *ensemble.Ensemble) error {
	return a.ComputeEnsemble(ctx, ens)
}

func (a *Adapter) checkAlignment(ens *ensemble.Ensemble, energies []float64, forces [][]ensemble.Vec3) error {
	n := ens.Size()
	if len(energies) != n {
		return fmt.Errorf("%w: %d energies for %d configurations", ErrMisalignedResult, len(energies), n)
	}
	if len(forces) != n {
		return fmt.Errorf("%w: %d force sets for %d configurations", ErrMisalignedResult, len(forces), n)
	}
	for i, f := range forces {
		if len(f) != len(ens.Configs[i].Positions) {
			return fmt.Errorf("%w: %d force vectors for %d atoms in configuration %d",
				ErrMisalignedResult, len(f), len(ens.Configs[i].Positions), i)
		}
	}
	return nil
}

func (a *Adapter) kernelName() string {
	if a.kernel == nil {
		return "none"
	}
	return a.kernel.Name()
}
