package potential

import (
	"context"
	"errors"
	"testing"

	"github.com/akoven/enslab/internal/ensemble"
)

// fakeKernel returns canned results: energy i*1.5 and a constant force for
// every atom of configuration i.
type fakeKernel struct {
	available bool
	evalErr   error

	// overrides for misalignment tests
	dropEnergy bool
	dropForces bool
	dropAtoms  bool

	calls int
}

func (f *fakeKernel) Name() string    { return "fake" }
func (f *fakeKernel) Available() bool { return f.available }

func (f *fakeKernel) Evaluate(ctx context.Context, configs []ensemble.Configuration) ([]float64, [][]ensemble.Vec3, error) {
	f.calls++
	if f.evalErr != nil {
		return nil, nil, f.evalErr
	}
	energies := make([]float64, len(configs))
	forces := make([][]ensemble.Vec3, len(configs))
	for i, c := range configs {
		energies[i] = float64(i) * 1.5
		forces[i] = make([]ensemble.Vec3, len(c.Positions))
		for j := range forces[i] {
			forces[i][j] = ensemble.Vec3{float64(i), float64(j), 0}
		}
	}
	if f.dropEnergy {
		energies = energies[:len(energies)-1]
	}
	if f.dropForces {
		forces = forces[:len(forces)-1]
	}
	if f.dropAtoms && len(forces) > 0 && len(forces[0]) > 0 {
		forces[0] = forces[0][:len(forces[0])-1]
	}
	return energies, forces, nil
}

func testEnsemble(n, atoms int) *ensemble.Ensemble {
	configs := make([]ensemble.Configuration, n)
	for i := range configs {
		configs[i] = ensemble.Configuration{Positions: make([]ensemble.Vec3, atoms)}
	}
	return ensemble.New(configs, 0)
}

func TestComputeEnsembleUnavailableKernel(t *testing.T) {
	kern := &fakeKernel{available: false}
	ens := testEnsemble(3, 2)

	err := New(kern).ComputeEnsemble(context.Background(), ens)
	if !errors.Is(err, ErrKernelUnavailable) {
		t.Fatalf("expected ErrKernelUnavailable, got %v", err)
	}
	if kern.calls != 0 {
		t.Error("Evaluate should not be called on an unavailable kernel")
	}
	if ens.Computed() {
		t.Error("ensemble should remain uncomputed")
	}
}

func TestComputeEnsembleNilKernel(t *testing.T) {
	err := New(nil).ComputeEnsemble(context.Background(), testEnsemble(1, 1))
	if !errors.Is(err, ErrKernelUnavailable) {
		t.Fatalf("expected ErrKernelUnavailable, got %v", err)
	}
}

func TestComputeEnsembleEmpty(t *testing.T) {
	err := New(&fakeKernel{available: true}).ComputeEnsemble(context.Background(), testEnsemble(0, 0))
	if !errors.Is(err, ErrEmptyEnsemble) {
		t.Fatalf("expected ErrEmptyEnsemble, got %v", err)
	}
}

func TestComputeEnsembleKernelError(t *testing.T) {
	wantErr := errors.New("bridge crashed")
	kern := &fakeKernel{available: true, evalErr: wantErr}
	ens := testEnsemble(2, 2)

	err := New(kern).ComputeEnsemble(context.Background(), ens)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped kernel error, got %v", err)
	}
	if ens.Computed() {
		t.Error("ensemble should remain uncomputed after kernel error")
	}
}

func TestComputeEnsembleMisalignment(t *testing.T) {
	tests := []struct {
		name string
		kern *fakeKernel
	}{
		{"missing energy", &fakeKernel{available: true, dropEnergy: true}},
		{"missing force set", &fakeKernel{available: true, dropForces: true}},
		{"missing atom force", &fakeKernel{available: true, dropAtoms: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ens := testEnsemble(3, 2)
			err := New(tt.kern).ComputeEnsemble(context.Background(), ens)
			if !errors.Is(err, ErrMisalignedResult) {
				t.Fatalf("expected ErrMisalignedResult, got %v", err)
			}
			if ens.Computed() {
				t.Error("ensemble should remain uncomputed after misaligned result")
			}
			for _, e := range ens.Energies {
				if e != 0 {
					t.Error("energies should be untouched after misaligned result")
					break
				}
			}
		})
	}
}
