//go:build native

package kernel

/*
#cgo LDFLAGS: -L${SRCDIR} -lpotential -lm
#include <stdlib.h>

extern int potential_bridge_ok();
extern int potential_evaluate(const double* positions, int nconfigs, int natoms,
                              double* energies, double* forces);
*/
import "C"

import (
	"context"
	"fmt"
	"unsafe"

	"github.com/akoven/enslab/internal/ensemble"
)

// Native bridges to libpotential through cgo. The bridge probe runs once at
// construction; a failed probe yields an unavailable kernel rather than an
// error.
type Native struct {
	available bool
}

func NewNative() *Native {
	return &Native{available: C.potential_bridge_ok() != 0}
}

func (k *Native) Name() string {
	if k.available {
		return "native"
	}
	return "native (not available)"
}

func (k *Native) Available() bool { return k.available }

func (k *Native) Evaluate(ctx context.Context, configs []ensemble.Configuration) ([]float64, [][]ensemble.Vec3, error) {
	if !k.available {
		return nil, nil, ErrBridgeUnavailable
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	nconfigs := len(configs)
	if nconfigs == 0 {
		return nil, nil, nil
	}
	natoms := len(configs[0].Positions)

	flat := make([]float64, nconfigs*natoms*3)
	for i, cfg := range configs {
		if len(cfg.Positions) != natoms {
			return nil, nil, fmt.Errorf("kernel: configuration %d has %d atoms, want %d", i, len(cfg.Positions), natoms)
		}
		for j, p := range cfg.Positions {
			base := (i*natoms + j) * 3
			flat[base] = p[0]
			flat[base+1] = p[1]
			flat[base+2] = p[2]
		}
	}

	energies := make([]float64, nconfigs)
	flatForces := make([]float64, nconfigs*natoms*3)

	rc := C.potential_evaluate(
		(*C.double)(unsafe.Pointer(&flat[0])),
		C.int(nconfigs),
		C.int(natoms),
		(*C.double)(unsafe.Pointer(&energies[0])),
		(*C.double)(unsafe.Pointer(&flatForces[0])),
	)
	if rc != 0 {
		return nil, nil, fmt.Errorf("kernel: native evaluation failed with code %d", int(rc))
	}

	forces := make([][]ensemble.Vec3, nconfigs)
	for i := range forces {
		forces[i] = make([]ensemble.Vec3, natoms)
		for j := range forces[i] {
			base := (i*natoms + j) * 3
			forces[i][j] = ensemble.Vec3{flatForces[base], flatForces[base+1], flatForces[base+2]}
		}
	}

	return energies, forces, nil
}
