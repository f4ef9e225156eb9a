package kernel

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/akoven/enslab/internal/potential"
)

// ErrBridgeUnavailable indicates the native bridge was not loaded in this
// build or failed to initialize.
var ErrBridgeUnavailable = errors.New("kernel: native bridge not loaded")

// Auto selects the best available kernel: the native bridge when it loaded,
// else the pure-Go CPU kernel. A failed native load degrades to CPU with a
// warning instead of failing startup.
func Auto() potential.Kernel {
	native := NewNative()
	if native.Available() {
		return native
	}
	log.Warn().Str("kernel", native.Name()).Msg("native bridge unavailable, falling back to cpu")
	return NewCPU()
}

// ByName resolves a kernel by its configured name. An unavailable kernel is
// still returned so the caller can surface the unavailability at compute
// time rather than here.
func ByName(name string) (potential.Kernel, error) {
	switch name {
	case "", "auto":
		return Auto(), nil
	case "cpu":
		return NewCPU(), nil
	case "native":
		return NewNative(), nil
	default:
		return nil, fmt.Errorf("kernel: unknown kernel %q", name)
	}
}
