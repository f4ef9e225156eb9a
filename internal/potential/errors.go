package potential

import "errors"

var (
	// ErrKernelUnavailable indicates the configured kernel bridge failed to
	// load or reports itself unavailable.
	ErrKernelUnavailable = errors.New("potential: kernel unavailable")

	// ErrMisalignedResult indicates the kernel returned energy or force
	// sequences that do not line up with the input configurations.
	ErrMisalignedResult = errors.New("potential: kernel result misaligned with ensemble")

	// ErrEmptyEnsemble indicates a compute call on an ensemble with no
	// configurations.
	ErrEmptyEnsemble = errors.New("potential: ensemble has no configurations")
)
