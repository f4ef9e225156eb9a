// Package potential adapts external evaluation kernels to the ensemble data
// model. The Adapter performs one blocking batch call per ensemble and owns
// the write-back: energies, forces, computed flags and the post-update
// bookkeeping. Kernels are injected, so a test double or an alternative
// bridge slots in without touching the adapter.
package potential
