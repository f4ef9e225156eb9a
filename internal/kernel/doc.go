// Package kernel provides the evaluation kernels behind the potential
// adapter.
//
// Two kernels exist:
//
//   - cpu: a pure-Go Aziz HFD-B helium pair potential, parallel over
//     configurations
//   - native: a cgo bridge to libpotential, built with the 'native' tag
//
// Auto picks native when the bridge loaded and falls back to cpu otherwise.
// An unavailable kernel is an ordinary value whose Available() is false;
// nothing here aborts startup.
package kernel
