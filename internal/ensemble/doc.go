// Package ensemble defines the ensemble data model: ordered collections of
// atomic configurations with index-aligned storage for computed energies,
// forces and stresses.
//
// An ensemble is filled in two phases. Configurations are generated (or
// loaded) first, then a potential evaluation installs results into the
// parallel arrays and calls Init to refresh the derived bookkeeping:
//
//	ens := ensemble.New(configs, 40.0)
//	err := adapter.ComputeEnsemble(ctx, ens)
package ensemble
