// Package starkprover provides the public API for the STARK prover: given
// an AIR, an execution trace, and public values, it produces a succinct
// proof backed by a FRI commit/query engine.
//
// # Quick Start
//
// Generating a proof for the Fibonacci AIR:
//
//	cfg := starkprover.DefaultConfig()
//	proof, err := starkprover.Prove(cfg, air.FibonacciAIR{}, trace, starkprover.Claim{
//		PublicValues: []field.Elem{field.FromUint64(0), field.FromUint64(1)},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Architecture
//
// - pkg/starkprover/: public API (this package)
// - internal/stark/: orchestrator sequencing commit/fold/FRI
// - internal/fri/, internal/quotient/, internal/air/, internal/mmcs/,
//   internal/challenger/, internal/dft/, internal/field/: the component
//   stack the orchestrator drives
//
// Implementation details under internal/ can change without breaking this
// package's surface.
package starkprover
