package starkprover

import (
	"errors"

	"github.com/tessera-stark/tessera/internal/air"
	"github.com/tessera-stark/tessera/internal/field"
	"github.com/tessera-stark/tessera/internal/matrix"
	"github.com/tessera-stark/tessera/internal/stark"
)

// Config is the public prover configuration; an alias of the internal type
// so callers can use stark.DefaultConfig()'s fluent setters directly.
type Config = stark.Config

// Claim is the public statement a proof attests to.
type Claim = stark.Claim

// Proof is the complete STARK proof.
type Proof = stark.Proof

// DefaultConfig returns a reasonable happy-path parameter set.
func DefaultConfig() Config {
	return stark.DefaultConfig()
}

// Prove generates a proof that trace satisfies the Fibonacci AIR's
// constraints given the supplied public values. It converts any internal
// precondition violation into a *ProverError at this API boundary, never
// returning a partial proof: Prove either returns a complete proof or
// aborts with an error.
func Prove(cfg Config, a air.FibonacciAIR, trace matrix.Matrix[field.Elem], claim Claim) (proof *Proof, err error) {
	defer func() {
		if r := recover(); r != nil {
			proof = nil
			err = &ProverError{Code: ErrPrecondition, Message: "panic during proving", Cause: toError(r)}
		}
	}()

	p, err := stark.Prove(cfg, a, trace, claim)
	if err != nil {
		var violation *air.ConstraintViolationError
		if errors.As(err, &violation) {
			return nil, &ProverError{Code: ErrConstraintViolation, Message: "constraint check failed", Cause: err}
		}
		return nil, &ProverError{Code: ErrPrecondition, Message: "prove failed", Cause: err}
	}
	return p, nil
}

func toError(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &ProverError{Code: ErrUnknown, Message: "non-error panic value"}
}
