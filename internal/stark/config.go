// Package stark sequences the full prover pipeline: commit the trace, fold
// the AIR into a quotient, commit the quotient chunks, sample an
// out-of-domain point, and drive one FRI instance over a DEEP-quotient
// codeword that audits trace and quotient together. Grounded on the
// teacher's protocols.Prover/NewProver orchestration shape and
// utils.Config's validated-default-plus-With* pattern, generalized to
// this component's richer configuration surface.
package stark

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tessera-stark/tessera/internal/fri"
)

// Config enumerates every prover-facing parameter: log_blowup,
// log_folding_arity, log_max_final_poly_len, num_queries,
// proof_of_work_bits (all carried on the embedded fri.Config), plus a
// Debug flag gating the optional constraint-violation check.
type Config struct {
	FRI   fri.Config
	Debug bool
	Log   zerolog.Logger
}

// DefaultConfig returns a reasonable happy-path parameter set: the FRI
// defaults, debug checking off.
func DefaultConfig() Config {
	return Config{
		FRI:   fri.DefaultConfig(),
		Debug: false,
		Log:   zerolog.Nop(),
	}
}

// WithDebug returns a copy of c with the debug constraint check enabled -
// fluent setters in the style of the teacher's utils.Config.With* methods.
func (c Config) WithDebug(debug bool) Config {
	c.Debug = debug
	return c
}

// WithLogger returns a copy of c logging phase boundaries to the given
// zerolog.Logger instead of discarding them.
func (c Config) WithLogger(log zerolog.Logger) Config {
	c.Log = log
	return c
}

// Validate checks every precondition that counts as a programmer error:
// config inconsistency is caught here before any field arithmetic runs.
func (c Config) Validate() error {
	if err := c.FRI.Validate(); err != nil {
		return fmt.Errorf("stark: %w", err)
	}
	return nil
}
