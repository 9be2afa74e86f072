package fri

import "fmt"

// Config holds the FRI sub-configuration, grounded on the teacher's
// utils.Config fluent-setter style and protocols.STARKParameters'
// validated-constructor pattern.
type Config struct {
	LogBlowup          int
	LogFoldingArity    int
	LogMaxFinalPolyLen int
	NumQueries         int
	ProofOfWorkBits    int
}

// DefaultConfig returns a reasonable happy-path parameter set:
// {log_blowup:2, log_max_final_poly_len:3, log_folding_arity:1 (see
// Validate), num_queries:10, pow_bits:8}.
func DefaultConfig() Config {
	return Config{
		LogBlowup:          2,
		LogFoldingArity:    1,
		LogMaxFinalPolyLen: 3,
		NumQueries:         10,
		ProofOfWorkBits:    8,
	}
}

// Validate rejects inconsistent configs. This implementation specializes
// FRI to binary folding rather than the general closed-form 2^a-ary fold,
// an allowed specialization when the added generality isn't needed, so
// LogFoldingArity must be 1.
func (c Config) Validate() error {
	if c.LogFoldingArity != 1 {
		return fmt.Errorf("fri: this implementation only supports log_folding_arity=1, got %d", c.LogFoldingArity)
	}
	if c.LogBlowup <= 0 {
		return fmt.Errorf("fri: log_blowup must be positive, got %d", c.LogBlowup)
	}
	if c.LogMaxFinalPolyLen < 0 {
		return fmt.Errorf("fri: log_max_final_poly_len must be non-negative, got %d", c.LogMaxFinalPolyLen)
	}
	if c.NumQueries <= 0 {
		return fmt.Errorf("fri: num_queries must be positive, got %d", c.NumQueries)
	}
	if c.ProofOfWorkBits < 0 {
		return fmt.Errorf("fri: proof_of_work_bits must be non-negative, got %d", c.ProofOfWorkBits)
	}
	return nil
}
