// Package fri implements the FRI commit phase and query phase: iteratively
// folding a set of Reed-Solomon codewords by verifier-chosen challenges,
// committing every intermediate layer through the mmcs package, and then
// opening num_queries sampled indices along the fold tree. Grounded on
// original_source/fri/src/prover.rs's commit_phase()/answer_query(),
// specialized to binary folding (log_folding_arity=1), an allowed
// specialization when the added generality of arbitrary folding arities
// isn't needed.
package fri

import (
	"fmt"
	"sort"

	"github.com/tessera-stark/tessera/internal/algebra"
	"github.com/tessera-stark/tessera/internal/challenger"
	"github.com/tessera-stark/tessera/internal/dft"
	"github.com/tessera-stark/tessera/internal/field"
	"github.com/tessera-stark/tessera/internal/matrix"
	"github.com/tessera-stark/tessera/internal/mmcs"
)

// idftExt recovers the coefficients of m's single column, evaluated over a
// coset of shift `shift`, reusing the batched coset-IDFT kernel shared with
// the trace/quotient LDE machinery.
func idftExt(m matrix.Matrix[field.Ext], shift field.Elem) matrix.Matrix[field.Ext] {
	return dft.CosetIDFTBatch[field.Ext](algebra.ExtRing{}, m, shift)
}

// LayerOpening is one layer's contribution to a query proof: the sibling
// value the verifier cannot recompute on its own, plus the MMCS
// authentication path proving it belongs to that layer's commitment.
type LayerOpening struct {
	Sibling  field.Ext
	AuthPath []mmcs.Digest
}

// QueryProof is the full per-index opening: the MMCS openings of every
// committed input codeword at the sampled index (binding the proof to the
// trace/quotient commitments the query index was actually drawn against,
// matching original_source/fri/src/prover.rs's answer_query() calling
// prove_input(index) before folding the commit-phase layers), followed by
// one LayerOpening per fold round, innermost layer first.
type QueryProof struct {
	InputProof []mmcs.Opening[field.Elem]
	Openings   []LayerOpening
}

// Proof is the FRI proof: commit-phase digests, one query proof per
// sampled index, the final polynomial's coefficients, and the grinding
// witness.
type Proof struct {
	CommitPhaseCommits []mmcs.Digest
	QueryProofs        []QueryProof
	FinalPoly          []field.Ext
	PowWitness         uint64
}

type committedLayer struct {
	commitment *mmcs.Commitment[field.Ext]
	height     int
}

// Prove runs the full FRI protocol over inputs - codewords of strictly
// decreasing length sharing the same blowup factor - absorbing and
// sampling through ch in the order the commit and query phases require.
// inputCommits are the already-committed MMCS trees the input codewords
// were themselves derived from (e.g. the trace and quotient-chunk
// commitments); every sampled query index opens each of them so the
// resulting proof is cryptographically bound to those commitments rather
// than auditing a freshly synthesized codeword in isolation.
func Prove(cfg Config, inputs []Codeword, inputCommits []*mmcs.Commitment[field.Elem], ch *challenger.Challenger) (*Proof, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("fri: prove requires at least one input codeword")
	}

	pending := append([]Codeword(nil), inputs...)
	sort.Slice(pending, func(i, j int) bool { return pending[i].LogLen > pending[j].LogLen })

	queryBits := pending[0].LogLen
	finalLogLen := cfg.LogBlowup + cfg.LogMaxFinalPolyLen

	var active []field.Ext
	var activeLogLen int
	var activeShift field.Elem
	var layers []committedLayer
	var commits []mmcs.Digest

	logLen := pending[0].LogLen
	for logLen > finalLogLen {
		logLen--

		for len(pending) > 0 && pending[0].LogLen > logLen {
			cw := pending[0]
			pending = pending[1:]
			if active == nil {
				active = append([]field.Ext(nil), cw.Values...)
				activeLogLen = cw.LogLen
				activeShift = cw.Shift
				continue
			}
			if cw.LogLen != activeLogLen {
				return nil, fmt.Errorf("fri: input codeword of log-length %d cannot combine with active layer of log-length %d", cw.LogLen, activeLogLen)
			}
			for i := range active {
				active[i] = field.ExtAdd(active[i], cw.Values[i])
			}
		}
		if active == nil {
			return nil, fmt.Errorf("fri: no active codeword to fold at log-length %d", logLen+1)
		}

		height := len(active) / 2
		m := matrix.FromRows(append([]field.Ext(nil), active...), 2)
		commitment, err := mmcs.Commit([]mmcs.Input[field.Ext]{mmcs.ExtInput(m)})
		if err != nil {
			return nil, err
		}
		layers = append(layers, committedLayer{commitment: commitment, height: height})
		commits = append(commits, commitment.Root)
		ch.ObserveDigest(commitment.Root[:])

		beta := ch.SampleExt()

		folded := make([]field.Ext, height)
		for i := 0; i < height; i++ {
			e0, e1 := active[2*i], active[2*i+1]
			x0 := DomainPoint(activeShift, activeLogLen, 2*i)
			x1 := field.Neg(x0)
			numerator := field.ExtSub(beta, field.FromBase(x0))
			denominator := field.FromBase(field.Sub(x1, x0))
			coeff := field.ExtDiv(numerator, denominator)
			folded[i] = field.ExtAdd(e0, field.ExtMul(coeff, field.ExtSub(e1, e0)))
		}

		active = folded
		activeLogLen = logLen
		activeShift = field.Mul(activeShift, activeShift)

		if len(pending) == 0 && logLen <= finalLogLen {
			break
		}
	}
	if active == nil || activeLogLen != finalLogLen {
		return nil, fmt.Errorf("fri: folding did not converge to the configured final length")
	}

	bitRevFinal := matrix.FromRows(active, 1)
	bitRevFinal.BitRev = true
	naturalFinal := matrix.ReverseRows(bitRevFinal)
	coeffs := idftExt(naturalFinal, activeShift)
	finalPolyLen := 1 << uint(cfg.LogMaxFinalPolyLen)
	finalPoly := make([]field.Ext, finalPolyLen)
	copy(finalPoly, coeffs.Values[:finalPolyLen])
	for _, c := range finalPoly {
		ch.ObserveExt(c)
	}

	powWitness := ch.Grind(cfg.ProofOfWorkBits)

	queryProofs := make([]QueryProof, 0, cfg.NumQueries)
	for q := 0; q < cfg.NumQueries; q++ {
		j := ch.SampleBits(queryBits)

		inputProof := make([]mmcs.Opening[field.Elem], len(inputCommits))
		for k, ic := range inputCommits {
			inputProof[k] = ic.OpenBatch(int(j))
		}

		openings := make([]LayerOpening, 0, len(layers))
		for _, layer := range layers {
			opening := layer.commitment.OpenBatch(int(j >> 1))
			row := opening.Rows[0]
			lowBit := j & 1
			kept := row[1-lowBit]
			openings = append(openings, LayerOpening{Sibling: kept, AuthPath: opening.Siblings})
			j >>= 1
		}
		queryProofs = append(queryProofs, QueryProof{InputProof: inputProof, Openings: openings})
	}

	return &Proof{
		CommitPhaseCommits: commits,
		QueryProofs:        queryProofs,
		FinalPoly:          finalPoly,
		PowWitness:         powWitness,
	}, nil
}
