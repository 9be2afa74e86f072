package stark

import (
	"fmt"

	"github.com/tessera-stark/tessera/internal/air"
	"github.com/tessera-stark/tessera/internal/algebra"
	"github.com/tessera-stark/tessera/internal/challenger"
	"github.com/tessera-stark/tessera/internal/dft"
	"github.com/tessera-stark/tessera/internal/field"
	"github.com/tessera-stark/tessera/internal/fri"
	"github.com/tessera-stark/tessera/internal/matrix"
	"github.com/tessera-stark/tessera/internal/mmcs"
	"github.com/tessera-stark/tessera/internal/quotient"
)

// traceShift and quotientShift fix the two coset shifts the trace's
// commitment domain and the quotient's evaluation domain use. Distinct
// constants are enough to keep the two domains disjoint for any subgroup
// order this prover deals with - a simplification over deriving a
// minimal-disjoint shift, recorded in DESIGN.md.
var (
	traceShift    = field.FromUint64(7)
	quotientShift = field.FromUint64(11)
)

// Prove runs the full commit-fold-commit-open pipeline against a
// FibonacciAIR, producing a complete Proof or returning an error on any
// precondition violation. Every challenger interaction happens in a fixed
// order, matching on both the prover and (eventual) verifier side.
func Prove(cfg Config, a air.FibonacciAIR, trace matrix.Matrix[field.Elem], claim Claim) (*Proof, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	height := trace.Height()
	if !field.IsPowerOfTwo(height) {
		return nil, fmt.Errorf("stark: trace height %d is not a power of two", height)
	}
	if trace.Width != a.Width() {
		return nil, fmt.Errorf("stark: trace width %d does not match AIR width %d", trace.Width, a.Width())
	}

	if cfg.Debug {
		if err := air.CheckConstraints(a, trace, claim.PublicValues); err != nil {
			return nil, err
		}
	}

	logDegree := field.Log2Strict(height)

	constraintDegree := air.ConstraintDegree(a)
	if constraintDegree <= 1 {
		return nil, fmt.Errorf("stark: constraint degree %d must exceed 1", constraintDegree)
	}
	logQuotientDegree := ceilLog2(constraintDegree - 1)
	quotientDegree := 1 << uint(logQuotientDegree)

	cfg.Log.Info().Int("log_degree", logDegree).Int("log_quotient_degree", logQuotientDegree).Msg("stark: trace parameters resolved")

	ch := challenger.New()

	// Step 3: commit trace on its blown-up coset domain.
	logBlowup := cfg.FRI.LogBlowup
	traceLDEHeight := height << uint(logBlowup)
	traceLDE := dft.CosetLDEBatch[field.Elem](algebra.BaseRing{}, trace, traceLDEHeight, traceShift)
	traceLDEBitRev := matrix.ReverseRows(traceLDE)

	traceCommitment, err := mmcs.Commit([]mmcs.Input[field.Elem]{mmcs.BaseInput(traceLDEBitRev)})
	if err != nil {
		return nil, err
	}
	cfg.Log.Debug().Msg("stark: trace committed")

	// Step 4: observe log_degree, trace_commit, public values.
	ch.Observe([]byte{byte(logDegree)})
	ch.ObserveDigest(traceCommitment.Root[:])
	for _, v := range claim.PublicValues {
		ch.ObserveElem(v)
	}

	// Step 5: sample alpha.
	alpha := ch.SampleExt()

	// Steps 6-7: evaluate trace on the quotient domain.
	logQuotientSize := logDegree + logQuotientDegree
	quotientGen := field.TwoAdicGenerator(logQuotientSize)
	traceOnQuotientDomain := dft.CosetLDEBatch[field.Elem](algebra.BaseRing{}, trace, 1<<uint(logQuotientSize), quotientShift)

	// Step 8: fold constraints into quotient values.
	quotientValues := quotient.Values(a, traceOnQuotientDomain, quotientGen, quotientShift, logDegree, claim.PublicValues, alpha)

	// Step 9: split and commit quotient chunks.
	chunkMatrices := quotient.SplitAndFlatten(quotientValues, quotientDegree)
	chunkLDEs := make([]matrix.Matrix[field.Elem], len(chunkMatrices))
	chunkLDEInputs := make([]mmcs.Input[field.Elem], len(chunkMatrices))
	for i, chunk := range chunkMatrices {
		lde := dft.CosetLDEBatch[field.Elem](algebra.BaseRing{}, chunk, traceLDEHeight, traceShift)
		bitRev := matrix.ReverseRows(lde)
		chunkLDEs[i] = bitRev
		chunkLDEInputs[i] = mmcs.BaseInput(bitRev)
	}
	quotientCommitment, err := mmcs.Commit(chunkLDEInputs)
	if err != nil {
		return nil, err
	}
	cfg.Log.Debug().Int("chunks", len(chunkMatrices)).Msg("stark: quotient chunks committed")

	// Step 10: observe quotient_commit.
	ch.ObserveDigest(quotientCommitment.Root[:])

	// Step 11: sample zeta, compute zeta_next.
	zeta := ch.SampleExt()
	traceGen := field.TwoAdicGenerator(logDegree)
	zetaNext := field.ExtMulBase(zeta, traceGen)

	// Step 12: open trace at {zeta, zeta_next} and quotient chunks at {zeta}.
	traceCoeffs := dft.IDFTBatch[field.Elem](algebra.BaseRing{}, trace)
	traceLocal := evalColumnsAt(traceCoeffs, zeta)
	traceNext := evalColumnsAt(traceCoeffs, zetaNext)

	chunkOpenings := make([]field.Ext, len(chunkMatrices))
	for i, chunk := range chunkMatrices {
		coeffs := dft.IDFTBatch[field.Elem](algebra.BaseRing{}, chunk)
		chunkOpenings[i] = hornerExt(coeffs.Col(0), zeta)
	}

	gamma := ch.SampleExt()
	combined := buildDeepCodeword(traceLDEBitRev, traceLocal, traceNext, zeta, zetaNext, traceShift, logBlowup+logDegree, chunkLDEs, chunkOpenings, gamma)

	friInput := fri.Codeword{Values: combined, LogLen: logBlowup + logDegree, Shift: traceShift}
	inputCommits := []*mmcs.Commitment[field.Elem]{traceCommitment, quotientCommitment}
	friProof, err := fri.Prove(cfg.FRI, []fri.Codeword{friInput}, inputCommits, ch)
	if err != nil {
		return nil, err
	}

	groupedChunks := make([][field.ExtDegree]field.Ext, quotientDegree)
	for c := 0; c < quotientDegree; c++ {
		for b := 0; b < field.ExtDegree; b++ {
			groupedChunks[c][b] = chunkOpenings[c*field.ExtDegree+b]
		}
	}

	return &Proof{
		TraceCommitment:    traceCommitment.Root,
		QuotientCommitment: quotientCommitment.Root,
		TraceLocal:         traceLocal,
		TraceNext:          traceNext,
		QuotientChunks:     groupedChunks,
		OpeningProof:       friProof,
		DegreeBits:         uint8(logDegree),
	}, nil
}

// evalColumnsAt evaluates every column of coeffs (base-field coefficients,
// natural order) at the extension-field point z via Horner's rule.
func evalColumnsAt(coeffs matrix.Matrix[field.Elem], z field.Ext) []field.Ext {
	out := make([]field.Ext, coeffs.Width)
	for c := 0; c < coeffs.Width; c++ {
		out[c] = hornerExt(coeffs.Col(c), z)
	}
	return out
}

// hornerExt evaluates a base-field coefficient vector (lowest degree
// first) at an extension-field point via Horner's rule, run from the
// highest-degree coefficient down.
func hornerExt(coeffs []field.Elem, z field.Ext) field.Ext {
	acc := field.ExtZero
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc = field.ExtAdd(field.ExtMul(acc, z), field.FromBase(coeffs[i]))
	}
	return acc
}

// buildDeepCodeword assembles the single randomly-batched DEEP-quotient
// codeword FRI audits: for every trace column and every quotient chunk,
// (committed_value(x) - claimed_value) / (x - point) contributes one term,
// weighted by successive powers of gamma, over the shared bit-reversed
// commitment domain of length 2^logLen.
func buildDeepCodeword(
	traceLDEBitRev matrix.Matrix[field.Elem],
	traceLocal, traceNext []field.Ext,
	zeta, zetaNext field.Ext,
	shift field.Elem,
	logLen int,
	chunkLDEs []matrix.Matrix[field.Elem],
	chunkOpenings []field.Ext,
	gamma field.Ext,
) []field.Ext {
	size := 1 << uint(logLen)
	out := make([]field.Ext, size)

	for pos := 0; pos < size; pos++ {
		x := fri.DomainPoint(shift, logLen, pos)
		xExt := field.FromBase(x)
		denomLocal := field.ExtSub(xExt, zeta)
		denomNext := field.ExtSub(xExt, zetaNext)

		power := field.ExtOne
		acc := field.ExtZero

		row := traceLDEBitRev.Row(pos)
		for c := 0; c < len(row); c++ {
			localNum := field.ExtSub(field.FromBase(row[c]), traceLocal[c])
			acc = field.ExtAdd(acc, field.ExtMul(power, field.ExtDiv(localNum, denomLocal)))
			power = field.ExtMul(power, gamma)

			nextNum := field.ExtSub(field.FromBase(row[c]), traceNext[c])
			acc = field.ExtAdd(acc, field.ExtMul(power, field.ExtDiv(nextNum, denomNext)))
			power = field.ExtMul(power, gamma)
		}

		for k, lde := range chunkLDEs {
			num := field.ExtSub(field.FromBase(lde.Row(pos)[0]), chunkOpenings[k])
			acc = field.ExtAdd(acc, field.ExtMul(power, field.ExtDiv(num, denomLocal)))
			power = field.ExtMul(power, gamma)
		}

		out[pos] = acc
	}
	return out
}

func ceilLog2(n int) int {
	if n <= 1 {
		return 0
	}
	bits := 0
	v := 1
	for v < n {
		v <<= 1
		bits++
	}
	return bits
}
