// Package quotient builds the quotient polynomial's evaluations from an
// AIR's folded constraints and splits/flattens the result into the
// power-of-two, base-field matrices the MMCS commits to. Grounded on
// original_source/uni-stark/src/prover.rs's
// quotient_values() (the alpha-powers accumulator, packed per-row fold)
// and its split_evals/flatten_to_base step, generalized from Rust's
// compile-time packing to goroutine fan-out over fixed 256-row lanes.
package quotient

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tessera-stark/tessera/internal/air"
	"github.com/tessera-stark/tessera/internal/field"
	"github.com/tessera-stark/tessera/internal/matrix"
)

// Selectors evaluates the Lagrange selector polynomials at an arbitrary
// domain point: is_first_row(x) = Z_H(x)/(x-1), is_last_row(x) =
// Z_H(x)/(x-g^-1), is_transition(x) = x-g^-1, where g generates the trace's
// subgroup H of order traceSize. Grounded on
// original_source/uni-stark/src/prover.rs's selectors_at_point (the
// vanishing-polynomial-over-linear-factor construction), not a boolean
// indicator: the quotient domain is a disjoint coset from the trace
// domain (see DESIGN.md), so no quotient-domain index ever lands exactly
// on a trace row and a 0/1 mask by index is wrong everywhere it matters.
type Selectors struct {
	step        int
	invTraceGen field.Elem
}

// NewSelectors builds the selector evaluator for a trace of the given size
// embedded in a quotient domain of the given size, where step =
// quotientSize/traceSize relates a quotient-domain index to the
// corresponding trace row for the purposes of reading "next row" values
// out of the extended trace.
func NewSelectors(quotientSize, traceSize int) *Selectors {
	logTraceHeight := field.Log2Strict(traceSize)
	traceGen := field.TwoAdicGenerator(logTraceHeight)
	return &Selectors{
		step:        quotientSize / traceSize,
		invTraceGen: field.Inv(traceGen),
	}
}

// isFirstRow evaluates Z_H(x)/(x-1) at a point x where the vanishing
// polynomial already evaluates to zH.
func (s *Selectors) isFirstRow(zH, x field.Elem) field.Elem {
	return field.Div(zH, field.Sub(x, field.One))
}

// isLastRow evaluates Z_H(x)/(x-g^-1) at a point x where the vanishing
// polynomial already evaluates to zH.
func (s *Selectors) isLastRow(zH, x field.Elem) field.Elem {
	return field.Div(zH, field.Sub(x, s.invTraceGen))
}

// isTransition evaluates x-g^-1, which vanishes only at the trace's last
// row (so the transition constraints it gates are skipped exactly there).
func (s *Selectors) isTransition(x field.Elem) field.Elem {
	return field.Sub(x, s.invTraceGen)
}

// vanishing returns Z_H(x) = x^{2^logTraceHeight} - 1.
func vanishing(logTraceHeight int, x field.Elem) field.Elem {
	xN := field.Exp(x, uint64(1)<<uint(logTraceHeight))
	return field.Sub(xN, field.One)
}

// invVanishing returns 1/Z_H(x).
func invVanishing(logTraceHeight int, x field.Elem) field.Elem {
	return field.Inv(vanishing(logTraceHeight, x))
}

// Values computes the quotient polynomial's evaluations over the quotient
// domain {shift * gen^i : i in [0, quotientSize)}: for each index, fold
// the AIR's constraints (current row, next row,
// public values, selectors) into an extension-field accumulator via
// Horner's rule, then scale by the inverse vanishing-polynomial value.
func Values(
	a air.FibonacciAIR,
	extendedTrace matrix.Matrix[field.Elem],
	quotientGen field.Elem,
	shift field.Elem,
	logTraceHeight int,
	publicValues []field.Elem,
	alpha field.Ext,
) []field.Ext {
	quotientSize := extendedTrace.Height()
	traceSize := 1 << uint(logTraceHeight)
	sel := NewSelectors(quotientSize, traceSize)

	out := make([]field.Ext, quotientSize)
	x := shift

	g, _ := errgroup.WithContext(context.Background())
	const lanes = 256
	for start := 0; start < quotientSize; start += lanes {
		start := start
		end := start + lanes
		if end > quotientSize {
			end = quotientSize
		}
		xStart := field.Mul(x, field.Exp(quotientGen, uint64(start)))
		g.Go(func() error {
			point := xStart
			for i := start; i < end; i++ {
				local := extendedTrace.Row(i)
				next := extendedTrace.Row((i + sel.step) % quotientSize)

				zH := vanishing(logTraceHeight, point)
				folder, acc := air.NewNumericFolder(local, next, publicValues,
					sel.isFirstRow(zH, point), sel.isLastRow(zH, point), sel.isTransition(point), alpha)
				air.Eval(a, folder)

				out[i] = field.ExtMulBase(acc(), field.Inv(zH))
				point = field.Mul(point, quotientGen)
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// SplitAndFlatten partitions quotientValues into quotientDegree
// (=2^lq) interleaved chunks of length traceSize, then flattens every
// extension-field chunk into field.ExtDegree base-field matrices, so the
// result is exactly the d*2^lq matrices handed to the MMCS. Chunk c's
// values are quotientValues[j*quotientDegree+c] for
// j in [0, traceSize) - the interleaving a coset-disjoint split induces
// when the quotient domain is a single contiguous coset of size
// traceSize*quotientDegree.
func SplitAndFlatten(quotientValues []field.Ext, quotientDegree int) []matrix.Matrix[field.Elem] {
	traceSize := len(quotientValues) / quotientDegree
	out := make([]matrix.Matrix[field.Elem], 0, quotientDegree*field.ExtDegree)

	for c := 0; c < quotientDegree; c++ {
		basisValues := make([][]field.Elem, field.ExtDegree)
		for b := range basisValues {
			basisValues[b] = make([]field.Elem, traceSize)
		}
		for j := 0; j < traceSize; j++ {
			v := quotientValues[j*quotientDegree+c]
			for b := 0; b < field.ExtDegree; b++ {
				basisValues[b][j] = v[b]
			}
		}
		for b := 0; b < field.ExtDegree; b++ {
			out = append(out, matrix.FromRows(basisValues[b], 1))
		}
	}
	return out
}
