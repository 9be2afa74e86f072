// Package dft implements the batched radix-2 number-theoretic transform and
// the coset low-degree extension built on top of it: DFTBatch, IDFTBatch,
// CosetDFTBatch, CosetIDFTBatch, LDEBatch and CosetLDEBatch, generic over
// any algebra.Ring[T] so the same butterfly network serves both the base
// field (trace columns) and the extension field (opened codewords).
//
// The algorithms mirror original_source/dft/src/traits.rs's
// TwoAdicSubgroupDft default method bodies: idft is computed as a forward
// dft followed by dividing by the domain size and swapping row r with row
// height-r for r in 1..height/2 (the standard DIF/DIT duality trick for
// power-of-two NTTs), and lde/coset_lde zero-extend a matrix's rows before
// re-transforming at a larger size.
package dft

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tessera-stark/tessera/internal/algebra"
	"github.com/tessera-stark/tessera/internal/field"
	"github.com/tessera-stark/tessera/internal/matrix"
)

// DFTBatch computes, for every column of m independently, the evaluations of
// the column's interpolating polynomial over the size-height two-adic
// subgroup, in natural row order (row i holds the evaluation at
// generator^i). height must be a power of two. Callers that need
// bit-reversed row order for sibling-adjacency (FRI, MMCS) apply
// matrix.ReverseRows explicitly afterwards.
func DFTBatch[T any](ring algebra.Ring[T], m matrix.Matrix[T]) matrix.Matrix[T] {
	out := m.Clone()
	if out.Height() <= 1 {
		return out
	}
	bitReversePermuteRows(out)
	radix2DitButterflies(ring, out)
	return out
}

// IDFTBatch recovers, for every column of m (natural-order evaluations over
// the size-height two-adic subgroup), the coefficients of the interpolating
// polynomial in natural order. It follows the same trick as
// original_source/dft/src/traits.rs: run the forward transform, divide by
// height, then swap row r with row height-r for r in 1..height/2.
func IDFTBatch[T any](ring algebra.Ring[T], m matrix.Matrix[T]) matrix.Matrix[T] {
	height := m.Height()
	forward := DFTBatch(ring, m)
	if height <= 1 {
		return forward
	}
	invHeight := field.Inv(field.FromUint64(uint64(height)))
	scaleRows(ring, forward, invHeight)
	for r := 1; r < height/2; r++ {
		swapRows(forward, r, height-r)
	}
	return forward
}

// CosetDFTBatch evaluates m's column polynomials over the coset shift*H
// instead of H, by scaling row i's contribution by shift^i before
// transforming.
func CosetDFTBatch[T any](ring algebra.Ring[T], m matrix.Matrix[T], shift field.Elem) matrix.Matrix[T] {
	shifted := m.Clone()
	power := field.One
	width := shifted.Width
	for r := 0; r < shifted.Height(); r++ {
		if power != field.One {
			row := shifted.Row(r)
			for c := 0; c < width; c++ {
				row[c] = ring.MulBase(row[c], power)
			}
		}
		power = field.Mul(power, shift)
	}
	return DFTBatch(ring, shifted)
}

// CosetIDFTBatch is the inverse of CosetDFTBatch: idft at the origin then
// unscale each coefficient row by shift^-i.
func CosetIDFTBatch[T any](ring algebra.Ring[T], m matrix.Matrix[T], shift field.Elem) matrix.Matrix[T] {
	coeffs := IDFTBatch(ring, m)
	invShift := field.Inv(shift)
	power := field.One
	width := coeffs.Width
	for r := 0; r < coeffs.Height(); r++ {
		if power != field.One {
			row := coeffs.Row(r)
			for c := 0; c < width; c++ {
				row[c] = ring.MulBase(row[c], power)
			}
		}
		power = field.Mul(power, invShift)
	}
	return coeffs
}

// LDEBatch extends m (height h) to a low-degree-extension codeword of
// height newHeight >= h: it recovers coefficients via IDFTBatch, zero-pads
// the row dimension, and re-evaluates over the larger domain.
func LDEBatch[T any](ring algebra.Ring[T], m matrix.Matrix[T], newHeight int) matrix.Matrix[T] {
	return extendAndTransform(ring, m, newHeight, field.One)
}

// CosetLDEBatch is LDEBatch but the re-evaluation domain is shift*H_new
// instead of H_new — the operation the prover actually uses to build the
// blown-up trace codeword committed in the first round.
func CosetLDEBatch[T any](ring algebra.Ring[T], m matrix.Matrix[T], newHeight int, shift field.Elem) matrix.Matrix[T] {
	return extendAndTransform(ring, m, newHeight, shift)
}

func extendAndTransform[T any](ring algebra.Ring[T], m matrix.Matrix[T], newHeight int, shift field.Elem) matrix.Matrix[T] {
	coeffs := IDFTBatch(ring, m)
	oldHeight := coeffs.Height()
	if newHeight < oldHeight {
		panic("dft: cannot extend to a smaller height")
	}
	padded := matrix.New[T](newHeight, coeffs.Width, ring.Zero())
	copy(padded.Values[:len(coeffs.Values)], coeffs.Values)
	if shift == field.One {
		return DFTBatch(ring, padded)
	}
	return CosetDFTBatch(ring, padded, shift)
}

// radix2DitButterflies runs an in-place decimation-in-time NTT over rows
// already in bit-reversed order, parallelizing independent butterfly pairs
// within each stage across goroutines with a join barrier between stages,
// since each stage depends on the previous one's output.
func radix2DitButterflies[T any](ring algebra.Ring[T], m matrix.Matrix[T]) {
	height := m.Height()
	logHeight := field.Log2Strict(height)
	for stage := 0; stage < logHeight; stage++ {
		halfBlock := 1 << stage
		block := halfBlock << 1
		root := field.TwoAdicGenerator(stage + 1)

		g, _ := errgroup.WithContext(context.Background())
		for blockStart := 0; blockStart < height; blockStart += block {
			blockStart := blockStart
			g.Go(func() error {
				twiddle := field.One
				for k := 0; k < halfBlock; k++ {
					top := blockStart + k
					bot := top + halfBlock
					topRow, botRow := m.Row(top), m.Row(bot)
					for c := 0; c < m.Width; c++ {
						t := ring.MulBase(botRow[c], twiddle)
						u := topRow[c]
						topRow[c] = ring.Add(u, t)
						botRow[c] = ring.Sub(u, t)
					}
					twiddle = field.Mul(twiddle, root)
				}
				return nil
			})
		}
		_ = g.Wait()
	}
}

func bitReversePermuteRows[T any](m matrix.Matrix[T]) {
	height := m.Height()
	bits := field.Log2Strict(height)
	for r := 0; r < height; r++ {
		rr := int(field.ReverseBits(uint64(r), bits))
		if rr > r {
			swapRows(m, r, rr)
		}
	}
}

func swapRows[T any](m matrix.Matrix[T], a, b int) {
	ra, rb := m.Row(a), m.Row(b)
	for i := range ra {
		ra[i], rb[i] = rb[i], ra[i]
	}
}

func scaleRows[T any](ring algebra.Ring[T], m matrix.Matrix[T], scalar field.Elem) {
	for r := 0; r < m.Height(); r++ {
		row := m.Row(r)
		for c := range row {
			row[c] = ring.MulBase(row[c], scalar)
		}
	}
}
