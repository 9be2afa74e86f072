// Package mmcs implements a mixed-matrix commitment scheme: a single
// Merkle-style digest committing several matrices of different,
// power-of-two heights at once, grafting each shorter matrix's row
// digests in at the tree level whose node count matches that matrix's
// height. This generalizes the teacher's core.MerkleTree (a single flat
// leaf vector) to the "several logical matrices sharing one tree" idea
// sketched in original_source/tensor-pcs/src/wrapped_matrix.rs, using the
// same level-array construction and sibling-collection approach as
// core/merkle.go's Proof/VerifyProof.
//
// Only the prover-side operations (Commit, OpenBatch) are implemented -
// this repository builds a prover, not a verifier.
package mmcs

import (
	"fmt"
	"sort"

	"golang.org/x/crypto/sha3"

	"github.com/tessera-stark/tessera/internal/field"
	"github.com/tessera-stark/tessera/internal/matrix"
)

// Digest is a single commitment tree node.
type Digest [32]byte

// Input is one matrix to be folded into a commitment, paired with the
// function that serializes one of its rows for hashing. RowBytes lets the
// same Commit implementation serve matrix.Matrix[field.Elem] and
// matrix.Matrix[field.Ext] inputs side by side in one commitment.
type Input[T any] struct {
	Values   matrix.Matrix[T]
	RowBytes func(row []T) []byte
}

// BaseInput wraps a base-field matrix for committing.
func BaseInput(m matrix.Matrix[field.Elem]) Input[field.Elem] {
	return Input[field.Elem]{Values: m, RowBytes: rowBytesBase}
}

// ExtInput wraps an extension-field matrix for committing.
func ExtInput(m matrix.Matrix[field.Ext]) Input[field.Ext] {
	return Input[field.Ext]{Values: m, RowBytes: rowBytesExt}
}

func rowBytesBase(row []field.Elem) []byte {
	out := make([]byte, 0, len(row)*4)
	for _, v := range row {
		out = append(out, v.Bytes()...)
	}
	return out
}

func rowBytesExt(row []field.Ext) []byte {
	out := make([]byte, 0, len(row)*16)
	for _, v := range row {
		out = append(out, v.Bytes()...)
	}
	return out
}

type heightGroup[T any] struct {
	height int
	inputs []Input[T]
	leaves []Digest
}

// Commitment is a committed batch of matrices: the tree levels are kept in
// full so the prover can answer opening queries at any index.
type Commitment[T any] struct {
	Root   Digest
	Levels [][]Digest
	Inputs []Input[T]
}

// Opening is the prover's response to a query at one index: the opened row
// of every committed matrix (reduced modulo that matrix's own height) plus
// the sibling digests needed to walk from the tallest matrix's leaf level
// up to the root.
type Opening[T any] struct {
	Rows      [][]T
	Siblings  []Digest
	LeafIndex int
}

func leafHash(data []byte) Digest {
	return Digest(sha3.Sum256(data))
}

func nodeHash(left, right Digest) Digest {
	buf := make([]byte, 0, 64)
	buf = append(buf, left[:]...)
	buf = append(buf, right[:]...)
	return Digest(sha3.Sum256(buf))
}

// Commit builds a mixed-matrix commitment over inputs, which may have
// different, power-of-two heights. At least one input is required.
func Commit[T any](inputs []Input[T]) (*Commitment[T], error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("mmcs: commit requires at least one matrix")
	}

	groups, err := groupByHeight(inputs)
	if err != nil {
		return nil, err
	}

	maxHeight := groups[0].height
	levels := make([][]Digest, 0, field.Log2Strict(maxHeight)+1)
	current := groups[0].leaves
	levels = append(levels, current)

	groupIdx := 1
	for len(current) > 1 {
		next := make([]Digest, len(current)/2)
		for i := range next {
			next[i] = nodeHash(current[2*i], current[2*i+1])
		}
		if groupIdx < len(groups) && groups[groupIdx].height == len(next) {
			g := groups[groupIdx]
			for i := range next {
				next[i] = nodeHash(next[i], g.leaves[i])
			}
			groupIdx++
		}
		levels = append(levels, next)
		current = next
	}

	return &Commitment[T]{Root: current[0], Levels: levels, Inputs: inputs}, nil
}

func groupByHeight[T any](inputs []Input[T]) ([]heightGroup[T], error) {
	byHeight := map[int][]Input[T]{}
	for _, in := range inputs {
		h := in.Values.Height()
		if !field.IsPowerOfTwo(h) {
			return nil, fmt.Errorf("mmcs: matrix height %d is not a power of two", h)
		}
		byHeight[h] = append(byHeight[h], in)
	}

	heights := make([]int, 0, len(byHeight))
	for h := range byHeight {
		heights = append(heights, h)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(heights)))

	groups := make([]heightGroup[T], 0, len(heights))
	for _, h := range heights {
		group := byHeight[h]
		leaves := make([]Digest, h)
		for row := 0; row < h; row++ {
			buf := make([]byte, 0, 64)
			for _, in := range group {
				buf = append(buf, in.RowBytes(in.Values.Row(row))...)
			}
			leaves[row] = leafHash(buf)
		}
		groups = append(groups, heightGroup[T]{height: h, inputs: group, leaves: leaves})
	}
	return groups, nil
}

// OpenBatch answers a query at the given index: every input matrix's row
// at index%height is returned alongside the sibling path threading up to
// the root from the tallest matrix's leaf level.
func (c *Commitment[T]) OpenBatch(index int) Opening[T] {
	maxHeight := len(c.Levels[0])
	leafIndex := index % maxHeight

	rows := make([][]T, len(c.Inputs))
	for i, in := range c.Inputs {
		h := in.Values.Height()
		row := index % h
		vals := make([]T, len(in.Values.Row(row)))
		copy(vals, in.Values.Row(row))
		rows[i] = vals
	}

	idx := leafIndex
	siblings := make([]Digest, 0, len(c.Levels)-1)
	for lvl := 0; lvl < len(c.Levels)-1; lvl++ {
		levelNodes := c.Levels[lvl]
		sibIdx := idx ^ 1
		siblings = append(siblings, levelNodes[sibIdx])
		idx >>= 1
	}

	return Opening[T]{Rows: rows, Siblings: siblings, LeafIndex: leafIndex}
}
