package fri

import "github.com/tessera-stark/tessera/internal/field"

// Codeword is one of the inputs FRI's commit phase consumes: an
// extension-field evaluation vector over a coset of a two-adic subgroup of
// size 2^LogLen, stored in bit-reversed order so sibling pairs are
// adjacent.
type Codeword struct {
	Values []field.Ext
	LogLen int
	Shift  field.Elem
}

// DomainPoint returns the domain point at bit-reversed position pos within
// a coset of size 2^logLen and shift `shift`: the point whose natural
// (unreversed) exponent is ReverseBits(pos, logLen). Exported so the STARK
// orchestrator can build DEEP-quotient codewords over the same committed
// domains this package folds.
func DomainPoint(shift field.Elem, logLen, pos int) field.Elem {
	gen := field.TwoAdicGenerator(logLen)
	naturalExp := field.ReverseBits(uint64(pos), logLen)
	return field.Mul(shift, field.Exp(gen, naturalExp))
}
