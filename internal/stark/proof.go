package stark

import (
	"github.com/tessera-stark/tessera/internal/field"
	"github.com/tessera-stark/tessera/internal/fri"
	"github.com/tessera-stark/tessera/internal/mmcs"
)

// Claim is the public statement the proof attests to: the ordered sequence
// of base-field public values the verifier also absorbs.
type Claim struct {
	PublicValues []field.Elem
}

// Proof holds the commitments, the values opened at the out-of-domain
// point(s), the FRI opening proof that backs those openings, and the
// trace's degree.
type Proof struct {
	TraceCommitment    mmcs.Digest
	QuotientCommitment mmcs.Digest

	TraceLocal     []field.Ext
	TraceNext      []field.Ext
	QuotientChunks [][field.ExtDegree]field.Ext

	OpeningProof *fri.Proof
	DegreeBits   uint8
}
