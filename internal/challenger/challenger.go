// Package challenger implements the Fiat-Shamir transcript the prover uses
// to derive all of its "random" values deterministically from whatever has
// already been sent: commitments, public values, and previously sampled
// values. It plays the role of the teacher's utils.Channel, generalized
// from a single-hash rolling state to the observe/sample/grind surface a
// FRI + STARK prover needs, and defaulting to the same sha3 hash the
// teacher's Channel falls back to for every unrecognized hashFunc.
package challenger

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/tessera-stark/tessera/internal/field"
)

// Challenger is a sponge-style transcript: Observe absorbs prover messages,
// Sample* squeezes fresh challenges, and Grind finds a proof-of-work nonce
// that binds the transcript before the query phase samples indices.
type Challenger struct {
	state [32]byte
}

// New returns a challenger with a fixed, empty initial state - equivalent
// to the teacher's Channel starting from state []byte{0}.
func New() *Challenger {
	return &Challenger{}
}

// Observe absorbs raw bytes into the transcript state.
func (c *Challenger) Observe(data []byte) {
	buf := make([]byte, 0, len(c.state)+len(data))
	buf = append(buf, c.state[:]...)
	buf = append(buf, data...)
	c.state = sha3.Sum256(buf)
}

// ObserveElem absorbs a base-field element.
func (c *Challenger) ObserveElem(v field.Elem) { c.Observe(v.Bytes()) }

// ObserveExt absorbs an extension-field element.
func (c *Challenger) ObserveExt(v field.Ext) { c.Observe(v.Bytes()) }

// ObserveDigest absorbs a commitment digest (any 32-byte hash output, e.g.
// an mmcs.Digest - accepted as a plain slice to avoid an import cycle).
func (c *Challenger) ObserveDigest(digest []byte) { c.Observe(digest) }

// squeeze advances the state by hashing it and returns the new state,
// used as the raw material for every Sample* method.
func (c *Challenger) squeeze() [32]byte {
	c.state = sha3.Sum256(c.state[:])
	return c.state
}

// SampleField draws a uniformly random base-field element via rejection
// sampling over the squeezed bytes interpreted as a big-endian integer.
func (c *Challenger) SampleField() field.Elem {
	for {
		out := c.squeeze()
		v := binary.BigEndian.Uint64(out[0:8])
		if v < rejectionBound {
			return field.FromUint64(v)
		}
	}
}

// rejectionBound is the largest multiple of field.Modulus not exceeding
// 2^64, so reducing any draw below it mod Modulus stays uniform.
const rejectionBound = (1<<64 - 1) / uint64(field.Modulus) * uint64(field.Modulus)

// SampleExt draws a uniformly random extension-field element by sampling
// one base-field coordinate at a time.
func (c *Challenger) SampleExt() field.Ext {
	var e field.Ext
	for i := range e {
		e[i] = c.SampleField()
	}
	return e
}

// SampleBits draws an n-bit unsigned integer (n <= 64), used to pick FRI
// query indices into a domain of size 2^n.
func (c *Challenger) SampleBits(n int) uint64 {
	out := c.squeeze()
	v := binary.BigEndian.Uint64(out[0:8])
	if n >= 64 {
		return v
	}
	return v & ((uint64(1) << uint(n)) - 1)
}

// Grind finds the smallest nonce such that, after observing it, the next
// SampleBits(bits) draw is exactly zero, then leaves that nonce's
// observation applied to the transcript - matching the real
// observe-witness-then-sample-bits proof-of-work check (not a raw,
// pre-squeeze leading-zero count) so the consumed squeeze is exactly the
// one the query phase's own SampleBits call would otherwise have drawn.
func (c *Challenger) Grind(bits int) uint64 {
	if bits <= 0 {
		return 0
	}
	for nonce := uint64(0); ; nonce++ {
		trial := *c
		var nb [8]byte
		binary.BigEndian.PutUint64(nb[:], nonce)
		trial.Observe(nb[:])
		if trial.SampleBits(bits) == 0 {
			*c = trial
			return nonce
		}
	}
}
