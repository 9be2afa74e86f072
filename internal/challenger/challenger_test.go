package challenger

import (
	"encoding/binary"
	"testing"

	"github.com/tessera-stark/tessera/internal/field"
)

func TestTranscriptIsDeterministic(t *testing.T) {
	run := func() (field.Elem, field.Ext, uint64) {
		c := New()
		c.ObserveElem(field.FromUint64(42))
		c.ObserveDigest([]byte{1, 2, 3, 4})
		f := c.SampleField()
		e := c.SampleExt()
		bits := c.SampleBits(10)
		return f, e, bits
	}

	f1, e1, b1 := run()
	f2, e2, b2 := run()

	if f1 != f2 || e1 != e2 || b1 != b2 {
		t.Error("identical observe/sample sequences produced different outputs")
	}
}

func TestDifferentObservationsDivergeSamples(t *testing.T) {
	a := New()
	a.ObserveElem(field.FromUint64(1))

	b := New()
	b.ObserveElem(field.FromUint64(2))

	if a.SampleField() == b.SampleField() {
		t.Error("differing transcripts produced the same sample (collision or bug)")
	}
}

func TestSampleBitsStaysInRange(t *testing.T) {
	c := New()
	c.ObserveElem(field.FromUint64(7))
	for n := 1; n <= 20; n++ {
		v := c.SampleBits(n)
		if v >= (uint64(1) << uint(n)) {
			t.Fatalf("SampleBits(%d) = %d, out of range", n, v)
		}
	}
}

func TestGrindProducesAZeroSampleBitsDraw(t *testing.T) {
	const bits = 8

	c := New()
	c.ObserveElem(field.FromUint64(99))
	nonce := c.Grind(bits)

	// Grind must leave its own nonce observation applied to the
	// transcript, so the very next sample_bits draw - the one the query
	// phase actually performs - is zero without any further observation.
	if got := c.SampleBits(bits); got != 0 {
		t.Errorf("SampleBits(%d) right after Grind = %d, expected 0", bits, got)
	}

	// Re-derive the same nonce from scratch and confirm it reproduces the
	// zero draw independently of Grind's internal state mutation.
	c2 := New()
	c2.ObserveElem(field.FromUint64(99))
	var nb [8]byte
	binary.BigEndian.PutUint64(nb[:], nonce)
	c2.Observe(nb[:])
	if got := c2.SampleBits(bits); got != 0 {
		t.Errorf("replaying nonce %d gives SampleBits=%d, expected 0", nonce, got)
	}
}

func TestGrindZeroBitsIsNoOp(t *testing.T) {
	c := New()
	c.ObserveElem(field.FromUint64(5))
	if nonce := c.Grind(0); nonce != 0 {
		t.Errorf("Grind(0) = %d, expected 0", nonce)
	}
}
