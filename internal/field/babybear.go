// Package field implements the base and extension finite fields the prover
// operates over: the 31-bit BabyBear prime field and its degree-4 binomial
// extension. Concrete field arithmetic is treated as a replaceable leaf
// component — BabyBear is the instance the teacher's own tests already
// reach for (core.NewField(big.NewInt(2013265921))).
package field

import "fmt"

// Elem is a canonical element of the BabyBear field, 0 <= value < Modulus.
type Elem uint32

// Modulus is the BabyBear prime p = 15*2^27 + 1.
const Modulus uint32 = 2013265921

// TwoAdicity is the largest k such that 2^k divides p-1.
const TwoAdicity = 27

// generator is a multiplicative generator of the BabyBear field's unit group.
const generator = Elem(31)

// Zero and One are the additive and multiplicative identities.
const (
	Zero = Elem(0)
	One  = Elem(1)
)

// FromUint64 reduces v modulo the field and returns the canonical element.
func FromUint64(v uint64) Elem {
	return Elem(v % uint64(Modulus))
}

// FromInt64 reduces a signed value into the field.
func FromInt64(v int64) Elem {
	m := int64(Modulus)
	r := v % m
	if r < 0 {
		r += m
	}
	return Elem(r)
}

// Add returns a+b mod p.
func Add(a, b Elem) Elem {
	s := uint64(a) + uint64(b)
	if s >= uint64(Modulus) {
		s -= uint64(Modulus)
	}
	return Elem(s)
}

// Sub returns a-b mod p.
func Sub(a, b Elem) Elem {
	if a >= b {
		return a - b
	}
	return Elem(uint64(a) + uint64(Modulus) - uint64(b))
}

// Neg returns -a mod p.
func Neg(a Elem) Elem {
	if a == 0 {
		return 0
	}
	return Elem(Modulus - uint32(a))
}

// Mul returns a*b mod p.
func Mul(a, b Elem) Elem {
	return Elem((uint64(a) * uint64(b)) % uint64(Modulus))
}

// Exp returns a^e mod p via square-and-multiply.
func Exp(a Elem, e uint64) Elem {
	result := One
	base := a
	for e > 0 {
		if e&1 == 1 {
			result = Mul(result, base)
		}
		base = Mul(base, base)
		e >>= 1
	}
	return result
}

// Inv returns the multiplicative inverse of a. Calling it on zero is a
// programmer error and panics.
func Inv(a Elem) Elem {
	if a == 0 {
		panic("field: cannot invert zero")
	}
	return Exp(a, uint64(Modulus)-2)
}

// Div returns a/b; panics if b is zero.
func Div(a, b Elem) Elem {
	return Mul(a, Inv(b))
}

// IsZero reports whether a is the additive identity.
func IsZero(a Elem) bool { return a == 0 }

// Equal reports whether a and b are the same canonical element.
func Equal(a, b Elem) bool { return a == b }

func (a Elem) String() string {
	return fmt.Sprintf("%d", uint32(a))
}

// Bytes returns the little-endian 4-byte encoding of a's canonical value,
// used wherever a field element must be fed into a byte-oriented hash
// (transcript observations, Merkle leaves).
func (a Elem) Bytes() []byte {
	v := uint32(a)
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

// TwoAdicGenerator returns a primitive 2^logN-th root of unity. Requesting a
// subgroup order the field cannot support (logN > TwoAdicity) is a
// precondition violation and panics.
func TwoAdicGenerator(logN int) Elem {
	if logN < 0 || logN > TwoAdicity {
		panic(fmt.Sprintf("field: order 2^%d exceeds two-adicity %d", logN, TwoAdicity))
	}
	// generator^((p-1)/2^logN) has order exactly 2^logN.
	exp := uint64(Modulus-1) >> uint(logN)
	return Exp(generator, exp)
}

// ReverseBits reverses the low `bits` bits of x.
func ReverseBits(x uint64, bits int) uint64 {
	var r uint64
	for i := 0; i < bits; i++ {
		r = (r << 1) | (x & 1)
		x >>= 1
	}
	return r
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

// Log2Strict returns log2(n), panicking if n is not a power of two —
// the same contract as the teacher's utils.Log2, now failing loudly
// instead of returning a sentinel (this is always a programmer error here).
func Log2Strict(n int) int {
	if !IsPowerOfTwo(n) {
		panic(fmt.Sprintf("field: %d is not a power of two", n))
	}
	k := 0
	for n > 1 {
		n >>= 1
		k++
	}
	return k
}

// NextPowerOfTwo returns the smallest power of two >= n.
func NextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	if IsPowerOfTwo(n) {
		return n
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
