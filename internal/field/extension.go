package field

import "fmt"

// ExtDegree is the degree d of the extension field G = F[X]/(X^4 - W).
const ExtDegree = 4

// nonResidue is W, chosen so X^4 - W is irreducible over BabyBear (the same
// binomial non-residue Plonky3 uses for its quartic BabyBear extension).
const nonResidue = Elem(11)

// Ext is an element of G, represented as its coefficients in the basis
// {1, X, X^2, X^3}.
type Ext [ExtDegree]Elem

// ExtZero and ExtOne are the additive and multiplicative identities of G.
var (
	ExtZero = Ext{0, 0, 0, 0}
	ExtOne  = Ext{1, 0, 0, 0}
)

// FromBase lifts a base-field element into the extension.
func FromBase(a Elem) Ext {
	return Ext{a, 0, 0, 0}
}

// ExtAdd returns a+b.
func ExtAdd(a, b Ext) Ext {
	var r Ext
	for i := range r {
		r[i] = Add(a[i], b[i])
	}
	return r
}

// ExtSub returns a-b.
func ExtSub(a, b Ext) Ext {
	var r Ext
	for i := range r {
		r[i] = Sub(a[i], b[i])
	}
	return r
}

// ExtNeg returns -a.
func ExtNeg(a Ext) Ext {
	var r Ext
	for i := range r {
		r[i] = Neg(a[i])
	}
	return r
}

// ExtMul returns a*b in G = F[X]/(X^4 - W), reducing degree-4..6 terms via
// X^4 = W, X^5 = W*X, X^6 = W*X^2.
func ExtMul(a, b Ext) Ext {
	var raw [2*ExtDegree - 1]Elem
	for i := 0; i < ExtDegree; i++ {
		if a[i] == 0 {
			continue
		}
		for j := 0; j < ExtDegree; j++ {
			raw[i+j] = Add(raw[i+j], Mul(a[i], b[j]))
		}
	}
	var r Ext
	for i := 0; i < ExtDegree; i++ {
		r[i] = raw[i]
	}
	for i := ExtDegree; i < len(raw); i++ {
		r[i-ExtDegree] = Add(r[i-ExtDegree], Mul(nonResidue, raw[i]))
	}
	return r
}

// ExtMulBase scales an extension element by a base-field scalar.
func ExtMulBase(a Ext, s Elem) Ext {
	var r Ext
	for i := range r {
		r[i] = Mul(a[i], s)
	}
	return r
}

// ExtExp returns a^e.
func ExtExp(a Ext, e uint64) Ext {
	result := ExtOne
	base := a
	for e > 0 {
		if e&1 == 1 {
			result = ExtMul(result, base)
		}
		base = ExtMul(base, base)
		e >>= 1
	}
	return result
}

// ExtInv returns the multiplicative inverse of a, found by solving the
// linear system (mult-by-a) * x = 1 over the base field via Gauss-Jordan
// elimination. This is a general technique that needs no per-field closed
// form, at the cost of O(d^3) base-field operations — negligible for d=4.
// Panics if a is zero.
func ExtInv(a Ext) Ext {
	if a == ExtZero {
		panic("field: cannot invert zero extension element")
	}

	// mat[:,j] holds the coefficients of a * X^j.
	var mat [ExtDegree][ExtDegree]Elem
	basisPower := a
	for j := 0; j < ExtDegree; j++ {
		for i := 0; i < ExtDegree; i++ {
			mat[i][j] = basisPower[i]
		}
		basisPower = ExtMul(basisPower, Ext{0, 1, 0, 0})
	}

	// Augment with the identity and row-reduce.
	var aug [ExtDegree][2 * ExtDegree]Elem
	for i := 0; i < ExtDegree; i++ {
		for j := 0; j < ExtDegree; j++ {
			aug[i][j] = mat[i][j]
		}
		aug[i][ExtDegree+i] = One
	}

	for col := 0; col < ExtDegree; col++ {
		pivot := -1
		for row := col; row < ExtDegree; row++ {
			if aug[row][col] != 0 {
				pivot = row
				break
			}
		}
		if pivot == -1 {
			panic("field: singular multiplication matrix for nonzero extension element")
		}
		aug[col], aug[pivot] = aug[pivot], aug[col]

		invPivot := Inv(aug[col][col])
		for j := 0; j < 2*ExtDegree; j++ {
			aug[col][j] = Mul(aug[col][j], invPivot)
		}
		for row := 0; row < ExtDegree; row++ {
			if row == col || aug[row][col] == 0 {
				continue
			}
			factor := aug[row][col]
			for j := 0; j < 2*ExtDegree; j++ {
				aug[row][j] = Sub(aug[row][j], Mul(factor, aug[col][j]))
			}
		}
	}

	var x Ext
	for i := 0; i < ExtDegree; i++ {
		x[i] = aug[i][ExtDegree]
	}
	return x
}

// ExtDiv returns a/b; panics if b is zero.
func ExtDiv(a, b Ext) Ext {
	return ExtMul(a, ExtInv(b))
}

// ExtFromUint64 lifts an integer into the extension via the base field.
func ExtFromUint64(v uint64) Ext {
	return FromBase(FromUint64(v))
}

// ExtIsZero reports whether a is the zero element.
func ExtIsZero(a Ext) bool { return a == ExtZero }

func (a Ext) String() string {
	return fmt.Sprintf("(%d + %dX + %dX^2 + %dX^3)", a[0], a[1], a[2], a[3])
}

// Bytes returns the concatenated little-endian encoding of a's four
// coefficients.
func (a Ext) Bytes() []byte {
	out := make([]byte, 0, ExtDegree*4)
	for _, c := range a {
		out = append(out, c.Bytes()...)
	}
	return out
}
