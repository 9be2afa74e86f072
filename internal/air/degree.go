package air

import "github.com/tessera-stark/tessera/internal/field"

// Degree tracks the total polynomial degree of a symbolic expression built
// out of trace columns (degree 1), public values and selectors, without
// carrying any actual field value. Folding a FibonacciAIR (or any AIR)
// through Folder[Degree] computes its overall constraint degree the same
// way Folder[field.Elem] computes a constraint's numeric value - same Eval
// function, different instantiation, parameterized over a folder the
// implementer wires up once per use.
type Degree struct{ D int }

// DegreeRing implements algebra.Ring[Degree]: Add/Sub take the max of the
// two operand degrees (the degree of a sum is at most the larger summand's
// degree), Mul sums them, and scaling or negating a polynomial never
// changes its degree.
type DegreeRing struct{}

func (DegreeRing) Add(a, b Degree) Degree { return maxDegree(a, b) }
func (DegreeRing) Sub(a, b Degree) Degree { return maxDegree(a, b) }
func (DegreeRing) Mul(a, b Degree) Degree { return Degree{D: a.D + b.D} }
func (DegreeRing) Neg(a Degree) Degree    { return a }
func (DegreeRing) Inv(a Degree) Degree {
	panic("air: division is not supported by symbolic degree analysis")
}
func (DegreeRing) Zero() Degree                 { return Degree{D: 0} }
func (DegreeRing) One() Degree                  { return Degree{D: 0} }
func (DegreeRing) FromUint64(v uint64) Degree   { return Degree{D: 0} }
func (DegreeRing) MulBase(a Degree, _ field.Elem) Degree { return a }

func maxDegree(a, b Degree) Degree {
	if a.D > b.D {
		return a
	}
	return b
}
